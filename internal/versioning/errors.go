package versioning

import (
	"errors"

	"github.com/kaplack/siget-sub000/internal/wbs"
)

var (
	// ErrValidation indicates malformed or missing required input.
	ErrValidation = errors.New("invalid input")
	// ErrInvalidState indicates the operation is forbidden in the current
	// lifecycle state (editing a non-draft, deleting a baselined activity).
	ErrInvalidState = errors.New("operation not allowed in current state")
	// ErrNoDrafts indicates a project-wide baseline was requested with no
	// current drafts left to promote.
	ErrNoDrafts = errors.New("project has no current drafts")
	// ErrNoBaseline indicates a tracking version was requested before the
	// baseline exists.
	ErrNoBaseline = errors.New("activity has no baseline")
	// ErrPrecondition indicates a cross-entity gate is unmet (the project's
	// agreement signature date is not set).
	ErrPrecondition = errors.New("project precondition not met")
	// ErrConflict indicates a version-number collision from a concurrent
	// writer; the caller should recompute and retry the whole operation.
	ErrConflict = errors.New("concurrent version conflict")
	// ErrNotFound indicates the referenced record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrCycle is the reparenting guard, shared with the wbs package.
	ErrCycle = wbs.ErrCycle
)
