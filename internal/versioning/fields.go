package versioning

import (
	"time"

	"github.com/kaplack/siget-sub000/internal/models"
)

// Fields is a partial update to an activity version. Nil means "not
// provided"; provided values win over inherited ones.
type Fields struct {
	Name              *string
	ParentID          *uint
	SiblingOrder      *int
	StartDate         *time.Time
	EndDate           *time.Time
	Duration          *int
	Assignee          *string
	Predecessors      *string
	Comment           *string
	Progress          *int
	Justification     *string
	CorrectiveActions *string
}

// mergeVersion resolves every optional field of a new tracking row through
// the same ordered fallback chain: value provided in the request, else the
// previous tracking row's value, else the baseline's. prev may be nil when
// this is the first tracking row after the baseline clone.
func mergeVersion(f Fields, prev, base *models.ActivityVersion) models.ActivityVersion {
	if prev == nil {
		prev = base
	}
	v := models.ActivityVersion{
		ActivityID:        base.ActivityID,
		Kind:              models.VersionKindTracking,
		ParentID:          pickID(f.ParentID, prev.ParentID, base.ParentID),
		SiblingOrder:      pickOrder(f.SiblingOrder, prev.SiblingOrder, base.SiblingOrder),
		Name:              pickStr(f.Name, prev.Name, base.Name),
		StartDate:         pickDate(f.StartDate, prev.StartDate, base.StartDate),
		EndDate:           pickDate(f.EndDate, prev.EndDate, base.EndDate),
		Duration:          pickInt(f.Duration, prev.Duration, base.Duration),
		Assignee:          pickStr(f.Assignee, prev.Assignee, base.Assignee),
		Predecessors:      pickStr(f.Predecessors, prev.Predecessors, base.Predecessors),
		Comment:           pickStr(f.Comment, prev.Comment, base.Comment),
		Progress:          prev.Progress,
		Justification:     "",
		CorrectiveActions: "",
	}
	if f.Progress != nil {
		v.Progress = *f.Progress
	}
	// Justification and corrective actions describe one snapshot; they are
	// never inherited across tracking versions.
	if f.Justification != nil {
		v.Justification = *f.Justification
	}
	if f.CorrectiveActions != nil {
		v.CorrectiveActions = *f.CorrectiveActions
	}
	return v
}

func pickStr(req *string, prev, base string) string {
	if req != nil {
		return *req
	}
	if prev != "" {
		return prev
	}
	return base
}

func pickDate(req, prev, base *time.Time) *time.Time {
	for _, v := range []*time.Time{req, prev, base} {
		if v != nil {
			d := *v
			return &d
		}
	}
	return nil
}

func pickInt(req, prev, base *int) *int {
	for _, v := range []*int{req, prev, base} {
		if v != nil {
			n := *v
			return &n
		}
	}
	return nil
}

func pickID(req *uint, prev, base uint) uint {
	if req != nil {
		return *req
	}
	if prev != 0 {
		return prev
	}
	return base
}

func pickOrder(req *int, prev, base int) int {
	if req != nil {
		return *req
	}
	if prev != 0 {
		return prev
	}
	return base
}
