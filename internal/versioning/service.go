package versioning

import (
	"errors"
	"time"

	"github.com/kaplack/siget-sub000/internal/calendar"
	"github.com/kaplack/siget-sub000/internal/models"
	"github.com/kaplack/siget-sub000/internal/wbs"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Service owns the activity version lifecycle: draft -> baseline -> tracking
// snapshots. Every multi-row mutation runs inside a single transaction.
type Service struct {
	db       *gorm.DB
	holidays calendar.Holidays
}

func NewService(db *gorm.DB, holidays calendar.Holidays) *Service {
	return &Service{db: db, holidays: holidays}
}

// Holidays exposes the injected working calendar for callers that need
// standalone date reconciliation.
func (s *Service) Holidays() calendar.Holidays { return s.holidays }

// CreateDraft creates an activity together with its single editable
// draft-base row (version 0, current). Activities can only be added while
// the project is still in draft.
func (s *Service) CreateDraft(projectID uint, f Fields) (*models.ActivityVersion, error) {
	if f.Name == nil || *f.Name == "" {
		return nil, ErrValidation
	}
	if f.StartDate != nil && f.EndDate != nil && f.EndDate.Before(*f.StartDate) {
		return nil, ErrValidation
	}

	var created models.ActivityVersion
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var project models.Project
		if err := tx.First(&project, projectID).Error; err != nil {
			return ErrNotFound
		}
		if project.Status != models.ProjectStatusDraft {
			return ErrInvalidState
		}

		parentID := uint(0)
		if f.ParentID != nil {
			parentID = *f.ParentID
		}
		if parentID != 0 {
			if _, err := s.draftRow(tx, parentID); err != nil {
				return err
			}
		}

		activity := models.Activity{ProjectID: projectID, Name: *f.Name}
		if err := tx.Create(&activity).Error; err != nil {
			return err
		}

		order := 0
		if f.SiblingOrder != nil {
			order = *f.SiblingOrder
		}
		if order == 0 {
			var siblings int64
			draftSiblings(tx, projectID, parentID).Count(&siblings)
			order = int(siblings) + 1
		}

		triple := wbs.ReconcileDateTriple(wbs.DateTriple{
			StartDate: f.StartDate,
			EndDate:   f.EndDate,
			Duration:  f.Duration,
		}, wbs.EditedNone, s.holidays)

		created = models.ActivityVersion{
			ActivityID:    activity.ID,
			Kind:          models.VersionKindBase,
			VersionNumber: 0,
			IsCurrent:     true,
			ParentID:      parentID,
			SiblingOrder:  order,
			Name:          *f.Name,
			StartDate:     triple.StartDate,
			EndDate:       triple.EndDate,
			Duration:      triple.Duration,
		}
		if f.Assignee != nil {
			created.Assignee = *f.Assignee
		}
		if f.Predecessors != nil {
			created.Predecessors = *f.Predecessors
		}
		if f.Comment != nil {
			created.Comment = *f.Comment
		}
		return tx.Create(&created).Error
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateDraft mutates the draft-base row in place. Drafts are the only
// mutable version; once the baseline is set this fails.
func (s *Service) UpdateDraft(activityID uint, f Fields, editedField string) (*models.ActivityVersion, error) {
	var updated models.ActivityVersion
	err := s.db.Transaction(func(tx *gorm.DB) error {
		draft, err := s.draftRow(tx, activityID)
		if err != nil {
			return err
		}

		if f.Name != nil {
			if *f.Name == "" {
				return ErrValidation
			}
			draft.Name = *f.Name
			tx.Model(&models.Activity{}).Where("id = ?", activityID).Update("name", *f.Name)
		}
		if f.ParentID != nil && *f.ParentID != draft.ParentID {
			if err := s.reparentDraft(tx, draft, *f.ParentID); err != nil {
				return err
			}
		}
		if f.StartDate != nil {
			draft.StartDate = f.StartDate
		}
		if f.EndDate != nil {
			draft.EndDate = f.EndDate
		}
		if f.Duration != nil {
			draft.Duration = f.Duration
		}
		if f.Assignee != nil {
			draft.Assignee = *f.Assignee
		}
		if f.Predecessors != nil {
			draft.Predecessors = *f.Predecessors
		}
		if f.Comment != nil {
			draft.Comment = *f.Comment
		}

		triple := wbs.ReconcileDateTriple(wbs.DateTriple{
			StartDate: draft.StartDate,
			EndDate:   draft.EndDate,
			Duration:  draft.Duration,
		}, editedField, s.holidays)
		draft.StartDate, draft.EndDate, draft.Duration = triple.StartDate, triple.EndDate, triple.Duration

		if err := tx.Save(draft).Error; err != nil {
			return err
		}
		updated = *draft
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// MoveActivity reparents a draft activity, guarding against cycles and
// keeping sibling orders dense in both the old and new sibling groups.
func (s *Service) MoveActivity(activityID, newParentID uint) (*models.ActivityVersion, error) {
	var moved models.ActivityVersion
	err := s.db.Transaction(func(tx *gorm.DB) error {
		draft, err := s.draftRow(tx, activityID)
		if err != nil {
			return err
		}
		if err := s.reparentDraft(tx, draft, newParentID); err != nil {
			return err
		}
		if err := tx.Save(draft).Error; err != nil {
			return err
		}
		moved = *draft
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &moved, nil
}

// ReorderActivity moves a draft to a new position among its siblings,
// shifting the others so the order stays dense 1..N. Positions outside that
// range are clamped.
func (s *Service) ReorderActivity(activityID uint, newOrder int) (*models.ActivityVersion, error) {
	var reordered models.ActivityVersion
	err := s.db.Transaction(func(tx *gorm.DB) error {
		draft, err := s.draftRow(tx, activityID)
		if err != nil {
			return err
		}

		var activity models.Activity
		if err := tx.First(&activity, activityID).Error; err != nil {
			return ErrNotFound
		}

		var siblings int64
		draftSiblings(tx, activity.ProjectID, draft.ParentID).Count(&siblings)

		if newOrder < 1 {
			newOrder = 1
		}
		if newOrder > int(siblings) {
			newOrder = int(siblings)
		}
		if newOrder == draft.SiblingOrder {
			reordered = *draft
			return nil
		}

		if newOrder < draft.SiblingOrder {
			if err := draftSiblings(tx, activity.ProjectID, draft.ParentID).
				Where("activity_id <> ? AND sibling_order >= ? AND sibling_order < ?", activityID, newOrder, draft.SiblingOrder).
				UpdateColumn("sibling_order", gorm.Expr("sibling_order + 1")).Error; err != nil {
				return err
			}
		} else {
			if err := draftSiblings(tx, activity.ProjectID, draft.ParentID).
				Where("activity_id <> ? AND sibling_order > ? AND sibling_order <= ?", activityID, draft.SiblingOrder, newOrder).
				UpdateColumn("sibling_order", gorm.Expr("sibling_order - 1")).Error; err != nil {
				return err
			}
		}

		draft.SiblingOrder = newOrder
		if err := tx.Save(draft).Error; err != nil {
			return err
		}
		reordered = *draft
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &reordered, nil
}

// reparentDraft runs the cycle guard over the project's draft rows, detaches
// the draft from its old sibling group (closing the order gap) and appends
// it to the new parent's group.
func (s *Service) reparentDraft(tx *gorm.DB, draft *models.ActivityVersion, newParentID uint) error {
	var activity models.Activity
	if err := tx.First(&activity, draft.ActivityID).Error; err != nil {
		return ErrNotFound
	}

	drafts, err := s.projectDrafts(tx, activity.ProjectID)
	if err != nil {
		return err
	}
	parents := make(map[uint]uint, len(drafts))
	for _, d := range drafts {
		parents[d.ActivityID] = d.ParentID
	}
	if newParentID != 0 {
		if _, ok := parents[newParentID]; !ok {
			return ErrNotFound
		}
	}
	if err := wbs.CheckMove(parents, draft.ActivityID, newParentID); err != nil {
		return err
	}

	// Close the gap left behind in the old sibling group.
	if err := draftSiblings(tx, activity.ProjectID, draft.ParentID).
		Where("sibling_order > ?", draft.SiblingOrder).
		UpdateColumn("sibling_order", gorm.Expr("sibling_order - 1")).Error; err != nil {
		return err
	}

	var siblings int64
	draftSiblings(tx, activity.ProjectID, newParentID).
		Where("activity_id <> ?", draft.ActivityID).
		Count(&siblings)

	draft.ParentID = newParentID
	draft.SiblingOrder = int(siblings) + 1
	return nil
}

// SetBaselineForProject freezes every current draft in the project:
// the draft row is promoted to version 1 (retired as a draft) and a tracking
// row version 1 is cloned from it with progress reset to zero. The project
// moves to baseline_set. All-or-nothing across the whole project; running it
// again fails with ErrNoDrafts since no current drafts remain.
func (s *Service) SetBaselineForProject(projectID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var project models.Project
		if err := lockForUpdate(tx).First(&project, projectID).Error; err != nil {
			return ErrNotFound
		}
		if project.Status == models.ProjectStatusAnnulled {
			return ErrInvalidState
		}

		drafts, err := s.projectDrafts(tx, projectID)
		if err != nil {
			return err
		}
		if len(drafts) == 0 {
			return ErrNoDrafts
		}

		for _, draft := range drafts {
			if err := tx.Model(&models.ActivityVersion{}).
				Where("id = ?", draft.ID).
				Updates(map[string]interface{}{"version_number": 1, "is_current": false}).Error; err != nil {
				return err
			}

			snapshot := models.ActivityVersion{
				ActivityID:    draft.ActivityID,
				Kind:          models.VersionKindTracking,
				VersionNumber: 1,
				IsCurrent:     true,
				ParentID:      draft.ParentID,
				SiblingOrder:  draft.SiblingOrder,
				Name:          draft.Name,
				StartDate:     draft.StartDate,
				EndDate:       draft.EndDate,
				Duration:      draft.Duration,
				Assignee:      draft.Assignee,
				Predecessors:  draft.Predecessors,
				Comment:       draft.Comment,
				Progress:      0,
			}
			if err := tx.Create(&snapshot).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return ErrConflict
				}
				return err
			}
		}

		return tx.Model(&project).Update("status", models.ProjectStatusBaselineSet).Error
	})
}

// AddTrackingVersion appends a tracking snapshot. The activity row is locked
// for the duration of the transaction so concurrent calls cannot allocate
// the same version number; a duplicate that slips through the lock (e.g. on
// a dialect without row locks) is caught by the unique index and surfaced
// as ErrConflict for the caller to retry.
func (s *Service) AddTrackingVersion(activityID uint, f Fields, editedField string) (*models.ActivityVersion, error) {
	if f.Progress != nil && (*f.Progress < 0 || *f.Progress > 100) {
		return nil, ErrValidation
	}

	var created models.ActivityVersion
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var activity models.Activity
		if err := lockForUpdate(tx).First(&activity, activityID).Error; err != nil {
			return ErrNotFound
		}

		var baseline models.ActivityVersion
		if err := tx.Where("activity_id = ? AND kind = ? AND version_number = 1",
			activityID, models.VersionKindBase).First(&baseline).Error; err != nil {
			return ErrNoBaseline
		}

		var project models.Project
		if err := tx.First(&project, activity.ProjectID).Error; err != nil {
			return ErrNotFound
		}
		if project.Status == models.ProjectStatusAnnulled {
			return ErrInvalidState
		}
		if project.SignatureDate == nil {
			return ErrPrecondition
		}

		var prev *models.ActivityVersion
		var last models.ActivityVersion
		if err := tx.Where("activity_id = ? AND kind = ?", activityID, models.VersionKindTracking).
			Order("version_number DESC").First(&last).Error; err == nil {
			prev = &last
		}

		var count int64
		tx.Model(&models.ActivityVersion{}).
			Where("activity_id = ? AND kind = ?", activityID, models.VersionKindTracking).
			Count(&count)

		created = mergeVersion(f, prev, &baseline)
		created.VersionNumber = int(count) + 1
		created.IsCurrent = true

		triple := wbs.ReconcileDateTriple(wbs.DateTriple{
			StartDate: created.StartDate,
			EndDate:   created.EndDate,
			Duration:  created.Duration,
		}, editedField, s.holidays)
		created.StartDate, created.EndDate, created.Duration = triple.StartDate, triple.EndDate, triple.Duration

		if err := tx.Model(&models.ActivityVersion{}).
			Where("activity_id = ? AND kind = ? AND is_current = ?", activityID, models.VersionKindTracking, true).
			Update("is_current", false).Error; err != nil {
			return err
		}
		if err := tx.Create(&created).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrConflict
			}
			return err
		}

		if created.VersionNumber >= 2 && created.Progress > 0 &&
			project.Status == models.ProjectStatusBaselineSet {
			if err := tx.Model(&project).
				Update("status", models.ProjectStatusInExecution).Error; err != nil {
				return err
			}
		}

		return s.refreshProjectProgress(tx, activity.ProjectID)
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// DeleteActivity removes an activity and its versions, but only while the
// activity is still draft-only: any promoted baseline or tracking row makes
// it permanent.
func (s *Service) DeleteActivity(activityID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var activity models.Activity
		if err := tx.First(&activity, activityID).Error; err != nil {
			return ErrNotFound
		}

		var versions []models.ActivityVersion
		if err := tx.Where("activity_id = ?", activityID).Find(&versions).Error; err != nil {
			return err
		}
		for _, v := range versions {
			if v.Kind != models.VersionKindBase || v.VersionNumber != 0 {
				return ErrInvalidState
			}
		}

		// Close the sibling-order gap before the row disappears.
		if len(versions) == 1 {
			if err := draftSiblings(tx, activity.ProjectID, versions[0].ParentID).
				Where("sibling_order > ?", versions[0].SiblingOrder).
				UpdateColumn("sibling_order", gorm.Expr("sibling_order - 1")).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("activity_id = ?", activityID).
			Delete(&models.ActivityVersion{}).Error; err != nil {
			return err
		}
		return tx.Delete(&activity).Error
	})
}

// DeleteAllActivities wipes every activity (and cascading versions) under a
// project, regardless of lifecycle state. Used for full re-import/reset.
func (s *Service) DeleteAllActivities(projectID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var ids []uint
		if err := tx.Model(&models.Activity{}).
			Where("project_id = ?", projectID).Pluck("id", &ids).Error; err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}
		if err := tx.Where("activity_id IN ?", ids).
			Delete(&models.ActivityVersion{}).Error; err != nil {
			return err
		}
		return tx.Where("project_id = ?", projectID).Delete(&models.Activity{}).Error
	})
}

// AnnulProject moves a project to annulled from any live state. Annulling an
// already annulled project is a no-op.
func (s *Service) AnnulProject(projectID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var project models.Project
		if err := tx.First(&project, projectID).Error; err != nil {
			return ErrNotFound
		}
		if project.Status == models.ProjectStatusAnnulled {
			return nil
		}
		return tx.Model(&project).Update("status", models.ProjectStatusAnnulled).Error
	})
}

// ListVersions returns an activity's full version history, base row first,
// then tracking rows in version order.
func (s *Service) ListVersions(activityID uint) ([]models.ActivityVersion, error) {
	var versions []models.ActivityVersion
	err := s.db.Where("activity_id = ?", activityID).
		Order("kind ASC, version_number ASC").Find(&versions).Error
	if err != nil {
		return nil, err
	}
	if len(versions) == 0 {
		return nil, ErrNotFound
	}
	return versions, nil
}

// draftRow fetches the single editable draft-base row, or ErrInvalidState if
// the activity exists but its baseline is already set.
func (s *Service) draftRow(tx *gorm.DB, activityID uint) (*models.ActivityVersion, error) {
	var activity models.Activity
	if err := tx.First(&activity, activityID).Error; err != nil {
		return nil, ErrNotFound
	}
	var draft models.ActivityVersion
	err := tx.Where("activity_id = ? AND kind = ? AND version_number = 0 AND is_current = ?",
		activityID, models.VersionKindBase, true).First(&draft).Error
	if err != nil {
		return nil, ErrInvalidState
	}
	return &draft, nil
}

// projectDrafts returns all current draft-base rows under a project, in
// sibling order.
func (s *Service) projectDrafts(tx *gorm.DB, projectID uint) ([]models.ActivityVersion, error) {
	var drafts []models.ActivityVersion
	err := tx.Model(&models.ActivityVersion{}).
		Joins("JOIN activities ON activities.id = activity_versions.activity_id").
		Where("activities.project_id = ? AND activity_versions.kind = ? AND activity_versions.version_number = 0 AND activity_versions.is_current = ?",
			projectID, models.VersionKindBase, true).
		Order("activity_versions.parent_id, activity_versions.sibling_order").
		Find(&drafts).Error
	return drafts, err
}

// draftSiblings scopes a query to the current draft rows under one parent in
// a project. The project filter is a subquery rather than a join so the same
// scope works for UPDATE statements on both dialects.
func draftSiblings(tx *gorm.DB, projectID, parentID uint) *gorm.DB {
	return tx.Model(&models.ActivityVersion{}).
		Where("kind = ? AND version_number = 0 AND parent_id = ?", models.VersionKindBase, parentID).
		Where("activity_id IN (?)",
			tx.Session(&gorm.Session{NewDB: true}).Model(&models.Activity{}).
				Select("id").Where("project_id = ?", projectID))
}

// lockForUpdate takes a row-level lock on dialects that support it. SQLite
// has no FOR UPDATE; its single-writer model serializes the transaction
// anyway, and the unique version index backstops both drivers.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// ParseDate parses a YYYY-MM-DD request value into a normalized date.
func ParseDate(s string) (*time.Time, error) {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, ErrValidation
	}
	d = calendar.Normalize(d)
	return &d, nil
}
