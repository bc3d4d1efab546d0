package versioning

import (
	"math"

	"github.com/kaplack/siget-sub000/internal/models"
	"github.com/kaplack/siget-sub000/internal/wbs"
	"gorm.io/gorm"
)

// ProjectTree builds the annotated WBS forest for a project from the current
// version rows of one kind. Base and tracking display share the exact same
// pipeline; only the flat input differs. The second return value lists
// activity ids whose parent reference was missing (kept as roots).
func (s *Service) ProjectTree(projectID uint, kind string) ([]*wbs.Node, []uint, error) {
	if kind != models.VersionKindBase && kind != models.VersionKindTracking {
		return nil, nil, ErrValidation
	}
	var project models.Project
	if err := s.db.First(&project, projectID).Error; err != nil {
		return nil, nil, ErrNotFound
	}
	flat, err := s.currentVersions(s.db, projectID, kind)
	if err != nil {
		return nil, nil, err
	}
	roots, orphans := wbs.AnnotateTree(flat, s.holidays)
	return roots, orphans, nil
}

// ProjectProgress recomputes the project-wide aggregate from the current
// tracking forest: the duration-weighted average over root activities.
func (s *Service) ProjectProgress(projectID uint) (int, error) {
	var progress int
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		progress, err = s.aggregateProgress(tx, projectID)
		return err
	})
	return progress, err
}

// refreshProjectProgress recomputes and caches the aggregate on the project
// row, inside the caller's transaction.
func (s *Service) refreshProjectProgress(tx *gorm.DB, projectID uint) error {
	progress, err := s.aggregateProgress(tx, projectID)
	if err != nil {
		return err
	}
	return tx.Model(&models.Project{}).Where("id = ?", projectID).
		Update("progress", progress).Error
}

func (s *Service) aggregateProgress(tx *gorm.DB, projectID uint) (int, error) {
	flat, err := s.currentVersions(tx, projectID, models.VersionKindTracking)
	if err != nil {
		return 0, err
	}
	roots, _ := wbs.AnnotateTree(flat, s.holidays)

	// Same weighted average the roll-up applies one level down.
	var weighted, total float64
	for _, r := range roots {
		if r.Duration == nil || *r.Duration == 0 {
			continue
		}
		w := float64(*r.Duration)
		weighted += float64(r.Progress) * w
		total += w
	}
	if total == 0 {
		return 0, nil
	}
	return int(math.Floor(weighted/total + 0.5)), nil
}

// currentVersions fetches the flat node list for one version kind: for
// tracking, the rows flagged current; for base, the single base row per
// activity (version 0 while drafting, 1 once the baseline is set).
func (s *Service) currentVersions(tx *gorm.DB, projectID uint, kind string) ([]*wbs.Node, error) {
	q := tx.Model(&models.ActivityVersion{}).
		Joins("JOIN activities ON activities.id = activity_versions.activity_id").
		Where("activities.project_id = ? AND activity_versions.kind = ?", projectID, kind)
	if kind == models.VersionKindTracking {
		q = q.Where("activity_versions.is_current = ?", true)
	}

	var rows []models.ActivityVersion
	if err := q.Order("activity_versions.parent_id, activity_versions.sibling_order").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	flat := make([]*wbs.Node, len(rows))
	for i := range rows {
		flat[i] = nodeFromVersion(&rows[i])
	}
	return flat, nil
}

func nodeFromVersion(v *models.ActivityVersion) *wbs.Node {
	return &wbs.Node{
		ActivityID:    v.ActivityID,
		ParentID:      v.ParentID,
		SiblingOrder:  v.SiblingOrder,
		Name:          v.Name,
		StartDate:     v.StartDate,
		EndDate:       v.EndDate,
		Duration:      v.Duration,
		Assignee:      v.Assignee,
		Predecessors:  v.Predecessors,
		Comment:       v.Comment,
		Progress:      v.Progress,
		Justification: v.Justification,
	}
}
