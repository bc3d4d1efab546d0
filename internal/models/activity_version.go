package models

import (
	"time"

	"gorm.io/gorm"
)

// Version kinds. The single "base" row per activity starts life as the
// editable draft (version 0, current) and is promoted to version 1 when the
// project baseline is set. "tracking" rows are appended snapshots 1..N.
const (
	VersionKindBase     = "base"
	VersionKindTracking = "tracking"
)

type ActivityVersion struct {
	ID            uint   `json:"id" gorm:"primaryKey"`
	ActivityID    uint   `json:"activityId" gorm:"not null;index;uniqueIndex:idx_activity_kind_version,priority:1"`
	Kind          string `json:"kind" gorm:"not null;uniqueIndex:idx_activity_kind_version,priority:2"`
	VersionNumber int    `json:"versionNumber" gorm:"not null;uniqueIndex:idx_activity_kind_version,priority:3"`
	IsCurrent     bool   `json:"isCurrent" gorm:"default:false;index"`

	// WBS placement. ParentID references another Activity; 0 means root.
	ParentID     uint `json:"parentId" gorm:"default:0"`
	SiblingOrder int  `json:"siblingOrder" gorm:"default:1"` // dense 1..N among siblings

	Name              string     `json:"name" gorm:"not null"`
	StartDate         *time.Time `json:"startDate" gorm:"type:date"`
	EndDate           *time.Time `json:"endDate" gorm:"type:date"`
	Duration          *int       `json:"duration"` // business days, inclusive
	Assignee          string     `json:"assignee"`
	Predecessors      string     `json:"predecessors"` // comma-separated activity ids with optional lead/lag
	Comment           string     `json:"comment"`
	Progress          int        `json:"progress" gorm:"default:0"` // 0..100
	Justification     string     `json:"justification"`             // tracking only
	CorrectiveActions string     `json:"correctiveActions"`         // tracking only

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// Activity DTOs. Date fields travel as YYYY-MM-DD strings; handlers parse
// them before calling into the versioning service.
type CreateActivityRequest struct {
	Name         string  `json:"name" validate:"required"`
	ParentID     uint    `json:"parentId"`
	SiblingOrder int     `json:"siblingOrder"`
	StartDate    *string `json:"startDate"`
	EndDate      *string `json:"endDate"`
	Duration     *int    `json:"duration"`
	Assignee     *string `json:"assignee"`
	Predecessors *string `json:"predecessors"`
	Comment      *string `json:"comment"`
}

type UpdateActivityRequest struct {
	Name         *string `json:"name"`
	ParentID     *uint   `json:"parentId"`
	StartDate    *string `json:"startDate"`
	EndDate      *string `json:"endDate"`
	Duration     *int    `json:"duration"`
	Assignee     *string `json:"assignee"`
	Predecessors *string `json:"predecessors"`
	Comment      *string `json:"comment"`
	EditedField  string  `json:"editedField"` // start | end | duration | ""
}

type TrackingVersionRequest struct {
	StartDate         *string `json:"startDate"`
	EndDate           *string `json:"endDate"`
	Duration          *int    `json:"duration"`
	Assignee          *string `json:"assignee"`
	Predecessors      *string `json:"predecessors"`
	Comment           *string `json:"comment"`
	Progress          *int    `json:"progress"`
	Justification     *string `json:"justification"`
	CorrectiveActions *string `json:"correctiveActions"`
	EditedField       string  `json:"editedField"`
}

type MoveActivityRequest struct {
	NewParentID uint `json:"newParentId"` // 0 moves to root
}

type ReorderActivityRequest struct {
	SiblingOrder int `json:"siblingOrder" validate:"required"`
}
