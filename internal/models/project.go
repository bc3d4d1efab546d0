package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Project statuses. Transitions only move forward (draft -> baseline_set ->
// in_execution) except annulment, which is reachable from any live state.
const (
	ProjectStatusDraft       = "draft"
	ProjectStatusBaselineSet = "baseline_set"
	ProjectStatusInExecution = "in_execution"
	ProjectStatusAnnulled    = "annulled"
)

type Project struct {
	ID                 uint           `json:"id" gorm:"primaryKey"`
	OwnerID            uuid.UUID      `json:"ownerId" gorm:"type:uuid;index"`
	Code               string         `json:"code" gorm:"index"` // agreement number, e.g. CONV-2025-0042
	Name               string         `json:"name" gorm:"not null"`
	Status             string         `json:"status" gorm:"not null;default:draft"`
	SignatureDate      *time.Time     `json:"signatureDate" gorm:"type:date"` // agreement signature date; gates tracking
	Progress           int            `json:"progress" gorm:"default:0"`      // cached aggregate over current tracking versions
	CreatedAt          time.Time      `json:"createdAt"`
	UpdatedAt          time.Time      `json:"updatedAt"`
	DeletedAt          gorm.DeletedAt `json:"-" gorm:"index"`
	Activities         []Activity     `json:"activities,omitempty" gorm:"foreignKey:ProjectID"`
}

// Project DTOs
type CreateProjectRequest struct {
	Code string `json:"code"`
	Name string `json:"name" validate:"required"`
}

type UpdateProjectRequest struct {
	Code          *string `json:"code"`
	Name          *string `json:"name"`
	SignatureDate *string `json:"signatureDate"` // YYYY-MM-DD
}

type ProjectSummary struct {
	ID            uint       `json:"id"`
	Code          string     `json:"code"`
	Name          string     `json:"name"`
	Status        string     `json:"status"`
	SignatureDate *time.Time `json:"signatureDate"`
	Progress      int        `json:"progress"`
	ActivityCount int        `json:"activityCount"`
}
