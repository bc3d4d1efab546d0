package models

import (
	"time"

	"gorm.io/gorm"
)

// Activity is a WBS node identity. All schedule/progress data lives on its
// ActivityVersion rows; the activity itself only anchors them to a project.
type Activity struct {
	ID        uint              `json:"id" gorm:"primaryKey"`
	ProjectID uint              `json:"projectId" gorm:"index;not null"`
	Name      string            `json:"name" gorm:"not null"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
	DeletedAt gorm.DeletedAt    `json:"-" gorm:"index"`
	Versions  []ActivityVersion `json:"versions,omitempty" gorm:"foreignKey:ActivityID;constraint:OnDelete:CASCADE"`
}
