package model

import (
	"time"

	"gorm.io/gorm"
)

// Quiz belongs to exactly one material; the service rejects a second quiz for
// the same material on creation.
type Quiz struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	MaterialID uint           `json:"material_id" gorm:"not null;index"`
	Title      string         `json:"title" gorm:"not null"`
	Questions  []Question     `json:"questions,omitempty" gorm:"foreignKey:QuizID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}
