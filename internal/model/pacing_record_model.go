package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PacingRecord struct {
	Id              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	LotPosition     int        `gorm:"not null;index"`
	StartTime       time.Time  `gorm:"not null"`
	EndTime         *time.Time `gorm:"index"`
	DurationSeconds *int
}

func (PacingRecord) TableName() string {
	return "pacing_records"
}

func (r *PacingRecord) BeforeCreate(tx *gorm.DB) error {
	if r.Id == uuid.Nil {
		r.Id = uuid.New()
	}
	return nil
}
