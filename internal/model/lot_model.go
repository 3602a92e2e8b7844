package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Lot struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey"`
	LotNumber   string    `gorm:"type:varchar(50);not null;uniqueIndex"`
	StudentName string    `gorm:"type:varchar(255)"`
	Department  string    `gorm:"type:varchar(255)"`
	Position    int       `gorm:"not null;index"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (Lot) TableName() string {
	return "lots"
}

func (l *Lot) BeforeCreate(tx *gorm.DB) error {
	if l.Id == uuid.Nil {
		l.Id = uuid.New()
	}
	return nil
}
