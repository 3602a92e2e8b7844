package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LotImage holds at most one image per lot; a re-upload replaces the row
// (and the file on disk) in place.
type LotImage struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	LotId     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Filename  string    `gorm:"type:varchar(255);not null"`
	URL       string    `gorm:"type:varchar(500);not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (LotImage) TableName() string {
	return "lot_images"
}

func (i *LotImage) BeforeCreate(tx *gorm.DB) error {
	if i.Id == uuid.Nil {
		i.Id = uuid.New()
	}
	return nil
}
