package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Buyer struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Identifier int       `gorm:"not null;uniqueIndex"`
	Name       string    `gorm:"type:varchar(255)"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

func (Buyer) TableName() string {
	return "buyers"
}

func (b *Buyer) BeforeCreate(tx *gorm.DB) error {
	if b.Id == uuid.Nil {
		b.Id = uuid.New()
	}
	return nil
}
