package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuctionSession is a singleton in practice: exactly one row with
// IsActive=true, created lazily on first access.
type AuctionSession struct {
	Id              uuid.UUID `gorm:"type:uuid;primaryKey"`
	CurrentLotIndex int       `gorm:"not null;default:-1"`
	IsActive        bool      `gorm:"not null;default:true;index"`
	CreatedAt       time.Time `gorm:"autoCreateTime"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime"`
}

func (AuctionSession) TableName() string {
	return "auction_sessions"
}

func (s *AuctionSession) BeforeCreate(tx *gorm.DB) error {
	if s.Id == uuid.Nil {
		s.Id = uuid.New()
	}
	return nil
}
