package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BidEntry is the lot-to-buyer association. The composite unique index is
// the uniqueness invariant: one entry per (lot, buyer), no matter how the
// entry was produced (add, merge reassignment).
type BidEntry struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey"`
	LotId       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_bid_lot_buyer,priority:1"`
	BuyerId     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_bid_lot_buyer,priority:2"`
	LotPosition int       `gorm:"not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index"`
}

func (BidEntry) TableName() string {
	return "bid_entries"
}

func (e *BidEntry) BeforeCreate(tx *gorm.DB) error {
	if e.Id == uuid.Nil {
		e.Id = uuid.New()
	}
	return nil
}
