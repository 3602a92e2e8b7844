package entity

import (
	"time"

	"github.com/google/uuid"
)

// BidEntry records that a buyer bid on a lot. LotPosition is the lot's
// catalog index at creation time; it deliberately does not track later
// catalog reordering.
type BidEntry struct {
	Id          uuid.UUID
	LotId       uuid.UUID
	BuyerId     uuid.UUID
	LotPosition int
	CreatedAt   time.Time
}
