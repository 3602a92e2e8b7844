package entity

import (
	"time"

	"github.com/google/uuid"
)

// NotStartedIndex marks a session whose pointer has never advanced.
const NotStartedIndex = -1

type AuctionSession struct {
	Id              uuid.UUID
	CurrentLotIndex int
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (s *AuctionSession) Started() bool {
	return s.CurrentLotIndex > NotStartedIndex
}
