package entity

import (
	"time"

	"github.com/google/uuid"
)

type Lot struct {
	Id          uuid.UUID
	LotNumber   string
	StudentName string
	Department  string
	Position    int
	ImageURL    *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
