package entity

import (
	"time"

	"github.com/google/uuid"
)

type LotImage struct {
	Id        uuid.UUID
	LotId     uuid.UUID
	Filename  string
	URL       string
	CreatedAt time.Time
}
