package entity

import (
	"time"

	"github.com/google/uuid"
)

type Buyer struct {
	Id         uuid.UUID
	Identifier int
	Name       string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
