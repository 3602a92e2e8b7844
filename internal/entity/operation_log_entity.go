package entity

import (
	"time"

	"github.com/google/uuid"
)

type OperationLog struct {
	Id        uuid.UUID
	Kind      string
	Message   string
	Details   map[string]interface{}
	CreatedAt time.Time
}
