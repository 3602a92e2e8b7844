package entity

import (
	"time"

	"github.com/google/uuid"
)

type PacingRecord struct {
	Id              uuid.UUID
	LotPosition     int
	StartTime       time.Time
	EndTime         *time.Time
	DurationSeconds *int
}

// Open reports whether the record is still accumulating dwell time.
func (r *PacingRecord) Open() bool {
	return r.EndTime == nil
}
