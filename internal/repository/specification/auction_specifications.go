package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByLotId filters bid entries / images belonging to one lot.
type ByLotId struct {
	LotId uuid.UUID
}

func (s ByLotId) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("lot_id = ?", s.LotId)
}

// ByBuyerId filters bid entries belonging to one buyer.
type ByBuyerId struct {
	BuyerId uuid.UUID
}

func (s ByBuyerId) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("buyer_id = ?", s.BuyerId)
}

// ByIdentifier resolves a buyer by its public numeric identifier.
type ByIdentifier struct {
	Identifier int
}

func (s ByIdentifier) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("identifier = ?", s.Identifier)
}

// ByLotNumber resolves a lot by its stable catalog key.
type ByLotNumber struct {
	LotNumber string
}

func (s ByLotNumber) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("lot_number = ?", s.LotNumber)
}

// ByPosition filters lots / pacing records at one catalog index.
type ByPosition struct {
	Position int
}

func (s ByPosition) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("position = ?", s.Position)
}

// ByLotPosition filters pacing records opened at one catalog index.
type ByLotPosition struct {
	Position int
}

func (s ByLotPosition) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("lot_position = ?", s.Position)
}

// OpenRecords selects pacing records still accumulating dwell time.
type OpenRecords struct{}

func (s OpenRecords) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("end_time IS NULL")
}

// CompletedRecords selects pacing records with a derived duration.
type CompletedRecords struct{}

func (s CompletedRecords) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("duration_seconds IS NOT NULL")
}

// ActiveSession selects the live auction session row.
type ActiveSession struct{}

func (s ActiveSession) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_active = ?", true)
}

// ByUsername resolves a user account.
type ByUsername struct {
	Username string
}

func (s ByUsername) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("username = ?", s.Username)
}
