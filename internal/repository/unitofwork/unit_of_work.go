package unitofwork

import (
	"context"

	"auction-desk-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	LotRepository() contract.LotRepository
	BuyerRepository() contract.BuyerRepository
	BidEntryRepository() contract.BidEntryRepository
	PacingRecordRepository() contract.PacingRecordRepository
	AuctionSessionRepository() contract.AuctionSessionRepository
	UserRepository() contract.UserRepository
	LotImageRepository() contract.LotImageRepository
	OperationLogRepository() contract.OperationLogRepository
}
