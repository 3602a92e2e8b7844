package unitofwork

import (
	"context"
	"fmt"

	"auction-desk-be/internal/repository/contract"
	"auction-desk-be/internal/repository/implementation"

	"gorm.io/gorm"
)

type UnitOfWorkImpl struct {
	db *gorm.DB
	tx *gorm.DB
}

func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &UnitOfWorkImpl{
		db: db,
	}
}

func (u *UnitOfWorkImpl) getDB() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *UnitOfWorkImpl) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}
	u.tx = u.db.WithContext(ctx).Begin()
	return u.tx.Error
}

func (u *UnitOfWorkImpl) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}
	err := u.tx.Commit().Error
	u.tx = nil
	return err
}

func (u *UnitOfWorkImpl) Rollback() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to rollback")
	}
	err := u.tx.Rollback().Error
	u.tx = nil
	return err
}

// Repository Accessors

func (u *UnitOfWorkImpl) LotRepository() contract.LotRepository {
	return implementation.NewLotRepository(u.getDB())
}

func (u *UnitOfWorkImpl) BuyerRepository() contract.BuyerRepository {
	return implementation.NewBuyerRepository(u.getDB())
}

func (u *UnitOfWorkImpl) BidEntryRepository() contract.BidEntryRepository {
	return implementation.NewBidEntryRepository(u.getDB())
}

func (u *UnitOfWorkImpl) PacingRecordRepository() contract.PacingRecordRepository {
	return implementation.NewPacingRecordRepository(u.getDB())
}

func (u *UnitOfWorkImpl) AuctionSessionRepository() contract.AuctionSessionRepository {
	return implementation.NewAuctionSessionRepository(u.getDB())
}

func (u *UnitOfWorkImpl) UserRepository() contract.UserRepository {
	return implementation.NewUserRepository(u.getDB())
}

func (u *UnitOfWorkImpl) LotImageRepository() contract.LotImageRepository {
	return implementation.NewLotImageRepository(u.getDB())
}

func (u *UnitOfWorkImpl) OperationLogRepository() contract.OperationLogRepository {
	return implementation.NewOperationLogRepository(u.getDB())
}
