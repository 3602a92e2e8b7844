package implementation

import (
	"context"
	"errors"

	"auction-desk-be/internal/entity"
	"auction-desk-be/internal/mapper"
	"auction-desk-be/internal/model"
	"auction-desk-be/internal/repository/contract"
	"auction-desk-be/internal/repository/specification"

	"gorm.io/gorm"
)

type AuctionSessionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.AuctionSessionMapper
}

func NewAuctionSessionRepository(db *gorm.DB) contract.AuctionSessionRepository {
	return &AuctionSessionRepositoryImpl{
		db:     db,
		mapper: mapper.NewAuctionSessionMapper(),
	}
}

func (r *AuctionSessionRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *AuctionSessionRepositoryImpl) Create(ctx context.Context, session *entity.AuctionSession) error {
	m := r.mapper.ToModel(session)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*session = *r.mapper.ToEntity(m)
	return nil
}

func (r *AuctionSessionRepositoryImpl) Update(ctx context.Context, session *entity.AuctionSession) error {
	m := r.mapper.ToModel(session)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*session = *r.mapper.ToEntity(m)
	return nil
}

func (r *AuctionSessionRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.AuctionSession, error) {
	var m model.AuctionSession
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}
