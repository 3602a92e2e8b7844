package implementation

import (
	"context"
	"errors"

	"auction-desk-be/internal/entity"
	"auction-desk-be/internal/mapper"
	"auction-desk-be/internal/model"
	"auction-desk-be/internal/repository/contract"
	"auction-desk-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BidEntryRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.BidEntryMapper
}

func NewBidEntryRepository(db *gorm.DB) contract.BidEntryRepository {
	return &BidEntryRepositoryImpl{
		db:     db,
		mapper: mapper.NewBidEntryMapper(),
	}
}

func (r *BidEntryRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *BidEntryRepositoryImpl) Create(ctx context.Context, entry *entity.BidEntry) error {
	m := r.mapper.ToModel(entry)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*entry = *r.mapper.ToEntity(m)
	return nil
}

func (r *BidEntryRepositoryImpl) Update(ctx context.Context, entry *entity.BidEntry) error {
	m := r.mapper.ToModel(entry)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*entry = *r.mapper.ToEntity(m)
	return nil
}

func (r *BidEntryRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.BidEntry{}, "id = ?", id).Error
}

func (r *BidEntryRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.BidEntry, error) {
	var m model.BidEntry
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *BidEntryRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.BidEntry, error) {
	var models []*model.BidEntry
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *BidEntryRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.BidEntry{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
