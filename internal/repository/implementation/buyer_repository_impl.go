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

type BuyerRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.BuyerMapper
}

func NewBuyerRepository(db *gorm.DB) contract.BuyerRepository {
	return &BuyerRepositoryImpl{
		db:     db,
		mapper: mapper.NewBuyerMapper(),
	}
}

func (r *BuyerRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *BuyerRepositoryImpl) Create(ctx context.Context, buyer *entity.Buyer) error {
	m := r.mapper.ToModel(buyer)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*buyer = *r.mapper.ToEntity(m)
	return nil
}

func (r *BuyerRepositoryImpl) Update(ctx context.Context, buyer *entity.Buyer) error {
	m := r.mapper.ToModel(buyer)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*buyer = *r.mapper.ToEntity(m)
	return nil
}

func (r *BuyerRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Buyer{}, "id = ?", id).Error
}

func (r *BuyerRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Buyer, error) {
	var m model.Buyer
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *BuyerRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Buyer, error) {
	var models []*model.Buyer
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *BuyerRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Buyer{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
