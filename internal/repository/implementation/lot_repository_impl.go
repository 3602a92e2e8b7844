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

type LotRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.LotMapper
}

func NewLotRepository(db *gorm.DB) contract.LotRepository {
	return &LotRepositoryImpl{
		db:     db,
		mapper: mapper.NewLotMapper(),
	}
}

func (r *LotRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *LotRepositoryImpl) Create(ctx context.Context, lot *entity.Lot) error {
	m := r.mapper.ToModel(lot)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*lot = *r.mapper.ToEntity(m)
	return nil
}

func (r *LotRepositoryImpl) Update(ctx context.Context, lot *entity.Lot) error {
	m := r.mapper.ToModel(lot)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*lot = *r.mapper.ToEntity(m)
	return nil
}

func (r *LotRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Lot{}, "id = ?", id).Error
}

func (r *LotRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Lot, error) {
	var m model.Lot
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *LotRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Lot, error) {
	var models []*model.Lot
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *LotRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Lot{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
