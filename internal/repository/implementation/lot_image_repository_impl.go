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

type LotImageRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.LotImageMapper
}

func NewLotImageRepository(db *gorm.DB) contract.LotImageRepository {
	return &LotImageRepositoryImpl{
		db:     db,
		mapper: mapper.NewLotImageMapper(),
	}
}

func (r *LotImageRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *LotImageRepositoryImpl) Create(ctx context.Context, image *entity.LotImage) error {
	m := r.mapper.ToModel(image)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*image = *r.mapper.ToEntity(m)
	return nil
}

func (r *LotImageRepositoryImpl) Update(ctx context.Context, image *entity.LotImage) error {
	m := r.mapper.ToModel(image)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*image = *r.mapper.ToEntity(m)
	return nil
}

func (r *LotImageRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.LotImage{}, "id = ?", id).Error
}

func (r *LotImageRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.LotImage, error) {
	var m model.LotImage
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *LotImageRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.LotImage, error) {
	var models []*model.LotImage
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	entities := make([]*entity.LotImage, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}
