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

type PacingRecordRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PacingRecordMapper
}

func NewPacingRecordRepository(db *gorm.DB) contract.PacingRecordRepository {
	return &PacingRecordRepositoryImpl{
		db:     db,
		mapper: mapper.NewPacingRecordMapper(),
	}
}

func (r *PacingRecordRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *PacingRecordRepositoryImpl) Create(ctx context.Context, record *entity.PacingRecord) error {
	m := r.mapper.ToModel(record)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*record = *r.mapper.ToEntity(m)
	return nil
}

func (r *PacingRecordRepositoryImpl) Update(ctx context.Context, record *entity.PacingRecord) error {
	m := r.mapper.ToModel(record)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*record = *r.mapper.ToEntity(m)
	return nil
}

func (r *PacingRecordRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.PacingRecord, error) {
	var m model.PacingRecord
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *PacingRecordRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.PacingRecord, error) {
	var models []*model.PacingRecord
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}
