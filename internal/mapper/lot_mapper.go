package mapper

import (
	"auction-desk-be/internal/entity"
	"auction-desk-be/internal/model"
)

type LotMapper struct{}

func NewLotMapper() *LotMapper {
	return &LotMapper{}
}

func (m *LotMapper) ToEntity(l *model.Lot) *entity.Lot {
	if l == nil {
		return nil
	}
	return &entity.Lot{
		Id:          l.Id,
		LotNumber:   l.LotNumber,
		StudentName: l.StudentName,
		Department:  l.Department,
		Position:    l.Position,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
}

func (m *LotMapper) ToModel(l *entity.Lot) *model.Lot {
	if l == nil {
		return nil
	}
	return &model.Lot{
		Id:          l.Id,
		LotNumber:   l.LotNumber,
		StudentName: l.StudentName,
		Department:  l.Department,
		Position:    l.Position,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
}

func (m *LotMapper) ToEntities(lots []*model.Lot) []*entity.Lot {
	entities := make([]*entity.Lot, len(lots))
	for i, l := range lots {
		entities[i] = m.ToEntity(l)
	}
	return entities
}
