package mapper

import (
	"auction-desk-be/internal/entity"
	"auction-desk-be/internal/model"
)

type BuyerMapper struct{}

func NewBuyerMapper() *BuyerMapper {
	return &BuyerMapper{}
}

func (m *BuyerMapper) ToEntity(b *model.Buyer) *entity.Buyer {
	if b == nil {
		return nil
	}
	return &entity.Buyer{
		Id:         b.Id,
		Identifier: b.Identifier,
		Name:       b.Name,
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
}

func (m *BuyerMapper) ToModel(b *entity.Buyer) *model.Buyer {
	if b == nil {
		return nil
	}
	return &model.Buyer{
		Id:         b.Id,
		Identifier: b.Identifier,
		Name:       b.Name,
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
}

func (m *BuyerMapper) ToEntities(buyers []*model.Buyer) []*entity.Buyer {
	entities := make([]*entity.Buyer, len(buyers))
	for i, b := range buyers {
		entities[i] = m.ToEntity(b)
	}
	return entities
}
