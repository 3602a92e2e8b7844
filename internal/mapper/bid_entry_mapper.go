package mapper

import (
	"auction-desk-be/internal/entity"
	"auction-desk-be/internal/model"
)

type BidEntryMapper struct{}

func NewBidEntryMapper() *BidEntryMapper {
	return &BidEntryMapper{}
}

func (m *BidEntryMapper) ToEntity(b *model.BidEntry) *entity.BidEntry {
	if b == nil {
		return nil
	}
	return &entity.BidEntry{
		Id:          b.Id,
		LotId:       b.LotId,
		BuyerId:     b.BuyerId,
		LotPosition: b.LotPosition,
		CreatedAt:   b.CreatedAt,
	}
}

func (m *BidEntryMapper) ToModel(b *entity.BidEntry) *model.BidEntry {
	if b == nil {
		return nil
	}
	return &model.BidEntry{
		Id:          b.Id,
		LotId:       b.LotId,
		BuyerId:     b.BuyerId,
		LotPosition: b.LotPosition,
		CreatedAt:   b.CreatedAt,
	}
}

func (m *BidEntryMapper) ToEntities(entries []*model.BidEntry) []*entity.BidEntry {
	entities := make([]*entity.BidEntry, len(entries))
	for i, b := range entries {
		entities[i] = m.ToEntity(b)
	}
	return entities
}
