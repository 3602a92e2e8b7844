package mapper

import (
	"auction-desk-be/internal/entity"
	"auction-desk-be/internal/model"
)

type AuctionSessionMapper struct{}

func NewAuctionSessionMapper() *AuctionSessionMapper {
	return &AuctionSessionMapper{}
}

func (m *AuctionSessionMapper) ToEntity(s *model.AuctionSession) *entity.AuctionSession {
	if s == nil {
		return nil
	}
	return &entity.AuctionSession{
		Id:              s.Id,
		CurrentLotIndex: s.CurrentLotIndex,
		IsActive:        s.IsActive,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

func (m *AuctionSessionMapper) ToModel(s *entity.AuctionSession) *model.AuctionSession {
	if s == nil {
		return nil
	}
	return &model.AuctionSession{
		Id:              s.Id,
		CurrentLotIndex: s.CurrentLotIndex,
		IsActive:        s.IsActive,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}
