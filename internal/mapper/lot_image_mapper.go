package mapper

import (
	"auction-desk-be/internal/entity"
	"auction-desk-be/internal/model"
)

type LotImageMapper struct{}

func NewLotImageMapper() *LotImageMapper {
	return &LotImageMapper{}
}

func (m *LotImageMapper) ToEntity(img *model.LotImage) *entity.LotImage {
	if img == nil {
		return nil
	}
	return &entity.LotImage{
		Id:        img.Id,
		LotId:     img.LotId,
		Filename:  img.Filename,
		URL:       img.URL,
		CreatedAt: img.CreatedAt,
	}
}

func (m *LotImageMapper) ToModel(img *entity.LotImage) *model.LotImage {
	if img == nil {
		return nil
	}
	return &model.LotImage{
		Id:        img.Id,
		LotId:     img.LotId,
		Filename:  img.Filename,
		URL:       img.URL,
		CreatedAt: img.CreatedAt,
	}
}
