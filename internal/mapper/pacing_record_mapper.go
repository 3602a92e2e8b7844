package mapper

import (
	"auction-desk-be/internal/entity"
	"auction-desk-be/internal/model"
)

type PacingRecordMapper struct{}

func NewPacingRecordMapper() *PacingRecordMapper {
	return &PacingRecordMapper{}
}

func (m *PacingRecordMapper) ToEntity(r *model.PacingRecord) *entity.PacingRecord {
	if r == nil {
		return nil
	}
	return &entity.PacingRecord{
		Id:              r.Id,
		LotPosition:     r.LotPosition,
		StartTime:       r.StartTime,
		EndTime:         r.EndTime,
		DurationSeconds: r.DurationSeconds,
	}
}

func (m *PacingRecordMapper) ToModel(r *entity.PacingRecord) *model.PacingRecord {
	if r == nil {
		return nil
	}
	return &model.PacingRecord{
		Id:              r.Id,
		LotPosition:     r.LotPosition,
		StartTime:       r.StartTime,
		EndTime:         r.EndTime,
		DurationSeconds: r.DurationSeconds,
	}
}

func (m *PacingRecordMapper) ToEntities(records []*model.PacingRecord) []*entity.PacingRecord {
	entities := make([]*entity.PacingRecord, len(records))
	for i, r := range records {
		entities[i] = m.ToEntity(r)
	}
	return entities
}
