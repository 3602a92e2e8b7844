package mapper

import (
	"encoding/json"

	"auction-desk-be/internal/entity"
	"auction-desk-be/internal/model"

	"gorm.io/datatypes"
)

type OperationLogMapper struct{}

func NewOperationLogMapper() *OperationLogMapper {
	return &OperationLogMapper{}
}

func (m *OperationLogMapper) ToEntity(l *model.OperationLog) *entity.OperationLog {
	if l == nil {
		return nil
	}

	var details map[string]interface{}
	if len(l.Details) > 0 {
		_ = json.Unmarshal(l.Details, &details)
	}

	return &entity.OperationLog{
		Id:        l.Id,
		Kind:      l.Kind,
		Message:   l.Message,
		Details:   details,
		CreatedAt: l.CreatedAt,
	}
}

func (m *OperationLogMapper) ToModel(l *entity.OperationLog) *model.OperationLog {
	if l == nil {
		return nil
	}

	var details datatypes.JSON
	if l.Details != nil {
		raw, _ := json.Marshal(l.Details)
		details = datatypes.JSON(raw)
	}

	return &model.OperationLog{
		Id:        l.Id,
		Kind:      l.Kind,
		Message:   l.Message,
		Details:   details,
		CreatedAt: l.CreatedAt,
	}
}

func (m *OperationLogMapper) ToEntities(logs []*model.OperationLog) []*entity.OperationLog {
	entities := make([]*entity.OperationLog, len(logs))
	for i, l := range logs {
		entities[i] = m.ToEntity(l)
	}
	return entities
}
