package contract

import (
	"context"

	"auction-desk-be/internal/entity"
	"auction-desk-be/internal/repository/specification"
)

type AuctionSessionRepository interface {
	Create(ctx context.Context, session *entity.AuctionSession) error
	Update(ctx context.Context, session *entity.AuctionSession) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.AuctionSession, error)
}
