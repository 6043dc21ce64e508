package domain

import (
	"context"

	"github.com/google/uuid"
)

type BuyerRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Buyer, error)
	GetByEmail(ctx context.Context, email string) (*Buyer, error)
	Create(ctx context.Context, buyer *Buyer) error
}
