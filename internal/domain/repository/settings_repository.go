package repository

import (
	"context"

	"github.com/pascallapointe/HairBill-sub000/internal/domain/entity"
)

// SettingsRepository defines the interface for shop settings data access.
// The settings table holds a single row.
type SettingsRepository interface {
	Get(ctx context.Context) (*entity.ShopSettings, error)
	Create(ctx context.Context, settings *entity.ShopSettings) error
	Update(ctx context.Context, settings *entity.ShopSettings) error
}
