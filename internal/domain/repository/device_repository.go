package repository

import (
	"context"

	"github.com/kdevnel/device-portal/internal/domain"
	"github.com/kdevnel/device-portal/internal/domain/entity"
)

// DeviceRepository persistence port for the device catalog.
type DeviceRepository interface {
	Create(ctx context.Context, device *entity.Device) error
	// GetByID returns (nil, nil) when the device does not exist.
	GetByID(ctx context.Context, id int) (*entity.Device, error)
	// GetByName matches case-insensitively.
	GetByName(ctx context.Context, name string) (*entity.Device, error)
	List(ctx context.Context, page domain.Page) ([]*entity.Device, int, error)
	UpdateStatus(ctx context.Context, id int, status entity.DeviceStatus) error
	// Delete fails with domain.ErrInUse while quotes reference the device.
	Delete(ctx context.Context, id int) error
	CountByStatus(ctx context.Context) (map[entity.DeviceStatus]int, error)
	// DeleteAll removes every device (admin CLI only; quotes must be removed first).
	DeleteAll(ctx context.Context) (int, error)
}
