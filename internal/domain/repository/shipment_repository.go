package repository

import (
	"context"

	"github.com/kdevnel/device-portal/internal/domain"
	"github.com/kdevnel/device-portal/internal/domain/entity"
)

// ShipmentRepository persistence port for shipments.
type ShipmentRepository interface {
	// Create fails with domain.ErrDuplicate when the tracking number exists.
	Create(ctx context.Context, shipment *entity.Shipment) error
	GetByID(ctx context.Context, id int) (*entity.Shipment, error)
	// GetByIDForUpdate locks the row until the surrounding transaction ends.
	GetByIDForUpdate(ctx context.Context, id int) (*entity.Shipment, error)
	GetByTrackingNumber(ctx context.Context, trackingNumber string) (*entity.Shipment, error)
	List(ctx context.Context, status *entity.ShipmentStatus, page domain.Page) ([]*entity.Shipment, int, error)
	UpdateStatus(ctx context.Context, shipment *entity.Shipment) error
	CountByStatus(ctx context.Context) (map[entity.ShipmentStatus]int, error)
}

// ShipmentTxRunner runs fn with a repository bound to one transaction.
type ShipmentTxRunner interface {
	RunShipments(ctx context.Context, fn func(shipments ShipmentRepository) error) error
}
