package usecase

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog/log"

	"github.com/kdevnel/device-portal/internal/application/dto"
	"github.com/kdevnel/device-portal/internal/domain"
	"github.com/kdevnel/device-portal/internal/domain/entity"
	"github.com/kdevnel/device-portal/internal/domain/repository"
)

const (
	maxTrackingNumberLength = 50
	maxCustomerNameLength   = 100
	maxDestinationLength    = 200
)

// ShipmentUseCase shipment tracking operations.
type ShipmentUseCase struct {
	repo repository.ShipmentRepository
	tx   repository.ShipmentTxRunner
	now  func() time.Time
}

// NewShipmentUseCase builds the use case. Status updates run through tx.
func NewShipmentUseCase(repo repository.ShipmentRepository, tx repository.ShipmentTxRunner) *ShipmentUseCase {
	return &ShipmentUseCase{
		repo: repo,
		tx:   tx,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// Create registers a shipment in Processing status.
func (uc *ShipmentUseCase) Create(ctx context.Context, in dto.CreateShipmentRequest) domain.Result[*dto.ShipmentResponse] {
	tracking := strings.TrimSpace(in.TrackingNumber)
	customer := strings.TrimSpace(in.CustomerName)
	destination := strings.TrimSpace(in.Destination)
	now := uc.now()
	switch {
	case tracking == "":
		return domain.Errf[*dto.ShipmentResponse](domain.KindInvalidInput, "Tracking number is required")
	case utf8.RuneCountInString(tracking) > maxTrackingNumberLength:
		return domain.Errf[*dto.ShipmentResponse](domain.KindInvalidInput, "Tracking number cannot exceed %d characters", maxTrackingNumberLength)
	case customer == "":
		return domain.Errf[*dto.ShipmentResponse](domain.KindInvalidInput, "Customer name is required")
	case utf8.RuneCountInString(customer) > maxCustomerNameLength:
		return domain.Errf[*dto.ShipmentResponse](domain.KindInvalidInput, "Customer name cannot exceed %d characters", maxCustomerNameLength)
	case destination == "":
		return domain.Errf[*dto.ShipmentResponse](domain.KindInvalidInput, "Destination is required")
	case utf8.RuneCountInString(destination) > maxDestinationLength:
		return domain.Errf[*dto.ShipmentResponse](domain.KindInvalidInput, "Destination cannot exceed %d characters", maxDestinationLength)
	case !in.EstimatedDelivery.After(now):
		return domain.Errf[*dto.ShipmentResponse](domain.KindInvalidInput, "Estimated delivery date must be in the future")
	}

	shipment := &entity.Shipment{
		TrackingNumber:    tracking,
		CustomerName:      customer,
		Status:            entity.ShipmentStatusProcessing,
		EstimatedDelivery: in.EstimatedDelivery.UTC(),
		Destination:       destination,
		CreatedAt:         now,
	}
	if err := uc.repo.Create(ctx, shipment); err != nil {
		f := domain.AsFailure(err, "Error creating shipment")
		if f.Kind == domain.KindConflict {
			f = domain.Fail(domain.KindConflict, "A shipment with this tracking number already exists")
		} else {
			log.Error().Err(err).Str("tracking_number", tracking).Msg("shipment: create")
		}
		return domain.Err[*dto.ShipmentResponse](f)
	}
	out := toShipmentResponse(shipment)
	return domain.Ok(&out)
}

// GetByID returns the shipment or a nil value when it does not exist.
func (uc *ShipmentUseCase) GetByID(ctx context.Context, id int) domain.Result[*dto.ShipmentResponse] {
	if id <= 0 {
		return domain.Ok[*dto.ShipmentResponse](nil)
	}
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Err[*dto.ShipmentResponse](domain.AsFailure(err, "Error retrieving shipment"))
	}
	if s == nil {
		return domain.Ok[*dto.ShipmentResponse](nil)
	}
	out := toShipmentResponse(s)
	return domain.Ok(&out)
}

// Track looks a shipment up by tracking number.
func (uc *ShipmentUseCase) Track(ctx context.Context, trackingNumber string) domain.Result[*dto.ShipmentResponse] {
	trackingNumber = strings.TrimSpace(trackingNumber)
	if trackingNumber == "" {
		return domain.Errf[*dto.ShipmentResponse](domain.KindInvalidInput, "Tracking number is required")
	}
	s, err := uc.repo.GetByTrackingNumber(ctx, trackingNumber)
	if err != nil {
		return domain.Err[*dto.ShipmentResponse](domain.AsFailure(err, "Error retrieving shipment"))
	}
	if s == nil {
		return domain.Ok[*dto.ShipmentResponse](nil)
	}
	out := toShipmentResponse(s)
	return domain.Ok(&out)
}

// List returns one page of shipments, newest first. Out-of-range paging values
// fall back to defaults.
func (uc *ShipmentUseCase) List(ctx context.Context, pageNumber, pageSize int, status *int) domain.Result[*dto.ShipmentListResponse] {
	page := domain.ClampPage(pageNumber, pageSize)
	var filter *entity.ShipmentStatus
	if status != nil {
		s := entity.ShipmentStatus(*status)
		if !s.IsValid() {
			return domain.Errf[*dto.ShipmentListResponse](domain.KindInvalidEnum, "Invalid shipment status")
		}
		filter = &s
	}
	list, total, err := uc.repo.List(ctx, filter, page)
	if err != nil {
		log.Error().Err(err).Msg("shipment: list")
		return domain.Err[*dto.ShipmentListResponse](domain.AsFailure(err, "Error retrieving shipments"))
	}
	items := make([]dto.ShipmentResponse, 0, len(list))
	for _, s := range list {
		items = append(items, toShipmentResponse(s))
	}
	return domain.Ok(&dto.ShipmentListResponse{Total: total, Items: items})
}

// UpdateStatus changes the status of a shipment. Delivered shipments are final;
// moving to Delivered without an actual delivery date stamps the current time.
func (uc *ShipmentUseCase) UpdateStatus(ctx context.Context, id int, in dto.UpdateShipmentStatusRequest) domain.Result[*dto.ShipmentResponse] {
	status := entity.ShipmentStatus(in.Status)
	if !status.IsValid() {
		return domain.Errf[*dto.ShipmentResponse](domain.KindInvalidEnum, "Status must be between 1 and 4")
	}

	var updated *entity.Shipment
	err := uc.tx.RunShipments(ctx, func(shipments repository.ShipmentRepository) error {
		s, err := shipments.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if s == nil {
			return domain.Fail(domain.KindNotFound, "Shipment not found")
		}
		if s.Status == entity.ShipmentStatusDelivered {
			return domain.Fail(domain.KindConflict, "Cannot change status of a delivered shipment")
		}
		actual := in.ActualDelivery
		if status == entity.ShipmentStatusDelivered && actual == nil {
			now := uc.now()
			actual = &now
		}
		if actual != nil {
			utc := actual.UTC()
			actual = &utc
		}
		s.Status = status
		s.ActualDelivery = actual
		if err := shipments.UpdateStatus(ctx, s); err != nil {
			return err
		}
		updated = s
		return nil
	})
	if err != nil {
		return domain.Err[*dto.ShipmentResponse](domain.AsFailure(err, "Error updating shipment"))
	}
	out := toShipmentResponse(updated)
	return domain.Ok(&out)
}

// StatusDistribution counts shipments per status. Every status is present.
func (uc *ShipmentUseCase) StatusDistribution(ctx context.Context) domain.Result[*dto.ShipmentStatusDistributionResponse] {
	counts, err := uc.repo.CountByStatus(ctx)
	if err != nil {
		return domain.Err[*dto.ShipmentStatusDistributionResponse](domain.AsFailure(err, "Error calculating status distribution"))
	}
	out := toShipmentDistribution(counts)
	return domain.Ok(&out)
}

func toShipmentDistribution(counts map[entity.ShipmentStatus]int) dto.ShipmentStatusDistributionResponse {
	return dto.ShipmentStatusDistributionResponse{
		Processing: counts[entity.ShipmentStatusProcessing],
		InTransit:  counts[entity.ShipmentStatusInTransit],
		Delivered:  counts[entity.ShipmentStatusDelivered],
		Delayed:    counts[entity.ShipmentStatusDelayed],
	}
}

func toShipmentResponse(s *entity.Shipment) dto.ShipmentResponse {
	return dto.ShipmentResponse{
		ID:                s.ID,
		TrackingNumber:    s.TrackingNumber,
		CustomerName:      s.CustomerName,
		Status:            int(s.Status),
		StatusName:        s.Status.String(),
		EstimatedDelivery: s.EstimatedDelivery,
		ActualDelivery:    s.ActualDelivery,
		Destination:       s.Destination,
		CreatedAt:         s.CreatedAt,
	}
}
