package usecase

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/kdevnel/device-portal/internal/application/dto"
	"github.com/kdevnel/device-portal/internal/domain"
	"github.com/kdevnel/device-portal/internal/domain/entity"
	"github.com/kdevnel/device-portal/internal/domain/repository"
)

const (
	maxDeviceNameLength  = 100
	maxDeviceModelLength = 50
)

var maxMonthlyPrice = decimal.NewFromInt(10000)

// DeviceUseCase catalog operations for leasable devices.
type DeviceUseCase struct {
	repo repository.DeviceRepository
}

// NewDeviceUseCase builds the use case.
func NewDeviceUseCase(repo repository.DeviceRepository) *DeviceUseCase {
	return &DeviceUseCase{repo: repo}
}

// Create validates and stores a new device. PurchaseDate is set to now.
func (uc *DeviceUseCase) Create(ctx context.Context, in dto.CreateDeviceRequest) domain.Result[*dto.DeviceResponse] {
	name := strings.TrimSpace(in.Name)
	model := strings.TrimSpace(in.Model)
	switch {
	case name == "":
		return domain.Errf[*dto.DeviceResponse](domain.KindInvalidInput, "Device name is required")
	case utf8.RuneCountInString(name) > maxDeviceNameLength:
		return domain.Errf[*dto.DeviceResponse](domain.KindInvalidInput, "Device name cannot exceed %d characters", maxDeviceNameLength)
	case model == "":
		return domain.Errf[*dto.DeviceResponse](domain.KindInvalidInput, "Model is required")
	case utf8.RuneCountInString(model) > maxDeviceModelLength:
		return domain.Errf[*dto.DeviceResponse](domain.KindInvalidInput, "Model cannot exceed %d characters", maxDeviceModelLength)
	case !in.MonthlyPrice.IsPositive():
		return domain.Errf[*dto.DeviceResponse](domain.KindOutOfRange, "Monthly price must be positive")
	case in.MonthlyPrice.GreaterThan(maxMonthlyPrice):
		return domain.Errf[*dto.DeviceResponse](domain.KindOutOfRange, "Monthly price cannot exceed £10,000")
	}

	status := entity.DeviceStatusActive
	if in.Status != 0 {
		status = entity.DeviceStatus(in.Status)
		if !status.IsValid() {
			return domain.Errf[*dto.DeviceResponse](domain.KindInvalidEnum, "Invalid device status")
		}
	}

	existing, err := uc.repo.GetByName(ctx, name)
	if err != nil {
		return domain.Err[*dto.DeviceResponse](domain.AsFailure(err, "Error creating device"))
	}
	if existing != nil {
		return domain.Errf[*dto.DeviceResponse](domain.KindConflict, "Device with this name already exists")
	}

	device := &entity.Device{
		Name:         name,
		Model:        model,
		MonthlyPrice: in.MonthlyPrice.Round(2),
		PurchaseDate: time.Now().UTC(),
		Status:       status,
	}
	if err := uc.repo.Create(ctx, device); err != nil {
		log.Error().Err(err).Str("name", name).Msg("device: create")
		return domain.Err[*dto.DeviceResponse](domain.AsFailure(err, "Error creating device"))
	}
	out := toDeviceResponse(device)
	return domain.Ok(&out)
}

// GetByID returns the device or a nil value when it does not exist.
func (uc *DeviceUseCase) GetByID(ctx context.Context, id int) domain.Result[*dto.DeviceResponse] {
	if id <= 0 {
		return domain.Ok[*dto.DeviceResponse](nil)
	}
	device, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Err[*dto.DeviceResponse](domain.AsFailure(err, "Error retrieving device"))
	}
	if device == nil {
		return domain.Ok[*dto.DeviceResponse](nil)
	}
	out := toDeviceResponse(device)
	return domain.Ok(&out)
}

// List returns one page of devices ordered by id.
func (uc *DeviceUseCase) List(ctx context.Context, pageNumber, pageSize int) domain.Result[*dto.DeviceListResponse] {
	page, f := domain.NewPage(pageNumber, pageSize)
	if f != nil {
		return domain.Err[*dto.DeviceListResponse](f)
	}
	list, total, err := uc.repo.List(ctx, page)
	if err != nil {
		log.Error().Err(err).Msg("device: list")
		return domain.Err[*dto.DeviceListResponse](domain.AsFailure(err, "Error retrieving devices"))
	}
	items := make([]dto.DeviceResponse, 0, len(list))
	for _, d := range list {
		items = append(items, toDeviceResponse(d))
	}
	return domain.Ok(&dto.DeviceListResponse{Total: total, Items: items})
}

// UpdateStatus moves a device to another lifecycle status.
func (uc *DeviceUseCase) UpdateStatus(ctx context.Context, id int, in dto.UpdateDeviceStatusRequest) domain.Result[*dto.DeviceResponse] {
	status := entity.DeviceStatus(in.Status)
	if !status.IsValid() {
		return domain.Errf[*dto.DeviceResponse](domain.KindInvalidEnum, "Invalid device status")
	}
	device, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Err[*dto.DeviceResponse](domain.AsFailure(err, "Error updating device"))
	}
	if device == nil {
		return domain.Errf[*dto.DeviceResponse](domain.KindNotFound, "Device not found")
	}
	if err := uc.repo.UpdateStatus(ctx, id, status); err != nil {
		return domain.Err[*dto.DeviceResponse](domain.AsFailure(err, "Error updating device"))
	}
	device.Status = status
	out := toDeviceResponse(device)
	return domain.Ok(&out)
}

// Delete removes a device. Devices referenced by quotes cannot be deleted.
func (uc *DeviceUseCase) Delete(ctx context.Context, id int) domain.Result[struct{}] {
	if id <= 0 {
		return domain.Errf[struct{}](domain.KindInvalidInput, "Invalid device ID")
	}
	device, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Err[struct{}](domain.AsFailure(err, "Error deleting device"))
	}
	if device == nil {
		return domain.Errf[struct{}](domain.KindNotFound, "Device not found")
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrInUse) {
			return domain.Errf[struct{}](domain.KindConflict, "Device is referenced by existing quotes and cannot be deleted")
		}
		log.Error().Err(err).Int("device_id", id).Msg("device: delete")
		return domain.Err[struct{}](domain.AsFailure(err, "Error deleting device"))
	}
	return domain.Ok(struct{}{})
}

// StatusDistribution counts devices per status. Every status is present.
func (uc *DeviceUseCase) StatusDistribution(ctx context.Context) domain.Result[*dto.DeviceStatusDistributionResponse] {
	counts, err := uc.repo.CountByStatus(ctx)
	if err != nil {
		return domain.Err[*dto.DeviceStatusDistributionResponse](domain.AsFailure(err, "Error calculating status distribution"))
	}
	out := toDeviceDistribution(counts)
	return domain.Ok(&out)
}

func toDeviceDistribution(counts map[entity.DeviceStatus]int) dto.DeviceStatusDistributionResponse {
	return dto.DeviceStatusDistributionResponse{
		Active:      counts[entity.DeviceStatusActive],
		Retired:     counts[entity.DeviceStatusRetired],
		UnderRepair: counts[entity.DeviceStatusUnderRepair],
	}
}

func toDeviceResponse(d *entity.Device) dto.DeviceResponse {
	return dto.DeviceResponse{
		ID:           d.ID,
		Name:         d.Name,
		Model:        d.Model,
		MonthlyPrice: d.MonthlyPrice,
		PurchaseDate: d.PurchaseDate,
		Status:       int(d.Status),
		StatusName:   d.Status.String(),
	}
}
