package quote

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/kdevnel/device-portal/internal/domain"
	"github.com/kdevnel/device-portal/internal/domain/entity"
	"github.com/kdevnel/device-portal/internal/domain/repository"
)

const (
	MaxCustomerNameLength = 100
	MinDurationMonths     = 1
	MaxDurationMonths     = 60
)

// Input identifiers and choices a quote is calculated from.
type Input struct {
	DeviceID       int
	CustomerName   string
	DurationMonths int
	SupportTier    entity.SupportTier
}

// Validator checks quote input and device availability. Only the first failing
// check is reported.
type Validator struct {
	devices repository.DeviceRepository
}

// NewValidator builds the validator.
func NewValidator(devices repository.DeviceRepository) *Validator {
	return &Validator{devices: devices}
}

// Validate runs the input checks, then loads the device and checks it is leasable.
// Input checks come first so an invalid request never reaches storage.
func (v *Validator) Validate(ctx context.Context, in Input) (*entity.Device, *domain.Failure) {
	if f := CheckInput(in); f != nil {
		return nil, f
	}
	return v.CheckDevice(ctx, in.DeviceID)
}

// CheckInput validates the request fields that need no storage access.
func CheckInput(in Input) *domain.Failure {
	if in.DeviceID <= 0 {
		return domain.Fail(domain.KindInvalidInput, "Device ID must be a positive number")
	}
	name := strings.TrimSpace(in.CustomerName)
	if name == "" {
		return domain.Fail(domain.KindInvalidInput, "Customer name is required")
	}
	if utf8.RuneCountInString(name) > MaxCustomerNameLength {
		return domain.Fail(domain.KindInvalidInput, "Customer name cannot exceed %d characters", MaxCustomerNameLength)
	}
	if in.DurationMonths < MinDurationMonths || in.DurationMonths > MaxDurationMonths {
		return domain.Fail(domain.KindOutOfRange, "Duration must be between %d and %d months", MinDurationMonths, MaxDurationMonths)
	}
	if !in.SupportTier.IsValid() {
		return domain.Fail(domain.KindInvalidEnum, "Invalid support tier")
	}
	return nil
}

// CheckDevice loads the device and confirms it exists and is Active.
func (v *Validator) CheckDevice(ctx context.Context, deviceID int) (*entity.Device, *domain.Failure) {
	device, err := v.devices.GetByID(ctx, deviceID)
	if err != nil {
		return nil, domain.AsFailure(err, "Failed to load device")
	}
	if device == nil {
		return nil, domain.Fail(domain.KindNotFound, "Device not found")
	}
	if !device.IsLeasable() {
		return nil, domain.Fail(domain.KindUnavailable, "Device is not available for leasing")
	}
	return device, nil
}
