// Package quote contains the quote pricing workflow: validation, calculation and
// persistence with recomputation on save.
package quote

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/kdevnel/device-portal/internal/application/dto"
	"github.com/kdevnel/device-portal/internal/domain"
	"github.com/kdevnel/device-portal/internal/domain/entity"
	"github.com/kdevnel/device-portal/internal/domain/pricing"
	"github.com/kdevnel/device-portal/internal/domain/repository"
)

// UseCase orchestrates Validator, pricing.Calculate and QuoteRepository.
// It keeps no mutable state between calls.
type UseCase struct {
	quotes    repository.QuoteRepository
	validator *Validator
	now       func() time.Time
}

// NewUseCase builds the quote workflow.
func NewUseCase(quotes repository.QuoteRepository, devices repository.DeviceRepository) *UseCase {
	return &UseCase{
		quotes:    quotes,
		validator: NewValidator(devices),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the time source (tests).
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// Calculate prices a quote without persisting it.
func (uc *UseCase) Calculate(ctx context.Context, in dto.CalculateQuoteRequest) domain.Result[*dto.QuoteCalculationResponse] {
	q, f := uc.calculate(ctx, Input{
		DeviceID:       in.DeviceID,
		CustomerName:   in.CustomerName,
		DurationMonths: in.DurationMonths,
		SupportTier:    entity.SupportTier(in.SupportTier),
	})
	if f != nil {
		return domain.Err[*dto.QuoteCalculationResponse](f)
	}
	out := toCalculationResponse(q)
	return domain.Ok(&out)
}

// Create re-runs the calculation from the caller's identifiers, overwrites every
// monetary field the caller sent, persists the quote and re-reads it with its device.
// Nothing is written unless validation and calculation succeed.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateQuoteRequest) domain.Result[*dto.QuoteResponse] {
	quote := fromCreateRequest(in)

	calc, f := uc.calculate(ctx, Input{
		DeviceID:       quote.DeviceID,
		CustomerName:   quote.CustomerName,
		DurationMonths: quote.DurationMonths,
		SupportTier:    quote.SupportTier,
	})
	if f != nil {
		return domain.Err[*dto.QuoteResponse](f)
	}

	quote.CustomerName = calc.CustomerName
	quote.MonthlyRate = calc.MonthlyRate
	quote.SupportRate = calc.SupportRate
	quote.TotalMonthlyCost = calc.TotalMonthlyCost
	quote.TotalCost = calc.TotalCost
	quote.CreatedAt = calc.CreatedAt
	if quote.ValidUntil.IsZero() {
		quote.ValidUntil = calc.ValidUntil
	}

	if err := uc.quotes.Create(ctx, quote); err != nil {
		log.Error().Err(err).Int("device_id", quote.DeviceID).Msg("quote: persist")
		return domain.Err[*dto.QuoteResponse](domain.AsFailure(err, "Failed to create quote"))
	}

	saved, err := uc.quotes.GetByID(ctx, quote.ID)
	if err != nil {
		log.Error().Err(err).Int("quote_id", quote.ID).Msg("quote: reload after create")
		return domain.Err[*dto.QuoteResponse](domain.AsFailure(err, "Failed to create quote"))
	}
	if saved == nil {
		return domain.Errf[*dto.QuoteResponse](domain.KindStorageFailure, "Failed to create quote: quote %d not found after save", quote.ID)
	}
	out := toQuoteResponse(saved)
	return domain.Ok(&out)
}

// GetByID returns the quote with its device, or a nil value when it does not exist.
func (uc *UseCase) GetByID(ctx context.Context, id int) domain.Result[*dto.QuoteResponse] {
	if id <= 0 {
		return domain.Ok[*dto.QuoteResponse](nil)
	}
	q, err := uc.quotes.GetByID(ctx, id)
	if err != nil {
		log.Error().Err(err).Int("quote_id", id).Msg("quote: get")
		return domain.Err[*dto.QuoteResponse](domain.AsFailure(err, "Failed to retrieve quote"))
	}
	if q == nil {
		return domain.Ok[*dto.QuoteResponse](nil)
	}
	out := toQuoteResponse(q)
	return domain.Ok(&out)
}

// List returns one page of quotes, newest first, optionally filtered by tier.
// Pagination is validated before storage is touched.
func (uc *UseCase) List(ctx context.Context, pageNumber, pageSize int, tier *int) domain.Result[*dto.QuoteListResponse] {
	page, f := domain.NewPage(pageNumber, pageSize)
	if f != nil {
		return domain.Err[*dto.QuoteListResponse](f)
	}
	var filter repository.QuoteFilter
	if tier != nil {
		t := entity.SupportTier(*tier)
		if !t.IsValid() {
			return domain.Errf[*dto.QuoteListResponse](domain.KindInvalidEnum, "Invalid support tier")
		}
		filter.SupportTier = &t
	}

	list, total, err := uc.quotes.List(ctx, filter, page)
	if err != nil {
		log.Error().Err(err).Msg("quote: list")
		return domain.Err[*dto.QuoteListResponse](domain.AsFailure(err, "Failed to retrieve quotes"))
	}
	items := make([]dto.QuoteResponse, 0, len(list))
	for _, q := range list {
		items = append(items, toQuoteResponse(q))
	}
	return domain.Ok(&dto.QuoteListResponse{Total: total, Items: items})
}

// TierDistribution counts persisted quotes per tier. Every tier is present.
func (uc *UseCase) TierDistribution(ctx context.Context) domain.Result[*dto.TierDistributionResponse] {
	counts, err := uc.quotes.CountByTier(ctx)
	if err != nil {
		log.Error().Err(err).Msg("quote: tier distribution")
		return domain.Err[*dto.TierDistributionResponse](domain.AsFailure(err, "Failed to get support tier distribution"))
	}
	return domain.Ok(&dto.TierDistributionResponse{
		Basic:    counts[entity.SupportTierBasic],
		Standard: counts[entity.SupportTierStandard],
		Premium:  counts[entity.SupportTierPremium],
	})
}

func (uc *UseCase) calculate(ctx context.Context, in Input) (*entity.Quote, *domain.Failure) {
	device, f := uc.validator.Validate(ctx, in)
	if f != nil {
		return nil, f
	}
	b := pricing.Calculate(device.MonthlyPrice, in.SupportTier, in.DurationMonths)
	now := uc.now()
	return &entity.Quote{
		DeviceID:         device.ID,
		Device:           device,
		CustomerName:     strings.TrimSpace(in.CustomerName),
		DurationMonths:   in.DurationMonths,
		SupportTier:      in.SupportTier,
		MonthlyRate:      b.MonthlyRate,
		SupportRate:      b.SupportRate,
		TotalMonthlyCost: b.TotalMonthlyCost,
		TotalCost:        b.TotalCost,
		CreatedAt:        now,
		ValidUntil:       now.Add(entity.QuoteValidity),
	}, nil
}
