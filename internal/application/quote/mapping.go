package quote

import (
	"strings"

	"github.com/kdevnel/device-portal/internal/application/dto"
	"github.com/kdevnel/device-portal/internal/domain/entity"
)

func fromCreateRequest(in dto.CreateQuoteRequest) *entity.Quote {
	q := &entity.Quote{
		DeviceID:       in.DeviceID,
		CustomerName:   strings.TrimSpace(in.CustomerName),
		DurationMonths: in.DurationMonths,
		SupportTier:    entity.SupportTier(in.SupportTier),
	}
	if in.ValidUntil != nil {
		q.ValidUntil = in.ValidUntil.UTC()
	}
	return q
}

func toCalculationResponse(q *entity.Quote) dto.QuoteCalculationResponse {
	out := dto.QuoteCalculationResponse{
		DeviceID:         q.DeviceID,
		CustomerName:     q.CustomerName,
		DurationMonths:   q.DurationMonths,
		SupportTier:      int(q.SupportTier),
		SupportTierName:  q.SupportTier.String(),
		MonthlyRate:      q.MonthlyRate,
		SupportRate:      q.SupportRate,
		TotalMonthlyCost: q.TotalMonthlyCost,
		TotalCost:        q.TotalCost,
		ValidUntil:       q.ValidUntil,
	}
	if q.Device != nil {
		out.DeviceName = q.Device.Name
		out.DeviceModel = q.Device.Model
	}
	return out
}

func toQuoteResponse(q *entity.Quote) dto.QuoteResponse {
	return dto.QuoteResponse{
		ID:                       q.ID,
		QuoteCalculationResponse: toCalculationResponse(q),
		CreatedAt:                q.CreatedAt,
	}
}
