// Package pdf renders printable lease quotes with Maroto v2.
//
// A4 page layout:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: portal name          │  Quote N° + issue date       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CUSTOMER                     │  DEVICE (name, model)        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLE: Concept | Detail | Amount                            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALS: monthly total / lease total                         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: validity date                                       │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"errors"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/kdevnel/device-portal/internal/application/quote"
	"github.com/kdevnel/device-portal/internal/domain/entity"
	"github.com/kdevnel/device-portal/internal/domain/pricing"
	"github.com/kdevnel/device-portal/pkg/money"
)

var _ quote.PDFGenerator = (*MarotoQuoteGenerator)(nil)

const dateLayout = "02 Jan 2006"

// ── Palette ───────────────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 30, Green: 64, Blue: 175}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoQuoteGenerator implements quote.PDFGenerator.
type MarotoQuoteGenerator struct {
	issuer string
}

// NewMarotoQuoteGenerator builds the generator; issuer is printed in the header.
func NewMarotoQuoteGenerator(issuer string) *MarotoQuoteGenerator {
	return &MarotoQuoteGenerator{issuer: issuer}
}

// GenerateQuotePDF renders q. The device must be attached.
func (g *MarotoQuoteGenerator) GenerateQuotePDF(_ context.Context, q *entity.Quote) ([]byte, error) {
	if q == nil || q.Device == nil {
		return nil, errors.New("pdf: quote without device")
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(fmt.Sprintf("Lease quote %06d", q.ID), true).
		WithAuthor(g.issuer, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(q))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(partiesRow(q))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(pricingRows(q)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(q))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(q))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate document: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Sections ──────────────────────────────────────────────────────────────────

func (g *MarotoQuoteGenerator) headerRow(q *entity.Quote) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.issuer, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New("Device leasing", props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("LEASE QUOTE", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1}),
			text.New(fmt.Sprintf("N° %06d", q.ID), props.Text{Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7}),
			text.New("Issued: "+q.CreatedAt.Format(dateLayout), props.Text{Size: 8, Align: align.Right, Top: 14, Color: colorGray}),
		),
	)
}

func partiesRow(q *entity.Quote) core.Row {
	return row.New(16).Add(
		col.New(6).Add(
			text.New("CUSTOMER", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(q.CustomerName, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
		),
		col.New(6).Add(
			text.New("DEVICE", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(q.Device.Name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New("Model: "+q.Device.Model, props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Concept", 5, align.Left),
		h("Detail", 4, align.Left),
		h("Amount", 3, align.Right),
	)
}

func pricingRows(q *entity.Quote) []core.Row {
	item := func(concept, detail, amount string) core.Row {
		return row.New(7).Add(
			col.New(5).Add(text.New(concept, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(4).Add(text.New(detail, props.Text{Size: 8, Top: 1, Left: 1, Color: colorGray})),
			col.New(3).Add(text.New(amount, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		)
	}
	return []core.Row{
		item("Monthly device rate", q.Device.Name, money.FormatGBP(q.MonthlyRate)),
		item("Support ("+q.SupportTier.String()+")", money.FormatPercent(pricing.Multiplier(q.SupportTier))+" of rate", money.FormatGBP(q.SupportRate)),
		item("Lease duration", fmt.Sprintf("%d months", q.DurationMonths), ""),
	}
}

func totalsRow(q *entity.Quote) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	grand := func(s string, right float64) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: right, Top: 6})
	}
	return row.New(16).Add(
		col.New(5),
		col.New(4).Add(
			label("Total per month:"),
			grand("LEASE TOTAL:", 2),
		),
		col.New(3).Add(
			text.New(money.FormatGBP(q.TotalMonthlyCost), props.Text{Size: 9, Align: align.Right, Right: 1}),
			grand(money.FormatGBP(q.TotalCost), 1),
		),
	)
}

func footerRow(q *entity.Quote) core.Row {
	return row.New(10).Add(col.New(12).Add(
		text.New(
			"This quote is valid until "+q.ValidUntil.Format(dateLayout)+
				". Prices are fixed at the device rate in force when the quote was issued.",
			props.Text{Size: 7, Color: colorGray, Top: 2},
		),
	))
}
