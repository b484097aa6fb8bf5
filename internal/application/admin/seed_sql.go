package admin

import (
	"fmt"
	"io"
	"strings"
)

// WriteSeedSQL writes an idempotent SQL script inserting SampleDevices, for
// databases where portalctl cannot connect directly.
func WriteSeedSQL(w io.Writer) error {
	var b strings.Builder
	b.WriteString("-- Sample device catalog\n")
	b.WriteString("-- Generated by portalctl seed --sql\n\n")
	b.WriteString("INSERT INTO devices (name, model, monthly_price, purchase_date, status) VALUES\n")
	for i, s := range SampleDevices {
		sep := ","
		if i == len(SampleDevices)-1 {
			sep = ""
		}
		fmt.Fprintf(&b, "  ('%s', '%s', %s, '%s', %d)%s\n",
			escapeSQL(s.Name), escapeSQL(s.Model), s.MonthlyPrice, s.PurchaseDate, int(s.Status), sep)
	}
	b.WriteString("ON CONFLICT DO NOTHING;\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
