package report

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DisplayLayout formato de fecha de los reportes, ej. "3/14/2024 (2:05 pm)".
const DisplayLayout = "1/2/2006 (3:04 pm)"

// FormatTimestamp formatea t en loc. nil se mantiene nil (null en JSON, nunca "").
func FormatTimestamp(t *time.Time, loc *time.Location) *string {
	if t == nil {
		return nil
	}
	if loc == nil {
		loc = time.UTC
	}
	s := t.In(loc).Format(DisplayLayout)
	return &s
}

// FormatMoney dos decimales con separador de miles, ej. "1,234.50".
// Se formatea desde el decimal exacto; nunca pasa por float64.
func FormatMoney(d decimal.Decimal) string {
	r := d.Round(2)
	intPart, frac, _ := strings.Cut(r.Abs().StringFixed(2), ".")
	sign := ""
	if r.IsNegative() {
		sign = "-"
	}
	return sign + groupThousands(intPart) + "." + frac
}

// groupThousands agrupa una parte entera sin signo; dentro de int64 usa el printer de x/text.
func groupThousands(digits string) string {
	if n, err := strconv.ParseInt(digits, 10, 64); err == nil {
		return message.NewPrinter(language.English).Sprint(number.Decimal(n))
	}
	var b strings.Builder
	for i, c := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	return b.String()
}
