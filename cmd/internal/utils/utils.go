package utils

import (
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const CNPJLength = 14

var ptBR = message.NewPrinter(language.BrazilianPortuguese)

// NormalizeCNPJ strips every non-digit character. Idempotent.
func NormalizeCNPJ(v string) string {
	var b strings.Builder
	b.Grow(CNPJLength)
	for _, ch := range v {
		if ch >= '0' && ch <= '9' {
			b.WriteRune(ch)
		}
	}
	return b.String()
}

func IsCNPJLengthValid(cnpj string) bool {
	return len(cnpj) == CNPJLength
}

// FormatShareCapital renders a raw numeric string as Brazilian currency
// ("R$ 1.234,56"). The upstream sends either comma or dot as the decimal
// separator. Unparseable values are passed through with the prefix only.
func FormatShareCapital(raw string) string {
	if raw == "" {
		return ""
	}

	num, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
	if err != nil {
		return "R$ " + raw
	}
	return ptBR.Sprintf("R$ %.2f", num)
}

func FormatEpoch(millis int64) string {
	return time.UnixMilli(millis).
		UTC().
		Format(time.RFC3339)
}

// Today returns the current calendar date as YYYY-MM-DD.
func Today() string {
	return time.Now().UTC().Format(time.DateOnly)
}

// DaysAgo returns the calendar date 'days' days before today, as YYYY-MM-DD.
// ISO dates compare correctly as plain strings.
func DaysAgo(days int) string {
	return time.Now().UTC().AddDate(0, 0, -days).Format(time.DateOnly)
}
