package receitaws

import (
	"strconv"

	"radarcnpj/cmd/internal/utils"
)

// Result is the cadastral snapshot the rest of the service works with.
type Result struct {
	LegalName         string
	TradeName         string
	Municipality      string
	StateCode         string
	FoundingDate      string
	TaxRegime         string
	SimplesOptionDate string
	ShareCapital      string
}

type companyResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	LegalName string `json:"nome"`
	TradeName string `json:"fantasia"`
	City      string `json:"municipio"`
	State     string `json:"uf"`
	Founded   string `json:"abertura"`

	Simples *simplesInfo `json:"simples"`

	// The API has sent this both as a number and as a string over time.
	ShareCapital any `json:"capital_social"`
}

type simplesInfo struct {
	OptedIn    *bool  `json:"optante"`
	OptionDate string `json:"data_opcao"`
}

func (c *companyResponse) toResult() *Result {
	regime := ""
	optionDate := "N/A"

	if c.Simples != nil && c.Simples.OptedIn != nil {
		if *c.Simples.OptedIn {
			regime = "Simples Nacional"
			optionDate = c.Simples.OptionDate
		} else {
			regime = "Regime Normal (Lucro Real ou Presumido)"
			optionDate = "N/A"
		}
	}

	return &Result{
		LegalName:         c.LegalName,
		TradeName:         c.TradeName,
		Municipality:      c.City,
		StateCode:         c.State,
		FoundingDate:      c.Founded,
		TaxRegime:         regime,
		SimplesOptionDate: optionDate,
		ShareCapital:      utils.FormatShareCapital(rawToString(c.ShareCapital)),
	}
}

func rawToString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return ""
	}
}
