package contract

// ConsultationResponse carries the merged habilitation + cadastral
// snapshot. JSON keys match what the browser front end renders.
type ConsultationResponse struct {
	FromCache bool   `json:"fromCache"`
	QueryDate string `json:"dataConsulta"`
	CNPJ      string `json:"cnpj"`

	ContributorName string `json:"contribuinte"`
	Status          string `json:"situacao"`
	StatusDate      string `json:"dataSituacao"`
	Submodality     string `json:"submodalidade"`

	LegalName         string `json:"razaoSocial"`
	TradeName         string `json:"nomeFantasia"`
	Municipality      string `json:"municipio"`
	StateCode         string `json:"uf"`
	FoundingDate      string `json:"dataConstituicao"`
	TaxRegime         string `json:"regimeTributario"`
	SimplesOptionDate string `json:"dataOpcaoSimples"`
	ShareCapital      string `json:"capitalSocial"`
}

type HistoryEntryResponse struct {
	QueryDate string `json:"dataConsulta"`
	CNPJ      string `json:"cnpj"`

	ContributorName string `json:"contribuinte"`
	Status          string `json:"situacao"`
	StatusDate      string `json:"dataSituacao"`
	Submodality     string `json:"submodalidade"`

	LegalName         string `json:"razaoSocial"`
	TradeName         string `json:"nomeFantasia"`
	Municipality      string `json:"municipio"`
	StateCode         string `json:"uf"`
	FoundingDate      string `json:"dataConstituicao"`
	TaxRegime         string `json:"regimeTributario"`
	SimplesOptionDate string `json:"dataOpcaoSimples"`
	ShareCapital      string `json:"capitalSocial"`

	ExportedBy string `json:"exportadoPor"`
}

type HistoryDateResponse struct {
	QueryDate string `json:"dataConsulta"`
	Total     int64  `json:"total"`
}
