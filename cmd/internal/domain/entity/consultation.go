package entity

// Consultation is one cached lookup result, keyed by (CNPJ, query date).
// Rows are immutable after creation except for ExportedBy, which is
// stamped retroactively when the row is included in a spreadsheet export.
type Consultation struct {
	ID   int64  `gorm:"primaryKey"`
	CNPJ string `gorm:"size:14;not null;index:idx_consultations_cnpj_date"`

	// QueryDate is the calendar day the row was created, as YYYY-MM-DD.
	// ISO dates order correctly as strings, which the repository relies on.
	QueryDate string `gorm:"size:10;not null;index:idx_consultations_cnpj_date,sort:desc"`

	// Habilitation snapshot (RADAR upstream)
	ContributorName string
	Status          string
	StatusDate      string
	Submodality     string

	// Cadastral snapshot (ReceitaWS upstream)
	LegalName         string
	TradeName         string
	Municipality      string
	StateCode         string `gorm:"size:2"`
	FoundingDate      string
	TaxRegime         string
	SimplesOptionDate string
	ShareCapital      string

	ExportedBy string
}

// IsStale reports whether the cached row carries no habilitation data at
// all. Such rows exist from older partial saves and must not satisfy a
// cache read, otherwise an empty snapshot would shadow the live answer.
func (c *Consultation) IsStale() bool {
	return c.Status == "" &&
		c.ContributorName == "" &&
		c.Submodality == "" &&
		c.StatusDate == ""
}
