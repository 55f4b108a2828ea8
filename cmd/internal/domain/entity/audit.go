package entity

// ConsultationLog is the append-only audit trail: one entry per lookup
// request, recording who asked, for which CNPJ, and how it ended.
// Entries are never updated and never read back by the service.
type ConsultationLog struct {
	ID        int64  `gorm:"primaryKey"`
	UserID    int64  `gorm:"not null;index"`
	CNPJ      string `gorm:"size:14;not null"`
	Timestamp int64  `gorm:"not null;autoCreateTime:milli"`
	Origin    string `gorm:"size:20;not null"`
	Success   bool   `gorm:"not null"`
	Message   string
}
