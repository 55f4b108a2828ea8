package entity

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User is an operator account. Deactivation is soft: rows are never
// deleted so audit log references stay resolvable.
type User struct {
	ID           int64  `gorm:"primaryKey"`
	Name         string `gorm:"not null"`
	Email        string `gorm:"size:120;not null;uniqueIndex"`
	PasswordHash string `gorm:"not null"`
	Role         string `gorm:"size:20;not null;default:user"`
	Active       bool   `gorm:"not null;default:true"`

	// CanBatch gates the spreadsheet-driven batch lookup mode.
	// Admins bypass it.
	CanBatch bool `gorm:"not null;default:true"`

	CreatedAt int64 `gorm:"not null;autoCreateTime:milli"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
