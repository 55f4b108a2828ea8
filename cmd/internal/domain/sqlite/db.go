package sqlite

import (
	"time"

	"radarcnpj/cmd/internal/domain/entity"

	"github.com/glebarez/sqlite"
	"github.com/labstack/gommon/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func Init(dbPath string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(&entity.Consultation{}, &entity.User{}, &entity.ConsultationLog{})
	if err != nil {
		return nil, err
	}

	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}

// SeedAdminUser creates the default administrator when the user table is
// empty, so a fresh deployment is reachable through the login screen.
func SeedAdminUser(db *gorm.DB) error {
	var total int64
	if err := db.Model(&entity.User{}).Count(&total).Error; err != nil {
		return err
	}
	if total > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &entity.User{
		Name:         "Administrador",
		Email:        "admin@radar.local",
		PasswordHash: string(hash),
		Role:         entity.RoleAdmin,
		Active:       true,
		CanBatch:     true,
	}
	if err := db.Create(admin).Error; err != nil {
		return err
	}

	log.Warnf("default admin user created (%s), change the password after first login", admin.Email)
	return nil
}
