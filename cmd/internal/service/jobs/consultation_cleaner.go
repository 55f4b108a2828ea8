package jobs

import (
	"context"
	"time"

	"radarcnpj/cmd/internal/utils"

	"github.com/labstack/gommon/log"
)

const CleanInterval = 1 * time.Hour

type ConsultationRepository interface {
	DeleteExpired(before string) (int64, error)
}

// ConsultationCleaner sweeps consultations older than the retention
// window. The service also purges opportunistically on every cache read;
// this cron only keeps the table small during idle periods.
type ConsultationCleaner struct {
	repo          ConsultationRepository
	retentionDays int
}

func NewConsultationCleaner(repo ConsultationRepository, retentionDays int) *ConsultationCleaner {
	return &ConsultationCleaner{repo: repo, retentionDays: retentionDays}
}

func (c *ConsultationCleaner) Start(ctx context.Context) {
	ticker := time.NewTicker(CleanInterval)
	defer ticker.Stop()

	log.Info("Consultation cleaner cron started")

	for {
		select {
		case <-ctx.Done():
			log.Info("Stopping consultation cleaner...")
			return
		case <-ticker.C:
			c.cleanup()
		}
	}
}

func (c *ConsultationCleaner) cleanup() {
	cutoff := utils.DaysAgo(c.retentionDays)

	removed, err := c.repo.DeleteExpired(cutoff)
	if err != nil {
		log.Errorf("Cleaner: failed to delete expired consultations: %v", err)
		return
	}

	if removed > 0 {
		log.Infof("Cleaner: swept %d consultation(s) older than %s", removed, cutoff)
	}
}
