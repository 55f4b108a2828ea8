package repository

import (
	"path/filepath"
	"testing"

	"radarcnpj/cmd/internal/domain/entity"
	"radarcnpj/cmd/internal/domain/sqlite"
	"radarcnpj/cmd/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := sqlite.Init(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	return db
}

func TestFindRecentHonorsRetentionWindow(t *testing.T) {
	repo := NewConsultationRepository(newTestDB(t))
	retention := 90

	fresh := &entity.Consultation{
		CNPJ:      "11222333000181",
		QueryDate: utils.DaysAgo(retention - 1),
		Status:    "DEFERIDA",
	}
	expired := &entity.Consultation{
		CNPJ:      "99888777000166",
		QueryDate: utils.DaysAgo(retention + 1),
		Status:    "DEFERIDA",
	}
	require.NoError(t, repo.Save(fresh))
	require.NoError(t, repo.Save(expired))

	since := utils.DaysAgo(retention)

	got, err := repo.FindRecent("11222333000181", since)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, fresh.QueryDate, got.QueryDate)

	got, err = repo.FindRecent("99888777000166", since)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestFindRecentPicksMostRecentRow(t *testing.T) {
	repo := NewConsultationRepository(newTestDB(t))

	require.NoError(t, repo.Save(&entity.Consultation{
		CNPJ: "11222333000181", QueryDate: utils.DaysAgo(5), Status: "SUSPENSA",
	}))
	require.NoError(t, repo.Save(&entity.Consultation{
		CNPJ: "11222333000181", QueryDate: utils.DaysAgo(1), Status: "DEFERIDA",
	}))

	got, err := repo.FindRecent("11222333000181", utils.DaysAgo(30))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "DEFERIDA", got.Status)
}

func TestDeleteExpiredRemovesOnlyOldRows(t *testing.T) {
	repo := NewConsultationRepository(newTestDB(t))
	retention := 90

	require.NoError(t, repo.Save(&entity.Consultation{
		CNPJ: "11222333000181", QueryDate: utils.DaysAgo(retention + 1), Status: "DEFERIDA",
	}))
	require.NoError(t, repo.Save(&entity.Consultation{
		CNPJ: "11222333000181", QueryDate: utils.DaysAgo(retention - 1), Status: "DEFERIDA",
	}))

	removed, err := repo.DeleteExpired(utils.DaysAgo(retention))
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	got, err := repo.FindRecent("11222333000181", utils.DaysAgo(retention))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, utils.DaysAgo(retention-1), got.QueryDate)
}

func TestStampExportedByDate(t *testing.T) {
	repo := NewConsultationRepository(newTestDB(t))
	today := utils.Today()

	require.NoError(t, repo.Save(&entity.Consultation{
		CNPJ: "11222333000181", QueryDate: today, Status: "DEFERIDA",
	}))
	require.NoError(t, repo.Save(&entity.Consultation{
		CNPJ: "99888777000166", QueryDate: utils.DaysAgo(1), Status: "DEFERIDA",
	}))

	require.NoError(t, repo.StampExportedByDate("Maria", today))

	rows, err := repo.FindByDate(today)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Maria", rows[0].ExportedBy)

	rows, err = repo.FindByDate(utils.DaysAgo(1))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Empty(t, rows[0].ExportedBy)
}

func TestFindByRangeOrdersByDateThenCNPJ(t *testing.T) {
	repo := NewConsultationRepository(newTestDB(t))

	require.NoError(t, repo.Save(&entity.Consultation{CNPJ: "99888777000166", QueryDate: utils.DaysAgo(1), Status: "DEFERIDA"}))
	require.NoError(t, repo.Save(&entity.Consultation{CNPJ: "11222333000181", QueryDate: utils.DaysAgo(2), Status: "DEFERIDA"}))
	require.NoError(t, repo.Save(&entity.Consultation{CNPJ: "11222333000181", QueryDate: utils.DaysAgo(1), Status: "DEFERIDA"}))

	rows, err := repo.FindByRange(utils.DaysAgo(3), utils.Today())
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, utils.DaysAgo(2), rows[0].QueryDate)
	assert.Equal(t, "11222333000181", rows[1].CNPJ)
	assert.Equal(t, "99888777000166", rows[2].CNPJ)
}

func TestCountByDate(t *testing.T) {
	repo := NewConsultationRepository(newTestDB(t))

	require.NoError(t, repo.Save(&entity.Consultation{CNPJ: "11222333000181", QueryDate: utils.Today(), Status: "DEFERIDA"}))
	require.NoError(t, repo.Save(&entity.Consultation{CNPJ: "99888777000166", QueryDate: utils.Today(), Status: "DEFERIDA"}))
	require.NoError(t, repo.Save(&entity.Consultation{CNPJ: "11222333000181", QueryDate: utils.DaysAgo(1), Status: "DEFERIDA"}))

	counts, err := repo.CountByDate()
	require.NoError(t, err)
	require.Len(t, counts, 2)
	assert.Equal(t, utils.Today(), counts[0].QueryDate)
	assert.Equal(t, int64(2), counts[0].Total)
	assert.Equal(t, int64(1), counts[1].Total)
}
