package service

import (
	"radarcnpj/cmd/internal/contract"
	"radarcnpj/cmd/internal/domain/entity"
	"radarcnpj/cmd/internal/domain/sqlite/repository"
	"radarcnpj/cmd/internal/utils/apierror"

	"github.com/labstack/gommon/log"
)

type HistoryRepository interface {
	FindByDate(date string) ([]*entity.Consultation, error)
	FindByRange(from, to string) ([]*entity.Consultation, error)
	StampExportedByDate(name, date string) error
	StampExportedByRange(name, from, to string) error
	CountByDate() ([]*repository.DateCount, error)
}

// HistoricoService lists persisted consultations for the export screen.
type HistoricoService struct {
	Repo HistoryRepository
}

func NewHistoricoService(repo HistoryRepository) *HistoricoService {
	return &HistoricoService{Repo: repo}
}

// History returns the rows for a single day or an inclusive range. When
// stampExport is set, the rows are marked with the actor's name after
// being read, so the response shows who exported them previously.
func (h *HistoricoService) History(actor *entity.User, date, from, to string, stampExport bool) ([]*contract.HistoryEntryResponse, apierror.ErrorResponse) {
	var (
		rows []*entity.Consultation
		err  error
	)

	switch {
	case date != "":
		rows, err = h.Repo.FindByDate(date)
	case from != "" && to != "":
		rows, err = h.Repo.FindByRange(from, to)
	default:
		return nil, apierror.NewSimple(400,
			"Informe ?data=YYYY-MM-DD ou ?from=YYYY-MM-DD&to=YYYY-MM-DD para consultar o histórico.")
	}

	if err != nil {
		log.Errorf("history query failed: %v", err)
		return nil, apierror.InternalServerError
	}

	if stampExport && actor.Name != "" {
		if date != "" {
			err = h.Repo.StampExportedByDate(actor.Name, date)
		} else {
			err = h.Repo.StampExportedByRange(actor.Name, from, to)
		}
		if err != nil {
			log.Errorf("failed to stamp exported_by: %v", err)
			return nil, apierror.InternalServerError
		}
	}

	resp := make([]*contract.HistoryEntryResponse, len(rows))
	for i, row := range rows {
		resp[i] = toHistoryEntry(row)
	}
	return resp, nil
}

func (h *HistoricoService) HistoryDates() ([]*contract.HistoryDateResponse, apierror.ErrorResponse) {
	counts, err := h.Repo.CountByDate()
	if err != nil {
		log.Errorf("history dates query failed: %v", err)
		return nil, apierror.InternalServerError
	}

	resp := make([]*contract.HistoryDateResponse, len(counts))
	for i, c := range counts {
		resp[i] = &contract.HistoryDateResponse{
			QueryDate: c.QueryDate,
			Total:     c.Total,
		}
	}
	return resp, nil
}

func toHistoryEntry(row *entity.Consultation) *contract.HistoryEntryResponse {
	return &contract.HistoryEntryResponse{
		QueryDate:         row.QueryDate,
		CNPJ:              row.CNPJ,
		ContributorName:   row.ContributorName,
		Status:            row.Status,
		StatusDate:        row.StatusDate,
		Submodality:       row.Submodality,
		LegalName:         row.LegalName,
		TradeName:         row.TradeName,
		Municipality:      row.Municipality,
		StateCode:         row.StateCode,
		FoundingDate:      row.FoundingDate,
		TaxRegime:         row.TaxRegime,
		SimplesOptionDate: row.SimplesOptionDate,
		ShareCapital:      row.ShareCapital,
		ExportedBy:        row.ExportedBy,
	}
}
