package handler

import (
	"net/http"
	"strings"

	"radarcnpj/cmd/internal/contract"
	"radarcnpj/cmd/internal/domain/entity"
	"radarcnpj/cmd/internal/utils"
	"radarcnpj/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type HistoricoService interface {
	History(actor *entity.User, date, from, to string, stampExport bool) ([]*contract.HistoryEntryResponse, apierror.ErrorResponse)
	HistoryDates() ([]*contract.HistoryDateResponse, apierror.ErrorResponse)
}

type DefaultHistoricoRoute struct {
	HistoricoService HistoricoService
}

func NewHistoricoDefault(historicoService HistoricoService) *DefaultHistoricoRoute {
	return &DefaultHistoricoRoute{HistoricoService: historicoService}
}

// GetHistorico lists persisted consultations:
// GET /historico?data=YYYY-MM-DD or ?from=...&to=...&registrarExport=1
func (h *DefaultHistoricoRoute) GetHistorico(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	date := strings.TrimSpace(c.QueryParam("data"))
	from := strings.TrimSpace(c.QueryParam("from"))
	to := strings.TrimSpace(c.QueryParam("to"))
	stampExport := c.QueryParam("registrarExport") == "1"

	rows, apierr := h.HistoricoService.History(user, date, from, to, stampExport)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, rows)
}

func (h *DefaultHistoricoRoute) GetHistoricoDatas(c echo.Context) error {
	dates, apierr := h.HistoricoService.HistoryDates()
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, dates)
}
