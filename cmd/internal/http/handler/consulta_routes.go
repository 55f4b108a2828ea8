package handler

import (
	"context"
	"net/http"
	"strings"

	"radarcnpj/cmd/internal/contract"
	"radarcnpj/cmd/internal/domain/entity"
	"radarcnpj/cmd/internal/infrastructure/radar"
	"radarcnpj/cmd/internal/infrastructure/receitaws"
	"radarcnpj/cmd/internal/service"
	"radarcnpj/cmd/internal/utils"
	"radarcnpj/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type ConsultaService interface {
	Consult(ctx context.Context, actor *entity.User, cnpj string, force bool, origin string) (*contract.ConsultationResponse, apierror.ErrorResponse)
}

type RegistryClient interface {
	Lookup(ctx context.Context, cnpj string) (*receitaws.Result, error)
}

type RadarClient interface {
	Lookup(ctx context.Context, cnpj string) (*radar.Result, error)
}

type DefaultConsultaRoute struct {
	ConsultaService ConsultaService

	// Raw passthroughs kept for debugging the upstreams in isolation.
	Receita RegistryClient
	Radar   RadarClient
}

func NewConsultaDefault(consultaService ConsultaService, receita RegistryClient, radarClient RadarClient) *DefaultConsultaRoute {
	return &DefaultConsultaRoute{
		ConsultaService: consultaService,
		Receita:         receita,
		Radar:           radarClient,
	}
}

// GetConsultaCompleta runs the full aggregation pass:
// GET /consulta-completa?cnpj=...&force=1&origem=lote
func (r *DefaultConsultaRoute) GetConsultaCompleta(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	cnpj := utils.NormalizeCNPJ(c.QueryParam("cnpj"))
	if cnpj == "" {
		apierr := apierror.MissingCNPJError
		return c.JSON(apierr.Code(), apierr)
	}

	force := c.QueryParam("force") == "1" || c.QueryParam("force") == "true"

	origin := strings.TrimSpace(c.QueryParam("origem"))
	if origin == "" {
		origin = service.OriginUnit
	}

	resp, apierr := r.ConsultaService.Consult(c.Request().Context(), user, cnpj, force, origin)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, resp)
}

// GetReceitaWS exposes the registry adapter directly, without auth.
func (r *DefaultConsultaRoute) GetReceitaWS(c echo.Context) error {
	cnpj := utils.NormalizeCNPJ(c.QueryParam("cnpj"))
	if cnpj == "" {
		apierr := apierror.MissingCNPJError
		return c.JSON(apierr.Code(), apierr)
	}

	result, err := r.Receita.Lookup(c.Request().Context(), cnpj)
	if err != nil {
		apierr := apierror.NewSimple(http.StatusInternalServerError, err.Error())
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, toReceitaPassthrough(result))
}

// GetRadar exposes the habilitation adapter directly, without auth.
func (r *DefaultConsultaRoute) GetRadar(c echo.Context) error {
	cnpj := utils.NormalizeCNPJ(c.QueryParam("cnpj"))
	if cnpj == "" {
		apierr := apierror.MissingCNPJError
		return c.JSON(apierr.Code(), apierr)
	}

	result, err := r.Radar.Lookup(c.Request().Context(), cnpj)
	if err != nil {
		apierr := apierror.NewSimple(http.StatusInternalServerError, err.Error())
		return c.JSON(apierr.Code(), apierr)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"contribuinte":  result.ContributorName,
		"situacao":      result.Status,
		"dataSituacao":  result.StatusDate,
		"submodalidade": result.Submodality,
	})
}

func toReceitaPassthrough(r *receitaws.Result) echo.Map {
	return echo.Map{
		"razaoSocial":      r.LegalName,
		"nomeFantasia":     r.TradeName,
		"municipio":        r.Municipality,
		"uf":               r.StateCode,
		"dataConstituicao": r.FoundingDate,
		"regimeTributario": r.TaxRegime,
		"dataOpcaoSimples": r.SimplesOptionDate,
		"capitalSocial":    r.ShareCapital,
	}
}
