package service

import (
	"context"
	"strings"
	"sync"

	"radarcnpj/cmd/internal/contract"
	"radarcnpj/cmd/internal/domain/entity"
	"radarcnpj/cmd/internal/infrastructure/radar"
	"radarcnpj/cmd/internal/infrastructure/receitaws"
	"radarcnpj/cmd/internal/utils"
	"radarcnpj/cmd/internal/utils/apierror"

	"github.com/labstack/gommon/log"
)

const (
	OriginUnit  = "unitaria"
	OriginBatch = "lote"

	statusNotEnabled = "NÃO HABILITADA"
	noInfoText       = "Sem informação"
	noTradeNameText  = "Sem nome fantasia"
)

type ConsultationRepository interface {
	FindRecent(cnpj, since string) (*entity.Consultation, error)
	Save(row *entity.Consultation) error
	DeleteExpired(before string) (int64, error)
}

type UserRepository interface {
	FindByID(id int64) (*entity.User, error)
}

type AuditRepository interface {
	Append(entry *entity.ConsultationLog) error
}

type RegistryClient interface {
	Lookup(ctx context.Context, cnpj string) (*receitaws.Result, error)
}

type RadarClient interface {
	Lookup(ctx context.Context, cnpj string) (*radar.Result, error)
}

// ConsultaService merges the two upstreams, serves cached snapshots
// within the retention window and records every request in the audit
// trail. One pass per request, no internal retries.
type ConsultaService struct {
	Radar         RadarClient
	Receita       RegistryClient
	ConsultaRepo  ConsultationRepository
	UserRepo      UserRepository
	AuditRepo     AuditRepository
	RetentionDays int
}

func NewConsultaService(
	radarClient RadarClient,
	receitaClient RegistryClient,
	consultaRepo ConsultationRepository,
	userRepo UserRepository,
	auditRepo AuditRepository,
	retentionDays int,
) *ConsultaService {
	return &ConsultaService{
		Radar:         radarClient,
		Receita:       receitaClient,
		ConsultaRepo:  consultaRepo,
		UserRepo:      userRepo,
		AuditRepo:     auditRepo,
		RetentionDays: retentionDays,
	}
}

// Consult runs one full consultation pass for the actor.
func (s *ConsultaService) Consult(ctx context.Context, actor *entity.User, cnpj string, force bool, origin string) (*contract.ConsultationResponse, apierror.ErrorResponse) {
	if origin == OriginBatch {
		if apierr := s.checkBatchPermission(actor.ID); apierr != nil {
			return nil, apierr
		}
	}

	s.purgeExpired()

	if !force {
		cached, err := s.ConsultaRepo.FindRecent(cnpj, utils.DaysAgo(s.RetentionDays))
		if err != nil {
			log.Errorf("cache lookup failed for %s: %v", cnpj, err)
			return nil, apierror.InternalServerError
		}

		if cached != nil {
			if cached.IsStale() {
				// A row without any habilitation data must not satisfy
				// the read; fall through to a live lookup.
				log.Warnf("ignoring stale cached row for %s", cnpj)
			} else {
				s.audit(actor.ID, cnpj, origin, true, "resposta do cache")
				return toConsultationResponse(cached, true), nil
			}
		}
	}

	radarRes, radarErr, receitaRes, receitaErr := s.fanOut(ctx, cnpj)

	if radarErr != nil && receitaErr != nil {
		s.audit(actor.ID, cnpj, origin, false, "RADAR e ReceitaWS não responderam")
		return nil, apierror.UpstreamsDownError
	}

	row := s.merge(cnpj, radarRes, radarErr, receitaRes, receitaErr)

	// Registry-only partials are never persisted: caching a snapshot with
	// unknown habilitation state would later be served as authoritative.
	persist := !(radarErr != nil && receitaErr == nil)

	if persist {
		if err := s.ConsultaRepo.Save(row); err != nil {
			log.Errorf("failed to save consultation for %s: %v", cnpj, err)
			s.audit(actor.ID, cnpj, origin, false, "falha ao salvar consulta")
			return nil, apierror.InternalServerError
		}
		s.audit(actor.ID, cnpj, origin, true, "consulta salva")
	} else {
		s.audit(actor.ID, cnpj, origin, true, "consulta parcial (somente ReceitaWS, não salva no banco)")
	}

	return toConsultationResponse(row, false), nil
}

// checkBatchPermission re-reads the identity so a permission revoked
// mid-session takes effect on the next batch item.
func (s *ConsultaService) checkBatchPermission(userID int64) apierror.ErrorResponse {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		log.Errorf("batch permission lookup failed for user %d: %v", userID, err)
		return apierror.InternalServerError
	}

	if user == nil || !user.Active {
		return apierror.InactiveUserError
	}

	if !user.CanBatch && !user.IsAdmin() {
		return apierror.BatchDeniedError
	}
	return nil
}

func (s *ConsultaService) purgeExpired() {
	removed, err := s.ConsultaRepo.DeleteExpired(utils.DaysAgo(s.RetentionDays))
	if err != nil {
		log.Errorf("failed to purge expired consultations: %v", err)
		return
	}
	if removed > 0 {
		log.Infof("purged %d expired consultation(s)", removed)
	}
}

// fanOut calls both upstreams concurrently. Failures are isolated: each
// call completes (or fails) on its own before the merge proceeds.
func (s *ConsultaService) fanOut(ctx context.Context, cnpj string) (*radar.Result, error, *receitaws.Result, error) {
	var (
		radarRes   *radar.Result
		radarErr   error
		receitaRes *receitaws.Result
		receitaErr error
	)

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		radarRes, radarErr = s.Radar.Lookup(ctx, cnpj)
		if radarErr != nil {
			log.Warnf("RADAR lookup failed for %s: %v", cnpj, radarErr)
		}
	}()

	go func() {
		defer wg.Done()
		receitaRes, receitaErr = s.Receita.Lookup(ctx, cnpj)
		if receitaErr != nil {
			log.Warnf("ReceitaWS lookup failed for %s: %v", cnpj, receitaErr)
		}
	}()

	wg.Wait()
	return radarRes, radarErr, receitaRes, receitaErr
}

func (s *ConsultaService) merge(cnpj string, radarRes *radar.Result, radarErr error, receitaRes *receitaws.Result, receitaErr error) *entity.Consultation {
	// An answered-but-empty habilitation record means the CNPJ is known
	// to not be enabled, which is different from not knowing.
	if radarErr == nil && radarRes.HasNoUsableFields() {
		radarRes = &radar.Result{Status: statusNotEnabled}
	}

	// When only RADAR failed, the habilitation columns say "Sem
	// informação" so the spreadsheet distinguishes unknown from absent.
	habFallback := ""
	if radarErr != nil {
		habFallback = noInfoText
	}

	row := &entity.Consultation{
		CNPJ:      cnpj,
		QueryDate: utils.Today(),
	}

	if radarErr == nil {
		row.ContributorName = orElse(radarRes.ContributorName, habFallback)
		row.Status = orElse(radarRes.Status, habFallback)
		row.StatusDate = orElse(radarRes.StatusDate, habFallback)
		row.Submodality = orElse(radarRes.Submodality, habFallback)
	} else {
		row.ContributorName = habFallback
		row.Status = habFallback
		row.StatusDate = habFallback
		row.Submodality = habFallback
	}

	if receitaErr == nil {
		row.LegalName = receitaRes.LegalName
		row.TradeName = tradeNameOrFallback(receitaRes.TradeName)
		row.Municipality = receitaRes.Municipality
		row.StateCode = receitaRes.StateCode
		row.FoundingDate = receitaRes.FoundingDate
		row.TaxRegime = receitaRes.TaxRegime
		row.SimplesOptionDate = receitaRes.SimplesOptionDate
		row.ShareCapital = receitaRes.ShareCapital
	}

	return row
}

// audit never fails the request: a lookup that worked is not undone by a
// logging hiccup.
func (s *ConsultaService) audit(userID int64, cnpj, origin string, success bool, message string) {
	if origin == "" {
		origin = "desconhecida"
	}

	err := s.AuditRepo.Append(&entity.ConsultationLog{
		UserID:  userID,
		CNPJ:    cnpj,
		Origin:  origin,
		Success: success,
		Message: message,
	})
	if err != nil {
		log.Errorf("failed to append audit entry for %s: %v", cnpj, err)
	}
}

func tradeNameOrFallback(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return noTradeNameText
	}
	return trimmed
}

func orElse(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func toConsultationResponse(row *entity.Consultation, fromCache bool) *contract.ConsultationResponse {
	return &contract.ConsultationResponse{
		FromCache:         fromCache,
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
	}
}
