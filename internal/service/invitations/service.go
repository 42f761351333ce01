package invitations

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	invitationRepo "github.com/m04kA/SMC-CourtBooking/internal/infra/storage/invitation"
	"github.com/m04kA/SMC-CourtBooking/internal/service/invitations/models"
	"github.com/m04kA/SMC-CourtBooking/pkg/ptr"
)

const (
	maxIssueAttempts = 3

	outcomeValid = "valid"

	msgValid       = "код действителен"
	msgMalformed   = "некорректный формат кода"
	msgNotFound    = "код не найден"
	msgAlreadyUsed = "код уже использован"
	msgExpired     = "срок действия кода истёк"
)

// Service сервис кодов приглашения администраторов площадок
// Состояние кода выводится из последнего события журнала
type Service struct {
	repo         InvitationRepository
	txManager    TransactionManager
	metrics      Metrics
	generate     CodeGenerator
	codeTTL      time.Duration
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса приглашений
func NewService(
	repo InvitationRepository,
	txManager TransactionManager,
	metrics Metrics,
	codeTTL time.Duration,
	logger Logger,
) *Service {
	return &Service{
		repo:         repo,
		txManager:    txManager,
		metrics:      metrics,
		generate:     UUIDCodeGenerator,
		codeTTL:      codeTTL,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// WithCodeGenerator подменяет генератор кодов (для тестов)
func (s *Service) WithCodeGenerator(gen CodeGenerator) *Service {
	s.generate = gen
	return s
}

// Validate проверяет код без его активации
// Неуспех описывается в ValidationOutcome; error возвращается только при сбое хранилища
func (s *Service) Validate(ctx context.Context, code string) (*models.ValidationOutcome, error) {
	code = domain.NormalizeCode(code)

	if err := domain.ValidateCodeFormat(code); err != nil {
		s.metrics.ObserveInvitationValidation(domain.Kind(err))
		return &models.ValidationOutcome{Message: msgMalformed, Code: code, Reason: ErrInvalidInput}, nil
	}

	events, err := s.repo.ListByCode(ctx, code)
	if err != nil {
		s.logger.Error("Validate: repository error for code=%s: %v", code, err)
		s.metrics.ObserveInvitationValidation(domain.Kind(ErrInternal))
		return nil, fmt.Errorf("%w: Validate - repository error: %v", ErrInternal, err)
	}

	outcome := s.evaluate(code, events)
	if outcome.Success {
		s.metrics.ObserveInvitationValidation(outcomeValid)
	} else {
		s.metrics.ObserveInvitationValidation(domain.Kind(outcome.Reason))
	}

	s.logger.Info("Validate: code=%s success=%t", code, outcome.Success)
	return outcome, nil
}

// Issue выпускает новый код для площадки со сроком действия codeTTL
func (s *Service) Issue(ctx context.Context, venueID int64, venueName string, superAdminID int64) (*models.InvitationEventResponse, error) {
	venueName = strings.TrimSpace(venueName)
	if venueID <= 0 || superAdminID <= 0 || venueName == "" {
		return nil, fmt.Errorf("%w: venueID, venueName and issuer are required", ErrInvalidInput)
	}

	now := s.timeProvider.Now()
	expiresAt := now.Add(s.codeTTL)

	for attempt := 1; attempt <= maxIssueAttempts; attempt++ {
		event, err := s.repo.Append(ctx, &domain.InvitationEvent{
			VenueID:   venueID,
			VenueName: venueName,
			Code:      s.generate(),
			IssuedBy:  superAdminID,
			Action:    domain.InvitationCreated,
			ExpiresAt: &expiresAt,
		})
		if err == nil {
			s.logger.Info("Issue: code=%s issued for venue=%d by superadmin=%d", event.Code, venueID, superAdminID)
			return models.FromDomainEvent(event), nil
		}
		if !errors.Is(err, invitationRepo.ErrDuplicateCode) {
			s.logger.Error("Issue: repository error for venue=%d: %v", venueID, err)
			return nil, fmt.Errorf("%w: Issue - repository error: %v", ErrInternal, err)
		}
		s.logger.Warn("Issue: generated code collided, attempt %d", attempt)
	}

	return nil, fmt.Errorf("%w: Issue - no unique code after %d attempts", ErrInternal, maxIssueAttempts)
}

// Redeem активирует код: проверка и запись события used выполняются в одной транзакции
func (s *Service) Redeem(ctx context.Context, code string, adminID int64) (*models.InvitationEventResponse, error) {
	code = domain.NormalizeCode(code)
	if adminID <= 0 {
		return nil, fmt.Errorf("%w: adminID must be positive", ErrInvalidInput)
	}
	if err := domain.ValidateCodeFormat(code); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	now := s.timeProvider.Now()
	var result *domain.InvitationEvent

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		events, err := s.repo.ListByCode(txCtx, code)
		if err != nil {
			return fmt.Errorf("%w: Redeem - list events: %v", ErrInternal, err)
		}

		if err := mapCodeState(domain.EvaluateCode(events, now)); err != nil {
			return err
		}

		created := latestOfAction(events, domain.InvitationCreated)
		previous, err := s.currentVenueAdmin(txCtx, created.VenueID)
		if err != nil {
			return err
		}
		if previous != nil && *previous != adminID {
			return fmt.Errorf("%w: venue=%d, holder=%d", ErrVenueHeld, created.VenueID, *previous)
		}

		event, err := s.repo.Append(txCtx, &domain.InvitationEvent{
			VenueID:         created.VenueID,
			VenueName:       created.VenueName,
			Code:            code,
			IssuedBy:        created.IssuedBy,
			Action:          domain.InvitationUsed,
			PreviousAdminID: previous,
			NewAdminID:      ptr.Ptr(adminID),
		})
		if err != nil {
			return fmt.Errorf("%w: Redeem - append event: %v", ErrInternal, err)
		}
		result = event
		return nil
	})
	if err != nil {
		s.logger.Warn("Redeem: code=%s by admin=%d failed: %v", code, adminID, err)
		return nil, ensureInternal(err)
	}

	s.logger.Info("Redeem: code=%s redeemed by admin=%d for venue=%d", code, adminID, result.VenueID)
	return models.FromDomainEvent(result), nil
}

// Transfer передаёт площадку новому администратору
// Предыдущий администратор берётся из последнего события used/transferred площадки
func (s *Service) Transfer(ctx context.Context, venueID, newAdminID, superAdminID int64, detail string) (*models.InvitationEventResponse, error) {
	detail = strings.TrimSpace(detail)
	if venueID <= 0 || newAdminID <= 0 || superAdminID <= 0 || len(detail) > domain.MaxDetailLength {
		return nil, fmt.Errorf("%w: venueID, newAdminID and issuer are required", ErrInvalidInput)
	}

	var result *domain.InvitationEvent

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		events, err := s.repo.ListByVenue(txCtx, venueID)
		if err != nil {
			return fmt.Errorf("%w: Transfer - list events: %v", ErrInternal, err)
		}

		previous := domain.CurrentVenueAdmin(events)
		if previous == nil {
			return ErrHolderNotFound
		}
		if *previous == newAdminID {
			return ErrSameAdmin
		}

		holder := domain.LatestEvent(holderEvents(events))
		event := &domain.InvitationEvent{
			VenueID:         venueID,
			VenueName:       holder.VenueName,
			Code:            holder.Code,
			IssuedBy:        superAdminID,
			Action:          domain.InvitationTransferred,
			PreviousAdminID: previous,
			NewAdminID:      ptr.Ptr(newAdminID),
		}
		if detail != "" {
			event.Detail = &detail
		}

		appended, err := s.repo.Append(txCtx, event)
		if err != nil {
			return fmt.Errorf("%w: Transfer - append event: %v", ErrInternal, err)
		}
		result = appended
		return nil
	})
	if err != nil {
		s.logger.Warn("Transfer: venue=%d to admin=%d failed: %v", venueID, newAdminID, err)
		return nil, ensureInternal(err)
	}

	s.logger.Info("Transfer: venue=%d transferred from admin=%d to admin=%d",
		venueID, ptr.Value(result.PreviousAdminID), newAdminID)
	return models.FromDomainEvent(result), nil
}

// Expire досрочно закрывает ещё действующий код
func (s *Service) Expire(ctx context.Context, code string, superAdminID int64) (*models.InvitationEventResponse, error) {
	code = domain.NormalizeCode(code)
	if superAdminID <= 0 {
		return nil, fmt.Errorf("%w: issuer is required", ErrInvalidInput)
	}
	if err := domain.ValidateCodeFormat(code); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	now := s.timeProvider.Now()
	var result *domain.InvitationEvent

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		events, err := s.repo.ListByCode(txCtx, code)
		if err != nil {
			return fmt.Errorf("%w: Expire - list events: %v", ErrInternal, err)
		}

		if err := mapCodeState(domain.EvaluateCode(events, now)); err != nil {
			return err
		}

		created := latestOfAction(events, domain.InvitationCreated)
		event, err := s.repo.Append(txCtx, &domain.InvitationEvent{
			VenueID:   created.VenueID,
			VenueName: created.VenueName,
			Code:      code,
			IssuedBy:  superAdminID,
			Action:    domain.InvitationExpired,
		})
		if err != nil {
			return fmt.Errorf("%w: Expire - append event: %v", ErrInternal, err)
		}
		result = event
		return nil
	})
	if err != nil {
		s.logger.Warn("Expire: code=%s failed: %v", code, err)
		return nil, ensureInternal(err)
	}

	s.logger.Info("Expire: code=%s expired by superadmin=%d", code, superAdminID)
	return models.FromDomainEvent(result), nil
}

// History возвращает полный журнал кода в хронологическом порядке
func (s *Service) History(ctx context.Context, code string) (*models.InvitationHistoryResponse, error) {
	code = domain.NormalizeCode(code)
	if err := domain.ValidateCodeFormat(code); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	events, err := s.repo.ListByCode(ctx, code)
	if err != nil {
		s.logger.Error("History: repository error for code=%s: %v", code, err)
		return nil, fmt.Errorf("%w: History - repository error: %v", ErrInternal, err)
	}
	if len(events) == 0 {
		return nil, ErrCodeNotFound
	}

	return models.FromDomainHistory(code, events), nil
}

// Вспомогательные методы

func (s *Service) evaluate(code string, events []*domain.InvitationEvent) *models.ValidationOutcome {
	outcome := &models.ValidationOutcome{Code: code}

	if created := latestOfAction(events, domain.InvitationCreated); created != nil {
		outcome.VenueID = created.VenueID
		outcome.VenueName = created.VenueName
	}

	reason := mapCodeState(domain.EvaluateCode(events, s.timeProvider.Now()))
	switch {
	case reason == nil:
		outcome.Success = true
		outcome.Message = msgValid
	case errors.Is(reason, ErrCodeNotFound):
		outcome.Message = msgNotFound
	case errors.Is(reason, ErrCodeAlreadyUsed):
		outcome.Message = msgAlreadyUsed
	case errors.Is(reason, ErrCodeExpired):
		outcome.Message = msgExpired
	default:
		outcome.Message = msgMalformed
	}
	outcome.Reason = reason

	return outcome
}

func (s *Service) currentVenueAdmin(ctx context.Context, venueID int64) (*int64, error) {
	events, err := s.repo.ListByVenue(ctx, venueID)
	if err != nil {
		return nil, fmt.Errorf("%w: list venue events: %v", ErrInternal, err)
	}
	return domain.CurrentVenueAdmin(events), nil
}

// mapCodeState переводит состояние кода в ошибки сервиса
func mapCodeState(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrNotFound):
		return ErrCodeNotFound
	case errors.Is(err, domain.ErrAlreadyUsed):
		return ErrCodeAlreadyUsed
	case errors.Is(err, domain.ErrExpired):
		return ErrCodeExpired
	default:
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
}

func latestOfAction(events []*domain.InvitationEvent, action domain.InvitationAction) *domain.InvitationEvent {
	var matched []*domain.InvitationEvent
	for _, e := range events {
		if e != nil && e.Action == action {
			matched = append(matched, e)
		}
	}
	return domain.LatestEvent(matched)
}

func holderEvents(events []*domain.InvitationEvent) []*domain.InvitationEvent {
	var out []*domain.InvitationEvent
	for _, e := range events {
		if e != nil && (e.Action == domain.InvitationUsed || e.Action == domain.InvitationTransferred) && e.NewAdminID != nil {
			out = append(out, e)
		}
	}
	return out
}

// ensureInternal оставляет ошибки сервиса как есть, остальные (ошибки транзакции) помечает внутренними
func ensureInternal(err error) error {
	switch {
	case errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrCodeNotFound),
		errors.Is(err, ErrCodeAlreadyUsed),
		errors.Is(err, ErrCodeExpired),
		errors.Is(err, ErrHolderNotFound),
		errors.Is(err, ErrSameAdmin),
		errors.Is(err, ErrVenueHeld),
		errors.Is(err, ErrInternal):
		return err
	default:
		return fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
	}
}
