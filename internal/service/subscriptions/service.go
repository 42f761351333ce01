package subscriptions

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	planRepo "github.com/m04kA/SMC-CourtBooking/internal/infra/storage/plan"
	subscriptionRepo "github.com/m04kA/SMC-CourtBooking/internal/infra/storage/subscription"
	"github.com/m04kA/SMC-CourtBooking/internal/service/subscriptions/models"
)

// Config политика подписок
type Config struct {
	PeriodDays              int
	FreePlanID              string
	ResetPeriodOnPlanChange bool // при смене тарифа период начинается заново
}

// Service сервис тарифов и подписок администраторов
type Service struct {
	planRepo         PlanRepository
	subscriptionRepo SubscriptionRepository
	txManager        TransactionManager
	metrics          Metrics
	cfg              Config
	period           time.Duration
	timeProvider     TimeProvider
	logger           Logger
}

// NewService создает новый экземпляр сервиса подписок
func NewService(
	planRepo PlanRepository,
	subscriptionRepo SubscriptionRepository,
	txManager TransactionManager,
	metrics Metrics,
	cfg Config,
	logger Logger,
) *Service {
	if cfg.FreePlanID == "" {
		cfg.FreePlanID = domain.FreePlanID
	}
	return &Service{
		planRepo:         planRepo,
		subscriptionRepo: subscriptionRepo,
		txManager:        txManager,
		metrics:          metrics,
		cfg:              cfg,
		period:           domain.SubscriptionPeriod(cfg.PeriodDays),
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// ListPlans возвращает все тарифы, дешёвые первыми
func (s *Service) ListPlans(ctx context.Context) (*models.PlanListResponse, error) {
	plans, err := s.planRepo.List(ctx)
	if err != nil {
		s.logger.Error("ListPlans: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListPlans - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainPlanList(plans), nil
}

// CurrentPlan возвращает действующий тариф администратора, никогда не nil
// Нет подписки, она отменена, истекла или активна с прошедшим сроком: бесплатный тариф.
// Активная подписка с прошедшим сроком помечается expired (без гарантии)
func (s *Service) CurrentPlan(ctx context.Context, adminID int64) (*models.CurrentPlanResponse, error) {
	if adminID <= 0 {
		return nil, fmt.Errorf("%w: adminID must be positive", ErrInvalidInput)
	}

	now := s.timeProvider.Now()

	sub, err := s.subscriptionRepo.GetCurrentByAdmin(ctx, adminID)
	if err != nil {
		if errors.Is(err, subscriptionRepo.ErrSubscriptionNotFound) {
			return s.freePlan(ctx)
		}
		s.logger.Error("CurrentPlan: repository error for admin=%d: %v", adminID, err)
		return nil, fmt.Errorf("%w: CurrentPlan - repository error: %v", ErrInternal, err)
	}

	if sub.IsLapsed(now) {
		s.markExpired(ctx, sub, now)
	}

	if !sub.IsCurrent(now) {
		s.logger.Info("CurrentPlan: admin=%d subscription id=%d is %s, using free plan", adminID, sub.ID, sub.Status)
		return s.freePlan(ctx)
	}

	plan, err := s.planRepo.GetByID(ctx, sub.PlanID)
	if err != nil {
		if errors.Is(err, planRepo.ErrPlanNotFound) {
			s.logger.Warn("CurrentPlan: plan %s of subscription id=%d not found, using free plan", sub.PlanID, sub.ID)
			return s.freePlan(ctx)
		}
		s.logger.Error("CurrentPlan: failed to get plan %s: %v", sub.PlanID, err)
		return nil, fmt.Errorf("%w: CurrentPlan - get plan: %v", ErrInternal, err)
	}

	return &models.CurrentPlanResponse{
		Plan:         models.FromDomainPlan(plan),
		IsFree:       plan.IsFree(s.cfg.FreePlanID),
		Subscription: models.FromDomainSubscription(sub),
	}, nil
}

// ChangePlan переводит администратора на тариф
// Без действующей подписки создаётся новая; иначе тариф меняется на месте
func (s *Service) ChangePlan(ctx context.Context, adminID int64, planID string) (resp *models.SubscriptionResponse, err error) {
	defer func() {
		s.metrics.ObservePlanChange(planID, domain.Kind(err))
	}()

	s.logger.Info("ChangePlan: admin=%d, plan=%s", adminID, planID)

	if adminID <= 0 {
		return nil, fmt.Errorf("%w: adminID must be positive", ErrInvalidInput)
	}
	if err := domain.ValidatePlanID(planID); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if _, err := s.planRepo.GetByID(ctx, planID); err != nil {
		if errors.Is(err, planRepo.ErrPlanNotFound) {
			s.logger.Warn("ChangePlan: plan %s not found", planID)
			return nil, ErrPlanNotFound
		}
		s.logger.Error("ChangePlan: failed to get plan %s: %v", planID, err)
		return nil, fmt.Errorf("%w: ChangePlan - get plan: %v", ErrInternal, err)
	}

	now := s.timeProvider.Now()
	var result *domain.Subscription

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		current, err := s.currentForUpdate(txCtx, adminID)
		if err != nil {
			return err
		}

		if current == nil || !current.IsCurrent(now) {
			if current != nil && current.IsLapsed(now) {
				current.Status = domain.SubscriptionExpired
				current.UpdatedAt = now
				if err := s.subscriptionRepo.Update(txCtx, current); err != nil {
					return fmt.Errorf("%w: ChangePlan - expire lapsed: %v", ErrInternal, err)
				}
			}

			created, err := s.subscriptionRepo.Create(txCtx, domain.NewSubscription(adminID, planID, now, s.period))
			if err != nil {
				return fmt.Errorf("%w: ChangePlan - create subscription: %v", ErrInternal, err)
			}
			result = created
			return nil
		}

		current.PlanID = planID
		current.UpdatedAt = now
		if s.cfg.ResetPeriodOnPlanChange {
			current.StartedAt = now
			current.ExpiresAt = now.Add(s.period)
		}
		if err := s.subscriptionRepo.Update(txCtx, current); err != nil {
			return fmt.Errorf("%w: ChangePlan - update subscription: %v", ErrInternal, err)
		}
		result = current
		return nil
	})
	if err != nil {
		s.logger.Error("ChangePlan: admin=%d, plan=%s failed: %v", adminID, planID, err)
		return nil, ensureInternal(err)
	}

	s.logger.Info("ChangePlan: admin=%d now on plan=%s until %s", adminID, planID, result.ExpiresAt.Format(time.RFC3339))
	return models.FromDomainSubscription(result), nil
}

// CancelSubscription отменяет текущую подписку администратора
func (s *Service) CancelSubscription(ctx context.Context, adminID int64, reason string) (*models.SubscriptionResponse, error) {
	s.logger.Info("CancelSubscription: admin=%d", adminID)

	reason = strings.TrimSpace(reason)
	if adminID <= 0 || len(reason) > domain.MaxCancelReasonLength {
		return nil, fmt.Errorf("%w: adminID must be positive and reason at most %d chars", ErrInvalidInput, domain.MaxCancelReasonLength)
	}

	now := s.timeProvider.Now()
	var result *domain.Subscription

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		current, err := s.currentForUpdate(txCtx, adminID)
		if err != nil {
			return err
		}
		if current == nil {
			return ErrSubscriptionNotFound
		}
		if !domain.CanTransitionSubscription(current.Status, domain.SubscriptionCancelled) {
			return fmt.Errorf("%w: subscription is %s", ErrInvalidTransition, current.Status)
		}

		current.Status = domain.SubscriptionCancelled
		current.AutoRenew = false
		current.CancelledAt = &now
		if reason != "" {
			current.CancelReason = &reason
		}
		current.UpdatedAt = now

		if err := s.subscriptionRepo.Update(txCtx, current); err != nil {
			return fmt.Errorf("%w: CancelSubscription - update subscription: %v", ErrInternal, err)
		}
		result = current
		return nil
	})
	if err != nil {
		s.logger.Warn("CancelSubscription: admin=%d failed: %v", adminID, err)
		return nil, ensureInternal(err)
	}

	s.logger.Info("CancelSubscription: admin=%d subscription id=%d cancelled", adminID, result.ID)
	return models.FromDomainSubscription(result), nil
}

// RenewSubscription продлевает подписку на один период от max(сейчас, срок окончания)
// Истекшая подписка снова становится активной; отменённую продлить нельзя
func (s *Service) RenewSubscription(ctx context.Context, adminID int64) (*models.SubscriptionResponse, error) {
	s.logger.Info("RenewSubscription: admin=%d", adminID)

	if adminID <= 0 {
		return nil, fmt.Errorf("%w: adminID must be positive", ErrInvalidInput)
	}

	now := s.timeProvider.Now()
	var result *domain.Subscription

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		current, err := s.currentForUpdate(txCtx, adminID)
		if err != nil {
			return err
		}
		if current == nil {
			return ErrSubscriptionNotFound
		}
		if current.Status == domain.SubscriptionCancelled {
			return fmt.Errorf("%w: subscription is cancelled", ErrInvalidTransition)
		}

		if current.Status == domain.SubscriptionExpired {
			current.Status = domain.SubscriptionActive
			current.StartedAt = now
		}
		current.ExpiresAt = current.RenewedExpiry(now, s.period)
		current.UpdatedAt = now

		if err := s.subscriptionRepo.Update(txCtx, current); err != nil {
			return fmt.Errorf("%w: RenewSubscription - update subscription: %v", ErrInternal, err)
		}
		result = current
		return nil
	})
	if err != nil {
		s.logger.Warn("RenewSubscription: admin=%d failed: %v", adminID, err)
		return nil, ensureInternal(err)
	}

	s.logger.Info("RenewSubscription: admin=%d subscription id=%d until %s", adminID, result.ID, result.ExpiresAt.Format(time.RFC3339))
	return models.FromDomainSubscription(result), nil
}

// Вспомогательные методы

// currentForUpdate возвращает последнюю подписку администратора или nil
func (s *Service) currentForUpdate(ctx context.Context, adminID int64) (*domain.Subscription, error) {
	current, err := s.subscriptionRepo.GetCurrentByAdmin(ctx, adminID)
	if err != nil {
		if errors.Is(err, subscriptionRepo.ErrSubscriptionNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: get current subscription: %v", ErrInternal, err)
	}
	return current, nil
}

func (s *Service) markExpired(ctx context.Context, sub *domain.Subscription, now time.Time) {
	sub.Status = domain.SubscriptionExpired
	sub.UpdatedAt = now
	if err := s.subscriptionRepo.Update(ctx, sub); err != nil {
		s.logger.Warn("CurrentPlan: failed to mark subscription id=%d expired: %v", sub.ID, err)
		return
	}
	s.logger.Info("CurrentPlan: subscription id=%d marked expired", sub.ID)
}

func (s *Service) freePlan(ctx context.Context) (*models.CurrentPlanResponse, error) {
	plan, err := s.planRepo.GetByID(ctx, s.cfg.FreePlanID)
	if err != nil {
		if !errors.Is(err, planRepo.ErrPlanNotFound) {
			s.logger.Error("CurrentPlan: failed to get free plan: %v", err)
			return nil, fmt.Errorf("%w: CurrentPlan - get free plan: %v", ErrInternal, err)
		}
		plan = &domain.Plan{ID: s.cfg.FreePlanID, Name: "Free"}
	}

	return &models.CurrentPlanResponse{
		Plan:   models.FromDomainPlan(plan),
		IsFree: true,
	}, nil
}

// ensureInternal оставляет ошибки сервиса как есть, остальные (ошибки транзакции) помечает внутренними
func ensureInternal(err error) error {
	switch {
	case errors.Is(err, ErrSubscriptionNotFound),
		errors.Is(err, ErrInvalidTransition),
		errors.Is(err, ErrInternal):
		return err
	default:
		return fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
	}
}
