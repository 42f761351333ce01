package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	cancelSubscriptionHandler "github.com/m04kA/SMC-CourtBooking/internal/api/handlers/cancel_subscription"
	changePlanHandler "github.com/m04kA/SMC-CourtBooking/internal/api/handlers/change_plan"
	codeHistoryHandler "github.com/m04kA/SMC-CourtBooking/internal/api/handlers/code_history"
	confirmPaymentHandler "github.com/m04kA/SMC-CourtBooking/internal/api/handlers/confirm_payment"
	createReservationHandler "github.com/m04kA/SMC-CourtBooking/internal/api/handlers/create_reservation"
	expireCodeHandler "github.com/m04kA/SMC-CourtBooking/internal/api/handlers/expire_code"
	getCurrentPlanHandler "github.com/m04kA/SMC-CourtBooking/internal/api/handlers/get_current_plan"
	getReservationHandler "github.com/m04kA/SMC-CourtBooking/internal/api/handlers/get_reservation"
	getSlotsHandler "github.com/m04kA/SMC-CourtBooking/internal/api/handlers/get_slots"
	getVenueReservationsHandler "github.com/m04kA/SMC-CourtBooking/internal/api/handlers/get_venue_reservations"
	issueCodeHandler "github.com/m04kA/SMC-CourtBooking/internal/api/handlers/issue_code"
	listPlansHandler "github.com/m04kA/SMC-CourtBooking/internal/api/handlers/list_plans"
	redeemCodeHandler "github.com/m04kA/SMC-CourtBooking/internal/api/handlers/redeem_code"
	renewSubscriptionHandler "github.com/m04kA/SMC-CourtBooking/internal/api/handlers/renew_subscription"
	toggleSlotHandler "github.com/m04kA/SMC-CourtBooking/internal/api/handlers/toggle_slot"
	transferVenueHandler "github.com/m04kA/SMC-CourtBooking/internal/api/handlers/transfer_venue"
	transitionReservationHandler "github.com/m04kA/SMC-CourtBooking/internal/api/handlers/transition_reservation"
	validateCodeHandler "github.com/m04kA/SMC-CourtBooking/internal/api/handlers/validate_code"
	"github.com/m04kA/SMC-CourtBooking/internal/api/middleware"
	"github.com/m04kA/SMC-CourtBooking/internal/config"
	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	invitationRepo "github.com/m04kA/SMC-CourtBooking/internal/infra/storage/invitation"
	planRepo "github.com/m04kA/SMC-CourtBooking/internal/infra/storage/plan"
	reservationRepo "github.com/m04kA/SMC-CourtBooking/internal/infra/storage/reservation"
	subscriptionRepo "github.com/m04kA/SMC-CourtBooking/internal/infra/storage/subscription"
	"github.com/m04kA/SMC-CourtBooking/internal/integrations/notifier"
	invitationsService "github.com/m04kA/SMC-CourtBooking/internal/service/invitations"
	reservationsService "github.com/m04kA/SMC-CourtBooking/internal/service/reservations"
	subscriptionsService "github.com/m04kA/SMC-CourtBooking/internal/service/subscriptions"
	confirmPaymentUC "github.com/m04kA/SMC-CourtBooking/internal/usecase/confirm_payment"
	createReservationUC "github.com/m04kA/SMC-CourtBooking/internal/usecase/create_reservation"
	getSlotsUC "github.com/m04kA/SMC-CourtBooking/internal/usecase/get_slots"
	toggleSlotUC "github.com/m04kA/SMC-CourtBooking/internal/usecase/toggle_slot"
	transitionReservationUC "github.com/m04kA/SMC-CourtBooking/internal/usecase/transition_reservation"
	"github.com/m04kA/SMC-CourtBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-CourtBooking/pkg/locker"
	"github.com/m04kA/SMC-CourtBooking/pkg/logger"
	"github.com/m04kA/SMC-CourtBooking/pkg/metrics"
	"github.com/m04kA/SMC-CourtBooking/pkg/txmanager"
)

// domainMetrics доменные счётчики; при выключенных метриках подставляется metrics.Nop
type domainMetrics interface {
	ObserveTransition(from, to, result string)
	ObserveSlotToggle(action, result string)
	ObserveInvitationValidation(outcome string)
	ObservePlanChange(plan, result string)
}

// slotLocker блокировка расписания площадки; без redis используется locker.Noop
type slotLocker interface {
	Acquire(ctx context.Context, key string) (locker.ReleaseFunc, error)
}

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-CourtBooking...")
	log.Info("Configuration loaded from config.toml")

	// Фоновые задачи (статистика пула, очистка rate limiter) останавливаются закрытием канала
	stopCh := make(chan struct{})

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var observer domainMetrics = metrics.Nop{}

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		observer = metricsCollector
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Executor для репозиториев: с метриками запросов или без
	var executor dbmetrics.DBExecutor = db
	if cfg.Metrics.Enabled {
		executor = dbmetrics.WrapWithDefault(db, metricsCollector, stopCh)
		log.Info("Database metrics collection started")
	}

	txMgr := txmanager.NewTransactionManager(executor)

	reservationRepository := reservationRepo.NewRepository(executor)
	planRepository := planRepo.NewRepository(executor)
	subscriptionRepository := subscriptionRepo.NewRepository(executor)
	invitationRepository := invitationRepo.NewRepository(executor)

	// Блокировки расписания через redis (если включены)
	var scheduleLocker slotLocker = locker.Noop{}
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := redisClient.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			log.Fatal("Failed to ping redis: %v", err)
		}

		scheduleLocker = locker.NewRedisLocker(redisClient, cfg.Redis.LockTTL(), cfg.Redis.LockWait(), log)
		log.Info("Schedule locks enabled (redis=%s, ttl=%s, wait=%s)", cfg.Redis.Addr, cfg.Redis.LockTTL(), cfg.Redis.LockWait())
	} else {
		log.Warn("Redis disabled: concurrent schedule changes are not serialized")
	}

	// Отправитель уведомлений
	notificationSender, err := notifier.New(notifier.Config{
		Provider:        cfg.Notifications.Provider,
		FromAddress:     cfg.Notifications.FromAddress,
		FromName:        cfg.Notifications.FromName,
		Recipient:       cfg.Notifications.Recipient,
		Region:          cfg.Notifications.SES.Region,
		AccessKeyID:     cfg.Notifications.SES.AccessKeyID,
		SecretAccessKey: cfg.Notifications.SES.SecretAccessKey,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize notifier: %v", err)
	}
	log.Info("Notifier initialized (provider=%s)", cfg.Notifications.Provider)

	// Дневной каталог слотов и часовой пояс площадок
	catalog, err := domain.NewDailyCatalog(cfg.Booking.CatalogStartHour, cfg.Booking.CatalogEndHour)
	if err != nil {
		log.Fatal("Invalid booking catalog: %v", err)
	}
	location, err := cfg.Booking.Location()
	if err != nil {
		log.Fatal("Invalid booking timezone: %v", err)
	}
	log.Info("Daily catalog: %d slots from %02d:00 (timezone=%s)", catalog.Len(), cfg.Booking.CatalogStartHour, location)

	// Инициализируем сервисы
	reservationSvc := reservationsService.NewService(reservationRepository, log)
	subscriptionSvc := subscriptionsService.NewService(
		planRepository,
		subscriptionRepository,
		txMgr,
		observer,
		subscriptionsService.Config{
			PeriodDays:              cfg.Subscriptions.PeriodDays,
			FreePlanID:              cfg.Subscriptions.FreePlanID,
			ResetPeriodOnPlanChange: cfg.Subscriptions.ResetPeriodOnPlanChange,
		},
		log,
	)
	invitationSvc := invitationsService.NewService(
		invitationRepository,
		txMgr,
		observer,
		time.Duration(cfg.Invitations.CodeTTLHours)*time.Hour,
		log,
	)

	// Инициализируем use cases
	getSlotsUseCase := getSlotsUC.NewUseCase(reservationRepository, catalog, location, log)

	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		txMgr,
		scheduleLocker,
		catalog,
		location,
		log,
	)

	toggleSlotUseCase := toggleSlotUC.NewUseCase(
		reservationRepository,
		getSlotsUseCase,
		scheduleLocker,
		observer,
		catalog,
		location,
		log,
	)

	transitionReservationUseCase := transitionReservationUC.NewUseCase(
		reservationRepository,
		getSlotsUseCase,
		scheduleLocker,
		observer,
		log,
	)

	confirmPaymentUseCase := confirmPaymentUC.NewUseCase(
		reservationRepository,
		getSlotsUseCase,
		scheduleLocker,
		notificationSender,
		observer,
		log,
	)

	// Инициализируем handlers
	getSlots := getSlotsHandler.NewHandler(getSlotsUseCase, log)
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationSvc, log)
	getVenueReservations := getVenueReservationsHandler.NewHandler(reservationSvc, log)
	toggleSlot := toggleSlotHandler.NewHandler(toggleSlotUseCase, log)
	transitionReservation := transitionReservationHandler.NewHandler(transitionReservationUseCase, log)
	confirmPayment := confirmPaymentHandler.NewHandler(confirmPaymentUseCase, log)

	listPlans := listPlansHandler.NewHandler(subscriptionSvc, log)
	getCurrentPlan := getCurrentPlanHandler.NewHandler(subscriptionSvc, log)
	changePlan := changePlanHandler.NewHandler(subscriptionSvc, log)
	cancelSubscription := cancelSubscriptionHandler.NewHandler(subscriptionSvc, log)
	renewSubscription := renewSubscriptionHandler.NewHandler(subscriptionSvc, log)

	validateCode := validateCodeHandler.NewHandler(invitationSvc, log)
	redeemCode := redeemCodeHandler.NewHandler(invitationSvc, log)
	issueCode := issueCodeHandler.NewHandler(invitationSvc, log)
	expireCode := expireCodeHandler.NewHandler(invitationSvc, log)
	transferVenue := transferVenueHandler.NewHandler(invitationSvc, log)
	codeHistory := codeHistoryHandler.NewHandler(invitationSvc, log)

	// Ограничение частоты запросов к кодам приглашения
	codeLimiter := middleware.NewRateLimiter(cfg.Invitations.RateLimitPerMinute, cfg.Invitations.RateLimitBurst)
	go codeLimiter.Run(stopCh)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Слоты площадки на дату
	api.HandleFunc("/venues/{venueId}/slots", getSlots.Handle).Methods(http.MethodGet)

	// Справочник тарифов
	api.HandleFunc("/plans", listPlans.Handle).Methods(http.MethodGet)

	// Проверка кода приглашения
	api.Handle("/invitations/validate", codeLimiter.Limit(http.HandlerFunc(validateCode.Handle))).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)

	// --- Тариф и подписка администратора ---
	protected.HandleFunc("/admins/{adminId}/plan", getCurrentPlan.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/admins/{adminId}/subscription", changePlan.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/admins/{adminId}/subscription", cancelSubscription.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/admins/{adminId}/subscription/renew", renewSubscription.Handle).Methods(http.MethodPost)

	// --- Активация кода приглашения ---
	protected.Handle("/invitations/redeem", codeLimiter.Limit(http.HandlerFunc(redeemCode.Handle))).Methods(http.MethodPost)

	// ============================================================
	// VENUE ADMIN ROUTES (X-User-Role: admin | superadmin)
	// ============================================================

	admin := api.PathPrefix("").Subrouter()
	admin.Use(middleware.Auth, middleware.RequireRole(middleware.RoleAdmin, middleware.RoleSuperAdmin))

	admin.HandleFunc("/venues/{venueId}/reservations", getVenueReservations.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/venues/{venueId}/slots/{date}/{time}/block", toggleSlot.Handle).Methods(http.MethodPut, http.MethodDelete)
	admin.HandleFunc("/reservations/{reservationId}/status", transitionReservation.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/reservations/{reservationId}/payment", confirmPayment.Handle).Methods(http.MethodPost)

	// ============================================================
	// SUPERADMIN ROUTES (X-User-Role: superadmin)
	// ============================================================

	superadmin := api.PathPrefix("").Subrouter()
	superadmin.Use(middleware.Auth, middleware.RequireRole(middleware.RoleSuperAdmin))

	superadmin.HandleFunc("/invitations", issueCode.Handle).Methods(http.MethodPost)
	superadmin.HandleFunc("/invitations/{code}/expire", expireCode.Handle).Methods(http.MethodPost)
	superadmin.HandleFunc("/invitations/{code}/events", codeHistory.Handle).Methods(http.MethodGet)
	superadmin.HandleFunc("/venues/{venueId}/transfer", transferVenue.Handle).Methods(http.MethodPost)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Дожидаемся уведомлений, отправленных в фоне
	confirmPaymentUseCase.Wait()

	// Останавливаем фоновые задачи
	close(stopCh)

	log.Info("Server stopped gracefully")
}
