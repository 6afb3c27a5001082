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
	_ "time/tzdata"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/m04kA/SMC-SlotReservationService/internal/api/handlers"
	createHoldHandler "github.com/m04kA/SMC-SlotReservationService/internal/api/handlers/create_hold"
	getAvailabilityHandler "github.com/m04kA/SMC-SlotReservationService/internal/api/handlers/get_availability"
	getBookingHandler "github.com/m04kA/SMC-SlotReservationService/internal/api/handlers/get_booking"
	getBookingsHandler "github.com/m04kA/SMC-SlotReservationService/internal/api/handlers/get_bookings"
	getScheduleHandler "github.com/m04kA/SMC-SlotReservationService/internal/api/handlers/get_schedule"
	promoteHoldHandler "github.com/m04kA/SMC-SlotReservationService/internal/api/handlers/promote_hold"
	releaseHoldHandler "github.com/m04kA/SMC-SlotReservationService/internal/api/handlers/release_hold"
	"github.com/m04kA/SMC-SlotReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-SlotReservationService/internal/config"
	"github.com/m04kA/SMC-SlotReservationService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SlotReservationService/internal/infra/storage/hold"
	"github.com/m04kA/SMC-SlotReservationService/internal/infra/storage/memory"
	commerceClient "github.com/m04kA/SMC-SlotReservationService/internal/integrations/commerce"
	bookingsService "github.com/m04kA/SMC-SlotReservationService/internal/service/bookings"
	reaperService "github.com/m04kA/SMC-SlotReservationService/internal/service/reaper"
	scheduleService "github.com/m04kA/SMC-SlotReservationService/internal/service/schedule"
	createHoldUC "github.com/m04kA/SMC-SlotReservationService/internal/usecase/create_hold"
	getAvailabilityUC "github.com/m04kA/SMC-SlotReservationService/internal/usecase/get_availability"
	promoteHoldUC "github.com/m04kA/SMC-SlotReservationService/internal/usecase/promote_hold"
	releaseHoldUC "github.com/m04kA/SMC-SlotReservationService/internal/usecase/release_hold"
	"github.com/m04kA/SMC-SlotReservationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SlotReservationService/pkg/logger"
	"github.com/m04kA/SMC-SlotReservationService/pkg/metrics"
	"github.com/m04kA/SMC-SlotReservationService/pkg/txmanager"
)

// holdStore объединяет контракты удержаний всех потребителей
type holdStore interface {
	createHoldUC.HoldRepository
	releaseHoldUC.HoldRepository
	promoteHoldUC.HoldRepository
	getAvailabilityUC.HoldRepository
	reaperService.HoldRepository
}

// bookingStore объединяет контракты бронирований всех потребителей
type bookingStore interface {
	createHoldUC.BookingRepository
	promoteHoldUC.BookingRepository
	getAvailabilityUC.BookingRepository
	bookingsService.BookingRepository
}

type txManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// engineMetrics nil при выключенных метриках
type engineMetrics interface {
	createHoldUC.Metrics
	releaseHoldUC.Metrics
	promoteHoldUC.Metrics
	reaperService.Metrics
	middleware.HTTPMetrics
	dbmetrics.Observer
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

	log.Info("Starting SMC-SlotReservationService...")

	// Инициализируем метрики (если включены)
	var engMetrics engineMetrics
	registry := prometheus.NewRegistry()
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		engMetrics = metrics.New(cfg.Metrics.ServiceName, registry)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Хранилище удержаний и бронирований
	var (
		holds    holdStore
		bookings bookingStore
		txMgr    txManager
	)

	switch cfg.Storage.Driver {
	case config.StorageDriverMemory:
		store := memory.NewStore()
		holds = memory.NewHoldRepository(store)
		bookings = memory.NewBookingRepository(store)
		txMgr = store
		log.Warn("Using in-memory storage: state is lost on restart")

	default:
		db, err := sql.Open("postgres", cfg.Database.DSN())
		if err != nil {
			log.Fatal("Failed to connect to database: %v", err)
		}
		defer db.Close()

		// Настраиваем connection pool
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

		if err := db.Ping(); err != nil {
			log.Fatal("Failed to ping database: %v", err)
		}
		log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

		wrappedDB := dbmetrics.WrapWithDefault(db, engMetrics, stopMetricsCh)

		holds = hold.NewRepository(wrappedDB)
		bookings = booking.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	}

	// Расписания ресурсов
	domainSchedules, err := cfg.DomainSchedules()
	if err != nil {
		log.Fatal("Failed to build schedules: %v", err)
	}
	scheduleSvc, err := scheduleService.NewService(domainSchedules, cfg.Booking.DefaultResourceID, log)
	if err != nil {
		log.Fatal("Failed to initialize schedule service: %v", err)
	}
	log.Info("Loaded %d schedule(s), default resource=%s", len(domainSchedules), cfg.Booking.DefaultResourceID)

	// Опции создания удержаний
	holdOpts := []createHoldUC.Option{
		createHoldUC.WithHoldTTL(cfg.Booking.HoldTTL()),
		createHoldUC.WithMetrics(engMetrics),
	}
	if cfg.Commerce.Enabled() {
		client := commerceClient.NewClient(
			cfg.Commerce.URL,
			cfg.Commerce.PublishableKey,
			time.Duration(cfg.Commerce.Timeout)*time.Second,
			log,
		)
		holdOpts = append(holdOpts, createHoldUC.WithCommerceClient(client))
		log.Info("Commerce client initialized (url=%s, timeout=%ds)", cfg.Commerce.URL, cfg.Commerce.Timeout)
	}

	// Инициализируем сервисы и use cases
	bookingSvc := bookingsService.NewService(bookings, scheduleSvc, log)
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(holds, bookings, scheduleSvc, txMgr, log)
	createHoldUseCase := createHoldUC.NewUseCase(holds, bookings, scheduleSvc, txMgr, log, holdOpts...)
	releaseHoldUseCase := releaseHoldUC.NewUseCase(holds, engMetrics, log)
	promoteHoldUseCase := promoteHoldUC.NewUseCase(holds, bookings, txMgr, engMetrics, log)

	// Фоновое истечение удержаний
	reaperCtx, stopReaper := context.WithCancel(context.Background())
	reaper := reaperService.NewService(holds, engMetrics, log, cfg.Booking.ReaperInterval(), cfg.Booking.ReaperBatchSize)
	reaperDone := make(chan struct{})
	go func() {
		defer close(reaperDone)
		reaper.Run(reaperCtx)
	}()

	// Инициализируем handlers
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	getSchedule := getScheduleHandler.NewHandler(scheduleSvc, log)
	createHold := createHoldHandler.NewHandler(createHoldUseCase, log)
	releaseHold := releaseHoldHandler.NewHandler(releaseHoldUseCase, log)
	promoteHold := promoteHoldHandler.NewHandler(promoteHoldUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getBookings := getBookingsHandler.NewHandler(bookingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if engMetrics != nil {
		r.Use(middleware.MetricsMiddleware(engMetrics))
		r.Handle(cfg.Metrics.Path, promhttp.HandlerFor(registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	// ============================================================
	// STORE ROUTES (витрина, без аутентификации)
	// ============================================================

	storefront := r.PathPrefix("/store/bookings").Subrouter()
	storefront.HandleFunc("/availability", getAvailability.Handle).Methods(http.MethodGet)
	storefront.HandleFunc("/schedule", getSchedule.Handle).Methods(http.MethodGet)

	holdRoutes := storefront.PathPrefix("/hold").Subrouter()
	if cfg.RateLimit.Enabled {
		holdRoutes.Use(middleware.NewRateLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst).Middleware)
		log.Info("Hold rate limit enabled: %d req/min, burst=%d", cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst)
	}
	holdRoutes.HandleFunc("", createHold.Handle).Methods(http.MethodPost)
	holdRoutes.HandleFunc("", releaseHold.Handle).Methods(http.MethodDelete)

	// ============================================================
	// INTERNAL ROUTES (требуют X-Internal-Token)
	// ============================================================

	internal := r.PathPrefix("/internal/bookings").Subrouter()
	internal.Use(middleware.InternalAuth(cfg.Booking.InternalToken))
	if cfg.Booking.InternalToken == "" {
		log.Warn("booking.internal_token is empty: internal routes are not protected")
	}

	internal.HandleFunc("/promote", promoteHold.Handle).Methods(http.MethodPost)
	internal.HandleFunc("/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	internal.HandleFunc("", getBookings.Handle).Methods(http.MethodGet)

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

	// Останавливаем reaper после того, как новые запросы перестали поступать
	stopReaper()
	<-reaperDone

	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}
