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

	cancelBookingHandler "github.com/clinicore/CBS-BookingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/clinicore/CBS-BookingService/internal/api/handlers/create_booking"
	createExceptionHandler "github.com/clinicore/CBS-BookingService/internal/api/handlers/create_exception"
	deactivateExceptionHandler "github.com/clinicore/CBS-BookingService/internal/api/handlers/deactivate_exception"
	deleteBookingHandler "github.com/clinicore/CBS-BookingService/internal/api/handlers/delete_booking"
	getAvailabilityHandler "github.com/clinicore/CBS-BookingService/internal/api/handlers/get_availability"
	getBookingHandler "github.com/clinicore/CBS-BookingService/internal/api/handlers/get_booking"
	getClinicBookingsHandler "github.com/clinicore/CBS-BookingService/internal/api/handlers/get_clinic_bookings"
	getPatientBookingsHandler "github.com/clinicore/CBS-BookingService/internal/api/handlers/get_patient_bookings"
	getScheduleHandler "github.com/clinicore/CBS-BookingService/internal/api/handlers/get_schedule"
	updateBookingStatusHandler "github.com/clinicore/CBS-BookingService/internal/api/handlers/update_booking_status"
	upsertScheduleHandler "github.com/clinicore/CBS-BookingService/internal/api/handlers/upsert_schedule"
	"github.com/clinicore/CBS-BookingService/internal/api/middleware"
	"github.com/clinicore/CBS-BookingService/internal/config"
	bookingRepo "github.com/clinicore/CBS-BookingService/internal/infra/storage/booking"
	exceptionRepo "github.com/clinicore/CBS-BookingService/internal/infra/storage/exception"
	legacySlotRepo "github.com/clinicore/CBS-BookingService/internal/infra/storage/legacyslot"
	scheduleRepo "github.com/clinicore/CBS-BookingService/internal/infra/storage/schedule"
	clinicServiceClient "github.com/clinicore/CBS-BookingService/internal/integrations/clinicservice"
	userServiceClient "github.com/clinicore/CBS-BookingService/internal/integrations/userservice"
	bookingsService "github.com/clinicore/CBS-BookingService/internal/service/bookings"
	scheduleService "github.com/clinicore/CBS-BookingService/internal/service/schedule"
	createBookingUC "github.com/clinicore/CBS-BookingService/internal/usecase/create_booking"
	getAvailabilityUC "github.com/clinicore/CBS-BookingService/internal/usecase/get_availability"
	"github.com/clinicore/CBS-BookingService/pkg/dbmetrics"
	"github.com/clinicore/CBS-BookingService/pkg/logger"
	"github.com/clinicore/CBS-BookingService/pkg/metrics"
	"github.com/clinicore/CBS-BookingService/pkg/simpletxmanager"
	"github.com/clinicore/CBS-BookingService/pkg/txmanager"
)

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

	log.Info("Starting CBS-BookingService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
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

	// Инициализируем интеграционных клиентов
	userClient := userServiceClient.NewClient(
		cfg.UserService.URL,
		time.Duration(cfg.UserService.Timeout)*time.Second,
		log,
	)
	clinicClient := clinicServiceClient.NewClient(
		cfg.ClinicService.URL,
		time.Duration(cfg.ClinicService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (UserService=%s timeout=%ds, ClinicService=%s timeout=%ds)",
		cfg.UserService.URL, cfg.UserService.Timeout, cfg.ClinicService.URL, cfg.ClinicService.Timeout)

	// Интерфейс менеджера транзакций, общий для обеих реализаций
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
		DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
	}

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository    *bookingRepo.Repository
		scheduleRepository   *scheduleRepo.Repository
		exceptionRepository  *exceptionRepo.Repository
		legacySlotRepository *legacySlotRepo.Repository
		txMgr                TxManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		exceptionRepository = exceptionRepo.NewRepository(wrappedDB)
		legacySlotRepository = legacySlotRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		exceptionRepository = exceptionRepo.NewRepository(db)
		legacySlotRepository = legacySlotRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		userClient,
		log,
	)
	scheduleSvc := scheduleService.NewService(
		scheduleRepository,
		exceptionRepository,
		userClient,
		txMgr,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		clinicClient,
		userClient,
		txMgr,
		log,
	)

	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		bookingRepository,
		scheduleRepository,
		exceptionRepository,
		legacySlotRepository,
		clinicClient,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	deleteBooking := deleteBookingHandler.NewHandler(bookingSvc, log)
	getPatientBookings := getPatientBookingsHandler.NewHandler(bookingSvc, log)
	getClinicBookings := getClinicBookingsHandler.NewHandler(bookingSvc, log)
	upsertSchedule := upsertScheduleHandler.NewHandler(scheduleSvc, log)
	getSchedule := getScheduleHandler.NewHandler(scheduleSvc, log)
	createException := createExceptionHandler.NewHandler(scheduleSvc, log)
	deactivateException := deactivateExceptionHandler.NewHandler(scheduleSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Metrics middleware и endpoint (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Доступное время записи на дату
	api.HandleFunc("/clinicas/{clinicaId}/especializacoes/{especializacaoId}/disponibilidade",
		getAvailability.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи на прием ---
	protected.HandleFunc("/agendamentos", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/agendamentos/{agendamentoId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/agendamentos/{agendamentoId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/agendamentos/{agendamentoId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/agendamentos/{agendamentoId}", deleteBooking.Handle).Methods(http.MethodDelete)

	// --- История записей ---
	protected.HandleFunc("/pacientes/{pacienteId}/agendamentos", getPatientBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/clinicas/{clinicaId}/agendamentos", getClinicBookings.Handle).Methods(http.MethodGet)

	// --- Управление расписанием (для клиник) ---
	protected.HandleFunc("/clinicas/{clinicaId}/especializacoes/{especializacaoId}/horarios",
		upsertSchedule.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/clinicas/{clinicaId}/especializacoes/{especializacaoId}/horarios",
		getSchedule.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/clinicas/{clinicaId}/especializacoes/{especializacaoId}/excecoes",
		createException.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/clinicas/{clinicaId}/especializacoes/{especializacaoId}/excecoes/{excecaoId}/deactivate",
		deactivateException.Handle).Methods(http.MethodPatch)

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

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
