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

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelAppointmentHandler "github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/internal/api/handlers/cancel_appointment"
	createAppointmentHandler "github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/internal/api/handlers/create_appointment"
	getAppointmentHandler "github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/internal/api/handlers/get_available_slots"
	getClientAppointmentsHandler "github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/internal/api/handlers/get_client_appointments"
	getEmployeeAgendaHandler "github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/internal/api/handlers/get_employee_agenda"
	getTenantSettingsHandler "github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/internal/api/handlers/get_tenant_settings"
	updateAppointmentStatusHandler "github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/internal/api/handlers/update_appointment_status"
	updateTenantSettingsHandler "github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/internal/api/handlers/update_tenant_settings"
	"github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/internal/api/middleware"
	"github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/internal/config"
	"github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/internal/domain"
	appointmentRepo "github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/internal/infra/storage/appointment"
	holidayRepo "github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/internal/infra/storage/holiday"
	serviceRepo "github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/internal/infra/storage/service"
	shiftRepo "github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/internal/infra/storage/shift"
	tenantRepo "github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/internal/infra/storage/tenant"
	appointmentsService "github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/internal/service/appointments"
	"github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/internal/service/schedule"
	tenantSettingsService "github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/internal/service/tenantsettings"
	createAppointmentUC "github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/internal/usecase/get_available_slots"
	"github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/pkg/dbmetrics"
	"github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/pkg/logger"
	"github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/pkg/metrics"
	"github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/pkg/simpletxmanager"
	"github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/pkg/ttlcache"
	"github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/pkg/txmanager"
	"github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/pkg/types"
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

	log.Info("Starting scheduling service...")
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

	// Инициализируем репозитории (с метриками или без)
	var (
		tenantRepository      *tenantRepo.Repository
		shiftRepository       *shiftRepo.Repository
		serviceRepository     *serviceRepo.Repository
		appointmentRepository *appointmentRepo.Repository
		holidayRepository     *holidayRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		tenantRepository = tenantRepo.NewRepository(wrappedDB)
		shiftRepository = shiftRepo.NewRepository(wrappedDB)
		serviceRepository = serviceRepo.NewRepository(wrappedDB)
		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		holidayRepository = holidayRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		tenantRepository = tenantRepo.NewRepository(db)
		shiftRepository = shiftRepo.NewRepository(db)
		serviceRepository = serviceRepo.NewRepository(db)
		appointmentRepository = appointmentRepo.NewRepository(db)
		holidayRepository = holidayRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем кэши провайдеров
	tenantCache := ttlcache.New[*domain.Tenant]()
	ownerCache := ttlcache.New[uuid.UUID]()
	shiftCache := ttlcache.New[*domain.Shift]()
	serviceCache := ttlcache.New[*domain.ServiceInfo]()
	appointmentCache := ttlcache.New[[]*domain.Appointment]()
	holidayCache := ttlcache.New[[]*domain.Holiday]()
	intervalCache := ttlcache.New[int]()
	slotsResultCache := ttlcache.New[[]types.TimeString]()

	// Инициализируем провайдеры расписания
	tenantProvider := schedule.NewTenantProvider(tenantRepository, tenantCache, ownerCache, log)
	shiftProvider := schedule.NewShiftProvider(shiftRepository, shiftCache, log)
	serviceProvider := schedule.NewServiceInfoProvider(serviceRepository, serviceCache, log)
	appointmentProvider := schedule.NewAppointmentProvider(appointmentRepository, appointmentCache, log)
	holidayProvider := schedule.NewHolidayProvider(holidayRepository, holidayCache, log)
	intervalProvider := schedule.NewSlotIntervalProvider(tenantRepository, intervalCache, log)

	// Инициализируем сервисы
	appointmentSvc := appointmentsService.NewService(
		appointmentRepository,
		serviceRepository,
		tenantRepository,
		appointmentProvider,
		log,
	)
	settingsSvc := tenantSettingsService.NewService(
		tenantRepository,
		intervalProvider,
		log,
	)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		tenantProvider,
		shiftProvider,
		serviceProvider,
		appointmentProvider,
		holidayProvider,
		intervalProvider,
		slotsResultCache,
		log,
	)

	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		shiftRepository,
		serviceRepository,
		holidayRepository,
		tenantProvider,
		appointmentProvider,
		txMgr,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentSvc, log)
	updateAppointmentStatus := updateAppointmentStatusHandler.NewHandler(appointmentSvc, log)
	getClientAppointments := getClientAppointmentsHandler.NewHandler(appointmentSvc, log)
	getEmployeeAgenda := getEmployeeAgendaHandler.NewHandler(appointmentSvc, log)
	getTenantSettings := getTenantSettingsHandler.NewHandler(settingsSvc, log)
	updateTenantSettings := updateTenantSettingsHandler.NewHandler(settingsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Получение доступных слотов для записи
	api.HandleFunc("/businesses/{slug}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи ---
	// Создание записи к сотруднику
	protected.HandleFunc("/businesses/{slug}/appointments", createAppointment.Handle).Methods(http.MethodPost)

	// Получение записи по ID
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)

	// Отмена записи
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)

	// Обновление статуса записи (для бизнеса)
	protected.HandleFunc("/appointments/{appointmentId}/status", updateAppointmentStatus.Handle).Methods(http.MethodPatch)

	// История записей клиента
	protected.HandleFunc("/tenants/{tenantId}/clients/{clientId}/appointments", getClientAppointments.Handle).Methods(http.MethodGet)

	// --- Управление бизнесом ---
	// Расписание сотрудника
	protected.HandleFunc("/tenants/{tenantId}/employees/{employeeId}/agenda", getEmployeeAgenda.Handle).Methods(http.MethodGet)

	// Настройки расписания тенанта
	protected.HandleFunc("/tenants/{tenantId}/settings", getTenantSettings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/tenants/{tenantId}/settings", updateTenantSettings.Handle).Methods(http.MethodPut)

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
