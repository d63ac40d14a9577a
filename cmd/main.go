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

	cancelBookingHandler "github.com/parkhub/parkhub-booking/internal/api/handlers/cancel_booking"
	checkAvailabilityHandler "github.com/parkhub/parkhub-booking/internal/api/handlers/check_availability"
	createBookingHandler "github.com/parkhub/parkhub-booking/internal/api/handlers/create_booking"
	getAdminBookingsHandler "github.com/parkhub/parkhub-booking/internal/api/handlers/get_admin_bookings"
	getBookingHandler "github.com/parkhub/parkhub-booking/internal/api/handlers/get_booking"
	getLevelGridHandler "github.com/parkhub/parkhub-booking/internal/api/handlers/get_level_grid"
	getLocationLotsHandler "github.com/parkhub/parkhub-booking/internal/api/handlers/get_location_lots"
	getLotLevelsHandler "github.com/parkhub/parkhub-booking/internal/api/handlers/get_lot_levels"
	getUserBookingsHandler "github.com/parkhub/parkhub-booking/internal/api/handlers/get_user_bookings"
	listLocationsHandler "github.com/parkhub/parkhub-booking/internal/api/handlers/list_locations"
	"github.com/parkhub/parkhub-booking/internal/api/middleware"
	"github.com/parkhub/parkhub-booking/internal/config"
	bookingRepo "github.com/parkhub/parkhub-booking/internal/infra/storage/booking"
	configurationRepo "github.com/parkhub/parkhub-booking/internal/infra/storage/configuration"
	hierarchyRepo "github.com/parkhub/parkhub-booking/internal/infra/storage/hierarchy"
	historyRepo "github.com/parkhub/parkhub-booking/internal/infra/storage/history"
	slotRepo "github.com/parkhub/parkhub-booking/internal/infra/storage/slot"
	userRepo "github.com/parkhub/parkhub-booking/internal/infra/storage/user"
	bookingsService "github.com/parkhub/parkhub-booking/internal/service/bookings"
	hierarchyService "github.com/parkhub/parkhub-booking/internal/service/hierarchy"
	pricingService "github.com/parkhub/parkhub-booking/internal/service/pricing"
	checkAvailabilityUC "github.com/parkhub/parkhub-booking/internal/usecase/check_availability"
	createBookingUC "github.com/parkhub/parkhub-booking/internal/usecase/create_booking"
	getLevelGridUC "github.com/parkhub/parkhub-booking/internal/usecase/get_level_grid"
	"github.com/parkhub/parkhub-booking/pkg/dbmetrics"
	"github.com/parkhub/parkhub-booking/pkg/logger"
	"github.com/parkhub/parkhub-booking/pkg/metrics"
	"github.com/parkhub/parkhub-booking/pkg/simpletxmanager"
	"github.com/parkhub/parkhub-booking/pkg/txmanager"
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

	log.Info("Starting parkhub-booking...")
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
		bookingRepository       *bookingRepo.Repository
		slotRepository          *slotRepo.Repository
		hierarchyRepository     *hierarchyRepo.Repository
		configurationRepository *configurationRepo.Repository
		userRepository          *userRepo.Repository
		historyRepository       *historyRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		slotRepository = slotRepo.NewRepository(wrappedDB)
		hierarchyRepository = hierarchyRepo.NewRepository(wrappedDB)
		configurationRepository = configurationRepo.NewRepository(wrappedDB)
		userRepository = userRepo.NewRepository(wrappedDB)
		historyRepository = historyRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		slotRepository = slotRepo.NewRepository(db)
		hierarchyRepository = hierarchyRepo.NewRepository(db)
		configurationRepository = configurationRepo.NewRepository(db)
		userRepository = userRepo.NewRepository(db)
		historyRepository = historyRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	pricingSvc := pricingService.NewService(
		cfg.Pricing.BaseHourlyRate,
		cfg.Pricing.MinMultiplier,
		cfg.Pricing.MaxMultiplier,
		cfg.Pricing.HighDemandThreshold,
	)
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		userRepository,
		log,
	)
	hierarchySvc := hierarchyService.NewService(
		hierarchyRepository,
		slotRepository,
		bookingRepository,
		configurationRepository,
		&hierarchyService.RealTimeProvider{},
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		slotRepository,
		userRepository,
		historyRepository,
		pricingSvc,
		txMgr,
		log,
	)
	getLevelGridUseCase := getLevelGridUC.NewUseCase(
		bookingRepository,
		slotRepository,
		hierarchyRepository,
		pricingSvc,
		log,
	)
	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(
		bookingRepository,
		slotRepository,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getAdminBookings := getAdminBookingsHandler.NewHandler(bookingSvc, log)
	getLevelGrid := getLevelGridHandler.NewHandler(getLevelGridUseCase, log)
	checkAvailability := checkAvailabilityHandler.NewHandler(checkAvailabilityUseCase, log)
	listLocations := listLocationsHandler.NewHandler(hierarchySvc, log)
	getLocationLots := getLocationLotsHandler.NewHandler(hierarchySvc, log)
	getLotLevels := getLotLevelsHandler.NewHandler(hierarchySvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
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

	// Иерархия локаций с агрегированной доступностью
	api.HandleFunc("/locations", listLocations.Handle).Methods(http.MethodGet)
	api.HandleFunc("/locations/{locationId}/lots", getLocationLots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/lots/{lotId}/levels", getLotLevels.Handle).Methods(http.MethodGet)

	// Сетка занятости уровня
	api.HandleFunc("/levels/{levelId}/grid", getLevelGrid.Handle).Methods(http.MethodGet)

	// Проверка доступности слота на интервал
	api.HandleFunc("/slots/{slotId}/availability", checkAvailability.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирования
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Отмена бронирования (идемпотентная)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// История бронирований пользователя
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Администрирование ---
	// Выборка бронирований с фильтрацией
	protected.HandleFunc("/admin/bookings", getAdminBookings.Handle).Methods(http.MethodGet)

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
