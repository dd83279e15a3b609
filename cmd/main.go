package main

import (
	"context"
	"errors"
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
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	adminBlockedSlotsHandler "github.com/m04kA/SMC-CoworkingBooking/internal/api/handlers/admin_blocked_slots"
	adminBookingsHandler "github.com/m04kA/SMC-CoworkingBooking/internal/api/handlers/admin_bookings"
	adminRoomsHandler "github.com/m04kA/SMC-CoworkingBooking/internal/api/handlers/admin_rooms"
	adminUsersHandler "github.com/m04kA/SMC-CoworkingBooking/internal/api/handlers/admin_users"
	cancelBookingHandler "github.com/m04kA/SMC-CoworkingBooking/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-CoworkingBooking/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/m04kA/SMC-CoworkingBooking/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-CoworkingBooking/internal/api/handlers/get_booking"
	getDailyUsageHandler "github.com/m04kA/SMC-CoworkingBooking/internal/api/handlers/get_daily_usage"
	getRoomHandler "github.com/m04kA/SMC-CoworkingBooking/internal/api/handlers/get_room"
	getUserBookingsHandler "github.com/m04kA/SMC-CoworkingBooking/internal/api/handlers/get_user_bookings"
	listRoomsHandler "github.com/m04kA/SMC-CoworkingBooking/internal/api/handlers/list_rooms"
	"github.com/m04kA/SMC-CoworkingBooking/internal/api/middleware"
	"github.com/m04kA/SMC-CoworkingBooking/internal/config"
	blockedSlotsService "github.com/m04kA/SMC-CoworkingBooking/internal/service/blockedslots"
	bookingsService "github.com/m04kA/SMC-CoworkingBooking/internal/service/bookings"
	roomsService "github.com/m04kA/SMC-CoworkingBooking/internal/service/rooms"
	usersService "github.com/m04kA/SMC-CoworkingBooking/internal/service/users"
	createBlockedSlotUC "github.com/m04kA/SMC-CoworkingBooking/internal/usecase/create_blocked_slot"
	createBookingUC "github.com/m04kA/SMC-CoworkingBooking/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-CoworkingBooking/internal/usecase/get_available_slots"
	getDailyUsageUC "github.com/m04kA/SMC-CoworkingBooking/internal/usecase/get_daily_usage"
	"github.com/m04kA/SMC-CoworkingBooking/internal/worker/completion"
	"github.com/m04kA/SMC-CoworkingBooking/pkg/keymutex"
	"github.com/m04kA/SMC-CoworkingBooking/pkg/logger"
	"github.com/m04kA/SMC-CoworkingBooking/pkg/metrics"
	"github.com/m04kA/SMC-CoworkingBooking/pkg/timeutil"
)

const defaultConfigPath = "config.toml"

func main() {
	configPath := defaultConfigPath
	if path, ok := os.LookupEnv("CONFIG_PATH"); ok {
		configPath = path
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
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

	log.Info("Starting SMC-CoworkingBooking...")
	log.Info("Configuration loaded from %s", configPath)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName, prometheus.DefaultRegisterer)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	calendar, err := timeutil.NewCalendar(cfg.Booking.Timezone)
	if err != nil {
		log.Fatal("Failed to load timezone %q: %v", cfg.Booking.Timezone, err)
	}

	stopMetricsCh := make(chan struct{})
	defer close(stopMetricsCh)

	// Подключаем хранилище
	store, err := openStorage(cfg, metricsCollector, stopMetricsCh, log)
	if err != nil {
		log.Fatal("Failed to open storage: %v", err)
	}
	defer store.close()

	// Общая блокировка комнат для всех операций, меняющих занятость
	roomLocks := keymutex.New()

	// Инициализируем сервисы
	roomSvc := roomsService.NewService(
		store.rooms,
		time.Duration(cfg.Cache.RoomTTLSeconds)*time.Second,
		log,
	)
	userSvc := usersService.NewService(store.users, log)
	bookingSvc := bookingsService.NewService(
		store.bookings,
		time.Duration(cfg.Booking.CancelNoticeMinutes)*time.Minute,
		log,
	)
	blockedSlotSvc := blockedSlotsService.NewService(store.blockedSlots, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		store.bookings,
		store.blockedSlots,
		store.txManager,
		roomLocks,
		calendar,
		createBookingUC.Options{
			MaxDurationMinutes: cfg.Booking.MaxDurationMinutes,
			DailyQuotaMinutes:  cfg.Booking.DailyQuotaMinutes,
		},
		metricsCollector,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		roomSvc,
		store.bookings,
		store.blockedSlots,
		calendar,
		getAvailableSlotsUC.Options{
			DayStartHour:    cfg.Booking.DayStartHour,
			DayEndHour:      cfg.Booking.DayEndHour,
			SlotStepMinutes: cfg.Booking.SlotStepMinutes,
		},
		log,
	)

	getDailyUsageUseCase := getDailyUsageUC.NewUseCase(
		roomSvc,
		store.bookings,
		calendar,
		cfg.Booking.DailyQuotaMinutes,
		log,
	)

	createBlockedSlotUseCase := createBlockedSlotUC.NewUseCase(
		roomSvc,
		store.bookings,
		store.blockedSlots,
		store.txManager,
		roomLocks,
		log,
	)

	// Инициализируем handlers
	listRooms := listRoomsHandler.NewHandler(roomSvc, log)
	getRoom := getRoomHandler.NewHandler(roomSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, calendar, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, roomSvc, userSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getDailyUsage := getDailyUsageHandler.NewHandler(getDailyUsageUseCase, calendar, log)
	adminBookings := adminBookingsHandler.NewHandler(bookingSvc, calendar, log)
	adminRooms := adminRoomsHandler.NewHandler(roomSvc, log)
	adminUsers := adminUsersHandler.NewHandler(userSvc, log)
	adminBlockedSlots := adminBlockedSlotsHandler.NewHandler(createBlockedSlotUseCase, blockedSlotSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Metrics middleware и endpoint (публичный, без аутентификации)
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

	api.HandleFunc("/rooms", listRooms.Handle).Methods(http.MethodGet)
	api.HandleFunc("/rooms/{roomId}", getRoom.Handle).Methods(http.MethodGet)

	// Сетка слотов комнаты на день
	api.HandleFunc("/rooms/{roomId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID)
	// ============================================================

	protected := api.NewRoute().Subrouter()
	protected.Use(middleware.Auth(log))

	// Создание бронирования (с ограничением частоты запросов на пользователя)
	var createBookingRoute http.Handler = http.HandlerFunc(createBooking.Handle)
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewUserRateLimiter(
			rate.Limit(cfg.RateLimit.RequestsPerSecond),
			cfg.RateLimit.Burst,
			time.Duration(cfg.RateLimit.IdleTTLSeconds)*time.Second,
		)
		createBookingRoute = middleware.RateLimit(limiter, log)(createBookingRoute)
		log.Info("Rate limit enabled for bookings creation (rps=%.2f, burst=%d, idle_ttl=%ds)",
			cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, cfg.RateLimit.IdleTTLSeconds)
	}
	protected.Handle("/bookings", createBookingRoute).Methods(http.MethodPost)

	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// Использованная квота пользователя в комнате за день
	protected.HandleFunc("/rooms/{roomId}/usage", getDailyUsage.Handle).Methods(http.MethodGet)

	// ============================================================
	// ADMIN ROUTES (требуют роль admin)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.Auth(log), middleware.RequireAdmin(log))

	admin.HandleFunc("/bookings", adminBookings.List).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{bookingId}", adminBookings.Delete).Methods(http.MethodDelete)

	admin.HandleFunc("/rooms", adminRooms.Create).Methods(http.MethodPost)
	admin.HandleFunc("/rooms/{roomId}", adminRooms.Update).Methods(http.MethodPut)
	admin.HandleFunc("/rooms/{roomId}", adminRooms.Delete).Methods(http.MethodDelete)

	admin.HandleFunc("/users", adminUsers.Create).Methods(http.MethodPost)
	admin.HandleFunc("/users", adminUsers.List).Methods(http.MethodGet)
	admin.HandleFunc("/users/{userId}", adminUsers.Delete).Methods(http.MethodDelete)

	admin.HandleFunc("/blocked-slots", adminBlockedSlots.Create).Methods(http.MethodPost)
	admin.HandleFunc("/blocked-slots", adminBlockedSlots.List).Methods(http.MethodGet)
	admin.HandleFunc("/blocked-slots/{slotId}", adminBlockedSlots.Delete).Methods(http.MethodDelete)

	// Настраиваем HTTP сервер
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.HTTPPort),
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Фоновое завершение прошедших бронирований
	completionWorker := completion.NewWorker(
		store.bookings,
		time.Duration(cfg.Booking.CompletionIntervalSeconds)*time.Second,
		log,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("HTTP server listening on port %d", cfg.Server.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		return completionWorker.Run(gCtx)
	})

	// Graceful shutdown
	g.Go(func() error {
		<-gCtx.Done()
		log.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(),
			time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("Service stopped with error: %v", err)
		return
	}

	log.Info("Server exited")
}
