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

	gorillaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"

	approveReservationHandler "github.com/condohub/reservation-service/internal/api/handlers/approve_reservation"
	bookSlotHandler "github.com/condohub/reservation-service/internal/api/handlers/book_slot"
	cancelReservationHandler "github.com/condohub/reservation-service/internal/api/handlers/cancel_reservation"
	createAreaHandler "github.com/condohub/reservation-service/internal/api/handlers/create_area"
	deleteAreaHandler "github.com/condohub/reservation-service/internal/api/handlers/delete_area"
	getAreaHandler "github.com/condohub/reservation-service/internal/api/handlers/get_area"
	getManagerFeedHandler "github.com/condohub/reservation-service/internal/api/handlers/get_manager_feed"
	getRequesterFeedHandler "github.com/condohub/reservation-service/internal/api/handlers/get_requester_feed"
	getReservationHandler "github.com/condohub/reservation-service/internal/api/handlers/get_reservation"
	getSlotsHandler "github.com/condohub/reservation-service/internal/api/handlers/get_slots"
	getUserReservationsHandler "github.com/condohub/reservation-service/internal/api/handlers/get_user_reservations"
	listAreasHandler "github.com/condohub/reservation-service/internal/api/handlers/list_areas"
	listReservationsHandler "github.com/condohub/reservation-service/internal/api/handlers/list_reservations"
	markSeenHandler "github.com/condohub/reservation-service/internal/api/handlers/mark_seen"
	rejectReservationHandler "github.com/condohub/reservation-service/internal/api/handlers/reject_reservation"
	updateAreaHandler "github.com/condohub/reservation-service/internal/api/handlers/update_area"
	"github.com/condohub/reservation-service/internal/api/middleware"
	"github.com/condohub/reservation-service/internal/app"
	"github.com/condohub/reservation-service/internal/config"
	slotsCache "github.com/condohub/reservation-service/internal/infra/cache/slots"
	areaRepo "github.com/condohub/reservation-service/internal/infra/storage/area"
	reservationRepo "github.com/condohub/reservation-service/internal/infra/storage/reservation"
	directoryClient "github.com/condohub/reservation-service/internal/integrations/directory"
	mailerClient "github.com/condohub/reservation-service/internal/integrations/mailer"
	digestJob "github.com/condohub/reservation-service/internal/jobs/digest"
	areasService "github.com/condohub/reservation-service/internal/service/areas"
	notificationsService "github.com/condohub/reservation-service/internal/service/notifications"
	reservationsService "github.com/condohub/reservation-service/internal/service/reservations"
	bookSlotUC "github.com/condohub/reservation-service/internal/usecase/book_slot"
	getSlotsUC "github.com/condohub/reservation-service/internal/usecase/get_slots"
	"github.com/condohub/reservation-service/pkg/dbmetrics"
	"github.com/condohub/reservation-service/pkg/logger"
	"github.com/condohub/reservation-service/pkg/metrics"
	"github.com/condohub/reservation-service/pkg/simpletxmanager"
	"github.com/condohub/reservation-service/pkg/txmanager"
)

func main() {
	// Carrega a configuração
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Inicializa o logger
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting reservation-service...")
	log.Info("Configuration loaded from config.toml")

	// Inicializa as métricas (se habilitadas)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New()
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Conecta ao banco de dados
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Configura o connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Verifica a conexão
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Aplica as migrações pendentes
	if err := app.Migrate(context.Background(), db, cfg.Database.Migrations); err != nil {
		log.Fatal("Failed to apply migrations: %v", err)
	}
	log.Info("Migrations applied from %s", cfg.Database.Migrations)

	// Cliente do cadastro de moradores
	directory := directoryClient.NewClient(
		cfg.Directory.URL,
		time.Duration(cfg.Directory.Timeout)*time.Second,
		log,
	)
	log.Info("Directory client initialized (url=%s, timeout=%ds)", cfg.Directory.URL, cfg.Directory.Timeout)

	// Mailer (se habilitado)
	var mailer *mailerClient.Mailer
	if cfg.Mailer.Enabled {
		mailer = mailerClient.New(
			cfg.Mailer.APIKey,
			cfg.Mailer.FromName,
			cfg.Mailer.FromEmail,
			cfg.Mailer.ManagerEmail,
			log,
		)
		log.Info("Mailer initialized (from=%s)", cfg.Mailer.FromEmail)
	}

	// Cache da grade de horários (se o Redis estiver habilitado)
	var gridCache *slotsCache.Cache
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatal("Failed to ping redis: %v", err)
		}
		defer redisClient.Close()

		gridCache = slotsCache.NewCache(redisClient, time.Duration(cfg.Redis.TTL)*time.Second)
		log.Info("Slot grid cache enabled (addr=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.TTL)
	}

	// Repositórios e transaction manager (com métricas ou sem)
	var (
		areaRepository        *areaRepo.Repository
		reservationRepository *reservationRepo.Repository
	)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		areaRepository = areaRepo.NewRepository(wrappedDB)
		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		areaRepository = areaRepo.NewRepository(db)
		reservationRepository = reservationRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Cache e mailer entram pelos contratos dos consumidores; com o
	// recurso desligado o campo fica nil de verdade, não nil tipado
	var (
		bookCache        bookSlotUC.SlotCache
		slotsGridCache   getSlotsUC.SlotCache
		reservationCache reservationsService.SlotCache
		areaCache        areasService.SlotCache
	)
	if gridCache != nil {
		bookCache = gridCache
		slotsGridCache = gridCache
		reservationCache = gridCache
		areaCache = gridCache
	}

	var decisionMailer reservationsService.Mailer
	if mailer != nil {
		decisionMailer = mailer
	}

	// Inicializa os serviços
	reservationSvc := reservationsService.NewService(
		reservationRepository,
		directory,
		decisionMailer,
		reservationCache,
		log,
	)
	areaSvc := areasService.NewService(
		areaRepository,
		reservationRepository,
		areaCache,
		log,
	)
	notificationSvc := notificationsService.NewService(reservationRepository, log)

	// Inicializa os use cases
	bookSlotUseCase := bookSlotUC.NewUseCase(
		reservationRepository,
		areaRepository,
		directory,
		bookCache,
		txMgr,
		log,
	)
	getSlotsUseCase := getSlotsUC.NewUseCase(
		reservationRepository,
		areaRepository,
		slotsGridCache,
		log,
	)

	// Inicializa os handlers
	listAreas := listAreasHandler.NewHandler(areaSvc, log)
	getArea := getAreaHandler.NewHandler(areaSvc, log)
	getSlots := getSlotsHandler.NewHandler(getSlotsUseCase, log)
	createArea := createAreaHandler.NewHandler(areaSvc, log)
	updateArea := updateAreaHandler.NewHandler(areaSvc, log)
	deleteArea := deleteAreaHandler.NewHandler(areaSvc, log)
	bookSlot := bookSlotHandler.NewHandler(bookSlotUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationSvc, log)
	listReservations := listReservationsHandler.NewHandler(reservationSvc, log)
	getUserReservations := getUserReservationsHandler.NewHandler(reservationSvc, log)
	approveReservation := approveReservationHandler.NewHandler(reservationSvc, log)
	rejectReservation := rejectReservationHandler.NewHandler(reservationSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationSvc, log)
	getManagerFeed := getManagerFeedHandler.NewHandler(notificationSvc, log)
	getRequesterFeed := getRequesterFeedHandler.NewHandler(notificationSvc, log)
	markSeen := markSeenHandler.NewHandler(notificationSvc, log)

	// Configura o roteador
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (apenas o escopo do condomínio via X-Condo-ID)
	// ============================================================

	public := api.PathPrefix("").Subrouter()
	public.Use(middleware.CondoScope)

	// Catálogo de áreas comuns
	public.HandleFunc("/areas", listAreas.Handle).Methods(http.MethodGet)
	public.HandleFunc("/areas/{areaId}", getArea.Handle).Methods(http.MethodGet)

	// Grade de disponibilidade de uma área
	public.HandleFunc("/areas/{areaId}/slots", getSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (exigem identidade completa nos headers)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Áreas (gestão do síndico) ---
	protected.HandleFunc("/areas", createArea.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/areas/{areaId}", updateArea.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/areas/{areaId}", deleteArea.Handle).Methods(http.MethodDelete)

	// --- Reservas ---
	protected.HandleFunc("/reservations", bookSlot.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/reservations", listReservations.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{reservationId}", cancelReservation.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/reservations/{reservationId}/approve", approveReservation.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/reservations/{reservationId}/reject", rejectReservation.Handle).Methods(http.MethodPost)

	// Histórico de reservas do morador
	protected.HandleFunc("/users/{userId}/reservations", getUserReservations.Handle).Methods(http.MethodGet)

	// --- Feed de notificações ---
	protected.HandleFunc("/notifications/manager", getManagerFeed.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/notifications/requester", getRequesterFeed.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/notifications/seen", markSeen.Handle).Methods(http.MethodPost)

	// Job de resumo de pendências para o síndico
	var cronRunner *cron.Cron
	if cfg.Digest.Enabled {
		if mailer == nil {
			log.Warn("Digest enabled but mailer is disabled, skipping digest job")
		} else {
			cronRunner = cron.New()
			job := digestJob.New(
				reservationRepository,
				mailer,
				time.Duration(cfg.Digest.MaxAge)*time.Hour,
				log,
			)
			if _, err := cronRunner.AddJob(cfg.Digest.Spec, job); err != nil {
				log.Fatal("Failed to schedule digest job: %v", err)
			}
			cronRunner.Start()
			log.Info("Pending digest job scheduled (spec=%q, max_age=%dh)", cfg.Digest.Spec, cfg.Digest.MaxAge)
		}
	}

	// CORS para o frontend do condomínio
	corsHandler := gorillaHandlers.CORS(
		gorillaHandlers.AllowedOrigins([]string{"*"}),
		gorillaHandlers.AllowedMethods([]string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete,
		}),
		gorillaHandlers.AllowedHeaders([]string{
			"Content-Type", middleware.HeaderUserID, middleware.HeaderRole, middleware.HeaderCondoID,
		}),
	)(r)

	// Cria o servidor HTTP
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      corsHandler,
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

	// Aguarda o sinal de término
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	if cronRunner != nil {
		<-cronRunner.Stop().Done()
		log.Info("Digest job stopped")
	}

	// Para a coleta de métricas do connection pool
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
