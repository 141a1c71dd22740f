package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/carenotes/internal/api/http"
	"github.com/spec-kit/carenotes/internal/api/http/handlers"
	"github.com/spec-kit/carenotes/internal/auth"
	"github.com/spec-kit/carenotes/internal/cache"
	"github.com/spec-kit/carenotes/internal/config"
	"github.com/spec-kit/carenotes/internal/events"
	"github.com/spec-kit/carenotes/internal/observability"
	"github.com/spec-kit/carenotes/internal/persistence"
	"github.com/spec-kit/carenotes/internal/repository"
	"github.com/spec-kit/carenotes/internal/service"
	"github.com/spec-kit/carenotes/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	metrics := observability.NewMetrics()
	matchCache := cache.NewMatchCache(redis.Client, cfg.Matching.CacheTTL())
	dispatcher := events.NewInMemoryDispatcher()

	pool := pg.PoolHandle()
	staffRepo := repository.NewStaffRepository(pool)
	resetRepo := repository.NewPasswordResetRepository(pool)
	childRepo := repository.NewChildRepository(pool)
	orgRepo := repository.NewOrganizationRepository(pool)
	placementRepo := repository.NewPlacementRepository(pool)
	feeRepo := repository.NewPlacementFeeRepository(pool)
	reviewRepo := repository.NewPlacementReviewRepository(pool)
	agreementRepo := repository.NewPlacementAgreementRepository(pool)
	requestRepo := repository.NewPlacementRequestRepository(pool)
	employeeRepo := repository.NewEmployeeRepository(pool)
	timeOffRepo := repository.NewTimeOffRepository(pool)
	shiftSwapRepo := repository.NewShiftSwapRepository(pool)
	medicationRepo := repository.NewMedicationRepository(pool)
	pocketMoneyRepo := repository.NewPocketMoneyRepository(pool)

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)
	authService := service.NewAuthService(service.AuthDependencies{
		StaffRepo: staffRepo,
		ResetRepo: resetRepo,
		Tokens:    tokens,
		Config:    cfg.Auth,
		Logger:    logger,
	})
	childService := service.NewChildService(childRepo)
	orgService := service.NewOrganizationService(orgRepo, matchCache, logger)
	placementService := service.NewPlacementService(service.PlacementDependencies{
		PlacementRepo: placementRepo,
		FeeRepo:       feeRepo,
		ReviewRepo:    reviewRepo,
		AgreementRepo: agreementRepo,
		RequestRepo:   requestRepo,
		ChildRepo:     childRepo,
		OrgRepo:       orgRepo,
		Dispatcher:    dispatcher,
	})
	matchingService := service.NewMatchingService(service.MatchingDependencies{
		RequestRepo: requestRepo,
		ChildRepo:   childRepo,
		OrgRepo:     orgRepo,
		MatchCache:  matchCache,
		Dispatcher:  dispatcher,
		Metrics:     metrics,
		Logger:      logger,
	})
	hrService := service.NewHRService(service.HRDependencies{
		EmployeeRepo:  employeeRepo,
		TimeOffRepo:   timeOffRepo,
		ShiftSwapRepo: shiftSwapRepo,
		Dispatcher:    dispatcher,
	})
	medicationService := service.NewMedicationService(medicationRepo, childRepo, dispatcher, logger)
	financeService := service.NewFinanceService(pocketMoneyRepo, childRepo, dispatcher)
	notificationService := service.NewNotificationService(cfg.Notification, logger)

	worker.StartNotificationWorker(dispatcher, notificationService)

	authMiddleware := auth.NewAuthMiddleware(tokens, staffRepo)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis, metrics),
		Staff:          handlers.NewStaffHandler(authService),
		Children:       handlers.NewChildrenHandler(childService),
		Organizations:  handlers.NewOrganizationsHandler(orgService),
		Placements:     handlers.NewPlacementsHandler(placementService),
		Matching:       handlers.NewMatchingHandler(matchingService),
		HR:             handlers.NewHRHandler(hrService),
		Medications:    handlers.NewMedicationsHandler(medicationService),
		Finance:        handlers.NewFinanceHandler(financeService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
