package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"
	"google.golang.org/grpc/health"

	grpcmonitor "github.com/dtroode/healthnest-server/internal/api/grpc/monitor"
	grpcrouter "github.com/dtroode/healthnest-server/internal/api/grpc/router"
	grpcserver "github.com/dtroode/healthnest-server/internal/api/grpc/server"
	httpctx "github.com/dtroode/healthnest-server/internal/api/http/context"
	httprouter "github.com/dtroode/healthnest-server/internal/api/http/router"
	httpserver "github.com/dtroode/healthnest-server/internal/api/http/server"
	"github.com/dtroode/healthnest-server/internal/config"
	"github.com/dtroode/healthnest-server/internal/logger"
	"github.com/dtroode/healthnest-server/internal/model"
	"github.com/dtroode/healthnest-server/internal/ownership"
	"github.com/dtroode/healthnest-server/internal/repository/memory"
	"github.com/dtroode/healthnest-server/internal/repository/mongodb"
	"github.com/dtroode/healthnest-server/internal/repository/postgres"
	"github.com/dtroode/healthnest-server/internal/server"
	"github.com/dtroode/healthnest-server/internal/service"
	storage "github.com/dtroode/healthnest-server/internal/storage/minio"
	"github.com/dtroode/healthnest-server/internal/store"
	"github.com/dtroode/healthnest-server/internal/token"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the REST API and the gRPC health service",
		RunE:  runServe,
	}
}

// backend is the opened document store.
type backend struct {
	stores *store.Stores
	pinger model.Pinger
	close  func() error
}

func runServe(_ *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.NewWithFile(cfg.LogLevel, logger.File{
		Path:       cfg.LogFile.Path,
		MaxSizeMB:  cfg.LogFile.MaxSizeMB,
		MaxBackups: cfg.LogFile.MaxBackups,
		MaxAgeDays: cfg.LogFile.MaxAgeDays,
		Compress:   cfg.LogFile.Compress,
	})

	db, err := openBackend(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to initialize store", "driver", cfg.StoreDriver, "error", err)
	}
	defer func() {
		if err := db.close(); err != nil {
			logger.Error("failed to close store", "error", err)
		}
	}()
	logger.Info("store initialized", "driver", cfg.StoreDriver)

	resolver := ownership.NewResolver(logger)
	chains := ownership.NewChains(
		db.stores.Patients,
		db.stores.HealthRecords,
		db.stores.Medications,
		db.stores.MedicationDoses,
		db.stores.MedicationReminders,
	)
	tokenManager := token.NewJWT(cfg.JWT.Secret, cfg.JWT.AccessTTL)

	services := httprouter.Services{
		Users:               service.NewUser(db.stores.Users, tokenManager, cfg.PasswordCost, logger),
		Patients:            service.NewPatient(db.stores.Patients, resolver, chains, logger),
		HealthRecords:       service.NewHealthRecord(db.stores.HealthRecords, resolver, chains, logger),
		Medications:         service.NewMedication(db.stores.Medications, resolver, chains, logger),
		MedicationDoses:     service.NewMedicationDose(db.stores.MedicationDoses, resolver, chains, logger),
		MedicationReminders: service.NewMedicationReminder(db.stores.MedicationReminders, resolver, chains, logger),
		Documents:           service.NewDocument(openStorage(ctx, cfg.Storage, logger), logger),
	}

	echo := httprouter.New(services, db.pinger, httpctx.NewManager(), cfg.HTTP.BodyLimit, logger).Register()
	httpSrv := httpserver.NewHTTPServer(echo, fmt.Sprintf(":%s", cfg.HTTP.Port))
	httpSL := server.NewSecurityLayer(cfg.HTTP.EnableHTTPS, cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)

	healthServer := health.NewServer()
	monitor := grpcmonitor.New(db.pinger, healthServer, cfg.GRPC.HealthInterval, cfg.GRPC.PingTimeout, logger)
	grpcSrv := grpcserver.NewGRPCServer(grpcrouter.New(healthServer, logger).Register(), fmt.Sprintf(":%s", cfg.GRPC.Port))
	grpcSL := server.NewSecurityLayer(cfg.GRPC.EnableHTTPS, cfg.GRPC.CertFileName, cfg.GRPC.PrivateKeyFileName)

	var wg sync.WaitGroup
	start := func(name string, s model.Server, sl model.SecurityLayer) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			logger.Info("Starting server on", "server", name, "address", s.Address())
			if err := s.Start(sl); err != nil {
				logger.Error("failed to start server", "server", name, "error", err)
				stop()
			}
		}()
	}
	start("http", httpSrv, httpSL)
	start("grpc", grpcSrv, grpcSL)

	wg.Add(1)
	go func() {
		defer wg.Done()
		monitor.Run(ctx)
	}()

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer shutdownCancel()

	for _, s := range []model.Server{httpSrv, grpcSrv} {
		if err := s.Stop(shutdownCtx); err != nil {
			logger.Error("error during server shutdown", "error", err, "address", s.Address())
		}
	}

	wg.Wait()
	logger.Info("shutdown complete")
	return nil
}

func openBackend(ctx context.Context, cfg *config.Config) (*backend, error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		conn, err := postgres.NewConnection(ctx, cfg.Database.DSN)
		if err != nil {
			return nil, err
		}
		return &backend{stores: store.Postgres(conn), pinger: conn, close: conn.Close}, nil

	case config.DriverMemory:
		db := memory.NewDatabase()
		return &backend{stores: store.Memory(db), pinger: db, close: db.Close}, nil

	default:
		conn, err := mongodb.NewConnection(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
		if err != nil {
			return nil, err
		}
		return &backend{stores: store.Mongo(conn), pinger: conn, close: conn.Close}, nil
	}
}

// openStorage returns nil when the blob store is unconfigured or unreachable,
// which makes uploads answer 503.
func openStorage(ctx context.Context, cfg config.Storage, logger *logger.Logger) model.Storage {
	if !cfg.Configured() {
		logger.Warn("document storage is not configured, uploads are disabled")
		return nil
	}

	client, err := storage.NewClient(ctx, storage.Config{
		Endpoint:  cfg.Endpoint,
		AccessKey: cfg.AccessKey,
		SecretKey: cfg.SecretKey,
		Bucket:    cfg.Bucket,
		UseSSL:    cfg.UseSSL,
		PublicURL: cfg.PublicURL,
	})
	if err != nil {
		logger.Error("failed to initialize storage client, uploads are disabled", "error", err)
		return nil
	}
	return client
}
