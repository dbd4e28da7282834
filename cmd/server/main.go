package main

import (
	"context"
	"flag"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/reflection"

	grpcAdapter "github.com/quentinrf/plant-monitor/services/ambient-light-service/internal/adapters/grpc"
	"github.com/quentinrf/plant-monitor/services/ambient-light-service/internal/adapters/memory"
	"github.com/quentinrf/plant-monitor/services/ambient-light-service/internal/adapters/mock"
	"github.com/quentinrf/plant-monitor/services/ambient-light-service/internal/adapters/mqtt"
	"github.com/quentinrf/plant-monitor/services/ambient-light-service/internal/adapters/sqlite"
	"github.com/quentinrf/plant-monitor/services/ambient-light-service/internal/config"
	"github.com/quentinrf/plant-monitor/services/ambient-light-service/internal/domain"
	"github.com/quentinrf/plant-monitor/services/ambient-light-service/internal/ports"
	"github.com/quentinrf/plant-monitor/services/ambient-light-service/pkg/lightpb"
	"github.com/quentinrf/plant-monitor/services/ambient-light-service/pkg/tlsconfig"
)

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "path to YAML config file")
	flag.Parse()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	setupLogger(cfg.Log)

	log.Info().Msg("starting ambient light service")

	// Initialize repository
	var repo domain.EventRepository
	switch cfg.Storage.Type {
	case "sqlite":
		r, err := sqlite.NewEventRepository(cfg.Storage.DBPath)
		if err != nil {
			log.Fatal().Err(err).Str("db_path", cfg.Storage.DBPath).Msg("failed to open SQLite database")
		}
		defer r.Close()
		repo = r
		log.Info().Str("db_path", cfg.Storage.DBPath).Msg("initialized SQLite repository")
	default:
		repo = memory.NewEventRepository()
		log.Info().Msg("initialized in-memory repository")
	}

	// Initialize sensor
	var sensor ports.LightSensor
	switch cfg.Sensor.Type {
	case "cycle":
		sensor = mock.NewCycleSensor(cfg.Sensor.CycleMinLux, cfg.Sensor.CycleMaxLux, cfg.Sensor.CyclePeriod)
		log.Info().Dur("period", cfg.Sensor.CyclePeriod).Msg("initialized cycling mock sensor")
	default:
		sensor = mock.NewFakeSensor(cfg.Sensor.BaseLux, cfg.Sensor.VariationLux)
		log.Info().Msg("initialized mock sensor")
	}
	defer sensor.Close()

	// Initialize publisher
	var publisher ports.Publisher = ports.NopPublisher{}
	if cfg.MQTT.Enabled {
		p, err := mqtt.Connect(mqtt.Config{
			Broker:      cfg.MQTT.Broker,
			ClientID:    cfg.MQTT.ClientID,
			Username:    cfg.MQTT.Username,
			Password:    cfg.MQTT.Password,
			TopicPrefix: cfg.MQTT.TopicPrefix,
			PublishRaw:  cfg.MQTT.PublishRaw,
		})
		if err != nil {
			log.Fatal().Err(err).Str("broker", cfg.MQTT.Broker).Msg("failed to connect to MQTT broker")
		}
		defer p.Close()
		publisher = p
		log.Info().Str("topic_prefix", cfg.MQTT.TopicPrefix).Msg("MQTT publishing enabled")
	}

	// Wire monitor -> recorder
	monitor := ports.NewGuardedMonitor(domain.NewAmbientLightMonitor(domain.MonitorConfig{
		Thresholds: domain.Thresholds{
			DarkLux:   cfg.Monitor.DarkLux,
			BrightLux: cfg.Monitor.BrightLux,
		},
		MinInterval: cfg.Monitor.MinInterval,
		Enabled:     cfg.Monitor.Enabled,
	}))
	recorder := ports.NewEventRecorder(repo, publisher)
	monitor.SetObserver(recorder)

	log.Info().
		Float64("dark_lux", cfg.Monitor.DarkLux).
		Float64("bright_lux", cfg.Monitor.BrightLux).
		Dur("min_interval", cfg.Monitor.MinInterval).
		Bool("enabled", cfg.Monitor.Enabled).
		Msg("initialized ambient light monitor")

	handler := grpcAdapter.NewAmbientLightHandler(monitor, repo, recorder)

	// Configure TLS if certificates are provided
	var serverOpts []grpc.ServerOption
	if cfg.TLS.Cert != "" {
		tlsCfg, err := tlsconfig.LoadServerTLS(cfg.TLS.Cert, cfg.TLS.Key, cfg.TLS.CA)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load TLS config")
		}
		serverOpts = append(serverOpts, grpc.Creds(credentials.NewTLS(tlsCfg)))
		log.Info().Msg("mTLS enabled")
	} else {
		log.Warn().Msg("TLS_CERT not set, starting without TLS (dev mode only)")
	}

	grpcServer := grpc.NewServer(serverOpts...)
	lightpb.RegisterAmbientLightServiceServer(grpcServer, handler)

	// Enable gRPC reflection for grpcurl testing
	reflection.Register(grpcServer)

	listener, err := net.Listen("tcp", fmt.Sprintf(":%s", cfg.Port))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to listen")
	}

	log.Info().Str("port", cfg.Port).Msg("gRPC server listening")

	go func() {
		if err := grpcServer.Serve(listener); err != nil {
			log.Fatal().Err(err).Msg("failed to serve")
		}
	}()

	// Register sensor binding and retention
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	binding := ports.NewSensorBinding(sensor, monitor, cfg.Sensor.PollInterval)
	go binding.Start(ctx)

	if cfg.Storage.Retention > 0 {
		go recorder.RunRetention(ctx, retentionSweep(cfg.Storage.Retention), cfg.Storage.Retention)
	}

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	cancel() // unregister sensor binding
	grpcServer.GracefulStop()

	log.Info().Msg("server stopped")
}

// setupLogger applies level and output format
func setupLogger(cfg config.LogConfig) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Format == "json" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}
}

// retentionSweep runs cleanup daily, or more often for short retention windows
func retentionSweep(retention time.Duration) time.Duration {
	if sweep := retention / 4; sweep < 24*time.Hour {
		if sweep < time.Minute {
			return time.Minute
		}
		return sweep
	}
	return 24 * time.Hour
}
