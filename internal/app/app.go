package app

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/viper"

	docstorepg "github.com/corray333/digital-store/internal/dal/docstore/postgres"
	"github.com/corray333/digital-store/internal/dal/postgres"
	"github.com/corray333/digital-store/internal/dal/rabbitmq"
	leadrepo "github.com/corray333/digital-store/internal/dal/repositories/lead"
	orderrepo "github.com/corray333/digital-store/internal/dal/repositories/order"
	outboxrepo "github.com/corray333/digital-store/internal/dal/repositories/outbox/postgres"
	productrepo "github.com/corray333/digital-store/internal/dal/repositories/product"
	"github.com/corray333/digital-store/internal/otel"
	outboxmodel "github.com/corray333/digital-store/internal/service/models/outbox"
	"github.com/corray333/digital-store/internal/service/services/catalogsvc"
	"github.com/corray333/digital-store/internal/service/services/downloadsvc"
	"github.com/corray333/digital-store/internal/service/services/leadsvc"
	"github.com/corray333/digital-store/internal/service/services/ordersvc"
	httptransport "github.com/corray333/digital-store/internal/transport/http"
	outboxworker "github.com/corray333/digital-store/internal/worker/outbox"
)

// App represents the application.
type App struct {
	catalogSvc     *catalogsvc.CatalogService
	orderSvc       *ordersvc.OrderService
	downloadSvc    *downloadsvc.DownloadService
	leadSvc        *leadsvc.LeadService
	transport      *httptransport.HTTPTransport
	outboxWorker   *outboxworker.Worker
	rabbitMqClient *rabbitmq.Client
	postgresClient *postgres.Client
	otelController *otel.OtelController
}

// MustNewApp creates a new application.
func MustNewApp() *App {
	var otelController *otel.OtelController
	if viper.GetBool("tracing.enabled") {
		otelController = otel.MustInitOtel()
	}

	postgresClient := postgres.MustNewClient()
	store := docstorepg.NewStore(postgresClient.Pool())

	productRepository := productrepo.NewProductRepository(store)
	orderRepository := orderrepo.NewOrderRepository(store)
	leadRepository := leadrepo.NewLeadRepository(store)
	outboxRepository := outboxrepo.NewOutboxRepository(postgresClient.Pool())

	linkTTL := ordersvc.DefaultLinkTTL
	if hours := viper.GetInt("download.link_ttl_hours"); hours > 0 {
		linkTTL = time.Duration(hours) * time.Hour
	}

	catalogSvc := catalogsvc.MustNewCatalogService(
		catalogsvc.WithProductRepository(productRepository),
	)

	orderSvc := ordersvc.MustNewOrderService(
		ordersvc.WithProductRepository(productRepository),
		ordersvc.WithOrderRepository(orderRepository),
		ordersvc.WithOutboxRepository(outboxRepository),
		ordersvc.WithLinkTTL(linkTTL),
	)

	downloadSvc := downloadsvc.MustNewDownloadService(
		downloadsvc.WithOrderRepository(orderRepository),
		downloadsvc.WithProductRepository(productRepository),
	)

	leadSvc := leadsvc.MustNewLeadService(
		leadsvc.WithLeadRepository(leadRepository),
		leadsvc.WithOutboxRepository(outboxRepository),
	)

	transport := httptransport.NewHTTPTransport(catalogSvc, orderSvc, downloadSvc, leadSvc, store)
	transport.RegisterRoutes()

	app := &App{
		catalogSvc:     catalogSvc,
		orderSvc:       orderSvc,
		downloadSvc:    downloadSvc,
		leadSvc:        leadSvc,
		transport:      transport,
		postgresClient: postgresClient,
		otelController: otelController,
	}

	if viper.GetBool("rabbitmq.enabled") {
		rabbitMqClient := rabbitmq.MustNewClient()
		for _, queue := range []string{outboxmodel.QueueOrderPlaced, outboxmodel.QueueLeadCaptured} {
			if _, err := rabbitMqClient.DeclareQueue(rabbitmq.DeclareQueueConfig{
				Name:       queue,
				Durable:    false,
				Exclusive:  false,
				AutoDelete: false,
			}); err != nil {
				panic(err)
			}
		}

		app.rabbitMqClient = rabbitMqClient
		app.outboxWorker = outboxworker.NewWorker(outboxRepository, rabbitMqClient)
	}

	return app
}

// Run starts the application.
// Tracks interrupt signal to gracefully shut down the application.
func (a *App) Run() {
	// Create a channel to receive OS signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		slog.Info("Starting HTTP server")
		if err := a.transport.Run(); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	if a.outboxWorker != nil {
		go func() {
			slog.Info("Starting outbox worker")
			a.outboxWorker.Start(ctx)
		}()
	}

	<-stop
	slog.Info("Shutdown signal received")
	cancel()

	a.gracefulShutdown()
}

// gracefulShutdown performs graceful shutdown of all application components.
// It shuts down components sequentially: HTTP server, outbox worker, RabbitMQ, PostgreSQL, and OpenTelemetry.
func (a *App) gracefulShutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.transport.Shutdown(ctx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped gracefully")
	}

	if a.outboxWorker != nil {
		a.outboxWorker.Stop()
		slog.Info("Outbox worker stopped gracefully")
	}

	if a.rabbitMqClient != nil {
		if err := a.rabbitMqClient.Close(); err != nil {
			slog.Error("RabbitMQ connection close error", "error", err)
		} else {
			slog.Info("RabbitMQ connection closed gracefully")
		}
	}

	a.postgresClient.Close()

	if a.otelController != nil {
		if err := a.otelController.Shutdown(); err != nil {
			slog.Error("Otel trace provider connection close error", "error", err)
		} else {
			slog.Info("Otel trace provider connection closed gracefully")
		}
	}

	select {
	case <-ctx.Done():
		slog.Warn("Shutdown timeout exceeded")
	default:
		slog.Info("Application shutdown complete")
	}
}
