package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	// часовой пояс дашборда должен загружаться и в контейнере без системной базы tz
	_ "time/tzdata"

	"github.com/asquebay/order-dashboard/internal/config"
	"github.com/asquebay/order-dashboard/internal/lib/logger"
	"github.com/asquebay/order-dashboard/internal/repository/backend"
	"github.com/asquebay/order-dashboard/internal/repository/cache"
	"github.com/asquebay/order-dashboard/internal/service"
	httptransport "github.com/asquebay/order-dashboard/internal/transport/http"
	"github.com/asquebay/order-dashboard/internal/transport/kafka"
)

func main() {
	// 1. Инициализация конфигурации
	cfg := config.MustLoad("")

	// 2. Инициализация логгера
	log := logger.New(cfg.Logger.Level, cfg.Logger.Format)
	log.Info("starting order-dashboard", slog.String("log_level", cfg.Logger.Level))

	loc, err := cfg.Dashboard.Location()
	if err != nil {
		log.Error("invalid dashboard timezone", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 3. Клиент REST API бэкенда
	client := backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout, log)
	log.Info("backend client initialized", slog.String("base_url", client.BaseURL()))

	// 4. Инициализация кэшей участников и материалов
	memberCache := cache.NewMemberCache(log)
	materialCache := cache.NewMaterialCache(log)

	// 5. Инициализация сервисного слоя
	orderSvc := service.NewOrderService(client, memberCache, materialCache, cfg.Backend.MaxParallel, loc, log)
	dashboardSvc := service.NewDashboardService(client, cfg.Dashboard.TopVendors, loc, log)

	// 6. Первоначальная загрузка заказов и участников
	loadCtx, loadCancel := context.WithTimeout(context.Background(), 2*cfg.Backend.Timeout)
	if err := orderSvc.Load(loadCtx); err != nil {
		// не фатальная ошибка: поиск вернёт 503, пока заказы не будут перезагружены
		log.Error("failed to load initial data", slog.String("error", err.Error()))
	}
	loadCancel()

	// 7. Инициализация и запуск Kafka-консьюмера
	ctx, cancel := context.WithCancel(context.Background())
	var consumer *kafka.Consumer
	if cfg.Kafka.Enabled {
		consumer = kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.Topic, cfg.Kafka.GroupID, orderSvc, log)
		go consumer.Run(ctx)
	}

	// 8. Инициализация и запуск HTTP-сервера
	handler := httptransport.NewHandler(orderSvc, dashboardSvc, log)
	httpServer := httptransport.NewServer(cfg.HTTPServer.Port, handler, cfg.HTTPServer.Timeout)
	log.Info("starting http server", slog.String("port", httpServer.Addr()))

	go func() {
		if err := httpServer.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server failed to start", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// 9. Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info("shutting down application")
	cancel() // сигнал для консьюмера на завершение

	// создаем контекст с таймаутом для шатдауна сервера
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("http server shutdown failed", slog.String("error", err.Error()))
	}

	if consumer != nil {
		if err := consumer.Close(); err != nil {
			log.Error("error closing kafka consumer", slog.String("error", err.Error()))
		}
	}

	log.Info("application stopped")
}
