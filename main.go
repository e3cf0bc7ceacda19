package main

import (
	"context"
	"log"
	"time"

	"pointofsale/config"
	httpapi "pointofsale/internal/api/http"
	"pointofsale/internal/domain"
	"pointofsale/internal/notifier"
	"pointofsale/internal/service"
	"pointofsale/internal/storage"
)

const eventsTopic = "pos.events"

func main() {
	db := config.MustInitPostgres()
	defer db.Close()
	if err := storage.EnsureSchema(db); err != nil {
		log.Fatal("Failed to ensure schema:", err)
	}

	rdb := config.MustInitRedis()
	defer rdb.Close()

	writer := config.NewKafkaWriter(eventsTopic)
	defer writer.Close()
	publisher := storage.NewKafkaPublisher(writer)

	cache := storage.NewRedisCache(rdb, 24*time.Hour)
	taxRate := config.TaxRate()

	catalogRepo := storage.NewCatalogRepository(db)
	sessionRepo := storage.NewSessionRepository(db)
	orderRepo := storage.NewOrderRepository(db)
	promoRepo := storage.NewPromotionRepository(db)
	paymentRepo := storage.NewPaymentRepository(db)

	qr := &service.DefaultQRGenerator{BaseURL: config.GuestBaseURL()}

	handler := httpapi.NewHandler(
		service.NewCatalogService(catalogRepo),
		service.NewSessionService(sessionRepo, qr, publisher),
		service.NewOrderService(orderRepo, catalogRepo, sessionRepo, publisher, taxRate),
		service.NewCheckoutService(paymentRepo, orderRepo, cache, publisher, domain.StatusConfirmed),
		service.NewPromotionService(promoRepo),
	)

	reader := config.NewKafkaReader(eventsTopic, "order-board")
	defer reader.Close()
	consumer := notifier.NewConsumer(reader, notifier.NewBoard(rdb))
	go consumer.Start(context.Background())

	httpapi.StartServer(":"+config.Port(), httpapi.NewRouter(handler))
}
