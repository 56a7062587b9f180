package app

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/pkrylov/shareit-service/config"
	"github.com/pkrylov/shareit-service/internal/events"
	"github.com/pkrylov/shareit-service/internal/handler"
	"github.com/pkrylov/shareit-service/internal/repository"
	"github.com/pkrylov/shareit-service/internal/server"
	"github.com/pkrylov/shareit-service/internal/service"
	"github.com/pkrylov/shareit-service/migrations"
	"github.com/pkrylov/shareit-service/pkg/kafka"
	"github.com/pkrylov/shareit-service/pkg/logger"
	"github.com/pkrylov/shareit-service/pkg/postgres"
)

func Run(cfg *config.Config) error {
	log := logger.NewLogger(cfg.Log, "shareit")
	db, err := postgres.NewPostgresDB(context.Background(), &cfg.Database, migrations.MigrationFiles)
	if err != nil {
		return fmt.Errorf("db init %v", err)
	}

	userRepo := repository.NewUsers(db, log)
	itemRepo := repository.NewItems(db, log)
	bookingRepo := repository.NewBookings(db, log)
	requestRepo := repository.NewRequests(db, log)

	var producer *events.Producer
	if cfg.Kafka.Enabled() {
		p, err := kafka.NewProducer(cfg.Kafka)
		if err != nil {
			return fmt.Errorf("kafka producer %v", err)
		}
		defer p.Close() //nolint:errcheck
		producer = events.NewProducer(p, cfg.Kafka.Topic, log)
	}

	bookingSvc := service.NewBookingService(bookingRepo, itemRepo, userRepo, producer, log)
	itemSvc := service.NewItemService(itemRepo, userRepo, bookingRepo, requestRepo, log)
	userSvc := service.NewUserService(userRepo, log)
	requestSvc := service.NewRequestService(requestRepo, itemRepo, userRepo, log)

	h := handler.New(bookingSvc, itemSvc, userSvc, requestSvc, log)

	srv := server.NewServer(cfg.Server, h.NewRouter())
	log.Info("http server start ON: ",
		zap.String("addr",
			net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)))
	go func() {
		if err := srv.Run(); err != nil {
			log.Error("server run", zap.Error(err))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	termSig := <-sig

	log.Debug("Graceful shutdown", zap.Any("signal", termSig))

	closeCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err = srv.Stop(closeCtx); err != nil {
		log.Error("srv.Stop", zap.Error(err))
	}
	db.Close()
	log.Info("Graceful shutdown finished")
	return nil
}
