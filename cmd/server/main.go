package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/ruolez/EggsReserve/internal/config"
	"github.com/ruolez/EggsReserve/internal/coop"
	"github.com/ruolez/EggsReserve/internal/expense"
	"github.com/ruolez/EggsReserve/internal/harvest"
	"github.com/ruolez/EggsReserve/internal/infrastructure/logger"
	"github.com/ruolez/EggsReserve/internal/infrastructure/mysql"
	"github.com/ruolez/EggsReserve/internal/notify"
	"github.com/ruolez/EggsReserve/internal/order"
	"github.com/ruolez/EggsReserve/internal/product"
	"github.com/ruolez/EggsReserve/internal/report"
	"github.com/ruolez/EggsReserve/internal/scheduler"
	"github.com/ruolez/EggsReserve/internal/server"
	"github.com/ruolez/EggsReserve/internal/stock"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	db, err := mysql.NewConnection(cfg.Database)
	if err != nil {
		zapLogger.Fatal("connecting to database", zap.Error(err))
	}
	defer db.Close()
	zapLogger.Info("database connected")

	stockCtrl, stockSvc := stock.NewModule(db, zapLogger)
	emailSettingsCtrl, notifier := notify.NewModule(db, zapLogger)
	orderCtrl := order.NewModule(db, notifier, zapLogger)
	productCtrl := product.NewModule(db, zapLogger)
	coopCtrl := coop.NewModule(db, zapLogger)
	harvestCtrl := harvest.NewModule(db, zapLogger)
	expenseCtrl := expense.NewModule(db, zapLogger)
	reportCtrl := report.NewModule(db, zapLogger)

	router := server.NewRouter(server.Controllers{
		Stock:         stockCtrl,
		Orders:        orderCtrl,
		Products:      productCtrl,
		Coops:         coopCtrl,
		Harvests:      harvestCtrl,
		Expenses:      expenseCtrl,
		Reports:       reportCtrl,
		EmailSettings: emailSettingsCtrl,
	}, zapLogger)

	sched := scheduler.NewScheduler(cfg.Scheduler, stockSvc, zapLogger)
	sched.Start()
	defer sched.Stop()

	srv := server.New(cfg.Server.Port, router, zapLogger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}()

	<-quit
	zapLogger.Info("received shutdown signal")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Fatal("server shutdown failed", zap.Error(err))
	}

	zapLogger.Info("server stopped gracefully")
}
