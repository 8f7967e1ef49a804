package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/ruolez/EggsReserve/internal/config"
	"github.com/ruolez/EggsReserve/internal/domain"
)

type StockReplenisher interface {
	Replenish(ctx context.Context, increment int) (*domain.Stock, error)
}

// Scheduler runs the daily stock top-up. The job is just another caller of
// the validated stock mutator; clamping to max happens in the service.
type Scheduler struct {
	cron   *cron.Cron
	stock  StockReplenisher
	cfg    config.SchedulerConfig
	logger *zap.Logger
}

func NewScheduler(cfg config.SchedulerConfig, stock StockReplenisher, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Scheduler{
		cron:   cron.New(),
		stock:  stock,
		cfg:    cfg,
		logger: logger,
	}
}

func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("replenishCron", s.cfg.ReplenishCron))

	_, err := s.cron.AddFunc(s.cfg.ReplenishCron, s.replenishStock)
	if err != nil {
		s.logger.Error("failed to schedule stock replenishment", zap.Error(err))
	}

	s.cron.Start()
}

func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) replenishStock() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	stock, err := s.stock.Replenish(ctx, s.cfg.ReplenishIncrement)
	if err != nil {
		s.logger.Error("stock replenishment failed", zap.Error(err))
		return
	}

	s.logger.Info("stock replenished",
		zap.Int("currentQuantity", stock.CurrentQuantity),
		zap.Int("maxQuantity", stock.MaxQuantity))
}
