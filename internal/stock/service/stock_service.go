package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/ruolez/EggsReserve/internal/domain"
	"github.com/ruolez/EggsReserve/internal/errors"
)

type StockRepository interface {
	Get(ctx context.Context) (*domain.Stock, error)
	SetQuantity(ctx context.Context, newQuantity int) (*domain.Stock, error)
}

type StockService struct {
	repo   StockRepository
	logger *zap.Logger
}

func NewStockService(repo StockRepository, logger *zap.Logger) *StockService {
	return &StockService{
		repo:   repo,
		logger: logger,
	}
}

func (s *StockService) GetStock(ctx context.Context) (*domain.Stock, error) {
	return s.repo.Get(ctx)
}

func (s *StockService) SetStock(ctx context.Context, newQuantity int) (*domain.Stock, error) {
	if newQuantity < 0 {
		return nil, errors.NewValidationError("stock quantity must not be negative",
			errors.ValidationDetail{Field: "quantity", Message: "quantity must be >= 0"})
	}

	stock, err := s.repo.SetQuantity(ctx, newQuantity)
	if err != nil {
		return nil, err
	}

	s.logger.Info("stock updated",
		zap.Int("currentQuantity", stock.CurrentQuantity),
		zap.Int("maxQuantity", stock.MaxQuantity))

	return stock, nil
}

// Replenish raises the counter by increment, clamped to max_quantity. The
// daily top-up job is just another SetStock caller; a register already at
// max is a no-op, not an error.
func (s *StockService) Replenish(ctx context.Context, increment int) (*domain.Stock, error) {
	stock, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}

	target := stock.CurrentQuantity + increment
	if target > stock.MaxQuantity {
		target = stock.MaxQuantity
	}

	if target == stock.CurrentQuantity {
		return stock, nil
	}

	return s.SetStock(ctx, target)
}
