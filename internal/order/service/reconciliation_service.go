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

type OrderRepository interface {
	FindByOrderNumber(ctx context.Context, orderNumber string) (*domain.Order, error)
	FindDetailByOrderID(ctx context.Context, orderID int64) (*domain.OrderDetail, error)
	CreateWithDetail(ctx context.Context, order *domain.Order, detail *domain.OrderDetail) (*domain.Order, error)
	UpdateWithDetail(ctx context.Context, order *domain.Order) error
	Delete(ctx context.Context, orderNumber string) error
}

// OrderChange carries the admin-editable order fields. Nil fields are left
// untouched.
type OrderChange struct {
	Status    *string
	Quantity  *int
	IsFlagged *bool
}

// ReconciliationService pairs every order mutation with the stock delta it
// implies, so current_quantity always equals max_quantity minus the sum of
// reserved order quantities. The stock side is applied first through the
// atomic validated mutator; if the order side then fails, the stock delta is
// reversed (best effort) before the original error is surfaced.
type ReconciliationService struct {
	stockRepo StockRepository
	orderRepo OrderRepository
	logger    *zap.Logger
}

func NewReconciliationService(stockRepo StockRepository, orderRepo OrderRepository, logger *zap.Logger) *ReconciliationService {
	return &ReconciliationService{
		stockRepo: stockRepo,
		orderRepo: orderRepo,
		logger:    logger,
	}
}

// CreateOrder reserves order.Quantity units and creates the order with its
// detail. On InsufficientStockError no order-side record exists afterward.
func (s *ReconciliationService) CreateOrder(ctx context.Context, order *domain.Order, detail *domain.OrderDetail) (*domain.Order, error) {
	stock, err := s.stockRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	if order.Quantity > stock.CurrentQuantity {
		return nil, errors.NewInsufficientStockError(order.Quantity, stock.CurrentQuantity)
	}

	if _, err := s.stockRepo.SetQuantity(ctx, stock.CurrentQuantity-order.Quantity); err != nil {
		if _, ok := errors.IsValidationError(err); ok {
			// A concurrent reservation won the race between read and write.
			return nil, errors.NewInsufficientStockError(order.Quantity, stock.CurrentQuantity)
		}
		return nil, err
	}

	created, err := s.orderRepo.CreateWithDetail(ctx, order, detail)
	if err != nil {
		return nil, s.compensate(ctx, stock.CurrentQuantity, "order creation failed after stock reservation", err)
	}

	s.logger.Info("order created",
		zap.String("orderNumber", created.OrderNumber),
		zap.Int("quantity", created.Quantity),
		zap.Int("stockBefore", stock.CurrentQuantity))

	return created, nil
}

// UpdateOrder applies the supplied field changes. Only a quantity change
// touches the stock register; status and flag edits are pure metadata.
func (s *ReconciliationService) UpdateOrder(ctx context.Context, orderNumber string, change OrderChange) (*domain.Order, error) {
	order, err := s.orderRepo.FindByOrderNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}

	detail, err := s.orderRepo.FindDetailByOrderID(ctx, order.ID)
	if err != nil {
		return nil, err
	}

	delta := 0
	if change.Quantity != nil && *change.Quantity != order.Quantity {
		// Positive when the order shrinks (stock released), negative when
		// it grows (more stock reserved).
		delta = order.Quantity - *change.Quantity
	}

	var stockBefore int
	if delta != 0 {
		stock, err := s.stockRepo.Get(ctx)
		if err != nil {
			return nil, err
		}
		stockBefore = stock.CurrentQuantity

		if delta < 0 && -delta > stock.CurrentQuantity {
			return nil, errors.NewInsufficientStockError(-delta, stock.CurrentQuantity)
		}

		if _, err := s.stockRepo.SetQuantity(ctx, stock.CurrentQuantity+delta); err != nil {
			if _, ok := errors.IsValidationError(err); ok && delta < 0 {
				return nil, errors.NewInsufficientStockError(-delta, stock.CurrentQuantity)
			}
			return nil, err
		}
	}

	updated := *order
	if change.Status != nil {
		updated.Status = *change.Status
	}
	if change.Quantity != nil {
		updated.Quantity = *change.Quantity
		updated.Total = domain.OrderTotal(detail.Sale, *change.Quantity)
	}
	if change.IsFlagged != nil {
		updated.IsFlagged = *change.IsFlagged
	}

	if err := s.orderRepo.UpdateWithDetail(ctx, &updated); err != nil {
		if delta != 0 {
			return nil, s.compensate(ctx, stockBefore, "order update failed after stock adjustment", err)
		}
		return nil, err
	}

	if delta != 0 {
		s.logger.Info("order quantity changed",
			zap.String("orderNumber", orderNumber),
			zap.Int("oldQuantity", order.Quantity),
			zap.Int("newQuantity", updated.Quantity),
			zap.Int("stockDelta", delta))
	}

	return &updated, nil
}

// DeleteOrder removes the order and refunds its full current quantity to
// the register, regardless of status: completion never consumed stock a
// second time, so deletion never over-refunds.
func (s *ReconciliationService) DeleteOrder(ctx context.Context, orderNumber string) error {
	order, err := s.orderRepo.FindByOrderNumber(ctx, orderNumber)
	if err != nil {
		return err
	}

	stock, err := s.stockRepo.Get(ctx)
	if err != nil {
		return err
	}

	if _, err := s.stockRepo.SetQuantity(ctx, stock.CurrentQuantity+order.Quantity); err != nil {
		return err
	}

	if err := s.orderRepo.Delete(ctx, orderNumber); err != nil {
		return s.compensate(ctx, stock.CurrentQuantity, "order deletion failed after stock release", err)
	}

	s.logger.Info("order deleted",
		zap.String("orderNumber", orderNumber),
		zap.Int("quantityReleased", order.Quantity))

	return nil
}

// compensate restores the register to its pre-operation quantity after the
// order side of a paired mutation failed. A failed rollback is the one
// state this service cannot repair, so it is logged at error level with a
// distinct signature and wrapped in a CompensationError.
func (s *ReconciliationService) compensate(ctx context.Context, previousQuantity int, message string, cause error) error {
	if _, rollbackErr := s.stockRepo.SetQuantity(ctx, previousQuantity); rollbackErr != nil {
		s.logger.Error("STOCK COMPENSATION FAILED: register inconsistent with orders",
			zap.Int("expectedQuantity", previousQuantity),
			zap.NamedError("cause", cause),
			zap.NamedError("rollbackError", rollbackErr))
		return errors.NewCompensationError(message, cause, rollbackErr)
	}

	s.logger.Warn("stock delta rolled back after failed order mutation",
		zap.Int("restoredQuantity", previousQuantity),
		zap.Error(cause))
	return cause
}
