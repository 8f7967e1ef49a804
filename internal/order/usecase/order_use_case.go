package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ruolez/EggsReserve/internal/domain"
	"github.com/ruolez/EggsReserve/internal/dto"
	apperrors "github.com/ruolez/EggsReserve/internal/errors"
	"github.com/ruolez/EggsReserve/internal/order/service"
)

type ProductRepository interface {
	FindByName(ctx context.Context, name string) (*domain.Product, error)
}

type OrderReconciler interface {
	CreateOrder(ctx context.Context, order *domain.Order, detail *domain.OrderDetail) (*domain.Order, error)
	UpdateOrder(ctx context.Context, orderNumber string, change service.OrderChange) (*domain.Order, error)
	DeleteOrder(ctx context.Context, orderNumber string) error
}

type OrderLister interface {
	FindByOrderNumber(ctx context.Context, orderNumber string) (*domain.Order, error)
	FindDetailByOrderID(ctx context.Context, orderID int64) (*domain.OrderDetail, error)
	ListWithDetails(ctx context.Context) ([]domain.OrderWithDetail, error)
}

// OrderNotifier is the best-effort email hook invoked after an order
// commits. Failures are logged and swallowed; they never undo the order.
type OrderNotifier interface {
	NotifyOrderCreated(ctx context.Context, order *domain.Order, detail *domain.OrderDetail) error
}

type OrderUseCase struct {
	products   ProductRepository
	reconciler OrderReconciler
	orders     OrderLister
	notifier   OrderNotifier
	logger     *zap.Logger
}

func NewOrderUseCase(
	products ProductRepository,
	reconciler OrderReconciler,
	orders OrderLister,
	notifier OrderNotifier,
	logger *zap.Logger,
) *OrderUseCase {
	return &OrderUseCase{
		products:   products,
		reconciler: reconciler,
		orders:     orders,
		notifier:   notifier,
		logger:     logger,
	}
}

func (uc *OrderUseCase) CreateOrder(ctx context.Context, req dto.CreateOrderRequest) (*domain.OrderWithDetail, error) {
	if err := validateCreateOrderRequest(req); err != nil {
		return nil, err
	}

	productName := req.Product
	if productName == "" {
		productName = domain.DefaultProductName
	}

	product, err := uc.products.FindByName(ctx, productName)
	if err != nil {
		return nil, err
	}

	order := &domain.Order{
		OrderNumber:  NewOrderNumber(),
		CustomerName: req.CustomerName,
		Email:        req.Email,
		Phone:        req.Phone,
		Quantity:     req.Quantity,
		Status:       domain.OrderStatusPending,
		IsFlagged:    false,
		Total:        domain.OrderTotal(product.SalePrice, req.Quantity),
		CreatedAt:    time.Now().UTC(),
	}

	detail := &domain.OrderDetail{
		Product: product.Name,
		SKU:     stringValue(product.SKU),
		UPC:     stringValue(product.UPC),
		Qty:     req.Quantity,
		Sale:    product.SalePrice,
		Cost:    product.CostPrice,
	}

	created, err := uc.reconciler.CreateOrder(ctx, order, detail)
	if err != nil {
		return nil, err
	}

	// Fire-and-forget: the customer keeps their order even if mail is down.
	go func(o domain.Order, d domain.OrderDetail) {
		notifyCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := uc.notifier.NotifyOrderCreated(notifyCtx, &o, &d); err != nil {
			uc.logger.Warn("order notification failed",
				zap.String("orderNumber", o.OrderNumber),
				zap.Error(err))
		}
	}(*created, *detail)

	return &domain.OrderWithDetail{Order: *created, Detail: detail}, nil
}

func (uc *OrderUseCase) UpdateOrder(ctx context.Context, orderNumber string, req dto.UpdateOrderRequest) (*domain.Order, error) {
	var details []apperrors.ValidationDetail

	if req.Status != nil && !domain.ValidOrderStatus(*req.Status) {
		details = append(details, apperrors.ValidationDetail{
			Field:   "status",
			Message: "status must be pending or complete",
		})
	}
	if req.Quantity != nil && *req.Quantity < 1 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "quantity",
			Message: "quantity must be at least 1",
		})
	}
	if len(details) > 0 {
		return nil, apperrors.NewValidationError("validation failed", details...)
	}

	return uc.reconciler.UpdateOrder(ctx, orderNumber, service.OrderChange{
		Status:    req.Status,
		Quantity:  req.Quantity,
		IsFlagged: req.IsFlagged,
	})
}

func (uc *OrderUseCase) DeleteOrder(ctx context.Context, orderNumber string) error {
	return uc.reconciler.DeleteOrder(ctx, orderNumber)
}

func (uc *OrderUseCase) GetOrder(ctx context.Context, orderNumber string) (*domain.OrderWithDetail, error) {
	order, err := uc.orders.FindByOrderNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}

	detail, err := uc.orders.FindDetailByOrderID(ctx, order.ID)
	if err != nil {
		return nil, err
	}

	return &domain.OrderWithDetail{Order: *order, Detail: detail}, nil
}

func (uc *OrderUseCase) ListOrders(ctx context.Context) ([]domain.OrderWithDetail, error) {
	return uc.orders.ListWithDetails(ctx)
}

// NewOrderNumber produces a short human-readable code. Only uniqueness is
// contractual, not the format.
func NewOrderNumber() string {
	id := strings.ReplaceAll(uuid.New().String(), "-", "")
	return "ORD-" + strings.ToUpper(id[:8])
}

func validateCreateOrderRequest(req dto.CreateOrderRequest) error {
	var details []apperrors.ValidationDetail

	if strings.TrimSpace(req.CustomerName) == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "customerName",
			Message: "customerName is required",
		})
	}
	if strings.TrimSpace(req.Email) == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "email",
			Message: "email is required",
		})
	}
	if req.Quantity < 1 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "quantity",
			Message: "quantity must be at least 1",
		})
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details...)
	}
	return nil
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
