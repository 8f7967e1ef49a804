package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ruolez/EggsReserve/internal/domain"
	"github.com/ruolez/EggsReserve/internal/errors"
)

// Mock implementations

type mockStockRepository struct {
	GetFunc         func(ctx context.Context) (*domain.Stock, error)
	SetQuantityFunc func(ctx context.Context, newQuantity int) (*domain.Stock, error)
}

func (m *mockStockRepository) Get(ctx context.Context) (*domain.Stock, error) {
	return m.GetFunc(ctx)
}

func (m *mockStockRepository) SetQuantity(ctx context.Context, newQuantity int) (*domain.Stock, error) {
	return m.SetQuantityFunc(ctx, newQuantity)
}

type mockOrderRepository struct {
	FindByOrderNumberFunc   func(ctx context.Context, orderNumber string) (*domain.Order, error)
	FindDetailByOrderIDFunc func(ctx context.Context, orderID int64) (*domain.OrderDetail, error)
	CreateWithDetailFunc    func(ctx context.Context, order *domain.Order, detail *domain.OrderDetail) (*domain.Order, error)
	UpdateWithDetailFunc    func(ctx context.Context, order *domain.Order) error
	DeleteFunc              func(ctx context.Context, orderNumber string) error
}

func (m *mockOrderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*domain.Order, error) {
	return m.FindByOrderNumberFunc(ctx, orderNumber)
}

func (m *mockOrderRepository) FindDetailByOrderID(ctx context.Context, orderID int64) (*domain.OrderDetail, error) {
	return m.FindDetailByOrderIDFunc(ctx, orderID)
}

func (m *mockOrderRepository) CreateWithDetail(ctx context.Context, order *domain.Order, detail *domain.OrderDetail) (*domain.Order, error) {
	return m.CreateWithDetailFunc(ctx, order, detail)
}

func (m *mockOrderRepository) UpdateWithDetail(ctx context.Context, order *domain.Order) error {
	return m.UpdateWithDetailFunc(ctx, order)
}

func (m *mockOrderRepository) Delete(ctx context.Context, orderNumber string) error {
	return m.DeleteFunc(ctx, orderNumber)
}

// fakeRegister is a stateful stock fake that enforces the same range rule as
// the real conditional UPDATE.
type fakeRegister struct {
	current  int
	max      int
	setCalls int
}

func (f *fakeRegister) Get(ctx context.Context) (*domain.Stock, error) {
	return &domain.Stock{ID: domain.StockRowID, CurrentQuantity: f.current, MaxQuantity: f.max, UpdatedAt: time.Now()}, nil
}

func (f *fakeRegister) SetQuantity(ctx context.Context, newQuantity int) (*domain.Stock, error) {
	f.setCalls++
	if newQuantity < 0 || newQuantity > f.max {
		return nil, errors.NewValidationError("quantity out of range")
	}
	f.current = newQuantity
	return &domain.Stock{ID: domain.StockRowID, CurrentQuantity: f.current, MaxQuantity: f.max, UpdatedAt: time.Now()}, nil
}

// fakeOrderStore keeps orders and details in memory keyed by order number.
type fakeOrderStore struct {
	orders  map[string]*domain.Order
	details map[int64]*domain.OrderDetail
	nextID  int64
}

func newFakeOrderStore() *fakeOrderStore {
	return &fakeOrderStore{
		orders:  make(map[string]*domain.Order),
		details: make(map[int64]*domain.OrderDetail),
		nextID:  1,
	}
}

func (f *fakeOrderStore) FindByOrderNumber(ctx context.Context, orderNumber string) (*domain.Order, error) {
	order, ok := f.orders[orderNumber]
	if !ok {
		return nil, errors.NewNotFoundError(fmt.Sprintf("order %s not found", orderNumber))
	}
	copied := *order
	return &copied, nil
}

func (f *fakeOrderStore) FindDetailByOrderID(ctx context.Context, orderID int64) (*domain.OrderDetail, error) {
	detail, ok := f.details[orderID]
	if !ok {
		return nil, errors.NewNotFoundError(fmt.Sprintf("details for order id %d not found", orderID))
	}
	copied := *detail
	return &copied, nil
}

func (f *fakeOrderStore) CreateWithDetail(ctx context.Context, order *domain.Order, detail *domain.OrderDetail) (*domain.Order, error) {
	order.ID = f.nextID
	detail.OrderID = order.ID
	detail.ID = f.nextID
	f.nextID++
	copied := *order
	f.orders[order.OrderNumber] = &copied
	detailCopy := *detail
	f.details[order.ID] = &detailCopy
	return order, nil
}

func (f *fakeOrderStore) UpdateWithDetail(ctx context.Context, order *domain.Order) error {
	stored, ok := f.orders[order.OrderNumber]
	if !ok {
		return errors.NewNotFoundError(fmt.Sprintf("order %s not found", order.OrderNumber))
	}
	copied := *order
	copied.ID = stored.ID
	f.orders[order.OrderNumber] = &copied
	if detail, ok := f.details[stored.ID]; ok {
		detail.Qty = order.Quantity
	}
	return nil
}

func (f *fakeOrderStore) Delete(ctx context.Context, orderNumber string) error {
	order, ok := f.orders[orderNumber]
	if !ok {
		return errors.NewNotFoundError(fmt.Sprintf("order %s not found", orderNumber))
	}
	delete(f.details, order.ID)
	delete(f.orders, orderNumber)
	return nil
}

func newTestOrder(orderNumber string, quantity int) (*domain.Order, *domain.OrderDetail) {
	sale := decimal.RequireFromString("10.00")
	order := &domain.Order{
		OrderNumber:  orderNumber,
		CustomerName: "Test Customer",
		Email:        "test@example.com",
		Quantity:     quantity,
		Status:       domain.OrderStatusPending,
		Total:        domain.OrderTotal(sale, quantity),
		CreatedAt:    time.Now(),
	}
	detail := &domain.OrderDetail{
		Product: domain.DefaultProductName,
		Qty:     quantity,
		Sale:    sale,
		Cost:    decimal.RequireFromString("7.50"),
	}
	return order, detail
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }
func boolPtr(v bool) *bool    { return &v }

// Tests

func TestCreateOrder_ReservesStock(t *testing.T) {
	register := &fakeRegister{current: 100, max: 100}
	store := newFakeOrderStore()
	svc := NewReconciliationService(register, store, zap.NewNop())

	order, detail := newTestOrder("ORD-AAAA1111", 3)
	created, err := svc.CreateOrder(context.Background(), order, detail)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if register.current != 97 {
		t.Errorf("expected stock 97 after reservation, got %d", register.current)
	}
	if created.ID == 0 {
		t.Errorf("expected order id to be assigned")
	}
}

func TestCreateOrder_InsufficientStock(t *testing.T) {
	register := &fakeRegister{current: 5, max: 100}
	store := newFakeOrderStore()
	svc := NewReconciliationService(register, store, zap.NewNop())

	order, detail := newTestOrder("ORD-BBBB2222", 200)
	_, err := svc.CreateOrder(context.Background(), order, detail)

	stockErr, ok := errors.IsInsufficientStockError(err)
	if !ok {
		t.Fatalf("expected InsufficientStockError, got %v", err)
	}
	if stockErr.Requested != 200 || stockErr.Available != 5 {
		t.Errorf("expected requested=200 available=5, got requested=%d available=%d", stockErr.Requested, stockErr.Available)
	}

	if register.current != 5 {
		t.Errorf("stock must be untouched after a failed reservation, got %d", register.current)
	}
	if len(store.orders) != 0 {
		t.Errorf("no order record may exist after a failed reservation, found %d", len(store.orders))
	}
}

func TestCreateOrder_RaceLoserGetsInsufficientStock(t *testing.T) {
	// Between the read and the write a concurrent reservation drained the
	// register, so the conditional update rejects the stale target value.
	stockRepo := &mockStockRepository{
		GetFunc: func(ctx context.Context) (*domain.Stock, error) {
			return &domain.Stock{ID: 1, CurrentQuantity: 3, MaxQuantity: 100}, nil
		},
		SetQuantityFunc: func(ctx context.Context, newQuantity int) (*domain.Stock, error) {
			return nil, errors.NewValidationError("quantity out of range")
		},
	}
	created := false
	orderRepo := &mockOrderRepository{
		CreateWithDetailFunc: func(ctx context.Context, order *domain.Order, detail *domain.OrderDetail) (*domain.Order, error) {
			created = true
			return order, nil
		},
	}
	svc := NewReconciliationService(stockRepo, orderRepo, zap.NewNop())

	order, detail := newTestOrder("ORD-CCCC3333", 2)
	_, err := svc.CreateOrder(context.Background(), order, detail)

	if _, ok := errors.IsInsufficientStockError(err); !ok {
		t.Fatalf("expected InsufficientStockError, got %v", err)
	}
	if created {
		t.Errorf("order must not be created when the reservation loses the race")
	}
}

func TestCreateOrder_CompensatesOnOrderFailure(t *testing.T) {
	register := &fakeRegister{current: 50, max: 100}
	cause := stderrors.New("insert failed")
	orderRepo := &mockOrderRepository{
		CreateWithDetailFunc: func(ctx context.Context, order *domain.Order, detail *domain.OrderDetail) (*domain.Order, error) {
			return nil, cause
		},
	}
	svc := NewReconciliationService(register, orderRepo, zap.NewNop())

	order, detail := newTestOrder("ORD-DDDD4444", 10)
	_, err := svc.CreateOrder(context.Background(), order, detail)

	if !stderrors.Is(err, cause) && err != cause {
		t.Fatalf("expected the original cause to surface, got %v", err)
	}
	if register.current != 50 {
		t.Errorf("expected stock restored to 50 after compensation, got %d", register.current)
	}
}

func TestCreateOrder_CompensationFailure(t *testing.T) {
	setCalls := 0
	stockRepo := &mockStockRepository{
		GetFunc: func(ctx context.Context) (*domain.Stock, error) {
			return &domain.Stock{ID: 1, CurrentQuantity: 50, MaxQuantity: 100}, nil
		},
		SetQuantityFunc: func(ctx context.Context, newQuantity int) (*domain.Stock, error) {
			setCalls++
			if setCalls == 1 {
				return &domain.Stock{ID: 1, CurrentQuantity: newQuantity, MaxQuantity: 100}, nil
			}
			return nil, stderrors.New("connection lost")
		},
	}
	orderRepo := &mockOrderRepository{
		CreateWithDetailFunc: func(ctx context.Context, order *domain.Order, detail *domain.OrderDetail) (*domain.Order, error) {
			return nil, stderrors.New("insert failed")
		},
	}
	svc := NewReconciliationService(stockRepo, orderRepo, zap.NewNop())

	order, detail := newTestOrder("ORD-EEEE5555", 10)
	_, err := svc.CreateOrder(context.Background(), order, detail)

	if _, ok := errors.IsCompensationError(err); !ok {
		t.Fatalf("expected CompensationError when the rollback also fails, got %v", err)
	}
	if setCalls != 2 {
		t.Errorf("expected a reservation and a rollback attempt, got %d calls", setCalls)
	}
}

func TestUpdateOrder_SameQuantityIsMetadataOnly(t *testing.T) {
	register := &fakeRegister{current: 97, max: 100}
	store := newFakeOrderStore()
	svc := NewReconciliationService(register, store, zap.NewNop())

	order, detail := newTestOrder("ORD-FFFF6666", 3)
	store.CreateWithDetail(context.Background(), order, detail)
	register.setCalls = 0

	updated, err := svc.UpdateOrder(context.Background(), "ORD-FFFF6666", OrderChange{
		Quantity: intPtr(3),
		Status:   strPtr(domain.OrderStatusComplete),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if register.setCalls != 0 {
		t.Errorf("an edit to the same quantity must not touch stock, saw %d calls", register.setCalls)
	}
	if updated.Status != domain.OrderStatusComplete {
		t.Errorf("expected status complete, got %s", updated.Status)
	}
}

func TestUpdateOrder_ShrinkReleasesStock(t *testing.T) {
	register := &fakeRegister{current: 95, max: 100}
	store := newFakeOrderStore()
	svc := NewReconciliationService(register, store, zap.NewNop())

	order, detail := newTestOrder("ORD-GGGG7777", 5)
	store.CreateWithDetail(context.Background(), order, detail)

	updated, err := svc.UpdateOrder(context.Background(), "ORD-GGGG7777", OrderChange{Quantity: intPtr(1)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if register.current != 99 {
		t.Errorf("expected stock 99 after releasing 4, got %d", register.current)
	}
	expectedTotal := decimal.RequireFromString("10.00")
	if !updated.Total.Equal(expectedTotal) {
		t.Errorf("expected total recomputed to %s, got %s", expectedTotal, updated.Total)
	}
}

func TestUpdateOrder_GrowBeyondStock(t *testing.T) {
	register := &fakeRegister{current: 2, max: 100}
	store := newFakeOrderStore()
	svc := NewReconciliationService(register, store, zap.NewNop())

	order, detail := newTestOrder("ORD-HHHH8888", 3)
	store.CreateWithDetail(context.Background(), order, detail)

	_, err := svc.UpdateOrder(context.Background(), "ORD-HHHH8888", OrderChange{Quantity: intPtr(10)})

	if _, ok := errors.IsInsufficientStockError(err); !ok {
		t.Fatalf("expected InsufficientStockError, got %v", err)
	}
	if register.current != 2 {
		t.Errorf("stock must be untouched after a rejected grow, got %d", register.current)
	}
	stored, _ := store.FindByOrderNumber(context.Background(), "ORD-HHHH8888")
	if stored.Quantity != 3 {
		t.Errorf("order quantity must be unchanged after a rejected grow, got %d", stored.Quantity)
	}
}

func TestUpdateOrder_CompensatesOnOrderFailure(t *testing.T) {
	register := &fakeRegister{current: 90, max: 100}
	cause := stderrors.New("update failed")
	orderRepo := &mockOrderRepository{
		FindByOrderNumberFunc: func(ctx context.Context, orderNumber string) (*domain.Order, error) {
			return &domain.Order{ID: 1, OrderNumber: orderNumber, Quantity: 5, Status: domain.OrderStatusPending}, nil
		},
		FindDetailByOrderIDFunc: func(ctx context.Context, orderID int64) (*domain.OrderDetail, error) {
			return &domain.OrderDetail{ID: 1, OrderID: orderID, Qty: 5, Sale: decimal.RequireFromString("10.00")}, nil
		},
		UpdateWithDetailFunc: func(ctx context.Context, order *domain.Order) error {
			return cause
		},
	}
	svc := NewReconciliationService(register, orderRepo, zap.NewNop())

	_, err := svc.UpdateOrder(context.Background(), "ORD-IIII9999", OrderChange{Quantity: intPtr(2)})

	if err != cause {
		t.Fatalf("expected the original cause to surface, got %v", err)
	}
	if register.current != 90 {
		t.Errorf("expected stock restored to 90 after compensation, got %d", register.current)
	}
}

func TestDeleteOrder_RefundsFullQuantity(t *testing.T) {
	register := &fakeRegister{current: 92, max: 100}
	store := newFakeOrderStore()
	svc := NewReconciliationService(register, store, zap.NewNop())

	order, detail := newTestOrder("ORD-JJJJ0000", 5)
	store.CreateWithDetail(context.Background(), order, detail)

	err := svc.DeleteOrder(context.Background(), "ORD-JJJJ0000")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if register.current != 97 {
		t.Errorf("expected stock 97 after refund, got %d", register.current)
	}
	if _, err := store.FindByOrderNumber(context.Background(), "ORD-JJJJ0000"); err == nil {
		t.Errorf("expected order to be gone after deletion")
	}
}

func TestDeleteOrder_CompensatesOnOrderFailure(t *testing.T) {
	register := &fakeRegister{current: 92, max: 100}
	cause := stderrors.New("delete failed")
	orderRepo := &mockOrderRepository{
		FindByOrderNumberFunc: func(ctx context.Context, orderNumber string) (*domain.Order, error) {
			return &domain.Order{ID: 1, OrderNumber: orderNumber, Quantity: 5}, nil
		},
		DeleteFunc: func(ctx context.Context, orderNumber string) error {
			return cause
		},
	}
	svc := NewReconciliationService(register, orderRepo, zap.NewNop())

	err := svc.DeleteOrder(context.Background(), "ORD-KKKK1111")

	if err != cause {
		t.Fatalf("expected the original cause to surface, got %v", err)
	}
	if register.current != 92 {
		t.Errorf("expected stock restored to 92 after compensation, got %d", register.current)
	}
}

// TestStockConservation runs a full order lifecycle sequence and checks that
// the register always equals max minus the sum of live order quantities.
func TestStockConservation(t *testing.T) {
	ctx := context.Background()
	register := &fakeRegister{current: 100, max: 100}
	store := newFakeOrderStore()
	svc := NewReconciliationService(register, store, zap.NewNop())

	assertStock := func(step string, want int) {
		t.Helper()
		if register.current != want {
			t.Fatalf("%s: expected stock %d, got %d", step, want, register.current)
		}
		reserved := 0
		for _, o := range store.orders {
			reserved += o.Quantity
		}
		if register.current+reserved != register.max {
			t.Fatalf("%s: conservation violated: current=%d reserved=%d max=%d", step, register.current, reserved, register.max)
		}
	}

	orderA, detailA := newTestOrder("ORD-ORDA0001", 3)
	if _, err := svc.CreateOrder(ctx, orderA, detailA); err != nil {
		t.Fatalf("create A: %v", err)
	}
	assertStock("create A qty 3", 97)

	orderB, detailB := newTestOrder("ORD-ORDB0002", 5)
	if _, err := svc.CreateOrder(ctx, orderB, detailB); err != nil {
		t.Fatalf("create B: %v", err)
	}
	assertStock("create B qty 5", 92)

	if _, err := svc.UpdateOrder(ctx, "ORD-ORDA0001", OrderChange{Quantity: intPtr(1)}); err != nil {
		t.Fatalf("shrink A: %v", err)
	}
	assertStock("edit A to qty 1", 94)

	if err := svc.DeleteOrder(ctx, "ORD-ORDB0002"); err != nil {
		t.Fatalf("delete B: %v", err)
	}
	assertStock("delete B", 99)

	if _, err := svc.UpdateOrder(ctx, "ORD-ORDA0001", OrderChange{Status: strPtr(domain.OrderStatusComplete)}); err != nil {
		t.Fatalf("complete A: %v", err)
	}
	assertStock("complete A", 99)

	orderC, detailC := newTestOrder("ORD-ORDC0003", 2)
	if _, err := svc.CreateOrder(ctx, orderC, detailC); err != nil {
		t.Fatalf("create C: %v", err)
	}
	assertStock("create C qty 2", 97)

	orderD, detailD := newTestOrder("ORD-ORDD0004", 200)
	if _, err := svc.CreateOrder(ctx, orderD, detailD); err == nil {
		t.Fatalf("create D with qty 200 must fail")
	}
	assertStock("reject D qty 200", 97)
}

func TestUpdateOrder_FlagOnlyChange(t *testing.T) {
	register := &fakeRegister{current: 97, max: 100}
	store := newFakeOrderStore()
	svc := NewReconciliationService(register, store, zap.NewNop())

	order, detail := newTestOrder("ORD-LLLL2222", 3)
	store.CreateWithDetail(context.Background(), order, detail)
	register.setCalls = 0

	updated, err := svc.UpdateOrder(context.Background(), "ORD-LLLL2222", OrderChange{IsFlagged: boolPtr(true)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if register.setCalls != 0 {
		t.Errorf("a flag edit must not touch stock, saw %d calls", register.setCalls)
	}
	if !updated.IsFlagged {
		t.Errorf("expected order to be flagged")
	}
}
