package transfer

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ruolez/EggsReserve/internal/domain"
	"github.com/ruolez/EggsReserve/internal/errors"
)

// fakeImportStore keeps created orders in memory keyed by order number.
type fakeImportStore struct {
	orders  map[string]*domain.Order
	details map[string]*domain.OrderDetail
}

func newFakeImportStore() *fakeImportStore {
	return &fakeImportStore{
		orders:  make(map[string]*domain.Order),
		details: make(map[string]*domain.OrderDetail),
	}
}

func (f *fakeImportStore) FindByOrderNumber(ctx context.Context, orderNumber string) (*domain.Order, error) {
	order, ok := f.orders[orderNumber]
	if !ok {
		return nil, errors.NewNotFoundError(fmt.Sprintf("order %s not found", orderNumber))
	}
	return order, nil
}

func (f *fakeImportStore) CreateWithDetail(ctx context.Context, order *domain.Order, detail *domain.OrderDetail) (*domain.Order, error) {
	order.ID = int64(len(f.orders) + 1)
	detail.OrderID = order.ID
	f.orders[order.OrderNumber] = order
	f.details[order.OrderNumber] = detail
	return order, nil
}

func TestImport_DuplicateAndPartialSuccess(t *testing.T) {
	store := newFakeImportStore()
	store.orders["ORD-EXISTING"] = &domain.Order{OrderNumber: "ORD-EXISTING"}

	input := strings.Join([]string{
		"order_number,customer_name,email,phone,status,quantity,product,sku,upc,sale_price,cost_price,created_at",
		"ORD-NEW00001,Alice,alice@example.com,555-0101,pending,2,,,,,,",
		"ORD-EXISTING,Bob,bob@example.com,,complete,1,,,,,,",
		"ORD-NEW00002,Carol,carol@example.com,,pending,3,,,,,,",
	}, "\n")

	importer := NewOrderImporter(store, zap.NewNop())
	result, err := importer.Import(context.Background(), strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Success != 2 {
		t.Errorf("expected 2 successes, got %d", result.Success)
	}
	if len(result.Errors) != 1 {
		t.Fatalf("expected 1 error, got %d: %v", len(result.Errors), result.Errors)
	}
	if !strings.Contains(result.Errors[0], "ORD-EXISTING") {
		t.Errorf("error must name the duplicate order number, got %q", result.Errors[0])
	}
	if !strings.Contains(result.Errors[0], "already exists") {
		t.Errorf("expected a duplicate message, got %q", result.Errors[0])
	}
}

func TestImport_DefaultsApplied(t *testing.T) {
	store := newFakeImportStore()

	input := strings.Join([]string{
		"order_number,customer_name,email,quantity",
		"ORD-MIN00001,Dave,dave@example.com,4",
	}, "\n")

	importer := NewOrderImporter(store, zap.NewNop())
	result, err := importer.Import(context.Background(), strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Success != 1 {
		t.Fatalf("expected 1 success, got %d (errors: %v)", result.Success, result.Errors)
	}

	detail := store.details["ORD-MIN00001"]
	if detail.Product != domain.DefaultProductName {
		t.Errorf("expected default product, got %q", detail.Product)
	}
	if !detail.Sale.Equal(decimal.NewFromFloat(10.00)) {
		t.Errorf("expected default sale price 10.00, got %s", detail.Sale)
	}
	if !detail.Cost.Equal(decimal.NewFromFloat(7.50)) {
		t.Errorf("expected default cost price 7.50, got %s", detail.Cost)
	}

	order := store.orders["ORD-MIN00001"]
	if order.Status != domain.OrderStatusPending {
		t.Errorf("expected pending status, got %q", order.Status)
	}
	if !order.Total.Equal(decimal.NewFromFloat(40.00)) {
		t.Errorf("expected total 40.00, got %s", order.Total)
	}
}

func TestImport_MissingRequiredFields(t *testing.T) {
	store := newFakeImportStore()

	input := strings.Join([]string{
		"order_number,customer_name,email,quantity",
		",NoNumber,nonum@example.com,2",
		"ORD-NOEMAIL1,NoEmail,,2",
	}, "\n")

	importer := NewOrderImporter(store, zap.NewNop())
	result, err := importer.Import(context.Background(), strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Success != 0 {
		t.Errorf("expected 0 successes, got %d", result.Success)
	}
	if len(result.Errors) != 2 {
		t.Fatalf("expected 2 errors, got %v", result.Errors)
	}
	if !strings.Contains(result.Errors[0], "unknown") {
		t.Errorf("row without an order number reports 'unknown', got %q", result.Errors[0])
	}
	if !strings.Contains(result.Errors[1], "ORD-NOEMAIL1") {
		t.Errorf("error must name the failing order, got %q", result.Errors[1])
	}
}

func TestImport_InvalidDateFallsBackToNow(t *testing.T) {
	store := newFakeImportStore()
	fixed := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	importer := NewOrderImporter(store, zap.NewNop())
	importer.now = func() time.Time { return fixed }

	input := strings.Join([]string{
		"order_number,customer_name,email,quantity,created_at",
		"ORD-BADDATE1,Eve,eve@example.com,1,not-a-date",
		"ORD-GOODDAT1,Frank,frank@example.com,1,2025-06-01",
	}, "\n")

	result, err := importer.Import(context.Background(), strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Success != 2 {
		t.Fatalf("expected 2 successes, got %d (errors: %v)", result.Success, result.Errors)
	}

	if !store.orders["ORD-BADDATE1"].CreatedAt.Equal(fixed) {
		t.Errorf("unparseable date must fall back to now, got %s", store.orders["ORD-BADDATE1"].CreatedAt)
	}
	want := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	if !store.orders["ORD-GOODDAT1"].CreatedAt.Equal(want) {
		t.Errorf("expected parsed date %s, got %s", want, store.orders["ORD-GOODDAT1"].CreatedAt)
	}
}

func TestImport_InvalidQuantity(t *testing.T) {
	store := newFakeImportStore()

	input := strings.Join([]string{
		"order_number,customer_name,email,quantity",
		"ORD-BADQTY01,Gina,gina@example.com,zero",
		"ORD-BADQTY02,Hank,hank@example.com,0",
	}, "\n")

	importer := NewOrderImporter(store, zap.NewNop())
	result, err := importer.Import(context.Background(), strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Success != 0 || len(result.Errors) != 2 {
		t.Errorf("expected both rows rejected, got success=%d errors=%v", result.Success, result.Errors)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	created := time.Date(2026, 1, 10, 8, 30, 0, 0, time.UTC)
	orders := []domain.OrderWithDetail{
		{
			Order: domain.Order{
				OrderNumber:  "ORD-RT000001",
				CustomerName: "Iris",
				Email:        "iris@example.com",
				Phone:        "555-0199",
				Quantity:     3,
				Status:       domain.OrderStatusComplete,
				Total:        decimal.RequireFromString("30.00"),
				CreatedAt:    created,
			},
			Detail: &domain.OrderDetail{
				Product: domain.DefaultProductName,
				SKU:     "EGG-CTN-12",
				UPC:     "000000000012",
				Qty:     3,
				Sale:    decimal.RequireFromString("10.00"),
				Cost:    decimal.RequireFromString("7.50"),
			},
		},
	}

	csvText, err := ExportOrders(orders)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}

	store := newFakeImportStore()
	importer := NewOrderImporter(store, zap.NewNop())
	result, err := importer.Import(context.Background(), strings.NewReader(csvText))
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if result.Success != 1 || len(result.Errors) != 0 {
		t.Fatalf("expected a clean round trip, got success=%d errors=%v", result.Success, result.Errors)
	}

	got := store.orders["ORD-RT000001"]
	if got.CustomerName != "Iris" || got.Phone != "555-0199" {
		t.Errorf("customer fields lost in round trip: %+v", got)
	}
	if got.Status != domain.OrderStatusComplete {
		t.Errorf("status lost in round trip, got %q", got.Status)
	}
	if !got.CreatedAt.Equal(created) {
		t.Errorf("created_at lost in round trip, got %s", got.CreatedAt)
	}

	detail := store.details["ORD-RT000001"]
	if detail.SKU != "EGG-CTN-12" || detail.UPC != "000000000012" {
		t.Errorf("detail identity lost in round trip: %+v", detail)
	}
	if !detail.Sale.Equal(decimal.RequireFromString("10.00")) || !detail.Cost.Equal(decimal.RequireFromString("7.50")) {
		t.Errorf("prices lost in round trip: sale=%s cost=%s", detail.Sale, detail.Cost)
	}
}

func TestExport_MissingDetail(t *testing.T) {
	orders := []domain.OrderWithDetail{
		{
			Order: domain.Order{
				OrderNumber:  "ORD-NODET001",
				CustomerName: "Jack",
				Email:        "jack@example.com",
				Quantity:     1,
				Status:       domain.OrderStatusPending,
				CreatedAt:    time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
			},
		},
	}

	csvText, err := ExportOrders(orders)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(csvText), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header plus one record, got %d lines", len(lines))
	}
	if !strings.Contains(lines[1], "ORD-NODET001") {
		t.Errorf("record missing from export: %q", lines[1])
	}
}
