package transfer

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ruolez/EggsReserve/internal/domain"
	"github.com/ruolez/EggsReserve/internal/dto"
	apperrors "github.com/ruolez/EggsReserve/internal/errors"
)

type OrderImportStore interface {
	FindByOrderNumber(ctx context.Context, orderNumber string) (*domain.Order, error)
	CreateWithDetail(ctx context.Context, order *domain.Order, detail *domain.OrderDetail) (*domain.Order, error)
}

var (
	defaultImportSale = decimal.NewFromFloat(10.00)
	defaultImportCost = decimal.NewFromFloat(7.50)
)

var importDateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
}

// OrderImporter creates orders row by row from CSV. Imported historical
// orders bypass the live stock decrement entirely: the register reflects
// stock consumed by reservations made through the storefront, not books
// being migrated in.
type OrderImporter struct {
	store  OrderImportStore
	logger *zap.Logger
	now    func() time.Time
}

func NewOrderImporter(store OrderImportStore, logger *zap.Logger) *OrderImporter {
	return &OrderImporter{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// Import processes each row independently; a bad row is collected as an
// error message and never aborts the rows before or after it. Only an
// unreadable input stream fails the whole call.
func (i *OrderImporter) Import(ctx context.Context, r io.Reader) (*dto.ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading csv header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for idx, name := range header {
		columns[strings.TrimSpace(strings.ToLower(name))] = idx
	}

	result := &dto.ImportResult{Errors: []string{}}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading csv record: %w", err)
		}

		if msg := i.importRow(ctx, columns, record); msg != "" {
			result.Errors = append(result.Errors, msg)
			continue
		}
		result.Success++
	}

	i.logger.Info("order import finished",
		zap.Int("success", result.Success),
		zap.Int("errors", len(result.Errors)))

	return result, nil
}

// importRow returns an empty string on success, otherwise the collected
// error message for this row.
func (i *OrderImporter) importRow(ctx context.Context, columns map[string]int, record []string) string {
	field := func(name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	orderNumber := field("order_number")
	customerName := field("customer_name")
	email := field("email")
	quantityRaw := field("quantity")

	if orderNumber == "" || customerName == "" || email == "" || quantityRaw == "" {
		name := orderNumber
		if name == "" {
			name = "unknown"
		}
		return fmt.Sprintf("Missing required fields for order %s", name)
	}

	if _, err := i.store.FindByOrderNumber(ctx, orderNumber); err == nil {
		return fmt.Sprintf("Order %s already exists", orderNumber)
	} else if _, ok := apperrors.IsNotFoundError(err); !ok {
		return fmt.Sprintf("Error checking order %s: %v", orderNumber, err)
	}

	quantity, err := strconv.Atoi(quantityRaw)
	if err != nil || quantity < 1 {
		return fmt.Sprintf("Invalid quantity for order %s", orderNumber)
	}

	status := domain.OrderStatusPending
	if field("status") == domain.OrderStatusComplete {
		status = domain.OrderStatusComplete
	}

	createdAt := i.now().UTC()
	if raw := field("created_at"); raw != "" {
		if parsed, ok := parseImportDate(raw); ok {
			createdAt = parsed
		} else {
			i.logger.Warn("invalid created_at in import row, using current time",
				zap.String("orderNumber", orderNumber),
				zap.String("createdAt", raw))
		}
	}

	product := field("product")
	if product == "" {
		product = domain.DefaultProductName
	}

	sale := parseImportDecimal(field("sale_price"), defaultImportSale)
	cost := parseImportDecimal(field("cost_price"), defaultImportCost)

	order := &domain.Order{
		OrderNumber:  orderNumber,
		CustomerName: customerName,
		Email:        email,
		Phone:        field("phone"),
		Quantity:     quantity,
		Status:       status,
		Total:        domain.OrderTotal(sale, quantity),
		CreatedAt:    createdAt,
	}

	detail := &domain.OrderDetail{
		Product: product,
		SKU:     field("sku"),
		UPC:     field("upc"),
		Qty:     quantity,
		Sale:    sale,
		Cost:    cost,
	}

	if _, err := i.store.CreateWithDetail(ctx, order, detail); err != nil {
		return fmt.Sprintf("Error creating order %s: %v", orderNumber, err)
	}

	return ""
}

func parseImportDate(raw string) (time.Time, bool) {
	for _, layout := range importDateLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed.UTC(), true
		}
	}
	return time.Time{}, false
}

func parseImportDecimal(raw string, fallback decimal.Decimal) decimal.Decimal {
	if raw == "" {
		return fallback
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return fallback
	}
	return value
}
