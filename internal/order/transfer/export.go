package transfer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/ruolez/EggsReserve/internal/domain"
)

// orderColumns is the CSV contract shared by export and import.
var orderColumns = []string{
	"order_number", "customer_name", "email", "phone", "status", "quantity",
	"product", "sku", "upc", "sale_price", "cost_price", "created_at",
}

// ExportOrders serializes orders with their details to CSV. Pure: no stock
// interaction, missing details render as empty columns.
func ExportOrders(orders []domain.OrderWithDetail) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(orderColumns); err != nil {
		return "", fmt.Errorf("writing csv header: %w", err)
	}

	for _, o := range orders {
		product, sku, upc, sale, cost := "", "", "", "0", "0"
		if o.Detail != nil {
			product = o.Detail.Product
			sku = o.Detail.SKU
			upc = o.Detail.UPC
			sale = o.Detail.Sale.String()
			cost = o.Detail.Cost.String()
		}

		record := []string{
			o.OrderNumber,
			o.CustomerName,
			o.Email,
			o.Phone,
			o.Status,
			strconv.Itoa(o.Quantity),
			product,
			sku,
			upc,
			sale,
			cost,
			o.CreatedAt.UTC().Format(time.RFC3339),
		}

		if err := w.Write(record); err != nil {
			return "", fmt.Errorf("writing csv record: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flushing csv: %w", err)
	}

	return buf.String(), nil
}
