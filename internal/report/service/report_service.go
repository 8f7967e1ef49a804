package service

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/ruolez/EggsReserve/internal/domain"
	"github.com/ruolez/EggsReserve/internal/dto"
)

// EggsPerCarton converts carton quantities to egg counts for utilization.
const EggsPerCarton = 12

// ComputeBusinessMetrics folds orders, expenses and the harvest egg total
// into the dashboard numbers. Pure read-side computation; completed orders
// drive the sales figures, pending orders only the outstanding value.
func ComputeBusinessMetrics(orders []domain.Order, expenses []domain.Expense, totalEggsCollected int) dto.BusinessMetrics {
	metrics := dto.BusinessMetrics{
		TotalSales:         decimal.Zero,
		TotalExpenses:      decimal.Zero,
		TotalProfit:        decimal.Zero,
		AvgSalePerOrder:    decimal.Zero,
		PendingOrdersValue: decimal.Zero,
		TotalEggsCollected: totalEggsCollected,
	}

	completedCount := 0
	for _, o := range orders {
		switch o.Status {
		case domain.OrderStatusComplete:
			metrics.TotalSales = metrics.TotalSales.Add(o.Total)
			metrics.TotalEggsSold += o.Quantity * EggsPerCarton
			completedCount++
		case domain.OrderStatusPending:
			metrics.PendingOrdersValue = metrics.PendingOrdersValue.Add(o.Total)
			metrics.PendingOrdersCount++
		}
	}

	for _, e := range expenses {
		metrics.TotalExpenses = metrics.TotalExpenses.Add(e.TotalCost)
	}

	metrics.TotalProfit = metrics.TotalSales.Sub(metrics.TotalExpenses)

	if totalEggsCollected > 0 {
		metrics.UtilizationRate = float64(metrics.TotalEggsSold) / float64(totalEggsCollected) * 100
	}

	if completedCount > 0 {
		metrics.AvgSalePerOrder = metrics.TotalSales.Div(decimal.NewFromInt(int64(completedCount)))
	}

	return metrics
}

// ExpensesByCategory groups expense totals by name.
func ExpensesByCategory(expenses []domain.Expense) []dto.CategoryTotal {
	totals := make(map[string]decimal.Decimal)
	for _, e := range expenses {
		totals[e.Name] = totals[e.Name].Add(e.TotalCost)
	}

	result := make([]dto.CategoryTotal, 0, len(totals))
	for category, total := range totals {
		result = append(result, dto.CategoryTotal{Category: category, Total: total})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Category < result[j].Category
	})

	return result
}

// OrdersByMonth groups order totals and counts by created_at month.
func OrdersByMonth(orders []domain.Order) []dto.MonthTotal {
	totals := make(map[string]*dto.MonthTotal)
	for _, o := range orders {
		month := o.CreatedAt.Format("2006-01")
		if entry, ok := totals[month]; ok {
			entry.Total = entry.Total.Add(o.Total)
			entry.Count++
		} else {
			totals[month] = &dto.MonthTotal{Month: month, Total: o.Total, Count: 1}
		}
	}

	result := make([]dto.MonthTotal, 0, len(totals))
	for _, entry := range totals {
		result = append(result, *entry)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Month < result[j].Month
	})

	return result
}
