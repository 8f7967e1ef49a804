package dto

import "github.com/shopspring/decimal"

type BusinessMetrics struct {
	TotalSales         decimal.Decimal `json:"totalSales"`
	TotalExpenses      decimal.Decimal `json:"totalExpenses"`
	TotalProfit        decimal.Decimal `json:"totalProfit"`
	TotalEggsCollected int             `json:"totalEggsCollected"`
	TotalEggsSold      int             `json:"totalEggsSold"`
	UtilizationRate    float64         `json:"utilizationRate"`
	AvgSalePerOrder    decimal.Decimal `json:"avgSalePerOrder"`
	PendingOrdersValue decimal.Decimal `json:"pendingOrdersValue"`
	PendingOrdersCount int             `json:"pendingOrdersCount"`
}

type CategoryTotal struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

type MonthTotal struct {
	Month string          `json:"month"`
	Total decimal.Decimal `json:"total"`
	Count int             `json:"count"`
}

type HarvestStatistics struct {
	TotalEggs     int              `json:"totalEggs"`
	AveragePerDay float64          `json:"averagePerDay"`
	ByCoop        []CoopEggTotal   `json:"byCoop"`
	ByDate        []DailyEggTotal  `json:"byDate"`
}

type CoopEggTotal struct {
	CoopID    int64  `json:"coopId"`
	CoopName  string `json:"coopName"`
	TotalEggs int    `json:"totalEggs"`
}

type DailyEggTotal struct {
	Date      string `json:"date"`
	TotalEggs int    `json:"totalEggs"`
}
