package service

import (
	"sort"

	"github.com/ruolez/EggsReserve/internal/domain"
	"github.com/ruolez/EggsReserve/internal/dto"
)

// ComputeStatistics folds an already-fetched harvest collection into totals,
// per-coop and per-date groupings. Pure; no invariants to protect.
func ComputeStatistics(harvests []domain.Harvest) dto.HarvestStatistics {
	stats := dto.HarvestStatistics{
		ByCoop: []dto.CoopEggTotal{},
		ByDate: []dto.DailyEggTotal{},
	}

	if len(harvests) == 0 {
		return stats
	}

	coopTotals := make(map[int64]*dto.CoopEggTotal)
	dateTotals := make(map[string]int)

	for _, h := range harvests {
		stats.TotalEggs += h.EggsCollected

		if entry, ok := coopTotals[h.CoopID]; ok {
			entry.TotalEggs += h.EggsCollected
		} else {
			coopTotals[h.CoopID] = &dto.CoopEggTotal{
				CoopID:    h.CoopID,
				CoopName:  h.CoopName,
				TotalEggs: h.EggsCollected,
			}
		}

		date := h.CollectionDate.Format("2006-01-02")
		dateTotals[date] += h.EggsCollected
	}

	for _, entry := range coopTotals {
		stats.ByCoop = append(stats.ByCoop, *entry)
	}
	sort.Slice(stats.ByCoop, func(i, j int) bool {
		return stats.ByCoop[i].CoopName < stats.ByCoop[j].CoopName
	})

	for date, total := range dateTotals {
		stats.ByDate = append(stats.ByDate, dto.DailyEggTotal{Date: date, TotalEggs: total})
	}
	sort.Slice(stats.ByDate, func(i, j int) bool {
		return stats.ByDate[i].Date < stats.ByDate[j].Date
	})

	if days := len(dateTotals); days > 0 {
		stats.AveragePerDay = float64(stats.TotalEggs) / float64(days)
	}

	return stats
}
