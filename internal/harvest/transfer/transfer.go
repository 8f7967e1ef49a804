package transfer

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ruolez/EggsReserve/internal/domain"
	"github.com/ruolez/EggsReserve/internal/dto"
)

// Export serializes harvest records to CSV.
func Export(harvests []domain.Harvest) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"coop_name", "collection_date", "eggs_collected", "notes"}); err != nil {
		return "", fmt.Errorf("writing csv header: %w", err)
	}

	for _, h := range harvests {
		notes := ""
		if h.Notes != nil {
			notes = *h.Notes
		}

		record := []string{
			h.CoopName,
			h.CollectionDate.UTC().Format("2006-01-02"),
			strconv.Itoa(h.EggsCollected),
			notes,
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

type CoopResolver interface {
	FindByName(ctx context.Context, name string) (*domain.Coop, error)
}

type HarvestCreator interface {
	Create(ctx context.Context, h *domain.Harvest) (*domain.Harvest, error)
}

// HarvestImporter creates harvest records row by row, resolving each coop by
// name. Rows that fail are collected and skipped.
type HarvestImporter struct {
	coops    CoopResolver
	harvests HarvestCreator
	logger   *zap.Logger
	now      func() time.Time
}

func NewHarvestImporter(coops CoopResolver, harvests HarvestCreator, logger *zap.Logger) *HarvestImporter {
	return &HarvestImporter{
		coops:    coops,
		harvests: harvests,
		logger:   logger,
		now:      time.Now,
	}
}

func (i *HarvestImporter) Import(ctx context.Context, r io.Reader) (*dto.ImportResult, error) {
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

	i.logger.Info("harvest import finished",
		zap.Int("success", result.Success),
		zap.Int("errors", len(result.Errors)))

	return result, nil
}

func (i *HarvestImporter) importRow(ctx context.Context, columns map[string]int, record []string) string {
	field := func(name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	coopName := field("coop_name")
	eggsRaw := field("eggs_collected")

	if coopName == "" || eggsRaw == "" {
		return "Missing required fields for harvest row"
	}

	coop, err := i.coops.FindByName(ctx, coopName)
	if err != nil {
		return fmt.Sprintf("Coop %q not found", coopName)
	}

	eggs, err := strconv.Atoi(eggsRaw)
	if err != nil || eggs < 0 {
		return fmt.Sprintf("Invalid eggs_collected for coop %q", coopName)
	}

	collectionDate := i.now().UTC()
	if raw := field("collection_date"); raw != "" {
		if parsed, err := time.Parse("2006-01-02", raw); err == nil {
			collectionDate = parsed
		}
	}

	var notes *string
	if raw := field("notes"); raw != "" {
		notes = &raw
	}

	harvest := &domain.Harvest{
		CoopID:         coop.ID,
		EggsCollected:  eggs,
		CollectionDate: collectionDate,
		Notes:          notes,
	}

	if _, err := i.harvests.Create(ctx, harvest); err != nil {
		return fmt.Sprintf("Error creating harvest for coop %q: %v", coopName, err)
	}

	return ""
}
