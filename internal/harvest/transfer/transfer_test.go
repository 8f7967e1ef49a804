package transfer

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/ruolez/EggsReserve/internal/domain"
	"github.com/ruolez/EggsReserve/internal/errors"
)

type fakeCoopResolver struct {
	coops map[string]*domain.Coop
}

func (f *fakeCoopResolver) FindByName(ctx context.Context, name string) (*domain.Coop, error) {
	coop, ok := f.coops[name]
	if !ok {
		return nil, errors.NewNotFoundError(fmt.Sprintf("coop %s not found", name))
	}
	return coop, nil
}

type fakeHarvestCreator struct {
	created []*domain.Harvest
}

func (f *fakeHarvestCreator) Create(ctx context.Context, h *domain.Harvest) (*domain.Harvest, error) {
	h.ID = int64(len(f.created) + 1)
	f.created = append(f.created, h)
	return h, nil
}

func TestImport_ResolvesCoopByName(t *testing.T) {
	coops := &fakeCoopResolver{coops: map[string]*domain.Coop{
		"Barn Coop": {ID: 3, Name: "Barn Coop"},
	}}
	creator := &fakeHarvestCreator{}

	input := strings.Join([]string{
		"coop_name,collection_date,eggs_collected,notes",
		"Barn Coop,2026-03-01,12,first spring batch",
		"Ghost Coop,2026-03-01,8,",
	}, "\n")

	importer := NewHarvestImporter(coops, creator, zap.NewNop())
	result, err := importer.Import(context.Background(), strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Success != 1 {
		t.Errorf("expected 1 success, got %d", result.Success)
	}
	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "Ghost Coop") {
		t.Errorf("expected a coop-not-found error, got %v", result.Errors)
	}

	if len(creator.created) != 1 {
		t.Fatalf("expected 1 harvest created, got %d", len(creator.created))
	}
	h := creator.created[0]
	if h.CoopID != 3 || h.EggsCollected != 12 {
		t.Errorf("unexpected harvest: %+v", h)
	}
	if h.Notes == nil || *h.Notes != "first spring batch" {
		t.Errorf("notes lost in import")
	}
	want := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	if !h.CollectionDate.Equal(want) {
		t.Errorf("expected collection date %s, got %s", want, h.CollectionDate)
	}
}

func TestImport_RejectsNegativeEggs(t *testing.T) {
	coops := &fakeCoopResolver{coops: map[string]*domain.Coop{
		"Barn Coop": {ID: 1, Name: "Barn Coop"},
	}}
	creator := &fakeHarvestCreator{}

	input := strings.Join([]string{
		"coop_name,eggs_collected",
		"Barn Coop,-5",
		"Barn Coop,abc",
	}, "\n")

	importer := NewHarvestImporter(coops, creator, zap.NewNop())
	result, err := importer.Import(context.Background(), strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Success != 0 || len(result.Errors) != 2 {
		t.Errorf("expected both rows rejected, got success=%d errors=%v", result.Success, result.Errors)
	}
	if len(creator.created) != 0 {
		t.Errorf("no harvests may be created from invalid rows")
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	notes := "roundtrip"
	harvests := []domain.Harvest{
		{
			CoopID:         1,
			CoopName:       "Barn Coop",
			EggsCollected:  10,
			CollectionDate: time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC),
			Notes:          &notes,
		},
	}

	csvText, err := Export(harvests)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}

	coops := &fakeCoopResolver{coops: map[string]*domain.Coop{
		"Barn Coop": {ID: 1, Name: "Barn Coop"},
	}}
	creator := &fakeHarvestCreator{}

	importer := NewHarvestImporter(coops, creator, zap.NewNop())
	result, err := importer.Import(context.Background(), strings.NewReader(csvText))
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if result.Success != 1 || len(result.Errors) != 0 {
		t.Fatalf("expected a clean round trip, got success=%d errors=%v", result.Success, result.Errors)
	}

	got := creator.created[0]
	if got.CoopID != 1 || got.EggsCollected != 10 {
		t.Errorf("harvest fields lost in round trip: %+v", got)
	}
	if got.Notes == nil || *got.Notes != "roundtrip" {
		t.Errorf("notes lost in round trip")
	}
	if !got.CollectionDate.Equal(harvests[0].CollectionDate) {
		t.Errorf("collection date lost in round trip, got %s", got.CollectionDate)
	}
}
