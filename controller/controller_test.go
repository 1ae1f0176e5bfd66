package controller

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/mww/fantasy_basketball/db"
	"github.com/mww/fantasy_basketball/db/mockdb"
	"github.com/mww/fantasy_basketball/model"
	"github.com/mww/fantasy_basketball/testutils"
	"github.com/stretchr/testify/mock"
)

var (
	// A global testDB instance shared by the tests that need postgres. Only
	// started on first use so the rest of the tests run without docker.
	testDB     *testutils.TestDB
	testDBOnce sync.Once
)

func getTestDB(t *testing.T) *testutils.TestDB {
	t.Helper()
	testDBOnce.Do(func() {
		testDB = testutils.NewTestDB()
	})
	return testDB
}

// TestMain controls the main for the tests and allows for setup and shutdown of the tests
func TestMain(m *testing.M) {
	defer func() {
		// Catch all panics to make sure the shutdown is successfully run
		if r := recover(); r != nil {
			if testDB != nil {
				testDB.Shutdown()
			}
			fmt.Printf("panic - %v\n", r)
		}
	}()

	code := m.Run()
	if testDB != nil {
		testDB.Shutdown()
	}
	os.Exit(code)
}

// newTestController returns a controller that has already loaded testutils.StatsCSV.
func newTestController(t *testing.T) *controller {
	t.Helper()
	path := testutils.WriteStatsFile(t, testutils.StatsCSV)

	c, err := New(clock.NewMock(), nil, path)
	if err != nil {
		t.Fatalf("error constructing controller: %v", err)
	}
	if err := c.Reload(context.Background()); err != nil {
		t.Fatalf("error loading stats: %v", err)
	}
	return c.(*controller)
}

func TestNew_noSource(t *testing.T) {
	_, err := New(clock.NewMock(), nil, "")
	if err == nil {
		t.Fatal("expected an error creating a controller without a stats source")
	}
}

func TestReload_fromCSV(t *testing.T) {
	ctx := context.Background()
	path := testutils.WriteStatsFile(t, testutils.StatsCSV)

	mockDB := &mockdb.DB{}
	mockDB.On("ReplaceStats", mock.Anything, mock.MatchedBy(func(r []model.StatRecord) bool {
		return len(r) == len(testutils.RankedNames)
	})).Return(nil)

	clk := clock.NewMock()
	clk.Set(time.Date(2024, 4, 14, 12, 0, 0, 0, time.UTC))

	ctrl, err := New(clk, mockDB, path)
	if err != nil {
		t.Fatalf("error constructing controller: %v", err)
	}
	if !ctrl.LoadedAt().IsZero() {
		t.Errorf("expected zero loaded time before reload, got %v", ctrl.LoadedAt())
	}

	if err := ctrl.Reload(ctx); err != nil {
		t.Fatalf("error reloading: %v", err)
	}
	mockDB.AssertExpectations(t)

	ranked := ctrl.Rankings(ctx, model.POS_UNKNOWN)
	if len(ranked) != len(testutils.RankedNames) {
		t.Fatalf("expected %d players, got %d", len(testutils.RankedNames), len(ranked))
	}
	if ranked[0].Name != testutils.Jokic {
		t.Errorf("expected %s to be ranked first, got %s", testutils.Jokic, ranked[0].Name)
	}
	if !ctrl.LoadedAt().Equal(clk.Now()) {
		t.Errorf("unexpected loaded time: %v", ctrl.LoadedAt())
	}
}

func TestReload_fromDB(t *testing.T) {
	ctx := context.Background()

	records := []model.StatRecord{
		model.NewStatRecord(map[string]string{"Player": "A", "Pos": "C", "PTS": "10"}),
		model.NewStatRecord(map[string]string{"Player": "B", "Pos": "PG", "PTS": "20"}),
	}
	mockDB := &mockdb.DB{}
	mockDB.On("ListStats", mock.Anything).Return(records, nil)
	mockDB.On("LastImported", mock.Anything).Return(time.Date(2024, 4, 14, 18, 30, 0, 0, time.UTC), nil)

	ctrl, err := New(clock.NewMock(), mockDB, "")
	if err != nil {
		t.Fatalf("error constructing controller: %v", err)
	}
	if err := ctrl.Reload(ctx); err != nil {
		t.Fatalf("error reloading: %v", err)
	}

	mockDB.AssertExpectations(t)
	mockDB.AssertNotCalled(t, "ReplaceStats", mock.Anything, mock.Anything)

	names := ctrl.PlayerNames(ctx)
	if len(names) != 2 || names[0] != "B" || names[1] != "A" {
		t.Errorf("unexpected player names: %v", names)
	}
}

func TestReload_dbErrors(t *testing.T) {
	ctx := context.Background()
	path := testutils.WriteStatsFile(t, testutils.StatsCSV)

	tests := map[string]struct {
		csvPath string
		setup   func(m *mockdb.DB)
	}{
		"save fails": {csvPath: path, setup: func(m *mockdb.DB) {
			m.On("ReplaceStats", mock.Anything, mock.Anything).Return(errors.New("connection refused"))
		}},
		"list fails": {csvPath: "", setup: func(m *mockdb.DB) {
			m.On("ListStats", mock.Anything).Return(nil, db.ErrNoStats)
		}},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			mockDB := &mockdb.DB{}
			tc.setup(mockDB)

			ctrl, err := New(clock.NewMock(), mockDB, tc.csvPath)
			if err != nil {
				t.Fatalf("error constructing controller: %v", err)
			}
			if err := ctrl.Reload(ctx); err == nil {
				t.Fatal("expected an error reloading")
			}
			if r := ctrl.Rankings(ctx, model.POS_UNKNOWN); len(r) != 0 {
				t.Errorf("expected no rankings after a failed reload, got %d", len(r))
			}
			mockDB.AssertExpectations(t)
		})
	}
}

func TestReload_keepsPreviousRankingsOnError(t *testing.T) {
	ctx := context.Background()
	ctrl := newTestController(t)

	if err := os.WriteFile(ctrl.csvPath, []byte("Player,Pos,PTS\nA,C,ten\n"), 0o644); err != nil {
		t.Fatalf("error rewriting stats file: %v", err)
	}

	err := ctrl.Reload(ctx)
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected a parse error, got: %v", err)
	}

	ranked := ctrl.Rankings(ctx, model.POS_UNKNOWN)
	if len(ranked) != len(testutils.RankedNames) {
		t.Errorf("expected the previous %d players to be kept, got %d", len(testutils.RankedNames), len(ranked))
	}
}

func TestImport(t *testing.T) {
	ctx := context.Background()

	mockDB := &mockdb.DB{}
	mockDB.On("ReplaceStats", mock.Anything, mock.Anything).Return(nil)

	ctrl, err := New(clock.NewMock(), mockDB, "")
	if err != nil {
		t.Fatalf("error constructing controller: %v", err)
	}
	if err := ctrl.Import(ctx, strings.NewReader(testutils.StatsCSV)); err != nil {
		t.Fatalf("error importing stats: %v", err)
	}
	mockDB.AssertExpectations(t)

	if names := ctrl.PlayerNames(ctx); len(names) != len(testutils.RankedNames) {
		t.Errorf("expected %d players, got %d", len(testutils.RankedNames), len(names))
	}

	// A bad upload is not saved and doesn't replace the rankings.
	err = ctrl.Import(ctx, strings.NewReader("Name,Team\nA,B\n"))
	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected a load error, got: %v", err)
	}
	mockDB.AssertNumberOfCalls(t, "ReplaceStats", 1)
	if names := ctrl.PlayerNames(ctx); len(names) != len(testutils.RankedNames) {
		t.Errorf("expected %d players after a bad import, got %d", len(testutils.RankedNames), len(names))
	}
}

func TestRankings_byPosition(t *testing.T) {
	ctx := context.Background()
	ctrl := newTestController(t)

	pgs := ctrl.Rankings(ctx, model.POS_PG)
	expected := []string{testutils.Brunson, testutils.Curry, testutils.White}
	if len(pgs) != len(expected) {
		t.Fatalf("expected %d point guards, got %d", len(expected), len(pgs))
	}
	for i, p := range pgs {
		if p.Name != expected[i] || p.PositionRank != i+1 {
			t.Errorf("position %d - expected %s, got %s (rank %d)", i+1, expected[i], p.Name, p.PositionRank)
		}
	}

	if r := ctrl.Rankings(ctx, model.Position("G-F")); len(r) != 0 {
		t.Errorf("expected no players for unused position, got %d", len(r))
	}
}

// Changing the returned slice must not change the controller's rankings.
func TestRankings_returnsCopy(t *testing.T) {
	ctx := context.Background()
	ctrl := newTestController(t)

	r := ctrl.Rankings(ctx, model.POS_UNKNOWN)
	r[0].Name = "changed"

	if ctrl.Rankings(ctx, model.POS_UNKNOWN)[0].Name != testutils.Jokic {
		t.Error("rankings were changed through the returned slice")
	}
}

func TestReload_postgres(t *testing.T) {
	ctx := context.Background()
	path := testutils.WriteStatsFile(t, testutils.StatsCSV)
	tdb := getTestDB(t)

	tdb.Clock.Set(time.Date(2024, 4, 14, 18, 0, 0, 0, time.UTC))

	importer, err := New(tdb.Clock, tdb.DB, path)
	if err != nil {
		t.Fatalf("error constructing controller: %v", err)
	}
	if err := importer.Reload(ctx); err != nil {
		t.Fatalf("error importing stats: %v", err)
	}

	imported, err := tdb.DB.LastImported(ctx)
	if err != nil {
		t.Fatalf("error getting import time: %v", err)
	}
	if !imported.Equal(tdb.Clock.Now()) {
		t.Errorf("unexpected import time: %v", imported)
	}

	// A second controller without a file ranks the stats saved by the first.
	reader, err := New(tdb.Clock, tdb.DB, "")
	if err != nil {
		t.Fatalf("error constructing controller: %v", err)
	}
	if err := reader.Reload(ctx); err != nil {
		t.Fatalf("error loading stats from db: %v", err)
	}

	want := importer.Rankings(ctx, model.POS_UNKNOWN)
	got := reader.Rankings(ctx, model.POS_UNKNOWN)
	if len(want) != len(got) {
		t.Fatalf("expected %d players, got %d", len(want), len(got))
	}
	for i := range want {
		if want[i] != got[i] {
			t.Errorf("rank %d - expected: %+v, got: %+v", i+1, want[i], got[i])
		}
	}
}
