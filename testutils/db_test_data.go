package testutils

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/itbasis/go-clock"
	"github.com/mww/fantasy_basketball/containers"
	"github.com/mww/fantasy_basketball/db"
)

// StatsCSV is a small stats file with every scored column. The fantasy points
// for each player are in ExpectedPoints. Mikal Bridges and Derrick White have
// the same score, Bridges is first in the file.
const StatsCSV = `Player,Team,Pos,Age,PTS,REB,AST,STL,BLK,TO,FG,FGA,FTM,FTA,3P
LeBron James,LAL,SF,39,25,7,8,1,1,3,10,18,4,5,2
Stephen Curry,GSW,PG,35,27,4,5,1,0,3,9,20,4,4,5
Nikola Jokic,DEN,C,29,26,12,9,1,1,3,10,17,4,5,1
Kawhi Leonard,LAC,SF,32,24,6,4,2,1,2,9,17,4,5,2
Rudy Gobert,MIN,C,31,14,13,1,1,2,1,5,8,4,6,0
Jalen Brunson,NYK,PG,27,28,4,7,1,0,2,10,21,5,6,3
Mikal Bridges,NYK,SF,27,20,4,4,1,0,2,7,16,3,3,3
Derrick White,BOS,PG,29,11,4,5,1,1,1,6,13,2,2,3
`

const (
	Jokic   = "Nikola Jokic"
	LeBron  = "LeBron James"
	Leonard = "Kawhi Leonard"
	Brunson = "Jalen Brunson"
	Curry   = "Stephen Curry"
	Gobert  = "Rudy Gobert"
	Bridges = "Mikal Bridges"
	White   = "Derrick White"
)

// RankedNames is the expected overall order of StatsCSV.
var RankedNames = []string{Jokic, LeBron, Leonard, Brunson, Curry, Gobert, Bridges, White}

var ExpectedPoints = map[string]float64{
	Jokic:   61,
	LeBron:  53,
	Leonard: 48,
	Brunson: 47,
	Curry:   42,
	Gobert:  39,
	Bridges: 33,
	White:   33,
}

var ExpectedPositionRanks = map[string]int{
	Jokic:   1,
	Gobert:  2,
	LeBron:  1,
	Leonard: 2,
	Bridges: 3,
	Brunson: 1,
	Curry:   2,
	White:   3,
}

// WriteStatsFile writes contents to a new file in a temp dir and returns the path.
func WriteStatsFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nbastats.csv")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("error writing stats file: %v", err)
	}
	return path
}

type TestDB struct {
	container *containers.DBContainer
	DB        db.DB
	Clock     *clock.Mock
}

func NewTestDB() *TestDB {
	ctx := context.Background()
	container, err := containers.NewDBContainer(ctx)
	if err != nil {
		log.Fatalf("error creating db container: %v", err)
	}
	clock := clock.NewMock()

	db, err := db.New(ctx, container.ConnectionString(), clock)
	if err != nil {
		container.Shutdown()
		log.Fatalf("error connecting to db in test container: %v", err)
	}

	return &TestDB{
		container: container,
		DB:        db,
		Clock:     clock,
	}
}

func (db *TestDB) Shutdown() {
	db.DB.Close()
	if err := db.container.Shutdown(); err != nil {
		log.Printf("%v", err)
	}
}
