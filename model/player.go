package model

import (
	"maps"
	"slices"
	"strconv"
	"strings"
)

// Column names used by the stats file.
const (
	ColName     = "Player"
	ColPosition = "Pos"
	ColTeam     = "Team"
	ColAge      = "Age"
)

// StatRecord is one row of the stats file keyed by column name. Values are
// kept as the raw strings from the file, parsing happens when scoring.
type StatRecord struct {
	fields map[string]string
}

// NewStatRecord copies fields so the record can't be changed by the caller afterwards.
func NewStatRecord(fields map[string]string) StatRecord {
	return StatRecord{fields: maps.Clone(fields)}
}

func (r StatRecord) Get(key string) (string, bool) {
	v, ok := r.fields[key]
	return v, ok
}

// Keys returns the column names present in the record, sorted.
func (r StatRecord) Keys() []string {
	return slices.Sorted(maps.Keys(r.fields))
}

// Fields returns a copy of the underlying mapping.
func (r StatRecord) Fields() map[string]string {
	return maps.Clone(r.fields)
}

func (r StatRecord) Name() string {
	return r.fields[ColName]
}

func (r StatRecord) Position() Position {
	return ParsePosition(r.fields[ColPosition])
}

func (r StatRecord) Team() string {
	return strings.TrimSpace(r.fields[ColTeam])
}

// Age returns 0 when the age column is missing or not a whole number.
func (r StatRecord) Age() int {
	age, err := strconv.Atoi(strings.TrimSpace(r.fields[ColAge]))
	if err != nil {
		return 0
	}
	return age
}

// RankedPlayer is a player with a computed fantasy score and ranks. Both ranks
// start at 1.
type RankedPlayer struct {
	Name         string   `json:"name"`
	Position     Position `json:"position"`
	Team         string   `json:"team,omitempty"`
	Age          int      `json:"age,omitempty"`
	Points       float64  `json:"fantasy_points"`
	OverallRank  int      `json:"overall_rank"`
	PositionRank int      `json:"position_rank"`
}

// FormattedPoints rounds to two decimal places for display.
func (p *RankedPlayer) FormattedPoints() string {
	return strconv.FormatFloat(p.Points, 'f', 2, 64)
}

func (p *RankedPlayer) FormattedAge() string {
	if p.Age <= 0 {
		return "unknown"
	}
	return strconv.Itoa(p.Age)
}
