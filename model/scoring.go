package model

// StatWeight is how many fantasy points one unit of a stat is worth.
type StatWeight struct {
	Stat   string
	Weight float64
}

// ScoringTable is an ordered list of stat weights. The order is fixed so the
// floating point total for a player is the same on every run.
type ScoringTable []StatWeight

// DefaultScoringTable returns a new copy of the standard points league
// scoring.
func DefaultScoringTable() ScoringTable {
	return ScoringTable{
		{Stat: "PTS", Weight: 1},
		{Stat: "REB", Weight: 1},
		{Stat: "AST", Weight: 2},
		{Stat: "STL", Weight: 4},
		{Stat: "BLK", Weight: 4},
		{Stat: "TO", Weight: -2},
		{Stat: "FG", Weight: 2},
		{Stat: "FGA", Weight: -1},
		{Stat: "FTM", Weight: 1},
		{Stat: "FTA", Weight: -1},
		{Stat: "3P", Weight: 1},
	}
}

// Weight looks up the weight for a stat. The second return value is false
// if the stat isn't scored.
func (t ScoringTable) Weight(stat string) (float64, bool) {
	for _, sw := range t {
		if sw.Stat == stat {
			return sw.Weight, true
		}
	}
	return 0, false
}

// Stats returns the scored stat names in table order.
func (t ScoringTable) Stats() []string {
	stats := make([]string, 0, len(t))
	for _, sw := range t {
		stats = append(stats, sw.Stat)
	}
	return stats
}
