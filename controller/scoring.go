package controller

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/mww/fantasy_basketball/model"
)

var errNotFinite = errors.New("stat is not a finite number")

// FantasyPoints totals value * weight for every stat in the table. Stats that
// are missing from the record or empty count as 0. Any other value must be a
// finite number, surrounding whitespace is allowed.
func FantasyPoints(rec model.StatRecord, table model.ScoringTable) (float64, error) {
	total := 0.0
	for _, sw := range table {
		v, ok := rec.Get(sw.Stat)
		if !ok || v == "" {
			continue
		}

		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, &ParseError{Player: rec.Name(), Stat: sw.Stat, Value: v, Err: err}
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, &ParseError{Player: rec.Name(), Stat: sw.Stat, Value: v, Err: errNotFinite}
		}
		total += f * sw.Weight
	}
	return total, nil
}
