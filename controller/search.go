package controller

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/mww/fantasy_basketball/model"
	"golang.org/x/text/cases"
)

// Search returns the players whose name contains fragment, ignoring case. The
// results are in ranked order. An empty fragment matches every player.
func Search(ranked []model.RankedPlayer, fragment string) []model.RankedPlayer {
	// A Caser keeps state and isn't safe to share, so make one per call.
	fold := cases.Fold()
	f := fold.String(fragment)

	results := make([]model.RankedPlayer, 0, 8)
	for _, p := range ranked {
		if strings.Contains(fold.String(p.Name), f) {
			results = append(results, p)
		}
	}
	return results
}

// Compare looks up two players by exact name. If more than one player has the
// same name the highest ranked one is used.
func Compare(ranked []model.RankedPlayer, nameA, nameB string) (*model.Comparison, error) {
	a, err := findPlayer(ranked, nameA)
	if err != nil {
		return nil, err
	}
	b, err := findPlayer(ranked, nameB)
	if err != nil {
		return nil, err
	}

	c := &model.Comparison{First: *a, Second: *b, Outcome: model.OutcomeTie}
	if a.Points > b.Points {
		c.Outcome = model.OutcomeFirst
	} else if b.Points > a.Points {
		c.Outcome = model.OutcomeSecond
	}
	return c, nil
}

func findPlayer(ranked []model.RankedPlayer, name string) (*model.RankedPlayer, error) {
	for i := range ranked {
		if ranked[i].Name == name {
			return &ranked[i], nil
		}
	}
	return nil, &NotFoundError{Name: name}
}

func (c *controller) Search(_ context.Context, query string) ([]model.RankedPlayer, error) {
	q, pos := getPositionFromQuery(query)
	q, team := getTeamFromQuery(q)

	if pos == model.POS_UNKNOWN && team == "" && q == "" {
		return nil, fmt.Errorf("error not a valid query: '%s'", query)
	}

	matches := Search(c.snapshot(), q)
	if pos == model.POS_UNKNOWN && team == "" {
		return matches, nil
	}

	results := make([]model.RankedPlayer, 0, len(matches))
	for _, p := range matches {
		if pos != model.POS_UNKNOWN && p.Position != pos {
			continue
		}
		if team != "" && !strings.EqualFold(p.Team, team) {
			continue
		}
		results = append(results, p)
	}
	return results, nil
}

func (c *controller) Compare(_ context.Context, nameA, nameB string) (*model.Comparison, error) {
	return Compare(c.snapshot(), nameA, nameB)
}

func (c *controller) PlayerNames(_ context.Context) []string {
	ranked := c.snapshot()
	names := make([]string, 0, len(ranked))
	for _, p := range ranked {
		names = append(names, p.Name)
	}
	return names
}

var positionRegex = regexp.MustCompile(`(?i)(pos|position)\s*:\s*(?P<pos>[\w-]+)`)

// Parse out the position from the query, returning the same query without the position.
// So if the query is "Curry pos:PG" this will return "Curry" and model.POS_PG.
// If the input query does not have a `pos:` argument then the function will return the
// input string and model.POS_UNKNOWN.
// Allowed tags for the position are `pos` and `position` case insensitive.
func getPositionFromQuery(q string) (string, model.Position) {
	pos := model.POS_UNKNOWN
	m := positionRegex.FindStringSubmatch(q)
	if m != nil {
		p := m[positionRegex.SubexpIndex("pos")]
		pos = model.ParsePosition(p)
		q = strings.Replace(q, m[0], "", 1) // Remove the position match from the query
		q = strings.TrimSpace(q)            // Remove any remaining whitespace
	}

	return q, pos
}

var teamRegex = regexp.MustCompile(`(?i)team\s*:\s*(?P<team>\w+)`)

// Parse out the team from the query, returning the same query without the team.
// So if the query is "Curry team:GSW" this will return "Curry" and "GSW".
// If the input query does not have a `team:` argument then the team is empty.
func getTeamFromQuery(q string) (string, string) {
	team := ""
	m := teamRegex.FindStringSubmatch(q)
	if m != nil {
		team = strings.ToUpper(m[teamRegex.SubexpIndex("team")])
		q = strings.Replace(q, m[0], "", 1)
		q = strings.TrimSpace(q)
	}

	return q, team
}
