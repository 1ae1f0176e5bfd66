package cli

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mww/fantasy_basketball/model"
)

func renderPlayers(w io.Writer, players []model.RankedPlayer) {
	if len(players) == 0 {
		fmt.Fprintln(w, "No players found.")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Rank", "Pos Rank", "Player", "Pos", "Team", "Age", "Points"})
	for _, p := range players {
		t.AppendRow(table.Row{p.OverallRank, p.PositionRank, p.Name, p.Position, p.Team, p.FormattedAge(), p.FormattedPoints()})
	}
	t.Render()
	fmt.Fprintf(w, "(%d players)\n", len(players))
}

func renderComparison(w io.Writer, c *model.Comparison) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"", c.First.Name, c.Second.Name})
	t.AppendRows([]table.Row{
		{"Position", c.First.Position, c.Second.Position},
		{"Team", c.First.Team, c.Second.Team},
		{"Overall Rank", c.First.OverallRank, c.Second.OverallRank},
		{"Position Rank", c.First.PositionRank, c.Second.PositionRank},
		{"Points", c.First.FormattedPoints(), c.Second.FormattedPoints()},
	})
	t.Render()

	if c.IsTie() {
		fmt.Fprintf(w, "Tie: both players have %s points\n", c.First.FormattedPoints())
		return
	}
	winner := c.Winner()
	fmt.Fprintf(w, "Winner: %s with %s points\n", winner.Name, winner.FormattedPoints())
}
