package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/mww/fantasy_basketball/controller"
	"github.com/mww/fantasy_basketball/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv(envCSVPath, "")
	t.Setenv(envConnString, "")

	cmd := NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return buf.String(), err
}

func TestRankCommand(t *testing.T) {
	path := testutils.WriteStatsFile(t, testutils.StatsCSV)

	tests := []struct {
		name    string
		args    []string
		wantOut []string
		notOut  []string
	}{
		{
			name:    "all players",
			args:    []string{"rank", "--csv", path},
			wantOut: append([]string{"61.00", "(8 players)"}, testutils.RankedNames...),
		},
		{
			name:    "by position",
			args:    []string{"rank", "--csv", path, "--pos", "c"},
			wantOut: []string{testutils.Jokic, testutils.Gobert, "(2 players)"},
			notOut:  []string{testutils.LeBron, testutils.Curry},
		},
		{
			name:    "limit",
			args:    []string{"rank", "--csv", path, "-n", "3"},
			wantOut: []string{testutils.Jokic, testutils.LeBron, testutils.Leonard, "(3 players)"},
			notOut:  []string{testutils.Brunson},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runCommand(t, tt.args...)
			require.NoError(t, err)
			for _, want := range tt.wantOut {
				assert.Contains(t, out, want)
			}
			for _, not := range tt.notOut {
				assert.NotContains(t, out, not)
			}
		})
	}
}

func TestRankCommand_order(t *testing.T) {
	path := testutils.WriteStatsFile(t, testutils.StatsCSV)

	out, err := runCommand(t, "rank", "--csv", path)
	require.NoError(t, err)

	last := -1
	for _, name := range testutils.RankedNames {
		i := strings.Index(out, name)
		require.Greater(t, i, last, "%s is out of order", name)
		last = i
	}
}

func TestRankCommand_envPath(t *testing.T) {
	path := testutils.WriteStatsFile(t, testutils.StatsCSV)

	cmd := NewRootCmd()
	t.Setenv(envConnString, "")
	t.Setenv(envCSVPath, path)
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"rank", "-n", "1"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), testutils.Jokic)
}

func TestRankCommand_missingFile(t *testing.T) {
	_, err := runCommand(t, "rank", "--csv", "does-not-exist.csv")

	var loadErr *controller.LoadError
	require.True(t, errors.As(err, &loadErr), "expected a load error, got: %v", err)
	assert.Equal(t, "does-not-exist.csv", loadErr.Path)
}

func TestSearchCommand(t *testing.T) {
	path := testutils.WriteStatsFile(t, testutils.StatsCSV)

	tests := []struct {
		name    string
		args    []string
		wantOut []string
		notOut  []string
	}{
		{
			name:    "fragment",
			args:    []string{"search", "--csv", path, "le"},
			wantOut: []string{testutils.LeBron, testutils.Leonard},
			notOut:  []string{testutils.Jokic, testutils.Curry},
		},
		{
			name:    "tags",
			args:    []string{"search", "--csv", path, "pos:PG", "team:NYK"},
			wantOut: []string{testutils.Brunson, "(1 players)"},
		},
		{
			name:    "no results",
			args:    []string{"search", "--csv", path, "zzz"},
			wantOut: []string{"No players found."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runCommand(t, tt.args...)
			require.NoError(t, err)
			for _, want := range tt.wantOut {
				assert.Contains(t, out, want)
			}
			for _, not := range tt.notOut {
				assert.NotContains(t, out, not)
			}
		})
	}
}

func TestSearchCommand_noArgs(t *testing.T) {
	_, err := runCommand(t, "search")
	assert.Error(t, err)
}

func TestCompareCommand(t *testing.T) {
	path := testutils.WriteStatsFile(t, testutils.StatsCSV)

	tests := []struct {
		name    string
		a, b    string
		wantOut string
	}{
		{name: "first wins", a: testutils.Jokic, b: testutils.Curry, wantOut: "Winner: Nikola Jokic with 61.00 points"},
		{name: "second wins", a: testutils.Curry, b: testutils.LeBron, wantOut: "Winner: LeBron James with 53.00 points"},
		{name: "tie", a: testutils.Bridges, b: testutils.White, wantOut: "Tie: both players have 33.00 points"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runCommand(t, "compare", "--csv", path, tt.a, tt.b)
			require.NoError(t, err)
			assert.Contains(t, out, tt.wantOut)
		})
	}
}

func TestCompareCommand_notFound(t *testing.T) {
	path := testutils.WriteStatsFile(t, testutils.StatsCSV)

	_, err := runCommand(t, "compare", "--csv", path, testutils.Jokic, "Larry Bird")
	require.Error(t, err)
	assert.ErrorIs(t, err, controller.ErrPlayerNotFound)
	assert.Contains(t, err.Error(), "Larry Bird")
}

func TestImportCommand_requiresDB(t *testing.T) {
	path := testutils.WriteStatsFile(t, testutils.StatsCSV)

	_, err := runCommand(t, "import", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), envConnString)
}

func TestPortFromEnv(t *testing.T) {
	tests := []struct {
		name    string
		env     string
		want    int
		wantErr bool
	}{
		{name: "default", env: "", want: defaultPort},
		{name: "set", env: "8080", want: 8080},
		{name: "invalid", env: "eighty", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(envPort, tt.env)
			got, err := portFromEnv()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
