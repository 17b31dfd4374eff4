package seasonyear

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"
)

const indexFixture = `<h2 class="stat-group postseason-header">Postseason 2025</h2>
{% assign standings = site.data.standings.all_teams_standings_metrics_2025 %}
<!-- Fallback to 2025 data -->
<a href="/assets/data/redsox_pitches_2025.json">Pitches</a>
`

const dashboardFixture = `fetch('/assets/data/postseason/redsox_postseason_stats_2025.json');
fetch('redsox/data/postseason/redsox_postseason_series_2025.json');
// 2025 line
const data2025 = data.filter(d => d.season === 2025);
const last2025 = data2025[data2025.length - 1];
svg.append('text').text('2025');
`

func writeSite(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, IndexFile), []byte(indexFixture), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "assets", "js"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, DashboardFile), []byte(dashboardFixture), 0o644))
	return root
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestUpdateFile_CountsAndWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.html")
	require.NoError(t, os.WriteFile(path, []byte("2025 and 2025, also x2025"), 0o644))

	changes, err := UpdateFile(path, []Replacement{
		{Old: "x2025", New: "x2026"},
		{Old: "2025", New: "2026"},
		{Old: "1999", New: "2000"},
	}, false)
	require.NoError(t, err)
	require.Equal(t, []Change{
		{Old: "x2025", New: "x2026", Count: 1},
		{Old: "2025", New: "2026", Count: 2},
	}, changes)
	require.Equal(t, "2026 and 2026, also x2026", readFile(t, path))
}

func TestUpdateFile_DryRunLeavesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.html")
	require.NoError(t, os.WriteFile(path, []byte("Postseason 2025"), 0o644))

	changes, err := UpdateFile(path, []Replacement{{Old: "2025", New: "2026"}}, true)
	require.NoError(t, err)
	require.Len(t, changes, 1)
	require.Equal(t, "Postseason 2025", readFile(t, path))
}

func TestUpdateFile_Missing(t *testing.T) {
	_, err := UpdateFile(filepath.Join(t.TempDir(), "nope.html"), nil, false)
	require.ErrorIs(t, err, ErrFileNotFound)
}

func TestUpdater_Run(t *testing.T) {
	root := writeSite(t)

	u := &Updater{Root: root}
	report := u.Run(2025, 2026, Plan("redsox", 2025, 2026))

	require.Len(t, report.Steps, 5)
	require.Equal(t, 5, report.FilesUpdated)
	for _, step := range report.Steps {
		require.NoError(t, step.Err, step.Title)
	}

	index := readFile(t, filepath.Join(root, IndexFile))
	require.Contains(t, index, "Postseason 2026</h2>")
	require.Contains(t, index, "all_teams_standings_metrics_2026")
	require.Contains(t, index, "Fallback to 2026 data")
	require.Contains(t, index, "redsox_pitches_2026.json")
	require.NotContains(t, index, "2025")

	dashboard := readFile(t, filepath.Join(root, DashboardFile))
	require.Contains(t, dashboard, "redsox_postseason_stats_2026.json")
	require.Contains(t, dashboard, "redsox_postseason_series_2026.json")
	require.Contains(t, dashboard, "const data2026 = data.filter(d => d.season === 2026);")
	require.Contains(t, dashboard, "const last2026 = data2026[data2026.length - 1];")
	require.Contains(t, dashboard, ".text('2026')")
	require.NotContains(t, dashboard, "2025")
}

func TestUpdater_RunDryRun(t *testing.T) {
	root := writeSite(t)

	u := &Updater{Root: root, DryRun: true}
	report := u.Run(2025, 2026, Plan("redsox", 2025, 2026))

	require.Equal(t, 5, report.FilesUpdated)
	require.Equal(t, indexFixture, readFile(t, filepath.Join(root, IndexFile)))
	require.Equal(t, dashboardFixture, readFile(t, filepath.Join(root, DashboardFile)))
}

func TestUpdater_RunMissingFileContinues(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, IndexFile), []byte(indexFixture), 0o644))

	report := (&Updater{Root: root}).Run(2025, 2026, Plan("redsox", 2025, 2026))

	require.ErrorIs(t, report.Steps[1].Err, ErrFileNotFound)
	require.ErrorIs(t, report.Steps[2].Err, ErrFileNotFound)
	require.Equal(t, 3, report.FilesUpdated)
}

func TestRender(t *testing.T) {
	color.NoColor = true
	root := writeSite(t)
	report := (&Updater{Root: root, DryRun: true}).Run(2025, 2026, Plan("redsox", 2025, 2026))

	var buf bytes.Buffer
	Render(&buf, report)
	out := buf.String()

	require.Contains(t, out, "Season Year Update: 2025 → 2026")
	require.Contains(t, out, "Mode: DRY RUN")
	require.Contains(t, out, "[DRY RUN] Would update index.markdown")
	require.Contains(t, out, "1×")
	require.Contains(t, out, "5 file(s) would be updated")
}
