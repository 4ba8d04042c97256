package main

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/tuicube/internal/config"
	"github.com/verte-zerg/tuicube/internal/model"
	"github.com/verte-zerg/tuicube/internal/solvefile"
)

func isolateXDG(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	return dir
}

func TestEditorCommand(t *testing.T) {
	argv, err := editorCommand("", "/tmp/c.toml")
	require.NoError(t, err)
	assert.Equal(t, []string{"vi", "/tmp/c.toml"}, argv)

	argv, err = editorCommand("code --wait", "/tmp/c.toml")
	require.NoError(t, err)
	assert.Equal(t, []string{"code", "--wait", "/tmp/c.toml"}, argv)

	argv, err = editorCommand(`"/opt/my editor/bin" -f`, "/tmp/c.toml")
	require.NoError(t, err)
	assert.Equal(t, []string{"/opt/my editor/bin", "-f", "/tmp/c.toml"}, argv)
}

func TestDefaultConfigTemplateIsValid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644))
	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)
	assert.Nil(t, cfg.Timer.Style)

	uncomment := regexp.MustCompile(`(?m)^# ([a-z-]+ = )`)
	enabled := uncomment.ReplaceAllString(defaultConfigTemplate(), "$1")
	require.NoError(t, os.WriteFile(path, []byte(enabled), 0o644))
	cfg, err = config.LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.Timer.Style)
	assert.Equal(t, defaultStyle, *cfg.Timer.Style)
	assert.Equal(t, defaultPollMs, *cfg.Timer.PollMs)
	assert.True(t, *cfg.Timer.Save)
	assert.Equal(t, "info", *cfg.Log.Level)
}

func TestResolveTimerConfigFlagsOverrideFile(t *testing.T) {
	isolateXDG(t)
	path := config.DefaultConfigPath()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("[timer]\nstyle = \"text\"\ndiscipline = \"hold\"\npoll-ms = 20\nsave = false\n"), 0o644))

	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--style", "rounded"}))
	cfg, err := resolveTimerConfig(cmd)
	require.NoError(t, err)

	assert.Equal(t, model.StyleRounded, cfg.Style)
	assert.Equal(t, model.DisciplineHold, cfg.Discipline)
	assert.Equal(t, 20*time.Millisecond, cfg.PollInterval)
	assert.False(t, cfg.Save)
}

func TestResolveTimerConfigRejectsBadValues(t *testing.T) {
	isolateXDG(t)
	for _, args := range [][]string{
		{"--poll-ms", "0"},
		{"--poll-ms", "101"},
		{"--style", "fancy"},
		{"--discipline", "inspect"},
		{"--log-level", "loud"},
	} {
		cmd := newRootCmd()
		require.NoError(t, cmd.ParseFlags(args))
		_, err := resolveTimerConfig(cmd)
		assert.Error(t, err, "%v", args)
	}
}

func TestImportExportAndPlainStats(t *testing.T) {
	dir := isolateXDG(t)
	in := filepath.Join(dir, "legacy.json")
	require.NoError(t, os.WriteFile(in, []byte(`{"solves":[
		{"time": 12000, "timestamp": "2024-05-01T10:00:00Z"},
		{"time": 11000, "timestamp": "2024-05-01T10:01:00Z"}
	]}`), 0o644))

	root := newRootCmd()
	root.SetArgs([]string{"import", in})
	require.NoError(t, root.Execute())

	out := filepath.Join(dir, "export", "solves.yaml")
	root = newRootCmd()
	root.SetArgs([]string{"export", "--out", out})
	require.NoError(t, root.Execute())

	doc, err := solvefile.Load(out)
	require.NoError(t, err)
	require.Len(t, doc.Solves, 2)
	assert.Equal(t, int64(12000), doc.Solves[0].Time)
	assert.Equal(t, "2024-05-01T10:01:00Z", doc.Solves[1].Timestamp)

	var buf bytes.Buffer
	root = newRootCmd()
	root.SetOut(&buf)
	root.SetArgs([]string{"stats", "--plain"})
	require.NoError(t, root.Execute())
	assert.Contains(t, buf.String(), "Solves: 2")
	assert.Contains(t, buf.String(), "Best: 11.000s")
}

func TestImportRejectsBadTimestamp(t *testing.T) {
	dir := isolateXDG(t)
	in := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(in, []byte(`{"solves":[{"time": 1, "timestamp": "soon"}]}`), 0o644))

	root := newRootCmd()
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"import", in})
	assert.Error(t, root.Execute())
}

func TestExportFormatFlag(t *testing.T) {
	isolateXDG(t)
	var buf bytes.Buffer
	root := newRootCmd()
	root.SetOut(&buf)
	root.SetArgs([]string{"export", "--format", "json"})
	require.NoError(t, root.Execute())
	assert.Contains(t, buf.String(), `"solves": []`)
}

func TestPrintSessionSummary(t *testing.T) {
	var buf bytes.Buffer
	printSessionSummary(&buf, nil)
	assert.Empty(t, buf.String())

	printSessionSummary(&buf, []time.Duration{2 * time.Second, time.Second})
	assert.Contains(t, buf.String(), "2 solves")
	assert.Contains(t, buf.String(), "best 1.000s")
}
