package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ja7ad/boltzmann/pkg/config"
	"github.com/ja7ad/boltzmann/pkg/store"
)

func testEnv() config.Env {
	return config.Env{Precision: 60, LogLevel: "error", Config: "", Workers: 1, Backend: "bigfloat"}
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd(testEnv())
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestTetrate(t *testing.T) {
	out, err := execute(t, "", "tetrate", "2", "3")
	require.NoError(t, err)
	assert.Equal(t, "16\n", out)

	out, err = execute(t, "", "--backend", "decimal", "tetrate", "2", "0")
	require.NoError(t, err)
	assert.Equal(t, "1\n", out)

	_, err = execute(t, "", "tetrate", "2", "x")
	assert.Error(t, err)
}

func TestFactorial(t *testing.T) {
	out, err := execute(t, "", "factorial", "20")
	require.NoError(t, err)
	assert.Equal(t, "2432902008176640000\n", out)

	out, err = execute(t, "", "factorial", "0")
	require.NoError(t, err)
	assert.Equal(t, "1\n", out)

	out, err = execute(t, "", "factorial", "30")
	require.NoError(t, err)
	assert.Equal(t, "265252859812191058636308480000000\n", out)

	_, err = execute(t, "", "factorial", "-1")
	assert.Error(t, err)
	_, err = execute(t, "", "factorial", "65537")
	assert.ErrorContains(t, err, "65536")
}

func TestExpLn(t *testing.T) {
	out, err := execute(t, "", "-d", "20", "exp", "1")
	require.NoError(t, err)
	assert.Equal(t, "2.7182818284590452354\n", out)

	out, err = execute(t, "", "-d", "10", "ln", "1")
	require.NoError(t, err)
	assert.Equal(t, "0\n", out)
}

func TestUnknownBackend(t *testing.T) {
	_, err := execute(t, "", "--backend", "float", "exp", "1")
	assert.ErrorContains(t, err, "unknown backend")
}

func TestConstants(t *testing.T) {
	out, err := execute(t, "", "-d", "8", "constants")
	require.NoError(t, err)
	assert.Contains(t, out, "8.6173324e-05")
	assert.Contains(t, out, "3.1415927")
}

func TestSweep_FromConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "boltzmann.cfg")
	csvPath := filepath.Join(dir, "out.csv")
	require.NoError(t, os.WriteFile(cfg, []byte(csvPath+"\n100 300 2\n0 0.01\n50\n"), 0o644))

	jsonPath := filepath.Join(dir, "out.json")
	htmlPath := filepath.Join(dir, "report", "out.html")
	dbPath := filepath.Join(dir, "sweeps.db")

	out, err := execute(t, "", "sweep", "-c", cfg, "--yes", "--quiet", "--pretty",
		"--json", jsonPath, "--html", htmlPath, "--sqlite", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "P_2(tau)")
	assert.Contains(t, out, "4 samples of 2 states")

	b, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(b), "All energies are in eV\n\nT (K),tau,Z(tau),P_1(tau),P_2(tau)\n"))

	b, err = os.ReadFile(jsonPath)
	require.NoError(t, err)
	var rows []map[string]string
	require.NoError(t, json.Unmarshal(b, &rows))
	assert.Len(t, rows, 4)

	b, err = os.ReadFile(htmlPath)
	require.NoError(t, err)
	assert.Contains(t, string(b), "Boltzmann Report")

	s, err := store.Open(dbPath)
	require.NoError(t, err)
	defer s.Close()
	list, err := s.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 4, list[0].Samples)
}

func TestHistory(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "boltzmann.cfg")
	csvPath := filepath.Join(dir, "out.csv")
	dbPath := filepath.Join(dir, "sweeps.db")
	require.NoError(t, os.WriteFile(cfg, []byte(csvPath+"\n100 300 2\n0 0.01\n50\n"), 0o644))

	_, err := execute(t, "", "history", "--sqlite", dbPath)
	assert.Error(t, err, "missing database")

	for range 2 {
		_, err = execute(t, "", "sweep", "-c", cfg, "--yes", "--quiet", "--sqlite", dbPath)
		require.NoError(t, err)
	}

	out, err := execute(t, "", "history", "--sqlite", dbPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "ID"))
	assert.True(t, strings.HasPrefix(lines[2], "2 "), "newest first")
	assert.Contains(t, lines[3], csvPath)

	out, err = execute(t, "", "history", "--sqlite", dbPath, "1")
	require.NoError(t, err)
	assert.Contains(t, out, "sweep 1 (")
	assert.Contains(t, out, "- energies (eV):  0 0.01")
	assert.Contains(t, out, "P_2(tau)")
	body := strings.TrimSpace(out[strings.Index(out, "T (K)"):])
	assert.Len(t, strings.Split(body, "\n"), 2+4)

	_, err = execute(t, "", "history", "--sqlite", dbPath, "9")
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = execute(t, "", "history", "--sqlite", dbPath, "x")
	assert.Error(t, err)
}

func TestSweep_InteractiveWithSaveRetry(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "missing", "out.csv")
	good := filepath.Join(dir, "out.csv")
	stdin := strings.Join([]string{bad, "1", "2", "0.5", "1", "0", "n", good}, "\n") + "\n"

	out, err := execute(t, stdin, "sweep", "--quiet")
	require.NoError(t, err)
	assert.Contains(t, out, "Enter a new filename")

	b, err := os.ReadFile(good)
	require.NoError(t, err)
	assert.Contains(t, string(b), "All energies are in eV")
}

func TestSweep_DeclinedConfigAsks(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "boltzmann.cfg")
	require.NoError(t, os.WriteFile(cfg, []byte("unused.csv\n100 300 1\n0\n"), 0o644))
	good := filepath.Join(dir, "asked.csv")
	stdin := strings.Join([]string{"n", good, "1", "2", "0.5", "1", "0", "n"}, "\n") + "\n"

	out, err := execute(t, stdin, "sweep", "-c", cfg, "--quiet", "--backend", "decimal")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration file found")
	_, err = os.Stat(good)
	assert.NoError(t, err)
}
