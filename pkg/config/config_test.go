package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ja7ad/boltzmann/pkg/hpmath"
	"github.com/ja7ad/boltzmann/pkg/partition"
)

func write(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDetectFormat(t *testing.T) {
	tests := map[string]Format{
		"params.toml":   FormatTOML,
		"params.YAML":   FormatYAML,
		"params.yml":    FormatYAML,
		"boltzmann.cfg": FormatLegacy,
		"params":        FormatLegacy,
	}
	for path, want := range tests {
		assert.Equal(t, want, DetectFormat(path), path)
	}
	assert.Equal(t, "legacy", FormatLegacy.String())
}

func TestLoad_Legacy(t *testing.T) {
	path := write(t, "boltzmann.cfg", "results.csv\r\n100 300 3\n0 0.01\n0.02\n")
	f, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "results.csv", f.Output, "carriage return stripped")
	assert.Equal(t, Number("100"), f.TMin)
	assert.Equal(t, Number("300"), f.TMax)
	assert.Equal(t, []Number{"0", "0.01", "0.02"}, f.Energies)
	assert.Empty(t, f.Step)
	assert.Nil(t, f.Potentials)
}

func TestLoad_LegacyStepAndPotentials(t *testing.T) {
	path := write(t, "sys.cfg", "out.csv\n1e-3 1e3 2\n-0.5 0.5\n0.5\n0.1 0.2\n")
	f, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, Number("0.5"), f.Step)
	assert.Equal(t, []Number{"0.1", "0.2"}, f.Potentials)
}

func TestLoad_LegacyErrors(t *testing.T) {
	tests := map[string]string{
		"short header":       "out.csv\n100 300\n",
		"bad count":          "out.csv\n100 300 x\n1\n",
		"count out of range": "out.csv\n100 300 70000\n1\n",
		"missing energies":   "out.csv\n100 300 3\n1 2\n",
		"stray fields":       "out.csv\n100 300 2\n1 2\n0.5 0.1\n",
		"no output":          "\n100 300 1\n1\n",
		"zero states":        "out.csv\n100 300 0\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(write(t, "x.cfg", content))
			require.Error(t, err)
			t.Logf("%v", err)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "absent.cfg"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_TOML(t *testing.T) {
	path := write(t, "params.toml", `
output = "out.csv"
t_min = 100
t_max = "300.000000000000000000000000000001"
step = 50.5
energies = [0, 0.01, "1e-400"]
`)
	f, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "out.csv", f.Output)
	assert.Equal(t, Number("100"), f.TMin)
	assert.Equal(t, Number("300.000000000000000000000000000001"), f.TMax, "strings keep every digit")
	assert.Equal(t, Number("50.5"), f.Step)
	assert.Equal(t, []Number{"0", "0.01", "1e-400"}, f.Energies)
	assert.Nil(t, f.Potentials)
}

func TestLoad_YAML(t *testing.T) {
	path := write(t, "params.yaml", `
output: out.csv
t_min: 100
t_max: 300.000000000000000000000000000001
energies: [0, 0.01]
potentials:
  - 0.1
  - 0.2
`)
	f, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, Number("300.000000000000000000000000000001"), f.TMax, "scalars are taken verbatim")
	assert.Equal(t, []Number{"0", "0.01"}, f.Energies)
	assert.Equal(t, []Number{"0.1", "0.2"}, f.Potentials)
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse([]byte(`t_min = 1`), FormatTOML)
	assert.ErrorIs(t, err, ErrMissing)

	_, err = Parse([]byte("output: x\nt_min: 1\nt_max: 2\nenergies: {a: 1}\n"), FormatYAML)
	assert.ErrorIs(t, err, ErrFormat)

	_, err = Parse([]byte(`energies = [true]`), FormatTOML)
	assert.ErrorIs(t, err, ErrFormat)
}

func TestRecord(t *testing.T) {
	proto := hpmath.NewBigFloat(256)
	f := File{
		Output:   "out.csv",
		TMin:     "100",
		TMax:     "300",
		Energies: []Number{"0", "0.01"},
	}
	r, err := Record(f, proto)
	require.NoError(t, err)

	assert.Equal(t, 2.0, r.Step.Float64(), "default step splits the range in 100")
	assert.Nil(t, r.Potentials)
	require.NoError(t, r.Validate())

	f.Step = "oops"
	_, err = Record(f, proto)
	assert.ErrorIs(t, err, ErrNumber)

	f.Step = "50"
	f.Potentials = []Number{"0.1"}
	r, err = Record(f, proto)
	require.NoError(t, err)
	assert.ErrorIs(t, r.Validate(), partition.ErrPotentialMismatch)
}

func TestRecord_DefaultStepKeepsEverySample(t *testing.T) {
	ranges := [][2]Number{{"13", "29"}, {"1", "1.1"}, {"100", "300"}, {"0.3", "7.7"}, {"273.15", "373.15"}}
	for _, rg := range ranges {
		f := File{Output: "out.csv", TMin: rg[0], TMax: rg[1], Energies: []Number{"0"}}
		t.Run(string(rg[0])+"-"+string(rg[1]), func(t *testing.T) {
			for _, prec := range []uint{64, 512, hpmath.DefaultPrecision} {
				r, err := Record(f, hpmath.NewBigFloat(prec))
				require.NoError(t, err)
				p := partition.NewParameters(hpmath.NewBigFloat(prec))
				require.NoError(t, p.Populate(partition.Static(r)))
				assert.Equal(t, DefaultSteps, p.Samples(), "precision %d", prec)
			}

			r, err := Record(f, hpmath.Decimal{})
			require.NoError(t, err)
			p := partition.NewParameters(hpmath.Decimal{})
			require.NoError(t, p.Populate(partition.Static(r)))
			assert.Equal(t, DefaultSteps, p.Samples(), "decimal")
		})
	}
}

func TestFileSource(t *testing.T) {
	path := write(t, "boltzmann.cfg", "out.csv\n100 300 1\n0\n50\n")
	m := partition.NewManager(hpmath.NewBigFloat(256))
	require.NoError(t, m.Initialize(FileSource[hpmath.BigFloat]{Path: path}))

	assert.Equal(t, 4, m.Samples())
	assert.Equal(t, "out.csv", m.Parameters().Output())
}

func TestFileSource_Decimal(t *testing.T) {
	path := write(t, "boltzmann.yml", "output: out.csv\nt_min: 100\nt_max: 300\nstep: 50\nenergies: [0, 0.01]\n")
	r, err := FileSource[hpmath.Decimal]{Path: path}.Acquire(hpmath.Decimal{})
	require.NoError(t, err)
	require.NoError(t, r.Validate())
	assert.Equal(t, 0.01, r.Energies[1].Float64())
}

func TestParseEnv(t *testing.T) {
	t.Setenv("BOLTZMANN_PRECISION", "50")
	t.Setenv("BOLTZMANN_LOG_LEVEL", "debug")
	t.Setenv("BOLTZMANN_WORKERS", "4")

	e, err := ParseEnv()
	require.NoError(t, err)
	assert.Equal(t, 50, e.Precision)
	assert.Equal(t, 4, e.Workers)
	assert.Equal(t, "boltzmann.cfg", e.Config)
	assert.Equal(t, "bigfloat", e.Backend)

	l, err := e.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, l)
}

func TestParseEnv_Invalid(t *testing.T) {
	t.Setenv("BOLTZMANN_WORKERS", "many")
	_, err := ParseEnv()
	assert.Error(t, err)

	_, err = Env{LogLevel: "loud"}.Level()
	assert.Error(t, err)
}
