package config

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format is the syntax of a parameter file.
type Format int

const (
	// FormatLegacy is the whitespace-separated format: the output file name
	// on the first line, then "T_MIN T_MAX n", n energies, an optional step
	// and, after the step, n optional chemical potentials.
	FormatLegacy Format = iota
	FormatTOML
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	default:
		return "legacy"
	}
}

// DetectFormat picks the format from the file extension.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatLegacy
	}
}

// Number is a decimal literal kept as text until a numeric backend parses it
// at its own precision.
type Number string

// UnmarshalTOML accepts TOML integers, floats and strings.
func (n *Number) UnmarshalTOML(v any) error {
	switch x := v.(type) {
	case string:
		*n = Number(strings.TrimSpace(x))
	case int64:
		*n = Number(strconv.FormatInt(x, 10))
	case float64:
		*n = Number(strconv.FormatFloat(x, 'g', -1, 64))
	default:
		return fmt.Errorf("%w: %v (%T)", ErrNumber, v, v)
	}
	return nil
}

// UnmarshalYAML takes the scalar exactly as written.
func (n *Number) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("%w: line %d is not a scalar", ErrNumber, node.Line)
	}
	*n = Number(strings.TrimSpace(node.Value))
	return nil
}

// File is the content of a parameter file. Energies and potentials are in
// eV, temperatures in K. Step and Potentials are optional; an empty Step
// means (TMax-TMin)/DefaultSteps.
type File struct {
	Output     string   `toml:"output"     yaml:"output"`
	TMin       Number   `toml:"t_min"      yaml:"t_min"`
	TMax       Number   `toml:"t_max"      yaml:"t_max"`
	Step       Number   `toml:"step"       yaml:"step"`
	Energies   []Number `toml:"energies"   yaml:"energies"`
	Potentials []Number `toml:"potentials" yaml:"potentials"`
}

// Load reads the parameter file at path in the format given by its
// extension.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("read %s: %w", path, err)
	}
	f, err := Parse(data, DetectFormat(path))
	if err != nil {
		return File{}, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Parse decodes data in the given format and checks that the required
// fields are present.
func Parse(data []byte, format Format) (File, error) {
	var (
		f   File
		err error
	)
	switch format {
	case FormatTOML:
		_, err = toml.Decode(string(data), &f)
	case FormatYAML:
		err = yaml.Unmarshal(data, &f)
	default:
		f, err = parseLegacy(data)
	}
	if err != nil {
		return File{}, fmt.Errorf("%w (%s): %w", ErrFormat, format, err)
	}

	switch {
	case f.Output == "":
		return File{}, fmt.Errorf("%w: output", ErrMissing)
	case f.TMin == "":
		return File{}, fmt.Errorf("%w: t_min", ErrMissing)
	case f.TMax == "":
		return File{}, fmt.Errorf("%w: t_max", ErrMissing)
	case len(f.Energies) == 0:
		return File{}, fmt.Errorf("%w: energies", ErrMissing)
	}
	return f, nil
}

func parseLegacy(data []byte) (File, error) {
	line, rest, _ := bytes.Cut(data, []byte("\n"))
	f := File{Output: strings.TrimSpace(strings.TrimSuffix(string(line), "\r"))}

	sc := bufio.NewScanner(bytes.NewReader(rest))
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	sc.Split(bufio.ScanWords)
	var fields []Number
	for sc.Scan() {
		fields = append(fields, Number(sc.Text()))
	}
	if err := sc.Err(); err != nil {
		return File{}, err
	}
	if len(fields) < 3 {
		return File{}, fmt.Errorf("want T_MIN T_MAX n, got %d fields", len(fields))
	}

	f.TMin, f.TMax = fields[0], fields[1]
	n, err := strconv.ParseUint(string(fields[2]), 10, 16)
	if err != nil {
		return File{}, fmt.Errorf("state count %q: %w", fields[2], err)
	}
	fields = fields[3:]
	if len(fields) < int(n) {
		return File{}, fmt.Errorf("want %d energies, got %d", n, len(fields))
	}
	f.Energies, fields = fields[:n], fields[n:]

	switch len(fields) {
	case 0:
	case 1:
		f.Step = fields[0]
	case int(n) + 1:
		f.Step, f.Potentials = fields[0], fields[1:]
	default:
		return File{}, fmt.Errorf("%d trailing fields, want 0, 1 or %d", len(fields), n+1)
	}
	return f, nil
}
