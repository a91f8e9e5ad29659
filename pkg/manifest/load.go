package manifest

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/callmeskyy111/wayfind/internal/errors"
)

// Format identifies a manifest file format.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatHCL  Format = "hcl"
)

// FormatForPath returns the manifest format implied by the file extension.
func FormatForPath(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, true
	case ".yaml", ".yml":
		return FormatYAML, true
	case ".toml":
		return FormatTOML, true
	case ".hcl":
		return FormatHCL, true
	}
	return "", false
}

// Load reads and parses the manifest at path. The format is picked from
// the file extension.
func Load(path string) (*Manifest, error) {
	format, ok := FormatForPath(path)
	if !ok {
		return nil, errors.New("E041").
			WithDetail(fmt.Sprintf("Cannot infer a manifest format from %q.", filepath.Base(path)))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E040").
				WithDetail("No manifest exists at " + path)
		}
		return nil, errors.New("E040").Wrap(err)
	}

	return Parse(data, format, path)
}

// Parse decodes manifest data in the given format. The filename is used
// for error locations only and may be empty.
func Parse(data []byte, format Format, filename string) (*Manifest, error) {
	var m Manifest

	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, jsonParseError(err, data, filename)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, yamlParseError(err, filename)
		}
	case FormatTOML:
		if err := toml.Unmarshal(data, &m); err != nil {
			return nil, tomlParseError(err, filename)
		}
	case FormatHCL:
		hm, err := parseHCL(data, filename)
		if err != nil {
			return nil, err
		}
		m = *hm
	default:
		return nil, errors.New("E041").
			WithDetail(fmt.Sprintf("Unknown manifest format %q.", string(format)))
	}

	if len(m.Routes) == 0 {
		e := errors.New("E043")
		if filename != "" {
			e = e.WithDetail(filename + " has an empty or missing routes list.")
		}
		return nil, e
	}

	return &m, nil
}

// jsonParseError maps a JSON decode failure to a manifest error, pointing
// at the byte offset of a syntax error when one is available.
func jsonParseError(err error, data []byte, filename string) *errors.WayfindError {
	we := errors.New("E042").Wrap(err).WithDetail(err.Error())

	var syn *json.SyntaxError
	if stderrors.As(err, &syn) && filename != "" {
		line, col := lineCol(data, syn.Offset)
		we = we.WithLocation(filename, line, col)
	}
	return we
}

var yamlLinePattern = regexp.MustCompile(`line (\d+)`)

// yamlParseError maps a YAML decode failure to a manifest error. The yaml
// package only exposes positions through its error text, so the line is
// scraped from there.
func yamlParseError(err error, filename string) *errors.WayfindError {
	we := errors.New("E042").Wrap(err).WithDetail(err.Error())

	if filename != "" {
		if m := yamlLinePattern.FindStringSubmatch(err.Error()); m != nil {
			line, _ := strconv.Atoi(m[1])
			we = we.WithLocation(filename, line, 0)
		}
	}
	return we
}

// tomlParseError maps a TOML decode failure to a manifest error.
func tomlParseError(err error, filename string) *errors.WayfindError {
	we := errors.New("E042").Wrap(err).WithDetail(err.Error())

	var perr toml.ParseError
	if stderrors.As(err, &perr) && filename != "" {
		we = we.WithLocation(filename, perr.Position.Line, perr.Position.Col)
	}
	return we
}

// lineCol converts a byte offset into a 1-based line and column.
func lineCol(data []byte, offset int64) (line, col int) {
	line, col = 1, 1
	for i := int64(0); i < offset && i < int64(len(data)); i++ {
		if data[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}
