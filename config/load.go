package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/wippyai/hexlayout/errors"
)

// Format is the encoding of a layout document.
type Format uint8

const (
	FormatJSON Format = iota
	FormatYAML
)

func (f Format) String() string {
	if f == FormatYAML {
		return "yaml"
	}
	return "json"
}

// FormatOf picks the format from a file name: .yaml and .yml are YAML,
// everything else is JSON.
func FormatOf(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Parse decodes a layout document.
func Parse(data []byte, format Format) (*Document, error) {
	var doc Document
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &doc)
	default:
		err = json.Unmarshal(data, &doc)
	}
	if err != nil {
		return nil, errors.Malformed(format.String()+" layout document", err)
	}
	return &doc, nil
}

// Load reads and decodes the layout document name from fs.
func Load(fs afero.Fs, name string) (*Document, error) {
	data, err := afero.ReadFile(fs, name)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.PhaseLoad, errors.KindNotFound).
				Detail("layout document %q not found", name).
				Cause(err).
				Build()
		}
		return nil, errors.Wrap(errors.PhaseLoad, errors.KindNotFound, err, "read layout document "+name)
	}
	return Parse(data, FormatOf(name))
}
