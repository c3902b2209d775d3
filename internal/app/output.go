package app

import (
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"
	"github.com/samvad-hq/ems-client/internal/config"
	"gopkg.in/yaml.v3"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Renderer writes command results in the configured output format.
type Renderer struct {
	w      io.Writer
	format string
}

// NewRenderer returns a Renderer for json or yaml output.
func NewRenderer(w io.Writer, format string) (*Renderer, error) {
	if err := config.ValidateOutputFormat(format); err != nil {
		return nil, err
	}
	return &Renderer{w: w, format: format}, nil
}

// Render writes v; a nil v (204 responses) writes nothing.
func (r *Renderer) Render(v any) error {
	if v == nil {
		return nil
	}

	var (
		data []byte
		err  error
	)
	switch r.format {
	case config.OutputYAML:
		data, err = yaml.Marshal(v)
	default:
		data, err = json.MarshalIndent(v, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("render %s: %w", r.format, err)
	}
	if r.format != config.OutputYAML {
		data = append(data, '\n')
	}

	_, err = r.w.Write(data)
	return err
}
