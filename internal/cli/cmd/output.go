package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// outputFormat is shared by commands that print structured data.
type outputFormat struct {
	json bool
	yaml bool
}

func (f *outputFormat) register(flags interface {
	BoolVar(p *bool, name string, value bool, usage string)
}) {
	flags.BoolVar(&f.json, "json", false, "output as JSON")
	flags.BoolVar(&f.yaml, "yaml", false, "output as YAML")
}

func (f outputFormat) structured() bool {
	return f.json || f.yaml
}

func (f outputFormat) write(v any) error {
	if f.yaml {
		return writeYAML(os.Stdout, v)
	}
	return writeJSON(os.Stdout, v)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeYAML goes through JSON so field names follow the json tags.
func writeYAML(w io.Writer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("convert to yaml: %w", err)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	defer func() { _ = enc.Close() }()
	return enc.Encode(doc)
}
