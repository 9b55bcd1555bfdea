package main

import (
	"io"

	"gopkg.in/yaml.v3"
)

// render writes v as YAML when --format=yaml was given, and through text
// otherwise.
func render(v interface{}, text func(io.Writer) error) error {
	if global.Format != "yaml" {
		return text(stdout)
	}

	enc := yaml.NewEncoder(stdout)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}

	return enc.Close()
}
