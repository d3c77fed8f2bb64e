/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package definition

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// CurrentVersion is the definition file format version.
const CurrentVersion = "1"

// LoadFile loads and parses a YAML definition file from the given path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read definition file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a File. Unknown keys are rejected.
func Parse(data []byte) (*File, error) {
	var f File

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to parse definition YAML: %w", err)
	}

	if f.Version == "" {
		f.Version = CurrentVersion
	}

	return &f, nil
}

// Marshal serializes a File to YAML.
func Marshal(f *File) ([]byte, error) {
	return yaml.Marshal(f)
}

// WriteFile writes a File to the given path.
func WriteFile(f *File, path string) error {
	data, err := Marshal(f)
	if err != nil {
		return fmt.Errorf("failed to marshal definition: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write definition file %s: %w", path, err)
	}

	return nil
}
