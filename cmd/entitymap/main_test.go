/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/entitymap"
	"github.com/suparena/entitymap/definition"
)

const validYAML = `
version: "1"
entities:
  - type: Customer
    table: customers
    primary: ID
    identity: ID
    columns:
      Email: email_address
    dbtypes:
      Name: AnsiString
  - type: Order
    table: orders
    primary: OrderID
types:
  DateTime: DateTimeOffset
`

const invalidYAML = `
version: "1"
entities:
  - type: Customer
    dbtypes:
      Name: Bogus
`

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mappings.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunVersion(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"-v"}, &stdout, &stderr)

	assert.Equal(t, 0, code)
	assert.Contains(t, stdout.String(), "EntityMap version "+entitymap.Version)
	assert.Contains(t, stdout.String(), "Definition format: "+definition.CurrentVersion)
}

func TestRunValidFile(t *testing.T) {
	t.Setenv("ENTITYMAP_LOG_LEVEL", "")
	path := writeFile(t, validYAML)

	var stdout, stderr bytes.Buffer
	code := run([]string{"-file", path}, &stdout, &stderr)

	require.Equal(t, 0, code, stderr.String())
	out := stdout.String()
	assert.Contains(t, out, "version 1")
	assert.Contains(t, out, "entities:   2")
	assert.Contains(t, out, "keys:       3")
	assert.Contains(t, out, "types:      1")
	assert.Contains(t, stderr.String(), "definition is valid")
}

func TestRunFileFromEnvironment(t *testing.T) {
	t.Setenv("ENTITYMAP_FILE", writeFile(t, validYAML))

	var stdout, stderr bytes.Buffer
	code := run(nil, &stdout, &stderr)

	assert.Equal(t, 0, code, stderr.String())
	assert.Contains(t, stdout.String(), "entities:   2")
}

func TestRunInvalidFile(t *testing.T) {
	path := writeFile(t, invalidYAML)

	var stdout, stderr bytes.Buffer
	code := run([]string{"-file", path, "-debug"}, &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Contains(t, stdout.String(), "invalid")
	assert.Contains(t, stdout.String(), "Bogus")
	assert.Contains(t, stderr.String(), "loading definition")
}

func TestRunUsageErrors(t *testing.T) {
	t.Setenv("ENTITYMAP_FILE", "")

	tests := []struct {
		name string
		args []string
		env  string
		want int
	}{
		{"NoFile", nil, "", 2},
		{"MissingFile", []string{"-file", filepath.Join(t.TempDir(), "missing.yaml")}, "", 1},
		{"BadFlag", []string{"-nope"}, "", 2},
		{"BadLevel", []string{"-file", "x.yaml"}, "loud", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("ENTITYMAP_LOG_LEVEL", tt.env)
			var stdout, stderr bytes.Buffer
			assert.Equal(t, tt.want, run(tt.args, &stdout, &stderr))
		})
	}
}
