/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package postgres

import (
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
)

// Dialect is the dialect name of the PostgreSQL provider.
const Dialect = "postgres"

// Setting is the mapping.DbSetting of PostgreSQL.
type Setting struct{}

func (Setting) Dialect() string         { return Dialect }
func (Setting) ParameterPrefix() string { return "$" }

// QuoteIdentifier quotes name as a PostgreSQL identifier. Dotted names are quoted
// per part, so "sales.customers" becomes "sales"."customers".
func (Setting) QuoteIdentifier(name string) string {
	return pgx.Identifier(strings.Split(name, ".")).Sanitize()
}

// Parameter returns the placeholder of the n-th parameter, starting at 1.
func (s Setting) Parameter(n int) string {
	return s.ParameterPrefix() + strconv.Itoa(n)
}
