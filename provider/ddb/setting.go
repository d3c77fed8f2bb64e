/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

// Dialect is the dialect name of the DynamoDB provider.
const Dialect = "dynamodb"

// Setting is the mapping.DbSetting of DynamoDB. Parameters are expression attribute
// value placeholders (":v0") and identifiers are expression attribute name
// placeholders ("#Name").
type Setting struct{}

func (Setting) Dialect() string         { return Dialect }
func (Setting) ParameterPrefix() string { return ":" }

// QuoteIdentifier returns the expression attribute name placeholder of name.
func (Setting) QuoteIdentifier(name string) string {
	return "#" + name
}
