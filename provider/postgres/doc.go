/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package postgres provides the PostgreSQL services of the mapping registries,
// keyed by *pgx.Conn: a Setting with "$n" parameters and pgx identifier quoting, a
// Helper converting values to pgtype values, and a StatementBuilder producing
// parameterized SQL from table, column, key and DbType mappings.
//
//	m := mapping.New()
//	b, err := postgres.Register(m, false)
//	stmt, err := b.Insert(&customer)
//	_, err = stmt.Exec(ctx, conn)
package postgres
