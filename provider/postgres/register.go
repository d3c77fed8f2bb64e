/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package postgres

import (
	stderrors "errors"

	"github.com/jackc/pgx/v5"

	"github.com/suparena/entitymap/errors"
	"github.com/suparena/entitymap/mapping"
)

// Conn is the connection type the PostgreSQL services are keyed by.
type Conn = pgx.Conn

// Register installs the PostgreSQL Setting, Helper and a StatementBuilder reading
// m into m, keyed by *pgx.Conn.
func Register(m *mapping.Mappers, force bool, opts ...Option) (*StatementBuilder, error) {
	if m == nil {
		return nil, errors.NewNullArgumentError("mappers")
	}

	b := NewStatementBuilder(m, opts...)
	err := stderrors.Join(
		mapping.AddDbSetting[*pgx.Conn](m.DbSetting, Setting{}, force),
		mapping.AddDbHelper[*pgx.Conn](m.DbHelper, Helper{}, force),
		mapping.AddStatementBuilder[*pgx.Conn](m.StatementBuilder, b, force),
	)
	if err != nil {
		return nil, err
	}
	return b, nil
}
