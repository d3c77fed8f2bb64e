/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package postgres

import (
	"context"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/entitymap"
	"github.com/suparena/entitymap/errors"
	"github.com/suparena/entitymap/internal/testmodels"
	"github.com/suparena/entitymap/mapping"
	"github.com/suparena/entitymap/property"
)

type (
	Customer = testmodels.Customer
	Order    = testmodels.Order
)

type trimName struct{}

func (trimName) Get(c *Customer, _ mapping.ClassHandlerOptions) (*Customer, error) {
	c.Name = strings.TrimSpace(c.Name)
	return c, nil
}
func (trimName) Set(c *Customer, _ mapping.ClassHandlerOptions) (*Customer, error) {
	c.Email = strings.ToLower(c.Email)
	return c, nil
}

// regionCode stores regions as upper-case codes.
type regionCode struct{}

func (regionCode) Get(in string, _ mapping.PropertyHandlerOptions) (string, error) {
	return strings.ToLower(in), nil
}
func (regionCode) Set(out string, _ mapping.PropertyHandlerOptions) (string, error) {
	return strings.ToUpper(out), nil
}

const orderID = "6ba7b810-9dad-11d1-80b4-00c04fd430c8"

func newMappers(t *testing.T) (*mapping.Mappers, *StatementBuilder) {
	t.Helper()
	m := mapping.New()

	require.NoError(t, entitymap.For[Customer](m).
		Table("sales.customers").
		Identity(property.Name("ID")).
		Column(property.Name("Email"), "email_address").
		Column(property.Name("CreatedAt"), "created_at").
		ClassHandler(trimName{}).
		PropertyHandler(property.Name("Region"), regionCode{}).
		Err())

	require.NoError(t, entitymap.For[Order](m).
		Table("orders").
		Primary(property.Expr(func(o *Order) any { return &o.OrderID })).
		DbType(property.Name("Total"), mapping.DbTypeDecimal).
		Err())

	b, err := Register(m, false)
	require.NoError(t, err)
	return m, b
}

func TestRegister(t *testing.T) {
	m, b := newMappers(t)

	s, ok := mapping.GetDbSetting[*Conn](m.DbSetting)
	require.True(t, ok)
	assert.Equal(t, Dialect, s.Dialect())

	h, ok := mapping.GetDbHelper[*Conn](m.DbHelper)
	require.True(t, ok)
	assert.IsType(t, Helper{}, h)

	sb, ok := mapping.GetStatementBuilder[*Conn](m.StatementBuilder)
	require.True(t, ok)
	assert.Same(t, b, sb)

	_, err := Register(m, false)
	assert.True(t, errors.IsMappingAlreadyExists(err))

	_, err = Register(m, true)
	assert.NoError(t, err)

	_, err = Register(nil, false)
	assert.True(t, errors.IsNullArgument(err))
}

func TestInsert(t *testing.T) {
	_, b := newMappers(t)
	created := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	stmt, err := b.Insert(&Customer{
		Entity: testmodels.Entity{ID: 7, CreatedAt: strfmt.DateTime(created)},
		Name:   "Ada",
		Email:  "ADA@Example.com",
		Region: "eu",
	})
	require.NoError(t, err)

	assert.Equal(t,
		`INSERT INTO "sales"."customers" ("created_at", "UpdatedAt", "Name", "email_address", "Region") `+
			`VALUES ($1, $2, $3, $4, $5) RETURNING "ID"`,
		stmt.SQL)
	assert.Equal(t, []any{
		pgtype.Timestamptz{Time: created, Valid: true},
		pgtype.Timestamptz{},
		pgtype.Text{String: "Ada", Valid: true},
		pgtype.Text{String: "ada@example.com", Valid: true},
		"EU",
	}, stmt.Args)
	require.Len(t, stmt.Returning, 1)
	assert.Equal(t, "ID", stmt.Returning[0].Name)

	// CreatePut inserts types without a primary key.
	put, err := b.CreatePut(Customer{Name: "Bob"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(put.(*Statement).SQL, `INSERT INTO "sales"."customers"`))
	assert.NotContains(t, put.(*Statement).SQL, "ON CONFLICT")
}

func TestUpsert(t *testing.T) {
	_, b := newMappers(t)
	placed := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	put, err := b.CreatePut(&Order{
		OrderID:    strfmt.UUID(orderID),
		CustomerID: 7,
		Total:      19.5,
		Status:     "open",
		PlacedOn:   strfmt.Date(placed),
	})
	require.NoError(t, err)
	stmt := put.(*Statement)

	assert.Equal(t,
		`INSERT INTO "orders" ("OrderID", "CustomerID", "Total", "Status", "PlacedOn") VALUES ($1, $2, $3, $4, $5) `+
			`ON CONFLICT ("OrderID") DO UPDATE SET "CustomerID" = EXCLUDED."CustomerID", "Total" = EXCLUDED."Total", `+
			`"Status" = EXCLUDED."Status", "PlacedOn" = EXCLUDED."PlacedOn"`,
		stmt.SQL)
	require.Len(t, stmt.Args, 5)
	assert.Equal(t, pgtype.UUID{Bytes: uuid.MustParse(orderID), Valid: true}, stmt.Args[0])
	assert.Equal(t, pgtype.Int8{Int64: 7, Valid: true}, stmt.Args[1])
	assert.IsType(t, pgtype.Numeric{}, stmt.Args[2])
	assert.Equal(t, pgtype.Text{String: "open", Valid: true}, stmt.Args[3])
	assert.Equal(t, pgtype.Date{Time: placed, Valid: true}, stmt.Args[4])
	assert.Empty(t, stmt.Returning)

	_, err = b.Upsert(&Customer{})
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestSelectAndDelete(t *testing.T) {
	_, b := newMappers(t)
	customerType := reflect.TypeOf(Customer{})

	stmt, err := b.Select(customerType, int64(7))
	require.NoError(t, err)
	assert.Equal(t,
		`SELECT "ID", "created_at", "UpdatedAt", "Name", "email_address", "Region" FROM "sales"."customers" WHERE "ID" = $1`,
		stmt.SQL)
	assert.Equal(t, []any{pgtype.Int8{Int64: 7, Valid: true}}, stmt.Args)
	assert.Len(t, stmt.Returning, 6)

	// An entity is accepted as its own key.
	get, err := b.CreateGet(reflect.PointerTo(customerType), &Customer{Entity: testmodels.Entity{ID: 9}})
	require.NoError(t, err)
	assert.Equal(t, []any{pgtype.Int8{Int64: 9, Valid: true}}, get.(*Statement).Args)

	del, err := b.CreateDelete(reflect.TypeOf(Order{}), strfmt.UUID(orderID))
	require.NoError(t, err)
	assert.Equal(t, `DELETE FROM "orders" WHERE "OrderID" = $1`, del.(*Statement).SQL)
	assert.Equal(t, []any{pgtype.UUID{Bytes: uuid.MustParse(orderID), Valid: true}}, del.(*Statement).Args)
}

func TestStatementErrors(t *testing.T) {
	_, b := newMappers(t)

	type unmapped struct{ ID int }

	tests := []struct {
		name  string
		build func() error
		check func(error) bool
	}{
		{"SelectNilType", func() error { _, err := b.Select(nil, 1); return err }, errors.IsNullArgument},
		{"SelectNilKey", func() error { _, err := b.Select(reflect.TypeOf(Order{}), nil); return err }, errors.IsNullArgument},
		{"SelectNoTable", func() error { _, err := b.Select(reflect.TypeOf(unmapped{}), 1); return err }, errors.IsInvalidArgument},
		{"InsertNil", func() error { _, err := b.Insert(nil); return err }, errors.IsNullArgument},
		{"DeleteBadKey", func() error { _, err := b.Delete(reflect.TypeOf(Order{}), "nope"); return err }, errors.IsInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.build()
			require.Error(t, err)
			assert.True(t, tt.check(err), err.Error())
		})
	}
}

type fakeExecutor struct {
	sql  string
	args []any
}

func (f *fakeExecutor) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.sql, f.args = sql, args
	return pgconn.NewCommandTag("DELETE 1"), nil
}

// fakeRow assigns its values to the scan destinations in order.
type fakeRow struct{ values []any }

func (r fakeRow) Scan(dest ...any) error {
	for i, d := range dest {
		reflect.ValueOf(d).Elem().Set(reflect.ValueOf(r.values[i]))
	}
	return nil
}

type fakeQuerier struct{ row fakeRow }

func (q fakeQuerier) QueryRow(_ context.Context, _ string, _ ...any) pgx.Row { return q.row }

func TestExec(t *testing.T) {
	_, b := newMappers(t)

	stmt, err := b.Delete(reflect.TypeOf(Customer{}), int64(7))
	require.NoError(t, err)

	e := &fakeExecutor{}
	tag, err := stmt.Exec(context.Background(), e)
	require.NoError(t, err)
	assert.Equal(t, int64(1), tag.RowsAffected())
	assert.Equal(t, stmt.SQL, e.sql)
	assert.Equal(t, stmt.Args, e.args)
}

func TestScanRow(t *testing.T) {
	_, b := newMappers(t)
	created := strfmt.DateTime(time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC))

	stmt, err := b.Select(reflect.TypeOf(Customer{}), int64(7))
	require.NoError(t, err)

	row := stmt.QueryRow(context.Background(), fakeQuerier{row: fakeRow{values: []any{
		int64(7), created, (*strfmt.DateTime)(nil), "  Ada ", "ada@example.com", "EU",
	}}})

	c, err := ScanRow[Customer](b, stmt, row)
	require.NoError(t, err)
	assert.Equal(t, int64(7), c.ID)
	assert.Equal(t, created, c.CreatedAt)
	assert.Nil(t, c.UpdatedAt)
	assert.Equal(t, "Ada", c.Name)
	assert.Equal(t, "ada@example.com", c.Email)
	assert.Equal(t, "eu", c.Region)
}
