/*
Package entitymap provides the metadata mapping registry of an ORM layer.

EntityMap binds Go entity types, and individual properties of them, to the
configuration an ORM needs at runtime: table and column names, primary key and
identity properties, DbTypes, class and property handlers, parameter attributes,
and the per-provider services (setting, helper, statement builder) keyed by the
client connection type.

The registries themselves live in package mapping; this package adds a chainable
definition API on top of them:

	err := entitymap.Entity[Customer]().
		Table("[sales].[Customer]").
		Primary(property.Name("ID")).
		Identity(property.Name("ID")).
		Column(property.Expr(func(c *Customer) any { return &c.Email }), "email_address").
		DbType(property.Name("Name"), mapping.DbTypeAnsiString).
		Err()

Entity works on mapping.Default(), the process-wide set; For works on any set built
with mapping.New, which keeps tests isolated:

	m := mapping.New()
	err := entitymap.For[Customer](m).Table("Customers", true).Err()

Every method takes an optional force flag. Without it, mapping something that is
already mapped fails with errors.ErrMappingAlreadyExists and the existing mapping is
kept. The chain continues after an error; Err reports the first one.

Mapping definitions can also be loaded from YAML (package definition), and provider
services for DynamoDB and PostgreSQL are registered by packages provider/ddb and
provider/postgres.
*/
package entitymap
