/*
Package mapping provides the mapping domains of EntityMap.

Each domain is a mapper that stores one kind of ORM metadata in its own registry:

	Type-level (keyed by an entity or connection type)
	  TableMapper            table name
	  TypeMapper             DbType of a Go type
	  ClassHandlerMapper     ClassHandler[T]
	  IdentityMapper         identity property
	  PrimaryMapper          primary key property
	  DbSettingMapper        DbSetting of a connection type
	  DbHelperMapper         DbHelper of a connection type
	  StatementBuilderMapper StatementBuilder of a connection type

	Property-level (keyed by an entity type and one of its properties)
	  ColumnMapper                 column name
	  PropertyTypeMapper           DbType of a property
	  PropertyHandlerMapper        PropertyHandler[In, Out]
	  PropertyValueAttributeMapper parameter attributes

Mappers bundles one mapper per domain. New builds an isolated set, Default returns
the process-wide one:

	m := mapping.New()
	_ = mapping.AddTable[Customer](m.Table, "[sales].[Customer]", false)
	_ = mapping.AddColumn[Customer](m.Column, property.Name("Email"), "email_address", false)

	table, ok := mapping.GetTable[Customer](m.Table)

Add never replaces an existing mapping unless force is set; it fails with
errors.ErrMappingAlreadyExists instead. Entity-keyed domains treat *T and T as the
same type. Property-level domains resolve the selector first, so every selector
form for the same property hits the same entry.

Handlers are checked when they are added: a value passed as a class handler for T
must have Get and Set methods of the ClassHandler[T] (or ClassHandler[*T]) shape, and
a property handler's Go-side type must be assignable to the property type. Values
that fail the check are rejected with errors.ErrInvalidMappingType.
*/
package mapping
