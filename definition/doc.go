/*
Package definition loads EntityMap mappings from YAML files.

A definition file lists entities by the name they are registered under in a
registry.Catalog, with the mappings of each:

	version: "1"
	entities:
	  - type: Customer
	    table: "[sales].[Customer]"
	    primary: ID
	    identity: ID
	    columns:
	      Email: email_address
	    dbtypes:
	      Name: AnsiString
	    attributes:
	      Email:
	        size: 256
	        nullable: false
	types:
	  DateTime: DateTimeOffset

Property names are matched the same way as property.Name, case-insensitively.
Entries under types map a catalog type name to its type-level DbType.

Usage:

	file, err := definition.LoadFile("mappings.yaml")
	if err != nil {
	    return err
	}
	if err := definition.Validate(file); err != nil {
	    return err
	}

	catalog := registry.NewCatalog()
	_ = registry.RegisterType[Customer](catalog, "Customer")
	err = definition.Apply(file, catalog, mapping.Default())

Apply performs one mapper call per directive and joins the errors of failed
directives; a failed directive never changes the outcome of another.
*/
package definition
