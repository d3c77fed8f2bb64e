/*
Package ddb provides the DynamoDB provider services of EntityMap.

Register installs a Setting, a Helper and a StatementBuilder into a mapping.Mappers,
keyed by *dynamodb.Client:

	m := mapping.Default()
	builder, err := ddb.Register(m, false)

The StatementBuilder reads the mappings of m when it builds requests:
  - the table name comes from the table mapping of the entity type
  - attribute names come from column mappings, falling back to the field name
  - values pass through the property handler of the property or, without one,
    through the Helper conversion for the mapped DbType
  - the class handler of the entity type runs before an item is built and after
    one is decoded

Macro Expansion:
Single-table designs key entities through an index map instead of a primary key
property:

	ddb.AddIndexMap[User](builder, map[string]string{
	    "PK":     "USER#{ID}",   // Becomes "USER#123"
	    "SK":     "PROFILE",     // Static value
	    "GSI1PK": "{Email}",     // Direct attribute value
	})

	put, _ := builder.PutItem(user)
	get, _ := builder.GetItem(reflect.TypeOf(User{}), "123")

Templates whose macros cannot be filled are left out of a put item, which keeps
sparse indexes sparse; a key missing PK or SK is an error.

Queries:
Query builds a QueryInput on the table key or a secondary index. Key values fill
the index map template of the key attribute:

	in, err := builder.Query(reflect.TypeOf(User{})).
	    OnIndex(ddb.GSI(1)).
	    WithPartitionKey("a@example.com").
	    Build()

	users, err := ddb.QueryAll[User](ctx, builder, client, in)

Stream delivers the same items page by page on a channel.
*/
package ddb
