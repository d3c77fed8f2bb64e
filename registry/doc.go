/*
Package registry provides the key canonicalizer and the thread-safe store shared by
every EntityMap mapping domain.

Keys:
A Key is derived from a type alone or from a (type, property) pair:

	k1 := registry.KeyForType(reflect.TypeOf(Customer{}))
	k2 := registry.KeyForProperty(reflect.TypeOf(Customer{}), nameProperty)

Keys are interned per process, so equal identities always produce equal keys and
distinct identities never collide. A property key depends on the property's name
and type, not on the handle, which keeps keys equal for handles obtained through
different embedded types.

Registry:
Registry[V] holds at most one value per key:

	tables := registry.New[string]("table")
	err := tables.Add(k1, "Customers", false) // fails if k1 is taken
	err = tables.Add(k1, "Clients", true)     // replaces
	name, ok := tables.Get(k1)
	tables.Remove(k1)                         // no-op when absent

All operations are safe for concurrent use. A forced Add checks and writes under a
single lock, so concurrent forced adds to one key never interleave.

Catalog:
Catalog names Go types for mapping definition files:

	catalog := registry.NewCatalog()
	registry.RegisterType[Customer](catalog, "Customer")
*/
package registry
