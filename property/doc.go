/*
Package property resolves lookup descriptors to canonical property handles.

Every property-level mapping in EntityMap is addressed through a *Property handle
taken from a single per-type cache. A property can be selected four ways:

	property.Name("Name")                                   // case-insensitive
	property.Field{Name: "name", Type: reflect.TypeOf("")}  // name+type descriptor
	property.Expr(func(c *Customer) any { return &c.Name }) // field selector
	p                                                       // an existing *Property

All four resolve to the same *Property for the same (type, property name) pair.

Embedding:
Fields promoted from embedded structs are properties of the outer type. A handle
obtained from the embedded type carries a different Index than the handle obtained
from the outer type, so selectors never trust a handle they did not get from the
queried type's cache entry; they re-look-up by name:

	type Entity struct{ ID int64 }
	type Customer struct {
	    Entity
	    Name string
	}

	base, _ := property.Lookup(reflect.TypeOf(Entity{}), "ID")
	p, _ := property.Resolve(reflect.TypeOf(Customer{}), base) // Customer's own ID handle

A name that matches no property fails with errors.ErrPropertyNotFound.
*/
package property
