/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"reflect"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/entitymap/property"
)

func typeOf[T any]() reflect.Type {
	return property.TypeOf[T]()
}

type keyBase struct {
	ID int64
}

type keyCustomer struct {
	keyBase
	Name string
}

type keyOrder struct {
	keyBase
	Name string
}

func TestKeyForTypeStable(t *testing.T) {
	a1 := KeyForType(typeOf[keyCustomer]())
	a2 := KeyForType(reflect.TypeOf(keyCustomer{}))
	b := KeyForType(typeOf[keyOrder]())
	ptr := KeyForType(typeOf[*keyCustomer]())

	assert.Equal(t, a1, a2)
	assert.NotEqual(t, a1, b)
	assert.NotEqual(t, a1, ptr)
	assert.Equal(t, "registry.keyCustomer", a1.String())
}

func TestKeyForPropertyCanonical(t *testing.T) {
	customer := typeOf[keyCustomer]()

	fromOuter, err := property.Lookup(customer, "ID")
	require.NoError(t, err)
	fromBase, err := property.Lookup(typeOf[keyBase](), "ID")
	require.NoError(t, err)
	require.NotSame(t, fromOuter, fromBase)

	assert.Equal(t, KeyForProperty(customer, fromOuter), KeyForProperty(customer, fromBase))
	assert.Equal(t, "registry.keyCustomer.ID", KeyForProperty(customer, fromOuter).String())
}

func TestKeyForPropertyDistinct(t *testing.T) {
	customer := typeOf[keyCustomer]()
	order := typeOf[keyOrder]()

	custName, err := property.Lookup(customer, "Name")
	require.NoError(t, err)
	custID, err := property.Lookup(customer, "ID")
	require.NoError(t, err)
	orderName, err := property.Lookup(order, "Name")
	require.NoError(t, err)

	keys := []Key{
		KeyForType(customer),
		KeyForType(order),
		KeyForProperty(customer, custName),
		KeyForProperty(customer, custID),
		KeyForProperty(order, orderName),
	}

	seen := make(map[Key]bool)
	for _, k := range keys {
		assert.False(t, seen[k], "duplicate key %v", k)
		seen[k] = true
	}
}

func TestKeyForPropertyCaseDistinct(t *testing.T) {
	type codes struct {
		Code string
		CODE string
	}
	typ := typeOf[codes]()

	lower, err := property.Lookup(typ, "Code")
	require.NoError(t, err)
	upper, err := property.Lookup(typ, "CODE")
	require.NoError(t, err)
	require.NotSame(t, lower, upper)

	assert.NotEqual(t, KeyForProperty(typ, lower), KeyForProperty(typ, upper))
	assert.Equal(t, "registry.codes.CODE", KeyForProperty(typ, upper).String())

	// A case-folded lookup still lands on one canonical handle and its key.
	folded, err := property.Lookup(typ, "code")
	require.NoError(t, err)
	assert.Equal(t, KeyForProperty(typ, lower), KeyForProperty(typ, folded))
}

func TestKeyConcurrentInterning(t *testing.T) {
	type interned struct{ Value string }

	const goroutines = 32
	keys := make([]Key, goroutines)

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			keys[i] = KeyForType(typeOf[interned]())
		}(i)
	}
	wg.Wait()

	for _, k := range keys[1:] {
		assert.Equal(t, keys[0], k)
	}
}

func TestKeyStringUnknown(t *testing.T) {
	assert.Equal(t, "key#0", Key(0).String())
}
