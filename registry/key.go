/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"reflect"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/suparena/entitymap/property"
)

// Key is the canonical registry key of a type or of a (type, property) pair.
// Keys are interned: the same logical identity always yields the same Key for the
// lifetime of the process. They are not stable across processes.
type Key uint64

type typeIdentity struct {
	t reflect.Type
}

type propertyIdentity struct {
	owner reflect.Type
	name  string
	typ   reflect.Type
}

var (
	interned sync.Map // map[typeIdentity|propertyIdentity]Key
	labels   sync.Map // map[Key]string
	lastKey  atomic.Uint64
)

// KeyForType returns the key of t. t is used as given; callers decide whether
// pointer types share a key with their element type.
func KeyForType(t reflect.Type) Key {
	return intern(typeIdentity{t: t}, func() string { return typeLabel(t) })
}

// KeyForProperty returns the key of property p on type t. The key depends only on t
// and on p's exact field name and type, never on the handle itself, so handles
// obtained through different declaring types share a key. Fields whose names differ
// only in case get distinct keys; case-insensitive matching is done by the resolver.
func KeyForProperty(t reflect.Type, p *property.Property) Key {
	id := propertyIdentity{owner: t, name: p.Name, typ: p.Type}
	return intern(id, func() string { return typeLabel(t) + "." + p.Name })
}

func intern(id any, label func() string) Key {
	if k, ok := interned.Load(id); ok {
		return k.(Key)
	}

	k, loaded := interned.LoadOrStore(id, Key(lastKey.Add(1)))
	if !loaded {
		labels.Store(k, label())
	}
	return k.(Key)
}

// String returns a readable description of what the key identifies.
func (k Key) String() string {
	if l, ok := labels.Load(k); ok {
		return l.(string)
	}
	return "key#" + strconv.FormatUint(uint64(k), 10)
}

func typeLabel(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
