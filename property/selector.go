/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package property

import (
	"fmt"
	"reflect"
	"unsafe"

	"github.com/suparena/entitymap/errors"
)

// Selector identifies a property of a type. The four implementations are Name, Field,
// the selector returned by Expr and *Property itself; all of them resolve to the same
// canonical *Property for the same logical property.
type Selector interface {
	resolve(t reflect.Type) (*Property, error)
}

// Name selects a property by its field name, case-insensitively.
type Name string

func (n Name) resolve(t reflect.Type) (*Property, error) {
	if n == "" {
		return nil, errors.NewNullArgumentError("property")
	}
	return Lookup(t, string(n))
}

// Field is a lightweight name and type descriptor of a property. It is matched by
// name, the same way as Name; Type is informational.
type Field struct {
	Name string
	Type reflect.Type
}

// FieldOf builds a Field from an existing property handle.
func FieldOf(p *Property) Field {
	return Field{Name: p.Name, Type: p.Type}
}

func (f Field) resolve(t reflect.Type) (*Property, error) {
	return Name(f.Name).resolve(t)
}

func (p *Property) resolve(t reflect.Type) (*Property, error) {
	if p == nil {
		return nil, errors.NewNullArgumentError("property")
	}
	if p.Owner == Indirect(t) {
		return p, nil
	}
	// Handles taken from another type in the embedding chain are re-resolved by name
	// so that they land on the queried type's canonical handle.
	return Lookup(t, p.Name)
}

// expr selects the field whose address a function returns, e.g.
//
//	property.Expr(func(c *Customer) any { return &c.Name })
type expr[T any] struct {
	fn func(*T) any
}

// Expr returns a Selector for the field of T addressed by fn. fn is evaluated once
// against a zero T whose nil embedded struct pointers have been allocated, and must
// return a pointer to one of its fields.
func Expr[T any](fn func(*T) any) Selector {
	return expr[T]{fn: fn}
}

func (e expr[T]) resolve(t reflect.Type) (*Property, error) {
	if e.fn == nil {
		return nil, errors.NewNullArgumentError("selector")
	}

	name, err := e.fieldName()
	if err != nil {
		return nil, err
	}

	// The name, not the handle found on T, is authoritative: t may embed T or be
	// embedded by it, and only t's own cache entry yields the canonical handle.
	return Lookup(t, name)
}

func (e expr[T]) fieldName() (name string, err error) {
	owner := TypeOf[T]()
	if owner.Kind() != reflect.Struct {
		return "", errors.NewInvalidArgumentError("selector", fmt.Sprintf("%s is not a struct type", owner))
	}

	props, err := Properties(owner)
	if err != nil {
		return "", err
	}

	defer func() {
		if r := recover(); r != nil {
			err = errors.NewInvalidArgumentError("selector", fmt.Sprintf("selector panicked: %v", r))
		}
	}()

	zero := new(T)
	root := reflect.ValueOf(zero).Elem()
	for _, p := range props {
		if !p.direct {
			allocate(root, p.Index)
		}
	}

	ptr := reflect.ValueOf(e.fn(zero))
	if !ptr.IsValid() || ptr.Kind() != reflect.Pointer || ptr.IsNil() {
		return "", errors.NewInvalidArgumentError("selector", "selector must return a pointer to a field")
	}

	addr := ptr.Pointer()
	fieldType := ptr.Type().Elem()
	for _, p := range props {
		f, err := root.FieldByIndexErr(p.Index)
		if err != nil || !f.CanAddr() {
			continue
		}
		if f.Addr().Pointer() == addr && p.Type == fieldType {
			return p.Name, nil
		}
	}

	base := root.Addr().Pointer()
	if addr < base || addr >= base+owner.Size() {
		return "", errors.NewInvalidArgumentError("selector", "selector must return a pointer into its argument")
	}
	return "", errors.NewPropertyNotFoundError(owner.String(), fmt.Sprintf("<%s at offset %d>", fieldType, addr-base))
}

// allocate sets every nil embedded struct pointer on the path to the field at index.
// root must be addressable.
func allocate(root reflect.Value, index []int) {
	v := root
	for _, idx := range index[:len(index)-1] {
		v = v.Field(idx)
		if v.Kind() != reflect.Pointer {
			continue
		}
		if v.IsNil() {
			// Unexported embedded pointers are not settable through v itself.
			settable := reflect.NewAt(v.Type(), unsafe.Pointer(v.UnsafeAddr())).Elem()
			settable.Set(reflect.New(v.Type().Elem()))
		}
		v = v.Elem()
	}
}

// Resolve returns the canonical property handle of t selected by sel.
func Resolve(t reflect.Type, sel Selector) (*Property, error) {
	if t == nil {
		return nil, errors.NewNullArgumentError("type")
	}
	if sel == nil {
		return nil, errors.NewNullArgumentError("property")
	}
	return sel.resolve(t)
}

// ResolveFor is Resolve for the type parameter T.
func ResolveFor[T any](sel Selector) (*Property, error) {
	return Resolve(TypeOf[T](), sel)
}
