/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package mapping

import (
	"reflect"

	"github.com/suparena/entitymap/errors"
	"github.com/suparena/entitymap/property"
)

// ClassHandlerOptions is passed to class handlers.
type ClassHandlerOptions struct {
	// EntityType is the mapped entity type.
	EntityType reflect.Type
	// Dialect names the provider the entity is read from or written to.
	Dialect string
}

// ClassHandler transforms whole entities of type T. Get runs after an entity is read
// from a provider, Set before it is written.
type ClassHandler[T any] interface {
	Get(entity T, opts ClassHandlerOptions) (T, error)
	Set(entity T, opts ClassHandlerOptions) (T, error)
}

// PropertyHandlerOptions is passed to property handlers.
type PropertyHandlerOptions struct {
	// Property is the property being converted.
	Property *property.Property
	// Dialect names the provider the value is read from or written to.
	Dialect string
}

// PropertyHandler converts a single property between its stored representation In
// and its Go representation Out.
type PropertyHandler[In, Out any] interface {
	Get(input In, opts PropertyHandlerOptions) (Out, error)
	Set(output Out, opts PropertyHandlerOptions) (In, error)
}

var (
	errorType                  = reflect.TypeOf((*error)(nil)).Elem()
	classHandlerOptionsType    = reflect.TypeOf(ClassHandlerOptions{})
	propertyHandlerOptionsType = reflect.TypeOf(PropertyHandlerOptions{})
)

// handlerShape reports the In and Out types of a value whose Get and Set methods have
// the shapes func(In, opts) (Out, error) and func(Out, opts) (In, error).
func handlerShape(h any, optsType reflect.Type) (in, out reflect.Type, ok bool) {
	v := reflect.ValueOf(h)
	get := v.MethodByName("Get")
	set := v.MethodByName("Set")
	if !get.IsValid() || !set.IsValid() {
		return nil, nil, false
	}

	gt, st := get.Type(), set.Type()
	if !converterShape(gt, optsType) || !converterShape(st, optsType) {
		return nil, nil, false
	}

	in, out = gt.In(0), gt.Out(0)
	if st.In(0) != out || st.Out(0) != in {
		return nil, nil, false
	}
	return in, out, true
}

func converterShape(ft, optsType reflect.Type) bool {
	return !ft.IsVariadic() &&
		ft.NumIn() == 2 && ft.In(1) == optsType &&
		ft.NumOut() == 2 && ft.Out(1) == errorType
}

// ClassHandlerMapper maps entity types to class handlers.
type ClassHandlerMapper struct {
	typeLevel[any]
}

// NewClassHandlerMapper creates an empty ClassHandlerMapper.
func NewClassHandlerMapper(opts ...Option) *ClassHandlerMapper {
	return &ClassHandlerMapper{typeLevel[any]{reg: newRegistry[any]("class handler", opts), entity: true}}
}

// Add maps t to handler. handler must implement ClassHandler[t] or ClassHandler[*t];
// otherwise Add fails with errors.ErrInvalidMappingType.
func (m *ClassHandlerMapper) Add(t reflect.Type, handler any, force bool) error {
	if t == nil {
		return errors.NewNullArgumentError("type")
	}
	if handler == nil {
		return errors.NewNullArgumentError("handler")
	}

	et := property.Indirect(t)
	in, out, ok := handlerShape(handler, classHandlerOptionsType)
	if !ok || in != out || (in != et && in != reflect.PointerTo(et)) {
		return errors.NewInvalidMappingTypeError("class handler",
			typeName(reflect.TypeOf(handler)), "ClassHandler["+et.String()+"]")
	}
	return m.add(t, handler, force)
}

// Get returns the class handler mapped to t.
func (m *ClassHandlerMapper) Get(t reflect.Type) (any, bool) {
	return m.get(t)
}

// Remove deletes the class handler mapping of t, if any.
func (m *ClassHandlerMapper) Remove(t reflect.Type) error {
	return m.remove(t)
}

// AddClassHandler maps T to handler.
func AddClassHandler[T any](m *ClassHandlerMapper, handler ClassHandler[T], force bool) error {
	if handler == nil {
		return errors.NewNullArgumentError("handler")
	}
	return m.Add(property.TypeOf[T](), handler, force)
}

// AddClassHandlerOf maps T to a new instance of handler type H. Pointer handler
// types are allocated; value types are used as their zero value.
func AddClassHandlerOf[T any, H ClassHandler[T]](m *ClassHandlerMapper, force bool) error {
	return AddClassHandler[T](m, newHandler[H](), force)
}

func newHandler[H any]() H {
	var h H
	if t := reflect.TypeOf(h); t != nil && t.Kind() == reflect.Pointer {
		return reflect.New(t.Elem()).Interface().(H)
	}
	return h
}

// GetClassHandler returns the class handler mapped to T. It reports false when the
// mapped handler is for the other of T and *T.
func GetClassHandler[T any](m *ClassHandlerMapper) (ClassHandler[T], bool) {
	v, ok := m.Get(property.TypeOf[T]())
	if !ok {
		return nil, false
	}
	h, ok := v.(ClassHandler[T])
	return h, ok
}

// RemoveClassHandler deletes the class handler mapping of T.
func RemoveClassHandler[T any](m *ClassHandlerMapper) error {
	return m.Remove(property.TypeOf[T]())
}

// PropertyHandlerMapper maps properties, or every property of a given Go type, to
// property handlers. Property mappings take precedence over type mappings in Find.
type PropertyHandlerMapper struct {
	propertyLevel[any]
	types typeLevel[any]
}

// NewPropertyHandlerMapper creates an empty PropertyHandlerMapper.
func NewPropertyHandlerMapper(opts ...Option) *PropertyHandlerMapper {
	return &PropertyHandlerMapper{
		propertyLevel: propertyLevel[any]{reg: newRegistry[any]("property handler", opts)},
		types:         typeLevel[any]{reg: newRegistry[any]("type property handler", opts)},
	}
}

func validatePropertyHandler(handler any, propertyType reflect.Type) error {
	if handler == nil {
		return errors.NewNullArgumentError("handler")
	}
	_, out, ok := handlerShape(handler, propertyHandlerOptionsType)
	if !ok || !out.AssignableTo(propertyType) {
		return errors.NewInvalidMappingTypeError("property handler",
			typeName(reflect.TypeOf(handler)), "PropertyHandler[_, "+propertyType.String()+"]")
	}
	return nil
}

// Add maps the property of t selected by sel to handler. The handler's Go-side type
// must be assignable to the property type.
func (m *PropertyHandlerMapper) Add(t reflect.Type, sel property.Selector, handler any, force bool) error {
	t, p, err := m.resolve(t, sel)
	if err != nil {
		return err
	}
	if err := validatePropertyHandler(handler, p.Type); err != nil {
		return err
	}
	return m.add(t, p, handler, force)
}

// Get returns the handler mapped to the selected property. Type mappings are not
// consulted; use Find for the effective handler.
func (m *PropertyHandlerMapper) Get(t reflect.Type, sel property.Selector) (any, bool, error) {
	return m.get(t, sel)
}

// GetProperty returns the handler mapped to p on t.
func (m *PropertyHandlerMapper) GetProperty(t reflect.Type, p *property.Property) (any, bool) {
	return m.getProperty(t, p)
}

// Remove deletes the handler mapping of the selected property, if any.
func (m *PropertyHandlerMapper) Remove(t reflect.Type, sel property.Selector) error {
	return m.remove(t, sel)
}

// AddType maps every property of Go type propertyType to handler.
func (m *PropertyHandlerMapper) AddType(propertyType reflect.Type, handler any, force bool) error {
	if propertyType == nil {
		return errors.NewNullArgumentError("type")
	}
	if err := validatePropertyHandler(handler, propertyType); err != nil {
		return err
	}
	return m.types.add(propertyType, handler, force)
}

// GetType returns the handler mapped to Go type propertyType.
func (m *PropertyHandlerMapper) GetType(propertyType reflect.Type) (any, bool) {
	return m.types.get(propertyType)
}

// RemoveType deletes the handler mapping of Go type propertyType, if any.
func (m *PropertyHandlerMapper) RemoveType(propertyType reflect.Type) error {
	return m.types.remove(propertyType)
}

// Find returns the effective handler of p on t: the property mapping if there is one,
// otherwise the mapping of p's Go type.
func (m *PropertyHandlerMapper) Find(t reflect.Type, p *property.Property) (any, bool) {
	if h, ok := m.GetProperty(t, p); ok {
		return h, true
	}
	if p == nil {
		return nil, false
	}
	return m.GetType(p.Type)
}

// Clear removes every property and type mapping.
func (m *PropertyHandlerMapper) Clear() {
	m.propertyLevel.Clear()
	m.types.Clear()
}

// Len returns the number of property and type mappings.
func (m *PropertyHandlerMapper) Len() int {
	return m.propertyLevel.Len() + m.types.Len()
}

// AddPropertyHandler maps the property of T selected by sel to handler.
func AddPropertyHandler[T, In, Out any](m *PropertyHandlerMapper, sel property.Selector, handler PropertyHandler[In, Out], force bool) error {
	if handler == nil {
		return errors.NewNullArgumentError("handler")
	}
	return m.Add(property.TypeOf[T](), sel, handler, force)
}

// GetPropertyHandler returns the handler mapped to the property of T selected by sel.
func GetPropertyHandler[T, In, Out any](m *PropertyHandlerMapper, sel property.Selector) (PropertyHandler[In, Out], bool, error) {
	v, ok, err := m.Get(property.TypeOf[T](), sel)
	if err != nil || !ok {
		return nil, false, err
	}
	h, ok := v.(PropertyHandler[In, Out])
	return h, ok, nil
}

// RemovePropertyHandler deletes the handler mapping of the property of T selected by sel.
func RemovePropertyHandler[T any](m *PropertyHandlerMapper, sel property.Selector) error {
	return m.Remove(property.TypeOf[T](), sel)
}

// AddPropertyHandlerOf maps the property of T selected by sel to a new instance of
// handler type H.
func AddPropertyHandlerOf[T, In, Out any, H PropertyHandler[In, Out]](m *PropertyHandlerMapper, sel property.Selector, force bool) error {
	return AddPropertyHandler[T, In, Out](m, sel, newHandler[H](), force)
}

// AddTypeHandler maps every property of Go type Out to handler.
func AddTypeHandler[In, Out any](m *PropertyHandlerMapper, handler PropertyHandler[In, Out], force bool) error {
	if handler == nil {
		return errors.NewNullArgumentError("handler")
	}
	return m.AddType(property.TypeOf[Out](), handler, force)
}
