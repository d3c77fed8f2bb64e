/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package mapping

import (
	"fmt"
	"reflect"

	"github.com/suparena/entitymap/errors"
)

// Handlers are stored untyped, so providers that only know the entity at run time
// call them through these helpers. Values are adapted between T and *T as needed.

// CallClassGet runs handler.Get on entity.
func CallClassGet(handler any, entity any, opts ClassHandlerOptions) (any, error) {
	return call(handler, "Get", entity, opts)
}

// CallClassSet runs handler.Set on entity.
func CallClassSet(handler any, entity any, opts ClassHandlerOptions) (any, error) {
	return call(handler, "Set", entity, opts)
}

// CallPropertyGet runs handler.Get on a stored value.
func CallPropertyGet(handler any, input any, opts PropertyHandlerOptions) (any, error) {
	return call(handler, "Get", input, opts)
}

// CallPropertySet runs handler.Set on a Go value.
func CallPropertySet(handler any, output any, opts PropertyHandlerOptions) (any, error) {
	return call(handler, "Set", output, opts)
}

func call(handler any, method string, arg any, opts any) (any, error) {
	if handler == nil {
		return nil, errors.NewNullArgumentError("handler")
	}
	fn := reflect.ValueOf(handler).MethodByName(method)
	if !fn.IsValid() || fn.Type().NumIn() != 2 || fn.Type().NumOut() != 2 {
		return nil, errors.NewInvalidMappingTypeError("handler", typeName(reflect.TypeOf(handler)), method)
	}

	in, err := adapt(reflect.ValueOf(arg), fn.Type().In(0))
	if err != nil {
		return nil, err
	}

	out := fn.Call([]reflect.Value{in, reflect.ValueOf(opts)})
	if err, _ := out[1].Interface().(error); err != nil {
		return nil, err
	}
	return out[0].Interface(), nil
}

func adapt(v reflect.Value, want reflect.Type) (reflect.Value, error) {
	switch {
	case !v.IsValid():
		return reflect.Zero(want), nil
	case v.Type().AssignableTo(want):
		return v, nil
	case v.Kind() == reflect.Pointer && v.Type().Elem().AssignableTo(want):
		if v.IsNil() {
			return reflect.Zero(want), nil
		}
		return v.Elem(), nil
	case want.Kind() == reflect.Pointer && v.Type().AssignableTo(want.Elem()):
		p := reflect.New(want.Elem())
		p.Elem().Set(v)
		return p, nil
	}
	return reflect.Value{}, errors.NewInvalidArgumentError("value",
		fmt.Sprintf("%s is not assignable to %s", v.Type(), want))
}
