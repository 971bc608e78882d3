package introspect

import (
	"fmt"
	"reflect"

	"xmlbind/internal/access"
)

// Accessor implements the runtime read/write contract of one access
// policy over live instances, using reflection. Built once per field
// when the runtime loads a model; immutable afterwards.
type Accessor struct {
	policy access.Policy
}

// NewAccessor wraps an access policy for runtime use.
func NewAccessor(p access.Policy) *Accessor {
	return &Accessor{policy: p}
}

// Read returns the member value of an instance (a struct or a pointer
// to one).
func (a *Accessor) Read(instance any) (any, error) {
	v := reflect.ValueOf(instance)
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}

	switch p := a.policy.(type) {
	case access.Direct:
		f := v.FieldByName(p.Member)
		if !f.IsValid() {
			return nil, fmt.Errorf("%s has no member %q", v.Type(), p.Member)
		}

		return f.Interface(), nil

	case access.AccessorPair:
		m := reflect.ValueOf(instance).MethodByName(p.Getter)
		if !m.IsValid() {
			return nil, fmt.Errorf("%s has no method %q", v.Type(), p.Getter)
		}

		out := m.Call(nil)
		if len(out) != 1 {
			return nil, fmt.Errorf("getter %q must return exactly one value", p.Getter)
		}

		return out[0].Interface(), nil

	default:
		return nil, fmt.Errorf("unsupported access policy %T", a.policy)
	}
}

// Write stores a member value on an instance, which must be a pointer
// to a struct.
func (a *Accessor) Write(instance, value any) error {
	v := reflect.ValueOf(instance)
	if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("write target must be a pointer to a struct, got %T", instance)
	}

	switch p := a.policy.(type) {
	case access.Direct:
		f := v.Elem().FieldByName(p.Member)
		if !f.IsValid() {
			return fmt.Errorf("%s has no member %q", v.Elem().Type(), p.Member)
		}

		if !f.CanSet() {
			return fmt.Errorf("member %q of %s is not settable", p.Member, v.Elem().Type())
		}

		val := reflect.ValueOf(value)
		if !val.Type().AssignableTo(f.Type()) {
			return fmt.Errorf("cannot assign %s to member %q of type %s", val.Type(), p.Member, f.Type())
		}

		f.Set(val)

		return nil

	case access.AccessorPair:
		m := v.MethodByName(p.Setter)
		if !m.IsValid() {
			return fmt.Errorf("%s has no method %q", v.Type(), p.Setter)
		}

		if m.Type().NumIn() != 1 {
			return fmt.Errorf("setter %q must take exactly one argument", p.Setter)
		}

		m.Call([]reflect.Value{reflect.ValueOf(value)})

		return nil

	default:
		return fmt.Errorf("unsupported access policy %T", a.policy)
	}
}
