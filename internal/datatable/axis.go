package datatable

type ownership int

const (
	ownedInternally ownership = iota
	ownedExternally
	ownedPinned
)

// Axis is one independently owned piece of table view state.
//
// The zero value is an internally owned axis holding the zero value of V.
// Use Internal, External or Pinned to build one explicitly.
type Axis[V any] struct {
	owner    ownership
	value    V
	onChange func(V)
}

// Internal returns an axis whose value is held and updated by the controller.
func Internal[V any](initial V) Axis[V] {
	return Axis[V]{owner: ownedInternally, value: initial}
}

// External returns an axis whose value is held by the caller. Changes are
// forwarded to onChange and the caller re-supplies the new value through the
// controller's Sync methods.
func External[V any](value V, onChange func(V)) Axis[V] {
	if onChange == nil {
		panic("datatable: External axis requires an onChange callback")
	}
	return Axis[V]{owner: ownedExternally, value: value, onChange: onChange}
}

// Pinned returns a caller-held axis that cannot be changed from the table.
func Pinned[V any](value V) Axis[V] {
	return Axis[V]{owner: ownedPinned, value: value}
}

// Value returns the current value of the axis.
func (a Axis[V]) Value() V {
	return a.value
}

// IsExternal reports whether the caller owns the axis value.
func (a Axis[V]) IsExternal() bool {
	return a.owner != ownedInternally
}

// ReadOnly reports whether the axis rejects changes from the table.
func (a Axis[V]) ReadOnly() bool {
	return a.owner == ownedPinned
}

// set routes a change to local storage or the caller's callback.
func (a *Axis[V]) set(v V) bool {
	switch a.owner {
	case ownedInternally:
		a.value = v
		return true
	case ownedExternally:
		a.onChange(v)
		return true
	default:
		return false
	}
}

// sync stores a caller-supplied value. Internal axes ignore it.
func (a *Axis[V]) sync(v V) {
	if a.owner != ownedInternally {
		a.value = v
	}
}
