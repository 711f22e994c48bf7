package domain

import "reflect"

// link is the shared indirection cell behind a handle. It observes its
// target and re-broadcasts the target's notifications to the handle's observers.
type link[T Observable] struct {
	Notifier
	target    T
	present   bool
	observing bool
}

// Update forwards a notification from the target.
func (l *link[T]) Update() {
	l.Publish()
}

func (l *link[T]) linkTo(target T, observe bool) {
	present := !isNil(target)
	if present == l.present && sameTarget(target, l.target) && observe == l.observing {
		return
	}

	if l.present && l.observing {
		l.target.Unsubscribe(l)
	}

	l.target = target
	l.present = present
	l.observing = observe

	if l.present && l.observing {
		l.target.Subscribe(l)
	}

	// observers must see the new target by the time they are notified
	l.Publish()
}

// Handle is a fixed indirection over an observable target. Copies of a Handle
// share the same cell, and == on two handles compares cells, not targets, so a
// Handle is a stable map key even when the cell is relinked.
type Handle[T Observable] struct {
	cell *link[T]
}

// NewHandle creates a handle over target. When observe is true the handle
// forwards the target's notifications to its own observers.
func NewHandle[T Observable](target T, observe bool) Handle[T] {
	l := &link[T]{}
	l.linkTo(target, observe)
	return Handle[T]{cell: l}
}

// Deref returns the current target.
func (h Handle[T]) Deref() (T, error) {
	if h.Empty() {
		var zero T
		return zero, ErrEmptyHandle
	}
	return h.cell.target, nil
}

// Empty reports whether the handle has no target.
func (h Handle[T]) Empty() bool {
	return h.cell == nil || !h.cell.present
}

// Observing reports whether the handle is registered with its target.
func (h Handle[T]) Observing() bool {
	return h.cell != nil && h.cell.present && h.cell.observing
}

// Subscribe registers o for notifications from the handle.
func (h Handle[T]) Subscribe(o Observer) {
	if h.cell != nil {
		h.cell.Subscribe(o)
	}
}

// Unsubscribe removes o from the handle's observers.
func (h Handle[T]) Unsubscribe(o Observer) {
	if h.cell != nil {
		h.cell.Unsubscribe(o)
	}
}

// Equal reports whether both handles share the same cell.
func (h Handle[T]) Equal(other Handle[T]) bool {
	return h.cell == other.cell
}

// RelinkableHandle is a Handle whose target can be replaced after construction.
// Handles taken from it with the Handle field observe every relink.
//
// The zero value has no cell and stays empty: LinkTo and Reset do nothing.
// Use NewRelinkableHandle or NewEmptyRelinkableHandle.
type RelinkableHandle[T Observable] struct {
	Handle[T]
}

// NewRelinkableHandle creates a relinkable handle over target.
func NewRelinkableHandle[T Observable](target T, observe bool) RelinkableHandle[T] {
	return RelinkableHandle[T]{Handle: NewHandle(target, observe)}
}

// NewEmptyRelinkableHandle creates a relinkable handle with no target yet.
func NewEmptyRelinkableHandle[T Observable]() RelinkableHandle[T] {
	var zero T
	return NewRelinkableHandle(zero, true)
}

// LinkTo points the handle at target. Linking to the current target with an
// unchanged observe flag does nothing; anything else rewires the subscription
// and notifies the handle's observers once.
func (h RelinkableHandle[T]) LinkTo(target T, observe bool) {
	if h.cell == nil {
		return
	}
	h.cell.linkTo(target, observe)
}

// Reset unlinks the handle, leaving it empty.
func (h RelinkableHandle[T]) Reset() {
	if h.cell == nil {
		return
	}
	var zero T
	h.cell.linkTo(zero, h.cell.observing)
}

func sameTarget(a, b any) bool {
	if isNil(a) || isNil(b) {
		return isNil(a) && isNil(b)
	}
	return identical(a, b)
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}
