package domain

import (
	"reflect"
	"slices"
)

// Observer receives change notifications from an Observable.
//
// Observers are compared by identity. An observer whose dynamic value is not
// comparable is never recognized again, so it cannot be deduplicated or
// unsubscribed; pointer receivers are the norm.
type Observer interface {
	Update()
}

// Observable is anything that broadcasts change notifications. Handles compare
// targets by identity, with the same caveat as Observer.
type Observable interface {
	Subscribe(o Observer)
	Unsubscribe(o Observer)
}

// Notifier is the notification channel embedded by every observable in this package.
// The zero value is ready to use. Notifier is not safe for concurrent use.
type Notifier struct {
	observers []Observer
}

// Subscribe registers o. Registering an observer that is already present is a no-op,
// so a single broadcast never reaches the same observer twice.
func (n *Notifier) Subscribe(o Observer) {
	if o == nil || slices.ContainsFunc(n.observers, func(x Observer) bool { return identical(x, o) }) {
		return
	}
	n.observers = append(n.observers, o)
}

// Unsubscribe removes o. Removing an observer that is not registered is a no-op.
func (n *Notifier) Unsubscribe(o Observer) {
	i := slices.IndexFunc(n.observers, func(x Observer) bool { return identical(x, o) })
	if i < 0 {
		return
	}
	// Publish iterates a clone, so deleting in place is safe mid-broadcast.
	n.observers = slices.Delete(n.observers, i, i+1)
}

// Publish calls Update on every observer registered when Publish was entered,
// in registration order.
func (n *Notifier) Publish() {
	if len(n.observers) == 0 {
		return
	}
	for _, o := range slices.Clone(n.observers) {
		o.Update()
	}
}

// Observers returns the number of registered observers.
func (n *Notifier) Observers() int {
	return len(n.observers)
}

// identical reports whether a and b are the same value, treating values that
// cannot be compared as distinct.
func identical(a, b any) bool {
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}
	if a == nil {
		return true
	}
	return reflect.ValueOf(a).Comparable() && a == b
}

// Callback adapts a plain function into an Observer with pointer identity.
type Callback struct {
	fn func()
}

// NewCallback returns an Observer that runs fn on every notification.
func NewCallback(fn func()) *Callback {
	return &Callback{fn: fn}
}

// Update runs the wrapped function.
func (c *Callback) Update() {
	if c.fn != nil {
		c.fn()
	}
}
