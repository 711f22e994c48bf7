package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/quant/internal/core/domain"
)

func TestHandle_Deref(t *testing.T) {
	q := domain.NewSimpleQuote(1.5)
	h := domain.NewHandle[domain.Quote](q, true)

	got, err := h.Deref()
	require.NoError(t, err)
	assert.Same(t, q, got)
	assert.False(t, h.Empty())
	assert.True(t, h.Observing())
}

func TestHandle_Empty(t *testing.T) {
	var zero domain.Handle[domain.Quote]
	_, err := zero.Deref()
	require.ErrorIs(t, err, domain.ErrEmptyHandle)
	assert.True(t, zero.Empty())
	assert.False(t, zero.Observing())
	assert.NotPanics(t, func() { zero.Subscribe(&counter{}) })

	var typedNil *domain.SimpleQuote
	h := domain.NewHandle[domain.Quote](typedNil, true)
	_, err = h.Deref()
	require.ErrorIs(t, err, domain.ErrEmptyHandle)
}

func TestHandle_ForwardsNotifications(t *testing.T) {
	q := domain.NewSimpleQuote(1)
	observed := domain.NewHandle[domain.Quote](q, true)
	silent := domain.NewHandle[domain.Quote](q, false)

	c1, c2 := &counter{}, &counter{}
	observed.Subscribe(c1)
	silent.Subscribe(c2)

	q.SetValue(2)
	assert.Equal(t, 1, c1.hits)
	assert.Equal(t, 0, c2.hits)
}

func TestHandle_Equality(t *testing.T) {
	q := domain.NewSimpleQuote(1)
	a := domain.NewHandle[domain.Quote](q, true)
	b := domain.NewHandle[domain.Quote](q, true)
	copyOfA := a

	assert.True(t, a.Equal(copyOfA))
	assert.False(t, a.Equal(b), "handles over the same target with different cells are distinct")

	seen := map[domain.Handle[domain.Quote]]int{a: 1}
	seen[copyOfA]++
	assert.Len(t, seen, 1)
	assert.Equal(t, 2, seen[a])
}

func TestRelinkableHandle_Relink(t *testing.T) {
	q1 := domain.NewSimpleQuote(1)
	q2 := domain.NewSimpleQuote(2)
	r := domain.NewRelinkableHandle[domain.Quote](q1, true)
	h := r.Handle

	c := &counter{}
	h.Subscribe(c)

	r.LinkTo(q2, true)
	assert.Equal(t, 1, c.hits, "relinking notifies once")

	got, err := h.Deref()
	require.NoError(t, err)
	assert.Same(t, q2, got, "copies of the handle see the new target")

	q1.SetValue(10)
	assert.Equal(t, 1, c.hits, "the old target is no longer observed")
	assert.Equal(t, 0, q1.Observers())

	q2.SetValue(20)
	assert.Equal(t, 2, c.hits)
}

func TestRelinkableHandle_RelinkToSameTargetIsNoop(t *testing.T) {
	q := domain.NewSimpleQuote(1)
	r := domain.NewRelinkableHandle[domain.Quote](q, true)
	c := &counter{}
	r.Subscribe(c)

	r.LinkTo(q, true)
	assert.Equal(t, 0, c.hits)
	assert.Equal(t, 1, q.Observers())

	r.LinkTo(q, false)
	assert.Equal(t, 1, c.hits, "changing the observe flag is a relink")
	assert.Equal(t, 0, q.Observers())
}

func TestRelinkableHandle_EmptyAndReset(t *testing.T) {
	r := domain.NewEmptyRelinkableHandle[domain.Quote]()
	assert.True(t, r.Empty())

	c := &counter{}
	r.Subscribe(c)

	q := domain.NewSimpleQuote(3)
	r.LinkTo(q, true)
	assert.False(t, r.Empty())
	assert.Equal(t, 1, c.hits)

	r.Reset()
	assert.True(t, r.Empty())
	assert.Equal(t, 2, c.hits)
	assert.Equal(t, 0, q.Observers())

	_, err := r.Deref()
	require.ErrorIs(t, err, domain.ErrEmptyHandle)
}

func TestRelinkableHandle_ZeroValue(t *testing.T) {
	var r domain.RelinkableHandle[domain.Quote]
	q := domain.NewSimpleQuote(1)

	assert.NotPanics(t, func() { r.LinkTo(q, true) })
	assert.NotPanics(t, r.Reset)
	assert.True(t, r.Empty())
	assert.Equal(t, 0, q.Observers())
}

// taggedSource is an Observable held by value whose dynamic type cannot be
// compared with ==.
type taggedSource struct {
	n    *domain.Notifier
	tags []string
}

func (s taggedSource) Subscribe(o domain.Observer)   { s.n.Subscribe(o) }
func (s taggedSource) Unsubscribe(o domain.Observer) { s.n.Unsubscribe(o) }

func TestRelinkableHandle_UncomparableTarget(t *testing.T) {
	src := taggedSource{n: &domain.Notifier{}, tags: []string{"eod"}}
	r := domain.NewRelinkableHandle[domain.Observable](src, true)

	c := &counter{}
	r.Subscribe(c)

	assert.NotPanics(t, func() { r.LinkTo(src, true) })
	assert.Equal(t, 1, c.hits, "targets that cannot be compared always relink")
	assert.Equal(t, 1, src.n.Observers())

	src.n.Publish()
	assert.Equal(t, 2, c.hits)
}
