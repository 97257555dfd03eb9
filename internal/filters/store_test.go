package filters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreApplyNotifiesSubscribers(t *testing.T) {
	store := NewStore()

	var got []Criteria
	store.Subscribe(func(c Criteria) {
		got = append(got, c)
	})

	store.Apply(func(c Criteria) Criteria {
		return c.WithSearchTerm("drill")
	})

	require.Len(t, got, 1)
	assert.Equal(t, "drill", got[0].SearchTerm)
}

func TestStoreSkipsNotificationWhenUnchanged(t *testing.T) {
	store := NewStore()

	calls := 0
	store.Subscribe(func(Criteria) { calls++ })

	store.Apply(func(c Criteria) Criteria { return c })
	assert.Zero(t, calls)
}

func TestStoreUnsubscribeStopsNotifications(t *testing.T) {
	store := NewStore()

	calls := 0
	unsubscribe := store.Subscribe(func(Criteria) { calls++ })

	store.Apply(func(c Criteria) Criteria { return c.WithBrandToggled(3, true) })
	unsubscribe()
	store.Apply(func(c Criteria) Criteria { return c.WithBrandToggled(7, true) })

	assert.Equal(t, 1, calls)
}

func TestStoreCurrentReturnsSnapshot(t *testing.T) {
	store := NewStore()
	store.Apply(func(c Criteria) Criteria { return c.WithBrandToggled(3, true) })

	snapshot := store.Current()
	snapshot.Brands[99] = struct{}{}

	assert.False(t, store.Current().Brands.Has(99), "snapshot mutation must not leak into the store")
}
