package quotation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitrinalabs/storefront-backend/pkg/errors"
	"github.com/vitrinalabs/storefront-backend/pkg/redis"
)

type fakeDraftStore struct {
	values  map[string]string
	lastTTL time.Duration
	err     error
}

func newFakeDraftStore() *fakeDraftStore {
	return &fakeDraftStore{values: make(map[string]string)}
}

func (f *fakeDraftStore) Get(ctx context.Context, key string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	value, ok := f.values[key]
	if !ok {
		return "", redis.Nil
	}
	return value, nil
}

func (f *fakeDraftStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if f.err != nil {
		return f.err
	}
	f.values[key] = string(value.([]byte))
	f.lastTTL = ttl
	return nil
}

func (f *fakeDraftStore) Del(ctx context.Context, keys ...string) error {
	if f.err != nil {
		return f.err
	}
	for _, key := range keys {
		delete(f.values, key)
	}
	return nil
}

func (f *fakeDraftStore) QuotationKey(sessionID string) string {
	return "sf:quotation:" + sessionID
}

const draftTTL = 168 * time.Hour

func TestDraftDefaultsWhenAbsent(t *testing.T) {
	svc, err := NewService(newFakeDraftStore(), draftTTL)
	require.NoError(t, err)

	draft, err := svc.Draft(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Equal(t, StepPlace, draft.CurrentStep)
}

func TestUpdatePersistsWithRetentionTTL(t *testing.T) {
	store := newFakeDraftStore()
	svc, err := NewService(store, draftTTL)
	require.NoError(t, err)
	ctx := context.Background()

	draft, err := svc.Update(ctx, "sess-1", func(d *Draft) {
		d.SetPlace(4)
		d.Next()
	})
	require.NoError(t, err)
	assert.Equal(t, StepCategories, draft.CurrentStep)
	assert.Equal(t, draftTTL, store.lastTTL)

	reloaded, err := svc.Draft(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, 4, reloaded.SelectedPlace)
	assert.Equal(t, StepCategories, reloaded.CurrentStep)
	assert.True(t, reloaded.StepIsValid(StepPlace))
}

func TestCompleteRequiresValidSteps(t *testing.T) {
	svc, err := NewService(newFakeDraftStore(), draftTTL)
	require.NoError(t, err)
	ctx := context.Background()

	_, err = svc.Complete(ctx, "sess-1")
	assert.True(t, errors.Is(err, errors.CodeValidation))

	_, err = svc.Update(ctx, "sess-1", func(d *Draft) { d.SetPlace(4) })
	require.NoError(t, err)
	_, err = svc.Complete(ctx, "sess-1")
	assert.True(t, errors.Is(err, errors.CodeValidation), "second step still unvalidated")

	_, err = svc.Update(ctx, "sess-1", func(d *Draft) { d.SetCategories([]int{12}) })
	require.NoError(t, err)
	draft, err := svc.Complete(ctx, "sess-1")
	require.NoError(t, err)
	assert.True(t, draft.Completed)
}

func TestResetDiscardsDraft(t *testing.T) {
	svc, err := NewService(newFakeDraftStore(), draftTTL)
	require.NoError(t, err)
	ctx := context.Background()

	_, err = svc.Update(ctx, "sess-1", func(d *Draft) { d.SetPlace(4) })
	require.NoError(t, err)
	require.NoError(t, svc.Reset(ctx, "sess-1"))

	draft, err := svc.Draft(ctx, "sess-1")
	require.NoError(t, err)
	assert.Zero(t, draft.SelectedPlace)
	assert.Equal(t, StepPlace, draft.CurrentStep)
}

func TestCorruptDraftFallsBackToFresh(t *testing.T) {
	store := newFakeDraftStore()
	store.values["sf:quotation:sess-1"] = "{not json"
	svc, err := NewService(store, draftTTL)
	require.NoError(t, err)

	draft, err := svc.Draft(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Equal(t, StepPlace, draft.CurrentStep)
}

func TestStoreErrorSurfacesAsDependency(t *testing.T) {
	store := newFakeDraftStore()
	store.err = errors.New(errors.CodeInternal, "boom")
	svc, err := NewService(store, draftTTL)
	require.NoError(t, err)

	_, err = svc.Draft(context.Background(), "sess-1")
	assert.True(t, errors.Is(err, errors.CodeDependency))
}
