package salstore

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestJSON_MissingItemsLoadEmpty(t *testing.T) {
	impl := NewJSON("memory", NewMemory())
	ctx := context.Background()

	s, err := impl.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, Snapshot{}, s)

	d, err := impl.LoadDOMData(ctx)
	require.NoError(t, err)
	assert.Equal(t, DOMSnapshot{}, d)
}

func TestJSON_WireFormat(t *testing.T) {
	mem := NewMemory()
	impl := NewJSON("memory", mem)
	ctx := context.Background()

	require.NoError(t, impl.Flush(ctx, Snapshot{"theme": "dark", "size": 12.0}))
	require.NoError(t, impl.SaveDOMData(ctx, DOMSnapshot{
		"name":  {Value: strPtr("foo"), Visible: boolPtr(true)},
		"empty": {},
	}))

	raw, err := mem.GetItem(ctx, DefaultStorageKey)
	require.NoError(t, err)
	assert.JSONEq(t, `{"theme":"dark","size":12}`, string(raw))

	raw, err = mem.GetItem(ctx, DefaultDOMDataKey)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":{"value":"foo","visible":true},"empty":{}}`, string(raw))
}

func TestJSON_DOMRecordFieldNames(t *testing.T) {
	rec := DOMRecord{
		Value:       strPtr("v"),
		Checked:     boolPtr(false),
		InnerMarkup: strPtr("<b>x</b>"),
		Visible:     boolPtr(false),
	}
	raw, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.JSONEq(t, `{"value":"v","checked":false,"innerHTML":"<b>x</b>","visible":false}`, string(raw))
}

func TestJSON_RoundTripThroughStore(t *testing.T) {
	mem := NewMemory()
	ctx := context.Background()

	writer := newActiveStore(NewJSON("memory", mem))
	require.NoError(t, writer.Set(ctx, "prefs", map[string]any{"lang": "en", "tabs": []any{"a", "b"}}))
	require.NoError(t, writer.Set(ctx, "count", 3.0))
	require.NoError(t, writer.Flush(ctx))

	reader := newActiveStore(NewJSON("memory", mem))
	require.NoError(t, reader.Load(ctx))
	assert.Equal(t, writer.Snapshot(), reader.Snapshot())
}

func TestJSON_FlushTwiceProducesSameBytes(t *testing.T) {
	mem := NewMemory()
	s := newActiveStore(NewJSON("memory", mem))
	ctx := context.Background()
	require.NoError(t, s.Set(ctx, "b", 2.0))
	require.NoError(t, s.Set(ctx, "a", map[string]any{"z": 1.0, "y": nil}))

	require.NoError(t, s.Flush(ctx))
	first, err := mem.GetItem(ctx, DefaultStorageKey)
	require.NoError(t, err)

	require.NoError(t, s.Flush(ctx))
	second, err := mem.GetItem(ctx, DefaultStorageKey)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestJSON_CustomKeys(t *testing.T) {
	mem := NewMemory()
	impl := NewJSON("memory", mem, WithStorageKey("kv"), WithDOMDataKey("dom"), WithStorageKey(""))
	ctx := context.Background()

	require.NoError(t, impl.Flush(ctx, Snapshot{"k": "v"}))
	require.NoError(t, impl.SaveDOMData(ctx, DOMSnapshot{"id": {}}))

	_, err := mem.GetItem(ctx, "kv")
	assert.NoError(t, err)
	_, err = mem.GetItem(ctx, "dom")
	assert.NoError(t, err)
	_, err = mem.GetItem(ctx, DefaultStorageKey)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestJSON_Unavailable(t *testing.T) {
	mem := NewMemory()
	impl := NewJSON("memory", mem)
	ctx := context.Background()
	require.NoError(t, impl.Flush(ctx, Snapshot{"k": "v"}))

	mem.SetAvailable(false)
	assert.False(t, impl.IsAvailable())

	s, err := impl.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, Snapshot{}, s, "unavailable storage loads as empty")

	require.NoError(t, impl.Flush(ctx, Snapshot{"k": "changed"}))
	require.NoError(t, impl.SaveDOMData(ctx, DOMSnapshot{"id": {}}))

	mem.SetAvailable(true)
	s, err = impl.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, Snapshot{"k": "v"}, s, "writes while unavailable are skipped")
	d, err := impl.LoadDOMData(ctx)
	require.NoError(t, err)
	assert.Empty(t, d)
}

func TestJSON_NullAndEmptyItems(t *testing.T) {
	mem := NewMemory()
	impl := NewJSON("memory", mem)
	ctx := context.Background()

	require.NoError(t, mem.SetItem(ctx, DefaultStorageKey, []byte("null")))
	s, err := impl.Load(ctx)
	require.NoError(t, err)
	assert.NotNil(t, s)
	assert.Empty(t, s)

	require.NoError(t, mem.SetItem(ctx, DefaultDOMDataKey, []byte("")))
	d, err := impl.LoadDOMData(ctx)
	require.NoError(t, err)
	assert.NotNil(t, d)
}

func TestJSON_CorruptItem(t *testing.T) {
	mem := NewMemory()
	impl := NewJSON("memory", mem)
	ctx := context.Background()
	require.NoError(t, mem.SetItem(ctx, DefaultStorageKey, []byte("{not json")))

	_, err := impl.Load(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode "+DefaultStorageKey)
}

type failingItems struct {
	*Memory
	err error
}

func (f *failingItems) GetItem(context.Context, string) ([]byte, error) { return nil, f.err }
func (f *failingItems) SetItem(context.Context, string, []byte) error   { return f.err }

func TestJSON_ItemStoreErrors(t *testing.T) {
	errIO := errors.New("mock io error")
	impl := NewJSON("failing", &failingItems{Memory: NewMemory(), err: errIO})
	ctx := context.Background()

	_, err := impl.Load(ctx)
	assert.ErrorIs(t, err, errIO)
	_, err = impl.LoadDOMData(ctx)
	assert.ErrorIs(t, err, errIO)
	assert.ErrorIs(t, impl.Flush(ctx, Snapshot{}), errIO)
	assert.ErrorIs(t, impl.SaveDOMData(ctx, nil), errIO)
}
