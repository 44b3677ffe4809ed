package list

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/shoplist/internal/model"
)

func texts(items []model.Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Text)
	}
	return out
}

// partitioned reports whether every active item precedes every
// purchased item.
func partitioned(items []model.Item) bool {
	seenPurchased := false
	for _, it := range items {
		if it.IsPurchased {
			seenPurchased = true
		} else if seenPurchased {
			return false
		}
	}
	return true
}

func byText(t *testing.T, items []model.Item, text string) model.Item {
	t.Helper()
	for _, it := range items {
		if it.Text == text {
			return it
		}
	}
	t.Fatalf("no item %q", text)
	return model.Item{}
}

func TestAddInsertsAtFront(t *testing.T) {
	items, changed := Add(nil, "  milk  ")
	require.True(t, changed)
	require.Len(t, items, 1)
	assert.Equal(t, "milk", items[0].Text, "text is trimmed")
	assert.Equal(t, 1, items[0].Quantity)
	assert.False(t, items[0].IsPurchased)
	assert.NotEmpty(t, items[0].ID)

	items, _ = Add(items, "eggs")
	assert.Equal(t, []string{"eggs", "milk"}, texts(items), "newest active item comes first")
}

func TestAddEmptyTextIsNoop(t *testing.T) {
	items, _ := Add(nil, "milk")
	out, changed := Add(items, "   ")
	assert.False(t, changed)
	assert.Equal(t, texts(items), texts(out))
}

func TestAddKeepsPurchasedAtBack(t *testing.T) {
	items, _ := Add(nil, "milk")
	items, _ = Toggle(items, items[0].ID)
	items, changed := Add(items, "eggs")
	require.True(t, changed)
	assert.Equal(t, []string{"eggs", "milk"}, texts(items))
	assert.True(t, partitioned(items))
}

func TestToggleMovesToBasketTail(t *testing.T) {
	var items []model.Item
	for _, s := range []string{"flour", "eggs", "milk"} {
		items, _ = Add(items, s)
	}
	// items: milk, eggs, flour
	items, changed := Toggle(items, byText(t, items, "eggs").ID)
	require.True(t, changed)
	assert.Equal(t, []string{"milk", "flour", "eggs"}, texts(items))
	assert.True(t, byText(t, items, "eggs").IsPurchased)

	items, _ = Toggle(items, byText(t, items, "milk").ID)
	assert.Equal(t, []string{"flour", "eggs", "milk"}, texts(items), "most recently purchased goes last")
	assert.True(t, partitioned(items))
}

func TestToggleBackMovesToFront(t *testing.T) {
	var items []model.Item
	for _, s := range []string{"flour", "eggs", "milk"} {
		items, _ = Add(items, s)
	}
	id := byText(t, items, "flour").ID
	items, _ = Toggle(items, id)
	items, changed := Toggle(items, id)
	require.True(t, changed)
	assert.Equal(t, []string{"flour", "milk", "eggs"}, texts(items), "un-purchasing makes it the newest active item")
	assert.False(t, byText(t, items, "flour").IsPurchased)
	assert.True(t, partitioned(items))
}

func TestToggleUnknownIDIsNoop(t *testing.T) {
	items, _ := Add(nil, "milk")
	out, changed := Toggle(items, "nope")
	assert.False(t, changed)
	assert.Equal(t, texts(items), texts(out))
}

func TestAddThenToggleScenario(t *testing.T) {
	items, _ := Add(nil, "milk")
	require.Len(t, Active(items), 1)
	require.Empty(t, Purchased(items))

	items, _ = Toggle(items, items[0].ID)
	assert.Empty(t, Active(items))
	require.Len(t, Purchased(items), 1)
	got := Purchased(items)[0]
	assert.Equal(t, "milk", got.Text)
	assert.True(t, got.IsPurchased)
	assert.Equal(t, 1, got.Quantity)
}

func TestQuantityFloor(t *testing.T) {
	items, _ := Add(nil, "eggs")
	id := items[0].ID

	for i := 0; i < 3; i++ {
		var changed bool
		items, changed = SetQuantity(items, id, -5)
		assert.False(t, changed, "already at the floor")
		assert.Equal(t, 1, items[0].Quantity)
	}

	items, changed := SetQuantity(items, id, +3)
	assert.True(t, changed)
	assert.Equal(t, 4, items[0].Quantity)

	items, changed = SetQuantity(items, id, -10)
	assert.True(t, changed)
	assert.Equal(t, 1, items[0].Quantity, "clamps at 1, never below")
}

func TestSetQuantityUnknownIDIsNoop(t *testing.T) {
	items, _ := Add(nil, "eggs")
	_, changed := SetQuantity(items, "nope", 1)
	assert.False(t, changed)
}

func TestEditText(t *testing.T) {
	var items []model.Item
	items, _ = Add(items, "milk")
	items, _ = Add(items, "eggs")
	id := byText(t, items, "milk").ID

	items, changed := EditText(items, id, "  oat milk ")
	require.True(t, changed)
	assert.Equal(t, []string{"eggs", "oat milk"}, texts(items), "position unchanged")

	_, changed = EditText(items, id, "   ")
	assert.False(t, changed)
	_, changed = EditText(items, "nope", "x")
	assert.False(t, changed)
}

func TestRemove(t *testing.T) {
	var items []model.Item
	for _, s := range []string{"flour", "eggs", "milk"} {
		items, _ = Add(items, s)
	}
	items, changed := Remove(items, byText(t, items, "eggs").ID)
	require.True(t, changed)
	assert.Equal(t, []string{"milk", "flour"}, texts(items))

	_, changed = Remove(items, "nope")
	assert.False(t, changed)
}

func TestReorder(t *testing.T) {
	var items []model.Item
	for _, s := range []string{"c", "b", "a"} {
		items, _ = Add(items, s)
	}
	// a b c
	items, changed := Reorder(items, 0, 2)
	require.True(t, changed)
	assert.Equal(t, []string{"b", "c", "a"}, texts(items))

	items, changed = Reorder(items, 2, 0)
	require.True(t, changed)
	assert.Equal(t, []string{"a", "b", "c"}, texts(items))
}

func TestReorderNoopAndBounds(t *testing.T) {
	var items []model.Item
	for _, s := range []string{"c", "b", "a"} {
		items, _ = Add(items, s)
	}
	out, changed := Reorder(items, 2, 2)
	assert.False(t, changed, "same source and destination must not report a change")
	assert.Equal(t, texts(items), texts(out))

	_, changed = Reorder(items, -1, 0)
	assert.False(t, changed)
	_, changed = Reorder(items, 0, 3)
	assert.False(t, changed)
}

func TestReorderSkipsPurchased(t *testing.T) {
	var items []model.Item
	for _, s := range []string{"c", "b", "a"} {
		items, _ = Add(items, s)
	}
	items, _ = Toggle(items, byText(t, items, "c").ID)
	// active: a b, purchased: c

	items, changed := Reorder(items, 0, 1)
	require.True(t, changed)
	assert.Equal(t, []string{"b", "a", "c"}, texts(items), "purchased tail untouched")

	_, changed = Reorder(items, 0, 2)
	assert.False(t, changed, "destination outside the active partition")
}

func TestClear(t *testing.T) {
	var items []model.Item
	items, _ = Add(items, "milk")
	items, _ = Toggle(items, items[0].ID)

	items, changed := Clear(items)
	require.True(t, changed)
	assert.Empty(t, items)

	_, changed = Clear(items)
	assert.False(t, changed, "clearing an empty list is a no-op")
}

func TestPartitionInvariantUnderMutationSequence(t *testing.T) {
	var items []model.Item
	check := func(step string) {
		t.Helper()
		require.True(t, partitioned(items), "invariant broken after %s", step)
	}

	for _, s := range []string{"milk", "eggs", "flour", "jam", "tea"} {
		items, _ = Add(items, s)
		check("add " + s)
	}
	items, _ = Toggle(items, byText(t, items, "eggs").ID)
	check("toggle eggs")
	items, _ = Toggle(items, byText(t, items, "tea").ID)
	check("toggle tea")
	items, _ = Reorder(items, 0, 2)
	check("reorder")
	items, _ = SetQuantity(items, byText(t, items, "milk").ID, 4)
	check("quantity")
	items, _ = EditText(items, byText(t, items, "jam").ID, "plum jam")
	check("edit")
	items, _ = Toggle(items, byText(t, items, "eggs").ID)
	check("toggle eggs back")
	items, _ = Remove(items, byText(t, items, "flour").ID)
	check("remove")
	items, _ = Clear(items)
	check("clear")
}
