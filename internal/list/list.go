// Package list holds the ordered shopping list and its mutations.
//
// The list is one slice with a boolean discriminant, never two
// independently-owned slices: every active item precedes every
// purchased item, order inside each partition is meaningful, and every
// mutation returns a brand-new slice so a partial update is never
// observable. The second return value reports whether anything
// actually changed; callers use it to decide whether to arm a
// write-back.
package list

import (
	"slices"
	"strings"

	"github.com/idilsaglam/shoplist/internal/model"
)

// Active returns the not-yet-purchased items, in order.
func Active(items []model.Item) []model.Item {
	var out []model.Item
	for _, it := range items {
		if !it.IsPurchased {
			out = append(out, it)
		}
	}
	return out
}

// Purchased returns the checked-off items, in order.
func Purchased(items []model.Item) []model.Item {
	var out []model.Item
	for _, it := range items {
		if it.IsPurchased {
			out = append(out, it)
		}
	}
	return out
}

// Add inserts a new item at the front of the active partition.
// Empty (after trimming) text is a no-op.
func Add(items []model.Item, text string) ([]model.Item, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return items, false
	}
	n := model.Item{ID: model.NewID(), Text: text, Quantity: 1}
	out := make([]model.Item, 0, len(items)+1)
	out = append(out, n)
	out = append(out, Active(items)...)
	out = append(out, Purchased(items)...)
	return out, true
}

// Toggle flips the purchase state of the item with the given id and
// relocates it: newly purchased items go to the very end of the list,
// newly active ones to the very front. Unknown ids are a no-op.
func Toggle(items []model.Item, id string) ([]model.Item, bool) {
	i := index(items, id)
	if i < 0 {
		return items, false
	}
	target := items[i]
	target.IsPurchased = !target.IsPurchased

	rest := make([]model.Item, 0, len(items))
	rest = append(rest, items[:i]...)
	rest = append(rest, items[i+1:]...)

	out := make([]model.Item, 0, len(items))
	if target.IsPurchased {
		out = append(out, Active(rest)...)
		out = append(out, Purchased(rest)...)
		out = append(out, target)
	} else {
		out = append(out, target)
		out = append(out, Active(rest)...)
		out = append(out, Purchased(rest)...)
	}
	return out, true
}

// SetQuantity applies delta to the item's quantity, clamped at 1.
// Unknown ids, or a delta that leaves the quantity unchanged, are
// no-ops.
func SetQuantity(items []model.Item, id string, delta int) ([]model.Item, bool) {
	i := index(items, id)
	if i < 0 {
		return items, false
	}
	q := items[i].Quantity
	if q < 1 {
		q = 1
	}
	nq := max(1, q+delta)
	if nq == items[i].Quantity {
		return items, false
	}
	out := slices.Clone(items)
	out[i].Quantity = nq
	return out, true
}

// EditText replaces the item's text in place; its position does not
// change. Empty (after trimming) text and unknown ids are no-ops.
func EditText(items []model.Item, id, text string) ([]model.Item, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return items, false
	}
	i := index(items, id)
	if i < 0 {
		return items, false
	}
	out := slices.Clone(items)
	out[i].Text = text
	return out, true
}

// Remove deletes the item with the given id; unknown ids are a no-op.
func Remove(items []model.Item, id string) ([]model.Item, bool) {
	i := index(items, id)
	if i < 0 {
		return items, false
	}
	out := make([]model.Item, 0, len(items)-1)
	out = append(out, items[:i]...)
	out = append(out, items[i+1:]...)
	return out, true
}

// Reorder moves the active item at src to dst, both indexes counted
// within the active partition only (purchased items do not reorder).
// src == dst and out-of-range indexes are no-ops.
func Reorder(items []model.Item, src, dst int) ([]model.Item, bool) {
	active := Active(items)
	if src == dst || src < 0 || dst < 0 || src >= len(active) || dst >= len(active) {
		return items, false
	}
	moved := active[src]
	active = append(active[:src], active[src+1:]...)
	active = append(active[:dst], append([]model.Item{moved}, active[dst:]...)...)

	out := make([]model.Item, 0, len(items))
	out = append(out, active...)
	out = append(out, Purchased(items)...)
	return out, true
}

// Clear empties both partitions. Clearing an empty list is a no-op.
func Clear(items []model.Item) ([]model.Item, bool) {
	if len(items) == 0 {
		return items, false
	}
	return []model.Item{}, true
}

func index(items []model.Item, id string) int {
	for i, it := range items {
		if it.ID == id {
			return i
		}
	}
	return -1
}
