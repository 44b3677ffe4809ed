// Package codec converts an ordered shopping list to and from the
// compact token embedded in share links and stored in the local
// database. The wire form is a JSON array of positional tuples
// [purchasedFlag, text, quantity], base64url-encoded without padding.
package codec

import (
	"encoding/base64"
	"encoding/json"

	"github.com/idilsaglam/shoplist/internal/model"
)

// Encode serializes items into a URL-safe token. An empty list encodes
// to "" so callers can drop the query parameter entirely instead of
// carrying an empty payload around.
func Encode(items []model.Item) string {
	if len(items) == 0 {
		return ""
	}
	tuples := make([][3]any, 0, len(items))
	for _, it := range items {
		flag := 0
		if it.IsPurchased {
			flag = 1
		}
		qty := it.Quantity
		if qty < 1 {
			qty = 1
		}
		tuples = append(tuples, [3]any{flag, it.Text, qty})
	}
	b, err := json.Marshal(tuples)
	if err != nil {
		return ""
	}
	return base64.RawURLEncoding.EncodeToString(b)
}

// Decode is total: any malformed token (bad base64, non-JSON payload,
// wrong tuple shape) yields an empty list, never an error. Identifiers
// are not part of the shared form; each decoded item gets a fresh one.
func Decode(token string) []model.Item {
	if token == "" {
		return nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		// Tolerate the padded variant too.
		raw, err = base64.URLEncoding.DecodeString(token)
		if err != nil {
			return nil
		}
	}
	var tuples [][]any
	if err := json.Unmarshal(raw, &tuples); err != nil {
		return nil
	}
	items := make([]model.Item, 0, len(tuples))
	for _, tu := range tuples {
		if len(tu) < 2 || len(tu) > 3 {
			return nil
		}
		flag, ok := tu[0].(float64)
		if !ok {
			return nil
		}
		text, ok := tu[1].(string)
		if !ok {
			return nil
		}
		qty := 1
		if len(tu) == 3 {
			f, ok := tu[2].(float64)
			if !ok {
				return nil
			}
			if int(f) > 1 {
				qty = int(f)
			}
		}
		items = append(items, model.Item{
			ID:          model.NewID(),
			Text:        text,
			IsPurchased: flag == 1,
			Quantity:    qty,
		})
	}
	return items
}
