package model

import "math/rand/v2"

// Item is the domain model for one shopping-list entry.
// Kept minimal on purpose; it’s easy to evolve.
type Item struct {
	ID          string // session-local; regenerated when a shared list is decoded
	Text        string
	IsPurchased bool
	Quantity    int // always >= 1
}

const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
const idLength = 5

// NewID returns a short random identifier. Uniqueness only needs to
// hold within one list on one device, so a handful of base36
// characters is enough.
func NewID() string {
	b := make([]byte, idLength)
	for i := range b {
		b[i] = idAlphabet[rand.IntN(len(idAlphabet))]
	}
	return string(b)
}
