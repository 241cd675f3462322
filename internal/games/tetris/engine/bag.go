package engine

import (
	"math/rand"

	"github.com/vovakirdan/tui-tetris/internal/catalog"
)

// Bag is the 7-bag randomizer: each refill is a shuffled permutation of
// all seven pieces, and the lookahead queue is topped up one piece at a time.
type Bag struct {
	rng   *rand.Rand
	bag   []catalog.PieceType
	queue []catalog.PieceType
	size  int
}

// NewBag creates a randomizer that keeps at least size pieces queued.
func NewBag(rng *rand.Rand, size int) *Bag {
	if size < 1 {
		size = 1
	}
	b := &Bag{rng: rng, size: size}
	b.fill(size)
	return b
}

// Next removes and returns the piece at the front of the queue.
func (b *Bag) Next() catalog.PieceType {
	p := b.queue[0]
	b.queue = b.queue[1:]
	b.fill(b.size)
	return p
}

// Peek returns the next n pieces without consuming them.
func (b *Bag) Peek(n int) []catalog.PieceType {
	b.fill(n)
	out := make([]catalog.PieceType, n)
	copy(out, b.queue)
	return out
}

// fill tops the queue up to n pieces, shuffling a new bag when one runs out.
func (b *Bag) fill(n int) {
	for len(b.queue) < n {
		if len(b.bag) == 0 {
			b.bag = b.shuffled()
		}
		b.queue = append(b.queue, b.bag[0])
		b.bag = b.bag[1:]
	}
}

func (b *Bag) shuffled() []catalog.PieceType {
	bag := make([]catalog.PieceType, catalog.PieceCount)
	copy(bag, catalog.AllPieces[:])
	b.rng.Shuffle(len(bag), func(i, j int) {
		bag[i], bag[j] = bag[j], bag[i]
	})
	return bag
}
