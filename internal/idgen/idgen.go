// Package idgen generates prefixed resource identifiers like
// order_Ab3xYz... and pay_Q9rTu8....
package idgen

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	alphabet  = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	suffixLen = 16
)

// Generator produces a new identifier for the given resource prefix.
// Injectable so tests can supply deterministic ids.
type Generator interface {
	NewID(prefix string) string
}

// Random generates ids with a 16-character suffix drawn uniformly from
// [A-Za-z0-9] using crypto/rand.
type Random struct{}

func NewRandom() *Random {
	return &Random{}
}

func (*Random) NewID(prefix string) string {
	max := big.NewInt(int64(len(alphabet)))
	buf := make([]byte, suffixLen)
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails when the platform source is
			// broken; nothing sensible to do but stop.
			panic(fmt.Sprintf("idgen: read random source: %v", err))
		}
		buf[i] = alphabet[n.Int64()]
	}
	return prefix + string(buf)
}

// Sequence hands out prefix_0000000000000001-style ids in order.
// Intended for tests.
type Sequence struct {
	n uint64
}

func NewSequence() *Sequence {
	return &Sequence{}
}

func (s *Sequence) NewID(prefix string) string {
	s.n++
	return fmt.Sprintf("%s%016d", prefix, s.n)
}
