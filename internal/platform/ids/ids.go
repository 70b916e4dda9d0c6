// Package ids provides id generation behind an interface so services can be
// given a deterministic generator in tests.
package ids

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

type Generator interface {
	New() string
}

type uuidGenerator struct{}

func NewUUID() Generator {
	return uuidGenerator{}
}

func (uuidGenerator) New() string {
	return uuid.NewString()
}

// Sequence yields prefix-1, prefix-2, ... for deterministic test fixtures.
type Sequence struct {
	prefix string
	n      atomic.Uint64
}

func NewSequence(prefix string) *Sequence {
	return &Sequence{prefix: prefix}
}

func (s *Sequence) New() string {
	return fmt.Sprintf("%s-%d", s.prefix, s.n.Add(1))
}
