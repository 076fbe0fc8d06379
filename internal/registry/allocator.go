package registry

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
)

const (
	referencePrefix = "APT-"

	// MaxReferenceSeq is the last sequence number the four digit reference
	// format can carry. The width is fixed: allocation past this value fails
	// with ErrAllocatorExhausted instead of widening or wrapping.
	MaxReferenceSeq = 9999
)

var referencePattern = regexp.MustCompile(`^APT-[0-9]{4}$`)

// Allocator mints reference identifiers. Every call returns an identifier
// strictly greater than all previously issued ones, and no identifier is
// ever handed out twice, including across restarts for durable allocators.
type Allocator interface {
	Next(ctx context.Context) (string, error)
}

// FormatReference renders a sequence number as APT-XXXX.
func FormatReference(seq int) string {
	return fmt.Sprintf("%s%04d", referencePrefix, seq)
}

// ParseReference extracts the sequence number from a canonical reference
// identifier. Anything not matching APT-XXXX is rejected.
func ParseReference(ref string) (int, error) {
	if !referencePattern.MatchString(ref) {
		return 0, &InvalidInputError{Field: "reference_id", Reason: "must match APT-XXXX"}
	}
	seq, err := strconv.Atoi(strings.TrimPrefix(ref, referencePrefix))
	if err != nil {
		return 0, &InvalidInputError{Field: "reference_id", Reason: "must match APT-XXXX"}
	}
	return seq, nil
}

// CounterAllocator is the in-process allocator used with the memory store.
// State lives only for the process lifetime.
type CounterAllocator struct {
	mu   sync.Mutex
	last int
}

// NewCounterAllocator starts issuing after last, so a fresh registry passes
// 0 and the first reference is APT-0001.
func NewCounterAllocator(last int) *CounterAllocator {
	return &CounterAllocator{last: last}
}

func (a *CounterAllocator) Next(ctx context.Context) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.last >= MaxReferenceSeq {
		return "", ErrAllocatorExhausted
	}

	a.last++
	return FormatReference(a.last), nil
}

// Last reports the most recently issued sequence number.
func (a *CounterAllocator) Last() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.last
}
