// Package transport owns the append-mostly transcript buffer on behalf of
// the streaming collaborator. Scans never touch the live buffer; they run
// against immutable snapshots taken atomically at trigger time.
package transport

import (
	"sort"
	"strings"
	"sync"
)

// Buffer accumulates streamed response text plus the prompt-boundary
// offsets supplied by the prompt-framing collaborator. All methods are
// safe for concurrent use; readers only ever observe complete appends.
type Buffer struct {
	mu       sync.Mutex
	text     strings.Builder
	prompts  []int
	gen      uint64
	finished bool
}

// Snapshot is an immutable view of the buffer at one generation. Offsets
// in any model computed from it are valid only for this generation.
type Snapshot struct {
	Text     string
	Prompts  []int
	Gen      uint64
	Finished bool
}

// Append adds streamed text to the end of the buffer and bumps the
// generation, invalidating prior snapshots.
func (b *Buffer) Append(s string) {
	if s == "" {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.text.WriteString(s)
	b.gen++
	b.finished = false
}

// MarkPrompt records a prompt boundary at off. Out-of-order marks are
// tolerated; boundaries are kept sorted.
func (b *Buffer) MarkPrompt(off int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	i := sort.SearchInts(b.prompts, off)
	if i < len(b.prompts) && b.prompts[i] == off {
		return
	}
	b.prompts = append(b.prompts, 0)
	copy(b.prompts[i+1:], b.prompts[i:])
	b.prompts[i] = off
	b.gen++
}

// Finish marks the current content as a scan-safe completion point.
func (b *Buffer) Finish() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.finished = true
}

// Snapshot returns an atomic copy of the current state.
func (b *Buffer) Snapshot() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	prompts := make([]int, len(b.prompts))
	copy(prompts, b.prompts)
	return Snapshot{
		Text:     b.text.String(),
		Prompts:  prompts,
		Gen:      b.gen,
		Finished: b.finished,
	}
}

// Len returns the current buffer length in bytes.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.text.Len()
}
