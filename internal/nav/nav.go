// Package nav computes forward and backward motion targets over a
// transcript: source-block body starts merged with externally supplied
// prompt-boundary offsets.
package nav

import (
	"sort"

	"github.com/emacsmirror/chatgpt-shell/internal/blocks"
)

// NextItem returns the nearest offset strictly after p that is either a
// block body start or a prompt boundary. Ties favor the prompt boundary
// (the returned offset is the same either way). ok=false means point
// should not move.
func NextItem(m *blocks.Model, prompts []int, p int) (int, bool) {
	best := -1
	if b := m.NextBlock(p); b != nil {
		best = b.Body.Start
	}
	if q, ok := nextBoundary(prompts, p); ok && (best == -1 || q <= best) {
		best = q
	}
	if best == -1 {
		return 0, false
	}
	return best, true
}

// PrevItem is the backward counterpart of NextItem.
func PrevItem(m *blocks.Model, prompts []int, p int) (int, bool) {
	best := -1
	if b := m.PrevBlock(p); b != nil {
		best = b.Body.Start
	}
	if q, ok := prevBoundary(prompts, p); ok && q >= best {
		best = q
	}
	if best == -1 {
		return 0, false
	}
	return best, true
}

// nextBoundary finds the first prompt boundary strictly after p.
// Boundaries must be sorted ascending, as supplied by the prompt-framing
// collaborator.
func nextBoundary(prompts []int, p int) (int, bool) {
	i := sort.SearchInts(prompts, p+1)
	if i == len(prompts) {
		return 0, false
	}
	return prompts[i], true
}

// prevBoundary finds the last prompt boundary strictly before p.
func prevBoundary(prompts []int, p int) (int, bool) {
	i := sort.SearchInts(prompts, p)
	if i == 0 {
		return 0, false
	}
	return prompts[i-1], true
}
