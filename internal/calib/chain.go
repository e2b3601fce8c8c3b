package calib

import (
	"strings"

	"github.com/starius/hipermap/internal/hashing"
)

// chainState is the running two-stage hash as it is folded, label by label,
// leftward across a pattern (spec §4.4 steps 1-5). Both placement (picking a
// bucket and a tag) and the query engine's bucket-scan loop (spec §4.5)
// advance the identical state machine over identical byte spans, so a
// pattern placed here is always found there.
type chainState struct {
	h   uint64
	idx int // label index (left-to-right) the state currently starts at
}

// startChain hashes the initial suffix window of lbls: the last two labels,
// or the whole pattern if it has fewer than two. It returns the state
// positioned at that window's starting label index.
func startChain(lbls []string, seed uint64) chainState {
	start := len(lbls) - 2
	if start < 0 {
		start = 0
	}
	suffix := strings.Join(lbls[start:], ".")
	return chainState{h: hashing.Hash64([]byte(suffix), seed), idx: start}
}

// extendLeft folds one more label, the one immediately to the left of the
// state's current window, into the chain (spec: "fold it into h using
// chained hashing").
func (c chainState) extendLeft(lbls []string) chainState {
	i := c.idx - 1
	return chainState{h: hashing.Hash64([]byte(lbls[i]), c.h), idx: i}
}

// chainToStart folds every remaining label down to index 0 and returns the
// final hash, without mutating c. This is h_f of spec §4.4 step 5: the
// chained hash over the pattern's entire label sequence, which by
// construction depends only on the label bytes, never on which suffix
// happened to be checked against popular along the way.
func (c chainState) chainToStart(lbls []string) uint64 {
	h := c.h
	for i := c.idx - 1; i >= 0; i-- {
		h = hashing.Hash64([]byte(lbls[i]), h)
	}
	return h
}

// suffixString reconstructs the dot-joined suffix the state currently
// represents, the string popular-suffix membership is checked against.
func (c chainState) suffixString(lbls []string) string {
	return strings.Join(lbls[c.idx:], ".")
}

// fullChainHash returns the chained hash over the entire label sequence
// lbls, the same computation a pattern's own chain reaches once it consumes
// every label back to index 0. A popular suffix's tag is computed this way
// too: the chain value at any depth depends only on the labels consumed so
// far, never on what pattern (if any) continues further left.
func fullChainHash(lbls []string, seed uint64) uint64 {
	return startChain(lbls, seed).chainToStart(lbls)
}
