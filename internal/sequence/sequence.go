// Package sequence produces the fixed auxiliary sequences templates use to
// place page breaks, lay out scoring tokens and iterate "the first k items".
//
// The page-ender window (7..100, period 9) is a magic constant carried over
// from the original print layout, not re-derived. Decks with more cards
// than the window covers get no further page-ender markers.
package sequence

const (
	pageEnderFirst  = 7
	pageEnderLast   = 100
	pageEnderPeriod = 9

	// MaxIndexChain is the largest k for which IndexChain is defined
	MaxIndexChain = 40
)

// tokenRun is a block of identical scoring tokens on the token sheet
type tokenRun struct {
	value int
	count int
}

// Print-sheet order; consumers rely on it positionally.
var tokenRuns = []tokenRun{
	{value: 1, count: 30},
	{value: 3, count: 10},
	{value: 5, count: 20},
}

// Sequences bundles every auxiliary sequence of one run
type Sequences struct {
	PageEnders  []int
	PointTokens []int
	// IndexChains[k-1] is [1..k]
	IndexChains [][]int
}

// Generate builds all sequences from scratch
func Generate() Sequences {
	return Sequences{
		PageEnders:  PageEnders(),
		PointTokens: PointTokens(),
		IndexChains: IndexChains(),
	}
}

// Chain returns [1..k], or nil when k is outside 1..MaxIndexChain
func (s Sequences) Chain(k int) []int {
	if k < 1 || k > len(s.IndexChains) {
		return nil
	}
	return s.IndexChains[k-1]
}

// PageEnders returns, for every multiple i of 9 in [7,100], the triple
// i, i-1, i-2.
func PageEnders() []int {
	var out []int
	for i := pageEnderFirst; i <= pageEnderLast; i++ {
		if i%pageEnderPeriod == 0 {
			out = append(out, i, i-1, i-2)
		}
	}
	return out
}

// PointTokens returns thirty 1s, ten 3s and twenty 5s, in that order
func PointTokens() []int {
	var out []int
	for _, run := range tokenRuns {
		for n := 0; n < run.count; n++ {
			out = append(out, run.value)
		}
	}
	return out
}

// IndexChains returns [1], [1 2], ... up to [1..MaxIndexChain].
// Each chain is its own backing array.
func IndexChains() [][]int {
	chains := make([][]int, MaxIndexChain)
	chains[0] = []int{1}
	for k := 2; k <= MaxIndexChain; k++ {
		prev := chains[k-2]
		next := make([]int, len(prev), k)
		copy(next, prev)
		chains[k-1] = append(next, k)
	}
	return chains
}

// IndexChain returns [1..k], or nil when k is outside 1..MaxIndexChain
func IndexChain(k int) []int {
	if k < 1 || k > MaxIndexChain {
		return nil
	}
	out := make([]int, k)
	for i := range out {
		out[i] = i + 1
	}
	return out
}
