package maxframe

import (
	"slices"
	"time"

	"gonum.org/v1/gonum/stat"
)

// FileMax is the per-file maximum reported in a Summary.
type FileMax struct {
	Path      string
	Sequences int
	MaxFrames int
}

// Distribution summarises the fully valid frame counts of all sequences.
type Distribution struct {
	Mean float64
	P50  float64
	P90  float64
	P95  float64
	P99  float64
}

// Summary is the result of a dataset run. MaxFrames is the global maximum.
type Summary struct {
	Files        int
	Sequences    int
	MaxFrames    int
	MaxPath      string
	MaxSequence  string
	PerFile      []FileMax
	Hands        map[Hand]int
	Distribution Distribution
	Duration     time.Duration
}

type accumulator struct {
	summary Summary
	counts  []float64
}

func newAccumulator() *accumulator {
	return &accumulator{summary: Summary{Hands: make(map[Hand]int, 2)}}
}

func (a *accumulator) add(res FileResult) {
	s := &a.summary
	s.Files++
	s.Sequences += len(res.Sequences)
	s.PerFile = append(s.PerFile, FileMax{Path: res.Path, Sequences: len(res.Sequences), MaxFrames: res.MaxFrames})
	for _, seq := range res.Sequences {
		s.Hands[seq.Hand]++
		a.counts = append(a.counts, float64(seq.ValidFrames))
		if s.MaxPath == "" || seq.ValidFrames > s.MaxFrames {
			s.MaxFrames = seq.ValidFrames
			s.MaxPath = res.Path
			s.MaxSequence = seq.ID
		}
	}
}

func (a *accumulator) finish(elapsed time.Duration) Summary {
	a.summary.Distribution = describe(a.counts)
	a.summary.Duration = elapsed
	return a.summary
}

func describe(counts []float64) Distribution {
	if len(counts) == 0 {
		return Distribution{}
	}
	sorted := slices.Clone(counts)
	slices.Sort(sorted)
	return Distribution{
		Mean: stat.Mean(sorted, nil),
		P50:  stat.Quantile(0.50, stat.Empirical, sorted, nil),
		P90:  stat.Quantile(0.90, stat.Empirical, sorted, nil),
		P95:  stat.Quantile(0.95, stat.Empirical, sorted, nil),
		P99:  stat.Quantile(0.99, stat.Empirical, sorted, nil),
	}
}
