package stimulus

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"strings"
)

// Word list column headers.
const (
	ColWord1   = "Word 1"
	ColWord2   = "Word 2"
	ColWord3   = "Word 3"
	ColValence = "Valence"
)

// ErrEmptyWordList is returned when a word list has a header but no rows.
var ErrEmptyWordList = errors.New("word list has no trials")

// WordTrial is one triplet. The first two words are the recall cues and the
// third is the target.
type WordTrial struct {
	Index   int
	Words   [3]string
	Valence string
}

// ID returns the trial's position in presentation order.
func (w WordTrial) ID() int { return w.Index }

// Expected returns the withheld third word.
func (w WordTrial) Expected() string { return w.Words[2] }

// Cues returns the two words shown during recall.
func (w WordTrial) Cues() (string, string) { return w.Words[0], w.Words[1] }

// Target returns the third word.
func (w WordTrial) Target() string { return w.Words[2] }

// LoadWordList reads a word list CSV from disk.
func LoadWordList(path string) ([]WordTrial, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open word list: %w", err)
	}
	defer f.Close()

	trials, err := ReadWordList(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return trials, nil
}

// ReadWordList parses word-list CSV data. Columns are located by header name
// so their order does not matter and extra columns are ignored. Blank lines
// are skipped. Trials are numbered in file order.
func ReadWordList(r io.Reader) ([]WordTrial, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyWordList
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	idx := make([]int, 0, 4)
	for _, name := range []string{ColWord1, ColWord2, ColWord3, ColValence} {
		i, ok := cols[name]
		if !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
		idx = append(idx, i)
	}

	var trials []WordTrial
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read word list: %w", err)
		}
		if blank(rec) {
			continue
		}
		line, _ := cr.FieldPos(0)

		field := func(i int) (string, error) {
			if idx[i] >= len(rec) {
				return "", fmt.Errorf("line %d: missing %q", line, header[idx[i]])
			}
			return rec[idx[i]], nil
		}
		var w WordTrial
		for i := 0; i < 3; i++ {
			v, err := field(i)
			if err != nil {
				return nil, err
			}
			if strings.TrimSpace(v) == "" {
				return nil, fmt.Errorf("line %d: empty %q", line, header[idx[i]])
			}
			w.Words[i] = v
		}
		if w.Valence, err = field(3); err != nil {
			return nil, err
		}
		w.Index = len(trials) + 1
		trials = append(trials, w)
	}

	if len(trials) == 0 {
		return nil, ErrEmptyWordList
	}
	return trials, nil
}

// Shuffle returns the trials in a random order drawn from r, renumbered
// 1..n in the new order. The input slice is not modified.
func Shuffle(trials []WordTrial, r *rand.Rand) []WordTrial {
	out := make([]WordTrial, len(trials))
	copy(out, trials)
	r.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	for i := range out {
		out[i].Index = i + 1
	}
	return out
}

// ValenceCounts tallies trials per valence label.
func ValenceCounts(trials []WordTrial) map[string]int {
	counts := make(map[string]int)
	for _, t := range trials {
		counts[t.Valence]++
	}
	return counts
}

func blank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
