// Package testutil provides test helper utilities for triplet tests.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TempProject creates a temporary directory with the given files and returns its path.
// Files is a map of relative path -> content. Directories are created as needed.
// The directory is automatically cleaned up when the test finishes.
func TempProject(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()

	for relPath, content := range files {
		absPath := filepath.Join(dir, relPath)
		if err := os.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
			t.Fatalf("creating directory for %s: %v", relPath, err)
		}
		if err := os.WriteFile(absPath, []byte(content), 0644); err != nil {
			t.Fatalf("writing %s: %v", relPath, err)
		}
	}

	return dir
}

// Triplet is one word-list row used by fixtures.
type Triplet struct {
	Words   [3]string
	Valence string
}

// SampleTriplets is a small balanced word list.
var SampleTriplets = []Triplet{
	{[3]string{"ocean", "wave", "shell"}, "neutral"},
	{[3]string{"grief", "tears", "funeral"}, "negative"},
	{[3]string{"party", "cake", "gift"}, "positive"},
	{[3]string{"storm", "thunder", "fear"}, "negative"},
	{[3]string{"garden", "bloom", "sunshine"}, "positive"},
	{[3]string{"table", "chair", "lamp"}, "neutral"},
}

// WordListCSV renders triplets in the word-list file format.
func WordListCSV(triplets []Triplet) string {
	var b strings.Builder
	b.WriteString("Word 1,Word 2,Word 3,Valence\n")
	for _, tr := range triplets {
		fmt.Fprintf(&b, "%s,%s,%s,%s\n", tr.Words[0], tr.Words[1], tr.Words[2], tr.Valence)
	}
	return b.String()
}

// WordListProject returns file contents for a directory holding
// wordlist.csv with the sample triplets.
func WordListProject() map[string]string {
	return map[string]string{
		"wordlist.csv": WordListCSV(SampleTriplets),
	}
}

// Targets maps "cue1 cue2" to the third word for each triplet.
func Targets(triplets []Triplet) map[string]string {
	m := make(map[string]string, len(triplets))
	for _, tr := range triplets {
		m[tr.Words[0]+" "+tr.Words[1]] = tr.Words[2]
	}
	return m
}
