package facts

import (
	"fmt"
	"os"
	"strconv"
)

// Stamp is one timeline event: a unix time plus a label encoding the event
// kind and the story or user it belongs to, e.g. "published123" or
// "8391_rev_123".
type Stamp struct {
	Unix  int64
	Label string
}

// Writer appends fact and edge lines to their output files. Each batch
// opens the file in append mode and closes it immediately, which is safe
// only under the single-writer assumption this pipeline runs with.
type Writer struct {
	FactsPath string
	EdgesPath string
}

// AppendFacts appends one line per fact to the facts file.
func (w *Writer) AppendFacts(lines []string) error {
	return appendLines(w.FactsPath, lines)
}

// AppendEdges appends one line per edge to the cytoscape file.
func (w *Writer) AppendEdges(lines []string) error {
	return appendLines(w.EdgesPath, lines)
}

func appendLines(path string, lines []string) error {
	if len(lines) == 0 {
		return nil
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("error opening %s: %w", path, err)
	}
	defer f.Close()

	for _, line := range lines {
		if _, err := f.WriteString(line + "\n"); err != nil {
			return fmt.Errorf("error writing %s: %w", path, err)
		}
	}
	return nil
}

// WriteStamps writes the timeline file, one "<unix> <label>" line per
// entry, replacing any previous contents. Entries are written in the order
// given; the pipeline hands them over already sorted by time.
func WriteStamps(path string, stamps []Stamp) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating %s: %w", path, err)
	}
	defer f.Close()

	for _, st := range stamps {
		line := strconv.FormatInt(st.Unix, 10) + " " + st.Label + "\n"
		if _, err := f.WriteString(line); err != nil {
			return fmt.Errorf("error writing %s: %w", path, err)
		}
	}
	return nil
}
