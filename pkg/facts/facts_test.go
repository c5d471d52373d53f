package facts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPredicate(t *testing.T) {
	tests := []struct {
		name string
		pred string
		args []string
		want string
	}{
		{
			name: "liked fact",
			pred: "liked",
			args: []string{"123", "1335"},
			want: `liked("123","1335").`,
		},
		{
			name: "single argument",
			pred: "person",
			args: []string{"8391"},
			want: `person("8391").`,
		},
		{
			name: "whitespace stripped from arguments",
			pred: "rating",
			args: []string{"15", "Rated: Fiction K+"},
			want: `rating("15","Rated:FictionK+").`,
		},
		{
			name: "whitespace stripped from predicate",
			pred: "favorite author",
			args: []string{"42", "771"},
			want: `favoriteauthor("42","771").`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Predicate(tt.pred, tt.args...); got != tt.want {
				t.Errorf("Predicate = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCytoscape(t *testing.T) {
	tests := []struct {
		name  string
		rel   string
		node1 string
		node2 string
		want  string
	}{
		{"plain edge", "friends", "harry", "ron", "harry friends ron"},
		{"reviewed edge", "reviewed", "8391", "123", "8391 reviewed 123"},
		{"whitespace stripped per token", "author", "a  b", "b  c", "ab author bc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Cytoscape(tt.rel, tt.node1, tt.node2); got != tt.want {
				t.Errorf("Cytoscape = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWriterAppends(t *testing.T) {
	dir := t.TempDir()
	w := &Writer{
		FactsPath: filepath.Join(dir, "facts.txt"),
		EdgesPath: filepath.Join(dir, "cytoscape.txt"),
	}

	if err := w.AppendFacts([]string{`author("241","15").`}); err != nil {
		t.Fatalf("AppendFacts: %v", err)
	}
	if err := w.AppendFacts([]string{`rating("15","FictionK+").`, `genre("15","Western").`}); err != nil {
		t.Fatalf("AppendFacts: %v", err)
	}
	if err := w.AppendEdges([]string{"241 wrote 15"}); err != nil {
		t.Fatalf("AppendEdges: %v", err)
	}

	data, err := os.ReadFile(w.FactsPath)
	if err != nil {
		t.Fatalf("reading facts file: %v", err)
	}
	want := "author(\"241\",\"15\").\nrating(\"15\",\"FictionK+\").\ngenre(\"15\",\"Western\").\n"
	if string(data) != want {
		t.Errorf("facts file = %q, want %q", data, want)
	}

	edges, err := os.ReadFile(w.EdgesPath)
	if err != nil {
		t.Fatalf("reading edges file: %v", err)
	}
	if string(edges) != "241 wrote 15\n" {
		t.Errorf("edges file = %q", edges)
	}
}

func TestWriterEmptyBatchCreatesNothing(t *testing.T) {
	dir := t.TempDir()
	w := &Writer{FactsPath: filepath.Join(dir, "facts.txt")}

	if err := w.AppendFacts(nil); err != nil {
		t.Fatalf("AppendFacts(nil): %v", err)
	}
	if _, err := os.Stat(w.FactsPath); !os.IsNotExist(err) {
		t.Error("empty batch should not create the facts file")
	}
}

func TestWriteStamps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "timestamps.txt")

	stamps := []Stamp{
		{Unix: 12392811, Label: "published200"},
		{Unix: 183818181, Label: "lastupdated200"},
		{Unix: 183818200, Label: "8391_rev_200"},
	}
	if err := WriteStamps(path, stamps); err != nil {
		t.Fatalf("WriteStamps: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading timestamps file: %v", err)
	}
	want := "12392811 published200\n183818181 lastupdated200\n183818200 8391_rev_200\n"
	if diff := cmp.Diff(want, string(data)); diff != "" {
		t.Errorf("timestamps file mismatch (-want +got):\n%s", diff)
	}

	// A rerun replaces, never appends.
	if err := WriteStamps(path, stamps[:1]); err != nil {
		t.Fatalf("WriteStamps rerun: %v", err)
	}
	data, err = os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading rewritten timestamps file: %v", err)
	}
	if string(data) != "12392811 published200\n" {
		t.Errorf("rewritten timestamps file = %q", data)
	}
}
