package nlp

import "sort"

// Posting records how often a term occurred in one document.
type Posting struct {
	DocKey string
	Hits   int
}

// Index is an in-memory inverted index from normalized terms to the
// documents containing them. Posting lists keep first-seen document order.
type Index struct {
	postings map[string][]Posting
}

// NewIndex returns an empty inverted index.
func NewIndex() *Index {
	return &Index{postings: make(map[string][]Posting)}
}

// Add indexes one document's normalized sentences under the given key,
// typically "<reviewer>/<sid>" for reviews or "story/<sid>" for chapters.
func (ix *Index) Add(docKey string, sentences [][]string) {
	hits := make(map[string]int)
	var order []string
	for _, sentence := range sentences {
		for _, term := range sentence {
			if hits[term] == 0 {
				order = append(order, term)
			}
			hits[term]++
		}
	}

	for _, term := range order {
		ix.postings[term] = append(ix.postings[term], Posting{
			DocKey: docKey,
			Hits:   hits[term],
		})
	}
}

// Postings returns the posting list for a term, in first-seen document
// order, or nil when the term was never indexed.
func (ix *Index) Postings(term string) []Posting {
	return ix.postings[term]
}

// Terms returns every indexed term, sorted.
func (ix *Index) Terms() []string {
	terms := make([]string, 0, len(ix.postings))
	for t := range ix.postings {
		terms = append(terms, t)
	}
	sort.Strings(terms)
	return terms
}

// Len reports the number of distinct indexed terms.
func (ix *Index) Len() int {
	return len(ix.postings)
}
