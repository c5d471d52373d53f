// Package nlp normalizes scraped review and story text: sentence splitting,
// tokenization, stopword removal, language detection, and stemming, plus
// bag-of-words counting for the inverted index.
//
// Reviews on the source site are frequently not in English (Spanish, French
// and Indonesian are common), so normalization detects the language first
// and only stems when a stemmer exists for it.
package nlp

import (
	"sort"
	"strings"

	"github.com/kljensen/snowball"
	"github.com/pemistahl/lingua-go"
)

// snowballNames maps detectable languages to the stemmer identifier used by
// the snowball library. Languages outside this map are tokenized and
// stopword-filtered but left unstemmed.
var snowballNames = map[lingua.Language]string{
	lingua.English: "english",
	lingua.Spanish: "spanish",
	lingua.French:  "french",
	lingua.Russian: "russian",
	lingua.Swedish: "swedish",
}

// Normalizer turns raw text into cleaned token lists.
type Normalizer struct {
	detector lingua.LanguageDetector
}

// NewNormalizer builds a Normalizer with a detector over the languages the
// stemmer understands plus Indonesian, which is common on the site.
func NewNormalizer() *Normalizer {
	detector := lingua.NewLanguageDetectorBuilder().
		FromLanguages(
			lingua.English,
			lingua.Spanish,
			lingua.French,
			lingua.Russian,
			lingua.Swedish,
			lingua.Indonesian,
		).
		Build()
	return &Normalizer{detector: detector}
}

// Language returns the snowball stemmer name for the text's detected
// language, or "" when the language is unknown or has no stemmer.
func (n *Normalizer) Language(text string) string {
	lang, ok := n.detector.DetectLanguageOf(text)
	if !ok {
		return ""
	}
	return snowballNames[lang]
}

// Normalize splits text into sentences and each sentence into lowercase
// tokens with punctuation trimmed, stopwords removed, and (when the
// detected language supports it) stems in place of surface forms.
func (n *Normalizer) Normalize(text string) [][]string {
	lang := n.Language(text)

	var sentences [][]string
	for _, sentence := range splitSentences(text) {
		var tokens []string
		for _, word := range strings.Fields(sentence) {
			token := cleanToken(word)
			if token == "" || IsStopword(token) {
				continue
			}
			if lang != "" {
				if stemmed, err := snowball.Stem(token, lang, false); err == nil {
					token = stemmed
				}
			}
			tokens = append(tokens, token)
		}
		if len(tokens) > 0 {
			sentences = append(sentences, tokens)
		}
	}
	return sentences
}

// Tokens flattens Normalize output into a single token list.
func (n *Normalizer) Tokens(text string) []string {
	var tokens []string
	for _, sentence := range n.Normalize(text) {
		tokens = append(tokens, sentence...)
	}
	return tokens
}

// splitSentences breaks text on sentence-final punctuation. It is a rough
// splitter: abbreviations will split early, which is acceptable for
// bag-of-words indexing.
func splitSentences(text string) []string {
	var sentences []string
	start := 0
	for i, r := range text {
		if r == '.' || r == '!' || r == '?' {
			if s := strings.TrimSpace(text[start:i]); s != "" {
				sentences = append(sentences, s)
			}
			start = i + 1
		}
	}
	if s := strings.TrimSpace(text[start:]); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

// cleanToken lowercases a word and trims every rune that is not a letter or
// digit off both ends.
func cleanToken(word string) string {
	word = strings.ToLower(word)
	return strings.TrimFunc(word, func(r rune) bool {
		return ('a' > r || r > 'z') && ('0' > r || r > '9') && r < 0x80
	})
}

// Frequency counts cleaned, non-stopword words in the text. Words are
// trimmed the same way Normalize trims tokens but left unstemmed, so counts
// stay readable.
func Frequency(text string) map[string]int {
	frequencies := make(map[string]int)
	for _, word := range strings.Fields(strings.ToLower(text)) {
		word = cleanToken(word)
		if word == "" || IsStopword(word) {
			continue
		}
		frequencies[word]++
	}
	return frequencies
}

// MergeCounts aggregates per-document frequency maps into one.
func MergeCounts(counts []map[string]int) map[string]int {
	merged := make(map[string]int)
	for _, m := range counts {
		for word, count := range m {
			merged[word] += count
		}
	}
	return merged
}

type wordCount struct {
	Word  string
	Count int
}

// TopN returns the n most frequent words, most frequent first. Ties are
// broken alphabetically so output is stable.
func TopN(frequencies map[string]int, n int) []string {
	counts := make([]wordCount, 0, len(frequencies))
	for w, c := range frequencies {
		counts = append(counts, wordCount{w, c})
	}

	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Word < counts[j].Word
	})

	if len(counts) < n {
		n = len(counts)
	}

	top := make([]string, n)
	for i := 0; i < n; i++ {
		top[i] = counts[i].Word
	}
	return top
}
