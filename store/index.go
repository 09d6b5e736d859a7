package store

import (
	"strings"
	"unicode"
)

// minTokenLength filters out tokens too short to be useful search terms.
const minTokenLength = 3

// invertedIndex maps lowercase alphanumeric tokens to the set of document
// IDs containing them. It is guarded by the owning Store's mutex.
type invertedIndex struct {
	postings map[string]map[string]struct{}
}

func newInvertedIndex() *invertedIndex {
	return &invertedIndex{postings: make(map[string]map[string]struct{})}
}

// Tokenize splits text into lowercase alphanumeric tokens longer than two
// characters. Duplicates are preserved; index updates deduplicate via the
// posting sets.
func Tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func (ix *invertedIndex) add(docID, text string) {
	ix.addTokens(docID, Tokenize(text))
}

func (ix *invertedIndex) addTokens(docID string, tokens []string) {
	for _, tok := range tokens {
		if len(tok) < minTokenLength {
			continue
		}
		set, ok := ix.postings[tok]
		if !ok {
			set = make(map[string]struct{})
			ix.postings[tok] = set
		}
		set[docID] = struct{}{}
	}
}

// remove deletes the document from every posting of its tokens, pruning
// token entries that become empty.
func (ix *invertedIndex) remove(docID, text string) {
	for _, tok := range Tokenize(text) {
		if len(tok) < minTokenLength {
			continue
		}
		set, ok := ix.postings[tok]
		if !ok {
			continue
		}
		delete(set, docID)
		if len(set) == 0 {
			delete(ix.postings, tok)
		}
	}
}

// candidates returns the union of posting sets for the given tokens.
func (ix *invertedIndex) candidates(tokens []string) map[string]struct{} {
	out := make(map[string]struct{})
	for _, tok := range tokens {
		for docID := range ix.postings[tok] {
			out[docID] = struct{}{}
		}
	}
	return out
}

func (ix *invertedIndex) size() int {
	return len(ix.postings)
}
