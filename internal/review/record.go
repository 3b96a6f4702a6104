package review

import (
	"strings"

	"github.com/cockroachdb/errors"
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/haijima/reviewgraph/internal/graph"
)

var ErrNoMatch = errors.New("no review matches the keyword")

type Record struct {
	AppID int
	Title string
	Text  string
	Score int
	Votes int
	Year  int
	Genre string
}

// Recommended reports whether the review is positive. Steam scores are 1 or -1.
func (r *Record) Recommended() bool {
	return r.Score > 0
}

type Records []*Record

// Entries returns the graph build input, grouped by AppID and keyed by text.
func (rs Records) Entries() []graph.Entry {
	entries := make([]graph.Entry, 0, len(rs))
	for _, r := range rs {
		entries = append(entries, graph.Entry{Group: r.AppID, Text: r.Text})
	}
	return entries
}

// Graph builds a fresh graph from the records.
func (rs Records) Graph() *graph.Graph {
	return graph.Build(rs.Entries())
}

// Matches returns the records whose text contains keyword, ignoring case.
func (rs Records) Matches(keyword string) Records {
	kw := strings.ToLower(keyword)
	matches := make(Records, 0)
	for _, r := range rs {
		if strings.Contains(strings.ToLower(r.Text), kw) {
			matches = append(matches, r)
		}
	}
	return matches
}

// FindStart returns the first record whose text contains keyword, ignoring case.
func (rs Records) FindStart(keyword string) (*Record, error) {
	kw := strings.ToLower(keyword)
	for _, r := range rs {
		if strings.Contains(strings.ToLower(r.Text), kw) {
			return r, nil
		}
	}
	return nil, errors.Wrapf(ErrNoMatch, "keyword %q", keyword)
}

// Lookup maps each text to the first record that carries it.
func (rs Records) Lookup() map[string]*Record {
	m := make(map[string]*Record, len(rs))
	for _, r := range rs {
		if _, ok := m[r.Text]; !ok {
			m[r.Text] = r
		}
	}
	return m
}

// WithTexts returns every record whose text is one of texts, in record order.
// A text shared by several products selects all of them.
func (rs Records) WithTexts(texts []string) Records {
	keys := mapset.NewThreadUnsafeSet(texts...)
	res := make(Records, 0, len(texts))
	for _, r := range rs {
		if keys.Contains(r.Text) {
			res = append(res, r)
		}
	}
	return res
}

// Titles returns the distinct product titles, sorted.
func (rs Records) Titles() []string {
	s := mapset.NewThreadUnsafeSet[string]()
	for _, r := range rs {
		s.Add(r.Title)
	}
	return mapset.Sorted(s)
}

// Genres returns the distinct non-empty genres, sorted.
func (rs Records) Genres() []string {
	s := mapset.NewThreadUnsafeSet[string]()
	for _, r := range rs {
		if r.Genre != "" {
			s.Add(r.Genre)
		}
	}
	return mapset.Sorted(s)
}
