package review

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/exp/maps"
)

// Stats aggregates the reviews of one title.
type Stats struct {
	Title      string
	AppID      int
	Reviews    int
	Positive   int
	Negative   int
	TotalScore int
	Votes      int
}

func (s *Stats) Average() float64 {
	if s.Reviews == 0 {
		return 0
	}
	return float64(s.TotalScore) / float64(s.Reviews)
}

// PositiveRate is the share of recommending reviews in [0, 1].
func (s *Stats) PositiveRate() float64 {
	if s.Reviews == 0 {
		return 0
	}
	return float64(s.Positive) / float64(s.Reviews)
}

// ComputeStats aggregates records by title. It does not modify records.
func ComputeStats(records Records) map[string]*Stats {
	stats := make(map[string]*Stats)
	for _, r := range records {
		s, ok := stats[r.Title]
		if !ok {
			s = &Stats{Title: r.Title, AppID: r.AppID}
			stats[r.Title] = s
		}
		s.Reviews++
		s.TotalScore += r.Score
		s.Votes += r.Votes
		if r.Score > 0 {
			s.Positive++
		} else if r.Score < 0 {
			s.Negative++
		}
	}
	return stats
}

var StatsSortKeys = []string{"reviews", "average", "votes", "title"}

// SortStats returns the stats ordered by key, descending for numbers and
// ascending for titles. Ties are broken by title.
func SortStats(stats map[string]*Stats, key string) []*Stats {
	s := maps.Values(stats)
	byTitle := func(a, b *Stats) int { return strings.Compare(a.Title, b.Title) }
	slices.SortFunc(s, func(a, b *Stats) int {
		var c int
		switch key {
		case "reviews":
			c = cmp.Compare(b.Reviews, a.Reviews)
		case "average":
			c = cmp.Compare(b.Average(), a.Average())
		case "votes":
			c = cmp.Compare(b.Votes, a.Votes)
		}
		if c != 0 {
			return c
		}
		return byTitle(a, b)
	})
	return s
}
