package main

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/haijima/reviewgraph/internal/review"
	"github.com/ktr0731/go-fuzzyfinder"
)

func pickRecord(records review.Records, query string) (*review.Record, error) {
	idx, err := fuzzyfinder.Find(
		records,
		func(i int) string { return fmt.Sprintf("[%d] %s", records[i].AppID, records[i].Text) },
		fuzzyfinder.WithQuery(query),
		fuzzyfinder.WithHeader(fmt.Sprintf("%d reviews match %q", len(records), query)),
		fuzzyfinder.WithPreviewWindow(func(i, _, _ int) string {
			if i < 0 {
				return ""
			}
			r := records[i]
			return fmt.Sprintf("%s (%d)\nscore: %+d  votes: %d  year: %d  genre: %s\n\n%s", r.Title, r.AppID, r.Score, r.Votes, r.Year, r.Genre, r.Text)
		}),
	)
	if errors.Is(err, fuzzyfinder.ErrAbort) {
		return nil, errors.New("no review selected")
	} else if err != nil {
		return nil, err
	}
	return records[idx], nil
}
