package main

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/haijima/reviewgraph/internal/review"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newTestCmd(t *testing.T) (*cobra.Command, *bytes.Buffer) {
	t.Helper()
	color.NoColor = true
	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(io.Discard)
	return cmd, buf
}

func newTestViper() *viper.Viper {
	v := viper.New()
	v.Set("data", "./testdata/reviews.csv")
	v.Set("format", "table")
	v.Set("algo", "bfs")
	return v
}

func testFs() afero.Fs {
	return afero.NewReadOnlyFs(afero.NewOsFs())
}

// fakeClock makes every pair of consecutive clock reads step apart.
func fakeClock(t *testing.T, step time.Duration) {
	t.Helper()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	n := 0
	now = func() time.Time {
		n++
		return base.Add(time.Duration(n) * step)
	}
	t.Cleanup(func() { now = time.Now })
}

func loadAll(t *testing.T) (review.Records, error) {
	t.Helper()
	return review.Load(testFs(), "./testdata/reviews.csv", review.DefaultColumns())
}
