package review

import (
	"encoding/csv"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"
)

var ErrMissingColumn = errors.New("missing required column")

// Columns holds the CSV header names of each record field.
// AppID and Text are required; the others are optional.
type Columns struct {
	AppID string
	Title string
	Text  string
	Score string
	Votes string
	Year  string
	Genre string
}

func DefaultColumns() Columns {
	return Columns{
		AppID: "app_id",
		Title: "app_name",
		Text:  "review_text",
		Score: "review_score",
		Votes: "review_votes",
		Year:  "year",
		Genre: "genre",
	}
}

type columnIndex struct {
	appID, title, text, score, votes, year, genre int
}

func (c Columns) index(header []string) (*columnIndex, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, ok := pos[h]; !ok {
			pos[h] = i
		}
	}
	find := func(name string) int {
		if i, ok := pos[strings.ToLower(name)]; ok && name != "" {
			return i
		}
		return -1
	}

	idx := &columnIndex{
		appID: find(c.AppID),
		title: find(c.Title),
		text:  find(c.Text),
		score: find(c.Score),
		votes: find(c.Votes),
		year:  find(c.Year),
		genre: find(c.Genre),
	}
	if idx.appID < 0 {
		return nil, errors.Wrapf(ErrMissingColumn, "%q", c.AppID)
	}
	if idx.text < 0 {
		return nil, errors.Wrapf(ErrMissingColumn, "%q", c.Text)
	}
	return idx, nil
}

// Load reads the CSV file at path. Malformed rows are skipped and reported.
func Load(fs afero.Fs, path string, cols Columns) (Records, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	records, skipped, err := Read(f, cols)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	if skipped > 0 {
		slog.Warn("skipped malformed rows", "file", path, "rows", skipped)
	}
	slog.Debug("loaded reviews", "file", path, "records", len(records))
	return records, nil
}

// Read parses reviews from CSV with a header row. It returns the records and
// the number of rows rejected as malformed. A row is either parsed entirely
// or rejected.
func Read(r io.Reader, cols Columns) (Records, int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return Records{}, 0, nil
	} else if err != nil {
		return nil, 0, errors.Wrap(err, "header")
	}
	idx, err := cols.index(header)
	if err != nil {
		return nil, 0, err
	}

	records := make(Records, 0)
	skipped := 0
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			slog.Debug("unparseable row", "line", perr.Line, "error", perr.Err)
			skipped++
			continue
		} else if err != nil {
			return nil, 0, err
		}

		rec, err := idx.parse(row)
		if err != nil {
			line, _ := cr.FieldPos(0)
			slog.Debug("rejected row", "line", line, "error", err)
			skipped++
			continue
		}
		records = append(records, rec)
	}
	return records, skipped, nil
}

func (idx *columnIndex) parse(row []string) (*Record, error) {
	field := func(i int) string {
		if i < 0 || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}
	number := func(name string, i int) (int, error) {
		s := field(i)
		if s == "" {
			return 0, nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return 0, errors.Wrapf(err, "%s", name)
		}
		return n, nil
	}

	if idx.text >= len(row) {
		return nil, errors.New("text column is missing")
	}
	appID, err := strconv.Atoi(field(idx.appID))
	if err != nil {
		return nil, errors.Wrap(err, "group id")
	}
	score, err := number("score", idx.score)
	if err != nil {
		return nil, err
	}
	votes, err := number("votes", idx.votes)
	if err != nil {
		return nil, err
	}
	year, err := number("year", idx.year)
	if err != nil {
		return nil, err
	}

	return &Record{
		AppID: appID,
		Title: field(idx.title),
		Text:  row[idx.text],
		Score: score,
		Votes: votes,
		Year:  year,
		Genre: field(idx.genre),
	}, nil
}
