package main

import (
	"log/slog"

	"github.com/haijima/reviewgraph/internal/review"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func SetDatasetFlags(cmd *cobra.Command) {
	def := review.DefaultColumns()
	cmd.PersistentFlags().StringP("data", "f", "reviews.csv", "The CSV `file` of reviews")
	cmd.PersistentFlags().String("group-column", def.AppID, "The `column` of the product id used to group reviews")
	cmd.PersistentFlags().String("title-column", def.Title, "The `column` of the product title")
	cmd.PersistentFlags().String("text-column", def.Text, "The `column` of the review text")
	cmd.PersistentFlags().String("score-column", def.Score, "The `column` of the review score")
	cmd.PersistentFlags().String("votes-column", def.Votes, "The `column` of the helpful votes")
	cmd.PersistentFlags().String("year-column", def.Year, "The `column` of the review year")
	cmd.PersistentFlags().String("genre-column", def.Genre, "The `column` of the product genre")
	cmd.PersistentFlags().StringSlice("filter-titles", []string{}, "The `titles` of products to filter")
	cmd.PersistentFlags().StringSlice("exclude-titles", []string{}, "The `titles` of products to exclude")
	cmd.PersistentFlags().StringSlice("filter-genres", []string{}, "The `genres` to filter")
	cmd.PersistentFlags().StringSlice("exclude-genres", []string{}, "The `genres` to exclude")
	cmd.PersistentFlags().IntSlice("filter-app-ids", []int{}, "The product `ids` to filter")
	cmd.PersistentFlags().Int("min-year", 0, "The earliest review `year`")
	cmd.PersistentFlags().Int("max-year", 0, "The latest review `year`")
	cmd.PersistentFlags().Bool("positive", false, "Only recommending reviews")
	cmd.PersistentFlags().Bool("negative", false, "Only not recommending reviews")
	cmd.PersistentFlags().Int("min-votes", 0, "The minimum helpful `votes`")
	cmd.PersistentFlags().String("filter", "", "The CEL `expression` to filter reviews. variables: app_id, title, text, score, votes, year, genre")
	_ = cmd.MarkPersistentFlagFilename("data", "csv")
}

func ColumnsFromViper(v *viper.Viper) review.Columns {
	cols := review.DefaultColumns()
	set := func(dst *string, key string) {
		if s := v.GetString(key); s != "" {
			*dst = s
		}
	}
	set(&cols.AppID, "group-column")
	set(&cols.Title, "title-column")
	set(&cols.Text, "text-column")
	set(&cols.Score, "score-column")
	set(&cols.Votes, "votes-column")
	set(&cols.Year, "year-column")
	set(&cols.Genre, "genre-column")
	return cols
}

func FilterOptionFromViper(v *viper.Viper) *review.Option {
	return &review.Option{
		Titles:        v.GetStringSlice("filter-titles"),
		ExcludeTitles: v.GetStringSlice("exclude-titles"),
		Genres:        v.GetStringSlice("filter-genres"),
		ExcludeGenres: v.GetStringSlice("exclude-genres"),
		AppIDs:        v.GetIntSlice("filter-app-ids"),
		MinYear:       v.GetInt("min-year"),
		MaxYear:       v.GetInt("max-year"),
		Positive:      v.GetBool("positive"),
		Negative:      v.GetBool("negative"),
		MinVotes:      v.GetInt("min-votes"),
		Expr:          v.GetString("filter"),
	}
}

// loadRecords reads the dataset and applies the filter flags.
func loadRecords(v *viper.Viper, fs afero.Fs) (review.Records, error) {
	all, err := review.Load(fs, v.GetString("data"), ColumnsFromViper(v))
	if err != nil {
		return nil, err
	}
	opt := FilterOptionFromViper(v)
	if opt.IsZero() {
		return all, nil
	}
	records, err := opt.Apply(all)
	if err != nil {
		return nil, err
	}
	slog.Debug("filtered reviews", "before", len(all), "after", len(records))
	return records, nil
}
