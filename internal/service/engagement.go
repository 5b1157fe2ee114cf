package service

import (
	"slices"

	"github.com/sukantabhun/socioyt-go/internal/apperr"
	"github.com/sukantabhun/socioyt-go/internal/model"
)

// OverallRate is the mean interactions per video relative to the subscriber
// base, as a percentage:
//
//	((Σlikes + Σcomments) / videoCount) / subscribers * 100
func OverallRate(records []model.VideoRecord, subscribers, videoCount uint64) (float64, error) {
	if videoCount == 0 {
		return 0, apperr.Validation("video count is zero")
	}
	if subscribers == 0 {
		return 0, apperr.Validation("subscriber count is zero")
	}

	var interactions float64
	for _, r := range records {
		interactions += float64(r.Interactions())
	}
	return interactions / float64(videoCount) / float64(subscribers) * 100, nil
}

// ByYear buckets records by UTC publish year, ascending. Records with zero
// views have no defined rate and are left out of the year's mean.
func ByYear(records []model.VideoRecord) []model.YearlyEngagement {
	type bucket struct {
		views   uint64
		rateSum float64
		rated   int
	}

	buckets := make(map[int]*bucket)
	for _, r := range records {
		year := r.PublishedAt.UTC().Year()
		b, ok := buckets[year]
		if !ok {
			b = &bucket{}
			buckets[year] = b
		}
		b.views += r.Views
		if r.Views > 0 {
			b.rateSum += float64(r.Interactions()) / float64(r.Views) * 100
			b.rated++
		}
	}

	years := make([]int, 0, len(buckets))
	for y := range buckets {
		years = append(years, y)
	}
	slices.Sort(years)

	out := make([]model.YearlyEngagement, 0, len(years))
	for _, y := range years {
		b := buckets[y]
		var avg float64
		if b.rated > 0 {
			avg = b.rateSum / float64(b.rated)
		}
		out = append(out, model.YearlyEngagement{
			Year:                  y,
			TotalViews:            b.views,
			AverageEngagementRate: avg,
		})
	}
	return out
}

// Analyze derives the full engagement report for a channel.
func Analyze(records []model.VideoRecord, subscribers, videoCount uint64) (model.EngagementReport, error) {
	rate, err := OverallRate(records, subscribers, videoCount)
	return model.EngagementReport{OverallRate: rate, ByYear: ByYear(records)}, err
}
