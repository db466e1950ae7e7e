// Package ratings turns review records into rating statistics.
//
// Every function is a pure pass over the reviews it is given. Callers are
// responsible for scoping the reviews to one club (and, where relevant, one
// bourbon) before calling in. Averages are pointers: nil means "no data",
// never zero.
package ratings

import (
	"github.com/dalemusser/bourbonclub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CategoryAverages holds one independent mean per tasting category.
type CategoryAverages struct {
	Appearance *float64 `json:"appearance"`
	Nose       *float64 `json:"nose"`
	Taste      *float64 `json:"taste"`
	Mouthfeel  *float64 `json:"mouthfeel"`
	Finish     *float64 `json:"finish"`
}

// Summary is the aggregate of a set of reviews.
type Summary struct {
	AvgRating   *float64         `json:"avgRating"`
	MinRating   *float64         `json:"minRating"`
	MaxRating   *float64         `json:"maxRating"`
	ReviewCount int              `json:"reviewCount"`
	Categories  CategoryAverages `json:"categoryAverages"`
}

// mean accumulates a running sum and count.
type mean struct {
	sum float64
	n   int
}

func (m *mean) add(v float64) {
	m.sum += v
	m.n++
}

func (m *mean) addOpt(v *float64) {
	if v != nil {
		m.add(*v)
	}
}

// value returns nil for an empty set.
func (m mean) value() *float64 {
	if m.n == 0 {
		return nil
	}
	v := m.sum / float64(m.n)
	return &v
}

// Aggregate computes the mean, min, and max rating plus per-category means.
//
// A review missing a category is left out of that category's denominator but
// still counts toward ReviewCount. Legacy reviews contribute their overall
// rating and nothing to the categories.
func Aggregate(reviews []models.Review) Summary {
	var (
		overall                                     mean
		appearance, nose, taste, mouthfeel, finish mean
		lo, hi                                      float64
	)

	for i, r := range reviews {
		overall.add(r.Rating)
		if i == 0 || r.Rating < lo {
			lo = r.Rating
		}
		if i == 0 || r.Rating > hi {
			hi = r.Rating
		}

		if r.Kind() == models.ReviewLegacy {
			continue
		}
		appearance.addOpt(r.Scores.Appearance)
		nose.addOpt(r.Scores.Nose)
		taste.addOpt(r.Scores.Taste)
		mouthfeel.addOpt(r.Scores.Mouthfeel)
		finish.addOpt(r.Scores.Finish)
	}

	s := Summary{
		AvgRating:   overall.value(),
		ReviewCount: len(reviews),
		Categories: CategoryAverages{
			Appearance: appearance.value(),
			Nose:       nose.value(),
			Taste:      taste.value(),
			Mouthfeel:  mouthfeel.value(),
			Finish:     finish.value(),
		},
	}
	if len(reviews) > 0 {
		s.MinRating = &lo
		s.MaxRating = &hi
	}
	return s
}

// ValueScore returns (avg / price) * 10, the rating earned per ten dollars.
// It is nil unless both inputs are present and price is positive.
func ValueScore(avgRating, price *float64) *float64 {
	if avgRating == nil || price == nil || *price <= 0 {
		return nil
	}
	v := (*avgRating / *price) * 10
	return &v
}

// Group is the reviews of one bourbon.
type Group struct {
	BourbonID primitive.ObjectID
	Reviews   []models.Review
}

// GroupByBourbon partitions reviews by bourbon, in order of first appearance.
func GroupByBourbon(reviews []models.Review) []Group {
	idx := make(map[primitive.ObjectID]int)
	var out []Group
	for _, r := range reviews {
		i, ok := idx[r.BourbonID]
		if !ok {
			i = len(out)
			idx[r.BourbonID] = i
			out = append(out, Group{BourbonID: r.BourbonID})
		}
		out[i].Reviews = append(out[i].Reviews, r)
	}
	return out
}

// SummariesByBourbon aggregates each bourbon's reviews.
func SummariesByBourbon(reviews []models.Review) map[primitive.ObjectID]Summary {
	out := make(map[primitive.ObjectID]Summary)
	for _, g := range GroupByBourbon(reviews) {
		out[g.BourbonID] = Aggregate(g.Reviews)
	}
	return out
}

// AnnotatedBourbon is a bourbon with its rating annotations, as served to
// list views.
type AnnotatedBourbon struct {
	models.Bourbon
	AvgRating   *float64 `json:"avgRating"`
	ReviewCount int      `json:"reviewCount"`
	ValueScore  *float64 `json:"valueScore"`
}

// Annotate attaches avgRating, reviewCount, and valueScore to each bourbon.
// Bourbons keep their input order; reviews for bourbons not in the list are
// ignored.
func Annotate(bourbons []models.Bourbon, reviews []models.Review) []AnnotatedBourbon {
	sums := SummariesByBourbon(reviews)
	out := make([]AnnotatedBourbon, 0, len(bourbons))
	for _, b := range bourbons {
		s := sums[b.ID]
		out = append(out, AnnotatedBourbon{
			Bourbon:     b,
			AvgRating:   s.AvgRating,
			ReviewCount: s.ReviewCount,
			ValueScore:  ValueScore(s.AvgRating, b.Price),
		})
	}
	return out
}
