// Package leaderboard ranks a club's reviewers and bourbons.
//
// Every list is a Rank over stats derived fresh from the review set, so the
// same reviews always produce the same board.
package leaderboard

import (
	"github.com/dalemusser/bourbonclub/internal/app/engine/ratings"
	"github.com/dalemusser/bourbonclub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	// ListLimit is the length of every leaderboard list.
	ListLimit = 5
	// MinCriticReviews is the review floor for the generous and harsh lists.
	MinCriticReviews = 3
	// MinBourbonReviews is the review floor for bourbon quality lists.
	MinBourbonReviews = 2
)

// ReviewerStat is one reviewer's activity within a club.
type ReviewerStat struct {
	UserID      primitive.ObjectID `json:"userId"`
	Name        string             `json:"name"`
	ReviewCount int                `json:"reviewCount"`
	AvgRating   float64            `json:"avgRating"`
}

// BourbonStat is one bourbon's rating summary within a club.
type BourbonStat struct {
	BourbonID   primitive.ObjectID `json:"bourbonId"`
	Name        string             `json:"name"`
	Distillery  string             `json:"distillery,omitempty"`
	ReviewCount int                `json:"reviewCount"`
	AvgRating   *float64           `json:"avgRating"`
	ValueScore  *float64           `json:"valueScore"`
}

// Board is the full set of leaderboard lists.
type Board struct {
	MostActive       []ReviewerStat `json:"mostActive"`
	MostGenerous     []ReviewerStat `json:"mostGenerous"`
	Harshest         []ReviewerStat `json:"harshest"`
	TopRated         []BourbonStat  `json:"topRated"`
	MostReviewed     []BourbonStat  `json:"mostReviewed"`
	BestValue        []BourbonStat  `json:"bestValue"`
	TotalReviews     int            `json:"totalReviews"`
	TotalReviewers   int            `json:"totalReviewers"`
	BourbonsReviewed int            `json:"bourbonsReviewed"`
}

// Reviewers folds reviews into per-user stats in order of first appearance.
// Names come from names; a missing entry leaves Name empty.
func Reviewers(reviews []models.Review, names map[primitive.ObjectID]string) []ReviewerStat {
	idx := make(map[primitive.ObjectID]int)
	var (
		out  []ReviewerStat
		sums []float64
	)
	for _, r := range reviews {
		i, ok := idx[r.UserID]
		if !ok {
			i = len(out)
			idx[r.UserID] = i
			out = append(out, ReviewerStat{UserID: r.UserID, Name: names[r.UserID]})
			sums = append(sums, 0)
		}
		out[i].ReviewCount++
		sums[i] += r.Rating
	}
	for i := range out {
		out[i].AvgRating = sums[i] / float64(out[i].ReviewCount)
	}
	return out
}

// Bourbons builds per-bourbon stats for every reviewed bourbon in the list,
// in order of first review. Reviews of bourbons missing from the list are
// skipped.
func Bourbons(bourbons []models.Bourbon, reviews []models.Review) []BourbonStat {
	byID := make(map[primitive.ObjectID]models.Bourbon, len(bourbons))
	for _, b := range bourbons {
		byID[b.ID] = b
	}

	var out []BourbonStat
	for _, g := range ratings.GroupByBourbon(reviews) {
		b, ok := byID[g.BourbonID]
		if !ok {
			continue
		}
		s := ratings.Aggregate(g.Reviews)
		out = append(out, BourbonStat{
			BourbonID:   b.ID,
			Name:        b.Name,
			Distillery:  b.Distillery,
			ReviewCount: s.ReviewCount,
			AvgRating:   s.AvgRating,
			ValueScore:  ratings.ValueScore(s.AvgRating, b.Price),
		})
	}
	return out
}

var (
	mostActive = RankSpec[ReviewerStat]{
		Key:   func(s ReviewerStat) (float64, bool) { return float64(s.ReviewCount), true },
		Limit: ListLimit,
	}
	mostGenerous = RankSpec[ReviewerStat]{
		Key:      func(s ReviewerStat) (float64, bool) { return s.AvgRating, true },
		Count:    func(s ReviewerStat) int { return s.ReviewCount },
		MinCount: MinCriticReviews,
		Limit:    ListLimit,
	}
	harshest = RankSpec[ReviewerStat]{
		Key:       func(s ReviewerStat) (float64, bool) { return s.AvgRating, true },
		Count:     func(s ReviewerStat) int { return s.ReviewCount },
		MinCount:  MinCriticReviews,
		Direction: Asc,
		Limit:     ListLimit,
	}
	topRated = RankSpec[BourbonStat]{
		Key:      optKey(func(s BourbonStat) *float64 { return s.AvgRating }),
		Count:    func(s BourbonStat) int { return s.ReviewCount },
		MinCount: MinBourbonReviews,
		Limit:    ListLimit,
	}
	mostReviewed = RankSpec[BourbonStat]{
		Key:   func(s BourbonStat) (float64, bool) { return float64(s.ReviewCount), true },
		Limit: ListLimit,
	}
	bestValue = RankSpec[BourbonStat]{
		Key:      optKey(func(s BourbonStat) *float64 { return s.ValueScore }),
		Count:    func(s BourbonStat) int { return s.ReviewCount },
		MinCount: MinBourbonReviews,
		Limit:    ListLimit,
	}
)

// optKey adapts a nullable field into a Rank key; nil excludes the item.
func optKey[T any](get func(T) *float64) func(T) (float64, bool) {
	return func(t T) (float64, bool) {
		v := get(t)
		if v == nil {
			return 0, false
		}
		return *v, true
	}
}

// Build computes every leaderboard list from one club's reviews.
func Build(bourbons []models.Bourbon, reviews []models.Review, names map[primitive.ObjectID]string) Board {
	rs := Reviewers(reviews, names)
	bs := Bourbons(bourbons, reviews)

	return Board{
		MostActive:       Rank(rs, mostActive),
		MostGenerous:     Rank(rs, mostGenerous),
		Harshest:         Rank(rs, harshest),
		TopRated:         Rank(bs, topRated),
		MostReviewed:     Rank(bs, mostReviewed),
		BestValue:        Rank(bs, bestValue),
		TotalReviews:     len(reviews),
		TotalReviewers:   len(rs),
		BourbonsReviewed: len(bs),
	}
}
