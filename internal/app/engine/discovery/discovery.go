// Package discovery recommends club bourbons against a taste profile.
//
// The score is a fixed-weight sum of five factors. Each match carries its
// factor breakdown so the ranking can be explained to the member.
package discovery

import (
	"strings"

	"github.com/dalemusser/bourbonclub/internal/app/engine/leaderboard"
	"github.com/dalemusser/bourbonclub/internal/app/engine/ratings"
	"github.com/dalemusser/bourbonclub/internal/app/system/inputval"
	"github.com/dalemusser/bourbonclub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ExperienceBeginner     = "beginner"
	ExperienceIntermediate = "intermediate"
	ExperienceExpert       = "expert"
)

// MaxMatches is how many matches Recommend returns.
const MaxMatches = 10

// Band is an inclusive numeric range.
type Band struct {
	Min float64 `json:"min" validate:"gte=0"`
	Max float64 `json:"max" validate:"gtefield=Min"`
}

// Contains reports whether v lies in [Min, Max].
func (b Band) Contains(v float64) bool {
	return v >= b.Min && v <= b.Max
}

// Profile is a member's quiz answers.
type Profile struct {
	Flavor     string `json:"flavor" validate:"oneof=sweet spicy fruity oaky"`
	PriceBand  Band   `json:"priceBand"`
	ProofBand  Band   `json:"proofBand"`
	Experience string `json:"experience" validate:"oneof=beginner intermediate expert"`
}

// Validate reports values the matcher will not recognize. Recommend still
// accepts an invalid profile; the unrecognized parts score zero.
func (p Profile) Validate() error {
	return inputval.Struct(p)
}

// Breakdown is each factor's contribution to a match score.
type Breakdown struct {
	Rating     float64 `json:"rating"`
	Flavor     int     `json:"flavor"`
	Experience int     `json:"experience"`
	Price      int     `json:"price"`
	Proof      int     `json:"proof"`
}

// Total sums the factors.
func (b Breakdown) Total() float64 {
	return b.Rating + float64(b.Flavor+b.Experience+b.Price+b.Proof)
}

// Match is one recommended bourbon.
type Match struct {
	Bourbon     models.Bourbon `json:"bourbon"`
	AvgRating   *float64       `json:"avgRating"`
	ReviewCount int            `json:"reviewCount"`
	MatchScore  float64        `json:"matchScore"`
	Breakdown   Breakdown      `json:"breakdown"`
}

// BandScore is 3 for a known value inside the band, 1 for an unknown value,
// and 0 for a known value outside it.
func BandScore(v *float64, b Band) int {
	switch {
	case v == nil:
		return 1
	case b.Contains(*v):
		return 3
	default:
		return 0
	}
}

// ExperienceScore awards 2 points per condition the bourbon meets for the
// given experience level.
func ExperienceScore(level string, proof, avg *float64, reviewCount int) int {
	score := 0
	switch level {
	case ExperienceBeginner:
		if proof != nil && *proof < 100 {
			score += 2
		}
		if avg != nil && *avg > 7 {
			score += 2
		}
	case ExperienceIntermediate:
		if avg != nil && *avg > 6 {
			score += 2
		}
	case ExperienceExpert:
		if proof != nil && *proof >= 100 {
			score += 2
		}
		if reviewCount > 3 {
			score += 2
		}
	}
	return score
}

// Score computes one bourbon's match against p.
func Score(p Profile, b models.Bourbon, reviews []models.Review) Match {
	s := ratings.Aggregate(reviews)

	notes := make([]string, 0, len(reviews))
	for _, r := range reviews {
		if t := r.TastingText(); t != "" {
			notes = append(notes, t)
		}
	}

	bd := Breakdown{
		Flavor:     FlavorHits(p.Flavor, strings.Join(notes, " ")),
		Experience: ExperienceScore(p.Experience, b.Proof, s.AvgRating, s.ReviewCount),
		Price:      BandScore(b.Price, p.PriceBand),
		Proof:      BandScore(b.Proof, p.ProofBand),
	}
	if s.AvgRating != nil {
		bd.Rating = *s.AvgRating
	}

	return Match{
		Bourbon:     b,
		AvgRating:   s.AvgRating,
		ReviewCount: s.ReviewCount,
		MatchScore:  bd.Total(),
		Breakdown:   bd,
	}
}

var byMatchScore = leaderboard.RankSpec[Match]{
	Key:   func(m Match) (float64, bool) { return m.MatchScore, true },
	Limit: MaxMatches,
}

// Recommend scores every bourbon and returns the best MaxMatches, highest first.
// Equal scores keep the order of bourbons.
func Recommend(p Profile, bourbons []models.Bourbon, reviews []models.Review) []Match {
	groups := make(map[primitive.ObjectID][]models.Review)
	for _, g := range ratings.GroupByBourbon(reviews) {
		groups[g.BourbonID] = g.Reviews
	}

	all := make([]Match, 0, len(bourbons))
	for _, b := range bourbons {
		all = append(all, Score(p, b, groups[b.ID]))
	}
	return leaderboard.Rank(all, byMatchScore)
}
