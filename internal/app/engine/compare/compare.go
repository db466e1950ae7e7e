// Package compare builds side-by-side views of a small selection of bourbons.
package compare

import (
	"errors"

	"github.com/dalemusser/bourbonclub/internal/app/engine/ratings"
	"github.com/dalemusser/bourbonclub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	MinSelection = 2
	MaxSelection = 4
)

// ErrSelectionSize is returned when the number of distinct ids is outside
// [MinSelection, MaxSelection].
var ErrSelectionSize = errors.New("compare: select between 2 and 4 bourbons")

// Row is one bourbon's column in the comparison.
type Row struct {
	BourbonID  primitive.ObjectID `json:"bourbonId"`
	Name       string             `json:"name"`
	Distillery string             `json:"distillery,omitempty"`
	Type       string             `json:"type,omitempty"`
	Proof      *float64           `json:"proof"`
	Age        *float64           `json:"age"`
	Price      *float64           `json:"price"`
	Cost       *float64           `json:"cost"`
	Stats      ratings.Summary    `json:"stats"`
	ValueScore *float64           `json:"valueScore"`

	BestProof  bool `json:"bestProof"`
	BestAge    bool `json:"bestAge"`
	BestRating bool `json:"bestRating"`
	BestValue  bool `json:"bestValue"`
}

// Radar is one bourbon's normalized 0-100 profile. Higher is better on
// every axis.
type Radar struct {
	BourbonID  primitive.ObjectID `json:"bourbonId"`
	Name       string             `json:"name"`
	Rating     float64            `json:"rating"`
	Appearance float64            `json:"appearance"`
	Nose       float64            `json:"nose"`
	Taste      float64            `json:"taste"`
	Mouthfeel  float64            `json:"mouthfeel"`
	Finish     float64            `json:"finish"`
	Proof      float64            `json:"proof"`
	Age        float64            `json:"age"`
	Value      float64            `json:"value"`
}

// Result is the full comparison.
type Result struct {
	Rows  []Row   `json:"rows"`
	Radar []Radar `json:"radar"`
}

// Distinct removes repeated ids, keeping first occurrences.
func Distinct(ids []primitive.ObjectID) []primitive.ObjectID {
	seen := make(map[primitive.ObjectID]bool, len(ids))
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// Compare builds rows for the selected bourbons in selection order.
//
// bourbons and reviews must already be scoped to the caller's club. Selected
// ids with no matching bourbon are dropped from the result.
func Compare(ids []primitive.ObjectID, bourbons []models.Bourbon, reviews []models.Review) (Result, error) {
	ids = Distinct(ids)
	if len(ids) < MinSelection || len(ids) > MaxSelection {
		return Result{}, ErrSelectionSize
	}

	byID := make(map[primitive.ObjectID]models.Bourbon, len(bourbons))
	for _, b := range bourbons {
		byID[b.ID] = b
	}
	sums := ratings.SummariesByBourbon(reviews)

	rows := make([]Row, 0, len(ids))
	for _, id := range ids {
		b, ok := byID[id]
		if !ok {
			continue
		}
		s := sums[id]
		rows = append(rows, Row{
			BourbonID:  b.ID,
			Name:       b.Name,
			Distillery: b.Distillery,
			Type:       b.Type,
			Proof:      b.Proof,
			Age:        b.Age,
			Price:      b.Price,
			Cost:       b.Cost,
			Stats:      s,
			ValueScore: ratings.ValueScore(s.AvgRating, b.Price),
		})
	}

	markBest(rows, func(r Row) *float64 { return r.Proof }, func(r *Row) { r.BestProof = true })
	markBest(rows, func(r Row) *float64 { return r.Age }, func(r *Row) { r.BestAge = true })
	markBest(rows, func(r Row) *float64 { return r.Stats.AvgRating }, func(r *Row) { r.BestRating = true })
	markBest(rows, func(r Row) *float64 { return r.ValueScore }, func(r *Row) { r.BestValue = true })

	return Result{Rows: rows, Radar: radar(rows)}, nil
}

// Best returns the index of the largest non-nil value, or -1 if all are nil.
// The first of equal maxima wins.
func Best(vals []*float64) int {
	best := -1
	for i, v := range vals {
		if v == nil {
			continue
		}
		if best < 0 || *v > *vals[best] {
			best = i
		}
	}
	return best
}

func markBest(rows []Row, get func(Row) *float64, mark func(*Row)) {
	vals := make([]*float64, len(rows))
	for i, r := range rows {
		vals[i] = get(r)
	}
	if i := Best(vals); i >= 0 {
		mark(&rows[i])
	}
}

func radar(rows []Row) []Radar {
	axis := func(get func(Row) *float64) []float64 {
		var top float64
		for _, r := range rows {
			if v := get(r); v != nil && *v > top {
				top = *v
			}
		}
		out := make([]float64, len(rows))
		for i, r := range rows {
			if v := get(r); v != nil && top > 0 {
				out[i] = *v / top * 100
			}
		}
		return out
	}

	rating := axis(func(r Row) *float64 { return r.Stats.AvgRating })
	appearance := axis(func(r Row) *float64 { return r.Stats.Categories.Appearance })
	nose := axis(func(r Row) *float64 { return r.Stats.Categories.Nose })
	taste := axis(func(r Row) *float64 { return r.Stats.Categories.Taste })
	mouthfeel := axis(func(r Row) *float64 { return r.Stats.Categories.Mouthfeel })
	finish := axis(func(r Row) *float64 { return r.Stats.Categories.Finish })
	proof := axis(func(r Row) *float64 { return r.Proof })
	age := axis(func(r Row) *float64 { return r.Age })
	value := valueAxis(rows)

	out := make([]Radar, len(rows))
	for i, r := range rows {
		out[i] = Radar{
			BourbonID:  r.BourbonID,
			Name:       r.Name,
			Rating:     rating[i],
			Appearance: appearance[i],
			Nose:       nose[i],
			Taste:      taste[i],
			Mouthfeel:  mouthfeel[i],
			Finish:     finish[i],
			Proof:      proof[i],
			Age:        age[i],
			Value:      value[i],
		}
	}
	return out
}

// valueAxis inverts cost so the cheapest bottle scores highest. The most
// expensive bottle lands at 50, a free one at 100.
func valueAxis(rows []Row) []float64 {
	var maxCost float64
	for _, r := range rows {
		if r.Cost != nil && *r.Cost > maxCost {
			maxCost = *r.Cost
		}
	}
	out := make([]float64, len(rows))
	if maxCost <= 0 {
		return out
	}
	for i, r := range rows {
		if r.Cost != nil {
			out[i] = (1-*r.Cost/maxCost)*50 + 50
		}
	}
	return out
}
