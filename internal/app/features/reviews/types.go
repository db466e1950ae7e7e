// internal/app/features/reviews/types.go
package reviews

import (
	"github.com/dalemusser/bourbonclub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/bourbonclub/internal/domain/models"
)

// Category scores and the overall rating share a 0-10 scale.
type scoresInput struct {
	Appearance *float64 `json:"appearance" validate:"omitempty,gte=0,lte=10"`
	Nose       *float64 `json:"nose" validate:"omitempty,gte=0,lte=10"`
	Taste      *float64 `json:"taste" validate:"omitempty,gte=0,lte=10"`
	Mouthfeel  *float64 `json:"mouthfeel" validate:"omitempty,gte=0,lte=10"`
	Finish     *float64 `json:"finish" validate:"omitempty,gte=0,lte=10"`
}

func (s scoresInput) model() models.CategoryScores {
	return models.CategoryScores{
		Appearance: s.Appearance,
		Nose:       s.Nose,
		Taste:      s.Taste,
		Mouthfeel:  s.Mouthfeel,
		Finish:     s.Finish,
	}
}

type notesInput struct {
	Appearance string `json:"appearance" validate:"max=2000"`
	Nose       string `json:"nose" validate:"max=2000"`
	Palate     string `json:"palate" validate:"max=2000"`
	Mouthfeel  string `json:"mouthfeel" validate:"max=2000"`
	Finish     string `json:"finish" validate:"max=2000"`
	General    string `json:"general" validate:"max=4000"`
}

// model strips markup from every note.
func (n notesInput) model() models.ReviewNotes {
	return htmlsanitize.Notes(models.ReviewNotes{
		Appearance: n.Appearance,
		Nose:       n.Nose,
		Palate:     n.Palate,
		Mouthfeel:  n.Mouthfeel,
		Finish:     n.Finish,
		General:    n.General,
	})
}

type createInput struct {
	BourbonID        string      `json:"bourbonId" validate:"omitempty,mongodb"`
	MeetingBourbonID string      `json:"meetingBourbonId" validate:"omitempty,mongodb"`
	Scores           scoresInput `json:"scores"`
	Notes            notesInput  `json:"notes"`
	Rating           float64     `json:"rating" validate:"gte=0,lte=10"`
}

type updateInput struct {
	Scores scoresInput `json:"scores"`
	Notes  notesInput  `json:"notes"`
	Rating float64     `json:"rating" validate:"gte=0,lte=10"`
}
