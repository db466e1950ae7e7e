// internal/app/features/suggestions/handler.go
package suggestions

import (
	"errors"
	"net/http"

	"github.com/dalemusser/bourbonclub/internal/app/engine/leaderboard"
	uierrors "github.com/dalemusser/bourbonclub/internal/app/features/errors"
	suggestionstore "github.com/dalemusser/bourbonclub/internal/app/store/suggestions"
	userstore "github.com/dalemusser/bourbonclub/internal/app/store/users"
	"github.com/dalemusser/bourbonclub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/bourbonclub/internal/app/system/inputval"
	"github.com/dalemusser/bourbonclub/internal/app/system/jsonutil"
	"github.com/dalemusser/bourbonclub/internal/app/system/timeouts"
	"github.com/dalemusser/bourbonclub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	DB          *mongo.Database
	Log         *zap.Logger
	Suggestions *suggestionstore.Store
	Users       *userstore.Store
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:          db,
		Log:         logger,
		Suggestions: suggestionstore.New(db),
		Users:       userstore.New(db),
	}
}

// Routes mounts suggestion routes. Typically: r.Mount("/suggestions", suggestions.Routes(h)).
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeList)
	r.Post("/", h.HandleCreate)
	r.Post("/{id}/votes", h.HandleVote)
	return r
}

type suggestionRow struct {
	models.BourbonSuggestion
	SuggestedBy string `json:"suggestedBy"`
	Votes       int    `json:"votes"`
}

// byVotes orders the list most-voted first; ties keep storage order
// (newest first).
var byVotes = leaderboard.RankSpec[suggestionRow]{
	Key: func(s suggestionRow) (float64, bool) { return float64(s.Votes), true },
}

// ServeList handles GET /suggestions.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	scope, ok := uierrors.Scope(w, r)
	if !ok {
		return
	}
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "suggestions list")
	defer cancel()

	list, err := h.Suggestions.ListByClub(ctx, scope.ClubID)
	if err != nil {
		uierrors.Internal(w, r, h.Log, "list suggestions failed", err)
		return
	}
	counts, err := h.Suggestions.VoteCounts(ctx, scope.ClubID)
	if err != nil {
		uierrors.Internal(w, r, h.Log, "count suggestion votes failed", err)
		return
	}
	authors := make([]primitive.ObjectID, 0, len(list))
	for _, sg := range list {
		authors = append(authors, sg.UserID)
	}
	names, err := h.Users.NamesByIDs(ctx, authors)
	if err != nil {
		uierrors.Internal(w, r, h.Log, "load names failed", err)
		return
	}

	rows := make([]suggestionRow, 0, len(list))
	for _, sg := range list {
		rows = append(rows, suggestionRow{BourbonSuggestion: sg, SuggestedBy: names[sg.UserID], Votes: counts[sg.ID]})
	}
	jsonutil.Write(w, http.StatusOK, map[string]any{"suggestions": leaderboard.Rank(rows, byVotes)})
}

type createInput struct {
	Name  string `json:"name" validate:"required,max=200"`
	Notes string `json:"notes" validate:"max=2000"`
}

// HandleCreate handles POST /suggestions.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	scope, ok := uierrors.Scope(w, r)
	if !ok {
		return
	}
	var in createInput
	if err := jsonutil.Decode(r, &in); err != nil {
		uierrors.BadRequest(w, err.Error())
		return
	}
	if err := inputval.Struct(in); err != nil {
		uierrors.Invalid(w, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "suggestion create")
	defer cancel()

	sg, err := h.Suggestions.Create(ctx, scope.ClubID, scope.UserID,
		htmlsanitize.PlainText(in.Name), htmlsanitize.PlainText(in.Notes))
	if errors.Is(err, suggestionstore.ErrNameNeeded) {
		uierrors.Invalid(w, err)
		return
	}
	if err != nil {
		uierrors.Internal(w, r, h.Log, "create suggestion failed", err)
		return
	}
	jsonutil.Write(w, http.StatusCreated, sg)
}

// HandleVote handles POST /suggestions/{id}/votes. Members may upvote each
// suggestion once, and never their own.
func (h *Handler) HandleVote(w http.ResponseWriter, r *http.Request) {
	scope, ok := uierrors.Scope(w, r)
	if !ok {
		return
	}
	id, ok := uierrors.PathID(w, r, "id")
	if !ok {
		return
	}
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "suggestion vote")
	defer cancel()

	sg, err := h.Suggestions.GetByID(ctx, scope.ClubID, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		uierrors.NotFound(w, "suggestion")
		return
	}
	if err != nil {
		uierrors.Internal(w, r, h.Log, "load suggestion failed", err)
		return
	}

	v, err := h.Suggestions.Vote(ctx, sg, scope.UserID)
	switch {
	case errors.Is(err, suggestionstore.ErrOwnSuggestion):
		uierrors.Forbidden(w, err.Error())
	case errors.Is(err, suggestionstore.ErrDuplicateVote):
		uierrors.Conflict(w, err.Error())
	case err != nil:
		uierrors.Internal(w, r, h.Log, "record vote failed", err)
	default:
		jsonutil.Write(w, http.StatusCreated, v)
	}
}
