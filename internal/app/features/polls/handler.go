// internal/app/features/polls/handler.go
package polls

import (
	"errors"
	"net/http"

	uierrors "github.com/dalemusser/bourbonclub/internal/app/features/errors"
	membershipstore "github.com/dalemusser/bourbonclub/internal/app/store/memberships"
	pollstore "github.com/dalemusser/bourbonclub/internal/app/store/polls"
	"github.com/dalemusser/bourbonclub/internal/app/system/auditlog"
	"github.com/dalemusser/bourbonclub/internal/app/system/authz"
	"github.com/dalemusser/bourbonclub/internal/app/system/inputval"
	"github.com/dalemusser/bourbonclub/internal/app/system/jsonutil"
	"github.com/dalemusser/bourbonclub/internal/app/system/timeouts"
	"github.com/dalemusser/bourbonclub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	DB          *mongo.Database
	Log         *zap.Logger
	AuditLog    *auditlog.Logger
	Polls       *pollstore.Store
	Memberships *membershipstore.Store
}

func NewHandler(db *mongo.Database, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:          db,
		Log:         logger,
		AuditLog:    audit,
		Polls:       pollstore.New(db),
		Memberships: membershipstore.New(db),
	}
}

// Routes mounts poll routes. Opening a poll is limited to club admins;
// any member may vote.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeList)
	r.Post("/{id}/votes", h.HandleVote)
	r.With(authz.RequireClubAdmin(h.Memberships, h.Log)).Post("/", h.HandleCreate)
	return r
}

type pollRow struct {
	models.Poll
	Tally      map[string]int `json:"tally"`
	TotalVotes int            `json:"totalVotes"`
}

// ServeList handles GET /polls: the club's polls, newest first, with tallies.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	scope, ok := uierrors.Scope(w, r)
	if !ok {
		return
	}
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "polls list")
	defer cancel()

	polls, err := h.Polls.ListByClub(ctx, scope.ClubID)
	if err != nil {
		uierrors.Internal(w, r, h.Log, "list polls failed", err)
		return
	}
	out := make([]pollRow, 0, len(polls))
	for _, p := range polls {
		tally, err := h.Polls.Tally(ctx, p)
		if err != nil {
			uierrors.Internal(w, r, h.Log, "tally poll failed", err)
			return
		}
		total := 0
		for _, n := range tally {
			total += n
		}
		out = append(out, pollRow{Poll: p, Tally: tally, TotalVotes: total})
	}
	jsonutil.Write(w, http.StatusOK, map[string]any{"polls": out})
}

type createInput struct {
	Question string   `json:"question" validate:"required,max=300"`
	Options  []string `json:"options" validate:"min=2,max=10,dive,max=100"`
}

// HandleCreate handles POST /polls.
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

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "poll create")
	defer cancel()

	p, err := h.Polls.Create(ctx, scope.ClubID, scope.UserID, in.Question, in.Options)
	if errors.Is(err, pollstore.ErrQuestionNeeded) || errors.Is(err, pollstore.ErrTooFewOptions) {
		uierrors.Invalid(w, err)
		return
	}
	if err != nil {
		uierrors.Internal(w, r, h.Log, "create poll failed", err)
		return
	}
	h.AuditLog.PollCreated(ctx, r, scope.UserID, scope.ClubID, p.ID)
	jsonutil.Write(w, http.StatusCreated, p)
}

type voteInput struct {
	Option string `json:"option" validate:"required"`
}

// HandleVote handles POST /polls/{id}/votes. Each member votes once.
func (h *Handler) HandleVote(w http.ResponseWriter, r *http.Request) {
	scope, ok := uierrors.Scope(w, r)
	if !ok {
		return
	}
	id, ok := uierrors.PathID(w, r, "id")
	if !ok {
		return
	}
	var in voteInput
	if err := jsonutil.Decode(r, &in); err != nil {
		uierrors.BadRequest(w, err.Error())
		return
	}
	if err := inputval.Struct(in); err != nil {
		uierrors.Invalid(w, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "poll vote")
	defer cancel()

	p, err := h.Polls.GetByID(ctx, scope.ClubID, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		uierrors.NotFound(w, "poll")
		return
	}
	if err != nil {
		uierrors.Internal(w, r, h.Log, "load poll failed", err)
		return
	}

	v, err := h.Polls.Vote(ctx, p, scope.UserID, in.Option)
	switch {
	case errors.Is(err, pollstore.ErrUnknownOption):
		uierrors.Invalid(w, err)
	case errors.Is(err, pollstore.ErrDuplicateVote):
		uierrors.Conflict(w, err.Error())
	case err != nil:
		uierrors.Internal(w, r, h.Log, "record vote failed", err)
	default:
		jsonutil.Write(w, http.StatusCreated, v)
	}
}
