package tenant

import (
	"context"
	"errors"
	"fmt"

	"github.com/dalemusser/bourbonclub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrNotMember is returned when a user asks to work in a club they do not
// belong to.
var ErrNotMember = errors.New("tenant: user is not a member of that club")

// MembershipLookup checks one user's membership in one club.
type MembershipLookup interface {
	Get(ctx context.Context, userID, clubID primitive.ObjectID) (models.Membership, bool, error)
}

// Switch makes clubID the user's persisted current club. The caller is
// responsible for updating the session so the next request resolves to the
// same club without touching storage.
func Switch(ctx context.Context, ms MembershipLookup, users Users, userID, clubID primitive.ObjectID) (models.Membership, error) {
	m, found, err := ms.Get(ctx, userID, clubID)
	if err != nil {
		return models.Membership{}, err
	}
	if !found {
		return models.Membership{}, ErrNotMember
	}
	if err := users.SetCurrentClubID(ctx, userID, clubID); err != nil {
		return models.Membership{}, fmt.Errorf("persist current club: %w", err)
	}
	return m, nil
}
