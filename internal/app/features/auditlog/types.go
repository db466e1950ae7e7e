// internal/app/features/auditlog/types.go
package auditlog

import (
	"time"

	"github.com/dalemusser/bourbonclub/internal/app/store/audit"
)

// listItem is a single audit event row with names resolved.
type listItem struct {
	ID         string            `json:"id"`
	Timestamp  time.Time         `json:"timestamp"`
	Category   string            `json:"category"`
	EventType  string            `json:"eventType"`
	ActorName  string            `json:"actorName,omitempty"`  // resolved from ActorID
	TargetName string            `json:"targetName,omitempty"` // resolved from UserID
	IP         string            `json:"ip,omitempty"`
	Success    bool              `json:"success"`
	Details    map[string]string `json:"details,omitempty"`
}

// listData is the audit list response.
type listData struct {
	Items []listItem `json:"items"`

	// Filter options
	Categories []categoryOption `json:"categories"`
	EventTypes []string         `json:"eventTypes"`

	// Pagination
	Page       int   `json:"page"`
	TotalPages int   `json:"totalPages"`
	Total      int64 `json:"total"`
}

// categoryOption represents a category for the filter dropdown.
type categoryOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// allCategories returns the available categories for filtering.
func allCategories() []categoryOption {
	return []categoryOption{
		{Value: audit.CategoryMember, Label: "Members"},
		{Value: audit.CategoryAdmin, Label: "Administration"},
	}
}

// eventTypesForCategory returns the event types for a given category.
// If category is empty, returns all event types.
func eventTypesForCategory(category string) []string {
	memberEvents := []string{
		audit.EventClubSwitched,
	}
	adminEvents := []string{
		audit.EventBourbonAdded,
		audit.EventMeetingCreated,
		audit.EventPourAdded,
		audit.EventPollCreated,
		audit.EventReviewRemoved,
	}

	switch category {
	case audit.CategoryMember:
		return memberEvents
	case audit.CategoryAdmin:
		return adminEvents
	case "":
		all := make([]string, 0, len(memberEvents)+len(adminEvents))
		all = append(all, memberEvents...)
		all = append(all, adminEvents...)
		return all
	default:
		return nil
	}
}
