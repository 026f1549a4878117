// Package policy holds the role-based access table for API operations.
// Handlers and middleware consult it instead of comparing role strings
// inline, so the full permission surface is visible in one place.
package policy

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/devranvijay/PropertyPro/internal/models"
)

// Action names a guarded API operation.
type Action string

const (
	ActionCreateProperty  Action = "property.create"
	ActionListOwn         Action = "property.list_own"
	ActionMakeOffer       Action = "offer.create"
	ActionScheduleVisit   Action = "visit.create"
	ActionSendInquiry     Action = "inquiry.create"
	ActionToggleFavorite  Action = "favorite.toggle"
	ActionViewReceived    Action = "submission.received"
	ActionAdminUsers      Action = "admin.users"
	ActionAdminOversight  Action = "admin.oversight"
	ActionTrackActivity   Action = "activity.track"
)

// allowed is the authority for which roles may perform which actions.
var allowed = map[Action][]models.Role{
	ActionCreateProperty: {models.RoleSeller, models.RoleAdmin},
	ActionListOwn:        {models.RoleSeller, models.RoleAdmin},
	ActionMakeOffer:      {models.RoleBuyer, models.RoleSeller, models.RoleAdmin},
	ActionScheduleVisit:  {models.RoleBuyer, models.RoleSeller, models.RoleAdmin},
	ActionSendInquiry:    {models.RoleBuyer, models.RoleSeller, models.RoleAdmin},
	ActionToggleFavorite: {models.RoleBuyer, models.RoleSeller, models.RoleAdmin},
	ActionViewReceived:   {models.RoleBuyer, models.RoleSeller, models.RoleAdmin},
	ActionAdminUsers:     {models.RoleAdmin},
	ActionAdminOversight: {models.RoleAdmin},
	ActionTrackActivity:  {models.RoleBuyer, models.RoleSeller, models.RoleAdmin},
}

// Allows reports whether the role may perform the action. Unknown actions
// are denied.
func Allows(role models.Role, action Action) bool {
	for _, r := range allowed[action] {
		if r == role {
			return true
		}
	}
	return false
}

// CanMutateSubmission reports whether u may change the state of a
// submission addressed to the owner of recipientID. Admins may always;
// everyone else must be the recipient.
func CanMutateSubmission(u *models.User, recipientID primitive.ObjectID) bool {
	if u == nil {
		return false
	}
	if u.Role == models.RoleAdmin {
		return true
	}
	return u.ID == recipientID
}
