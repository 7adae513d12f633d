package auth

import "github.com/Rakhulsr/wishcrate/app/models"

// Identity is the authenticated caller that every user-scoped service
// operation receives explicitly.
type Identity struct {
	UserID string
	Role   string
}

func (i Identity) IsAdmin() bool {
	return i.Role == models.RoleAdmin
}

func (i Identity) HasRole(roles ...string) bool {
	for _, role := range roles {
		if i.Role == role {
			return true
		}
	}
	return false
}

// Owns reports whether the resource belonging to userID is the caller's.
func (i Identity) Owns(userID string) bool {
	return i.UserID != "" && i.UserID == userID
}
