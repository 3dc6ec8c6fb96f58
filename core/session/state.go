package session

import "github.com/miniappkit/tmauth/core/auth"

// State is a snapshot of the client session. Exactly one State is owned by a
// Manager; consumers read snapshots and never mutate them in place.
// Invariant: IsAuthenticated == (Token != "" && User != nil).
type State struct {
	User            *auth.UserProfile
	Token           string
	IsAuthenticated bool
	IsLoading       bool
	Error           string
}

// UserPatch carries a partial profile update. Nil fields are left untouched.
type UserPatch struct {
	Username  *string
	FirstName *string
	LastName  *string
}

// apply merges the patch into a copy of the given profile.
func (p UserPatch) apply(user auth.UserProfile) auth.UserProfile {
	if p.Username != nil {
		user.Username = *p.Username
	}
	if p.FirstName != nil {
		user.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		user.LastName = *p.LastName
	}
	return user
}
