package service

// Access is the capability check consulted before every mutating admin
// operation. It is constructed once from configuration and injected.
type Access struct {
	admins map[int64]struct{}
}

// NewAccess builds the capability check from the configured admin IDs.
func NewAccess(adminIDs []int64) *Access {
	admins := make(map[int64]struct{}, len(adminIDs))
	for _, id := range adminIDs {
		admins[id] = struct{}{}
	}
	return &Access{admins: admins}
}

// Allowed reports whether the user is an administrator.
func (a *Access) Allowed(userID int64) bool {
	_, ok := a.admins[userID]
	return ok
}

// Require returns ErrNoAccess for non-administrators.
func (a *Access) Require(userID int64) error {
	if !a.Allowed(userID) {
		return ErrNoAccess
	}
	return nil
}
