package model

// Actor is a resolved identity for a single authorization check: the
// effective guild permission bitset, the guild-owner flag and the hierarchy
// rank derived from the highest assigned role position. Actors are computed
// fresh per check and never persisted.
type Actor struct {
	UserID        string
	Permissions   int64
	IsOwner       bool
	HierarchyRank int
}

// HasPermissions reports whether the actor holds every bit of required.
func (a Actor) HasPermissions(required int64) bool {
	return a.Permissions&required == required
}
