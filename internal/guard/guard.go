// Package guard holds the authorization predicates gating every mutating
// operation. They are deliberately stateless: callers pass the identities
// they already loaded, so a denial can never race a concurrent ownership
// change within the same transaction.
package guard

// IsHost reports whether userID created the match identified by hostID.
func IsHost(hostID, userID uint) bool {
	return hostID != 0 && hostID == userID
}

// IsOwner reports whether userID owns the team identified by ownerID.
func IsOwner(ownerID, userID uint) bool {
	return ownerID != 0 && ownerID == userID
}

// IsSelf reports whether the acting user targets their own record.
func IsSelf(a, b uint) bool {
	return a != 0 && a == b
}
