package models

import "gorm.io/gorm"

// Friendship represents an established friendship between two users.
// Exactly one row exists per pair, stored with UserID1 < UserID2; every
// create, lookup, and delete must normalize the pair first.
type Friendship struct {
	gorm.Model
	UserID1 uint `json:"user_id_1" gorm:"uniqueIndex:idx_friendship_pair"`
	UserID2 uint `json:"user_id_2" gorm:"uniqueIndex:idx_friendship_pair"`
}

// EnsureCanonicalOrder swaps the pair so UserID1 holds the smaller ID.
// Must be called before creating a Friendship record.
func (f *Friendship) EnsureCanonicalOrder() {
	if f.UserID1 > f.UserID2 {
		f.UserID1, f.UserID2 = f.UserID2, f.UserID1
	}
}

// OrderedPair returns any two user IDs in canonical storage order.
func OrderedPair(a, b uint) (uint, uint) {
	if a > b {
		return b, a
	}
	return a, b
}
