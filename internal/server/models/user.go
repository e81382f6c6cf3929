// Package models defines server-side data models persisted in the database.
package models

import "time"

// User is a registered account with a cumulative reward ledger.
//
// Invariant: TotalRewards equals the sum of RewardsEarned over the user's
// remaining trees. Both sides of that equation change only inside a single
// database transaction.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	TotalRewards int
	CreatedAt    time.Time
}
