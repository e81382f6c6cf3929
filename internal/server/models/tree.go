package models

import "time"

// Tree is a rewarded planting-verification event. One row per accepted
// upload; the backing image lives in object or local storage under ImagePath.
type Tree struct {
	ID string
	// UserID is the owning account.
	UserID string
	// ImagePath is the storage key of the uploaded image.
	ImagePath string
	// RewardsEarned is the amount granted for this tree (positive).
	RewardsEarned int
	// ClassifierResponse keeps the raw text the classifier returned,
	// for auditing disputed verdicts.
	ClassifierResponse string
	PlantedAt          time.Time
}
