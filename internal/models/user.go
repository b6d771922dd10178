package models

// User is the owner of all other resources.
//
// Authentication happens outside of this backend, callers pass
// already-authenticated user IDs.
type User struct {
	DefaultModel
	Name string `gorm:"uniqueIndex"`
}
