package utils

import "github.com/google/uuid"

// GenerateRandomID returns a random UUIDv4 string used for account and task ids.
func GenerateRandomID() string {
	return uuid.NewString()
}

// ValidID reports whether id has the shape produced by GenerateRandomID.
func ValidID(id string) bool {
	return uuid.Validate(id) == nil
}
