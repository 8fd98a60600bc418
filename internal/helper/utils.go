package helper

import (
	"fmt"
	"os"

	"github.com/google/uuid"
)

// GenerateUUID creates a random unique UUID string
func GenerateUUID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("failed to generate UUID: %v", err)
	}
	return id.String(), nil
}

// CreateFolder creates the directory and any missing parents.
func CreateFolder(path string) error {
	return os.MkdirAll(path, 0o755)
}
