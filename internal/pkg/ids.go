package pkg

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

const gameIDBytes = 8

// GenerateGameID - generates a short random hex id for a game.
func GenerateGameID() (string, error) {
	b := make([]byte, gameIDBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}

	return hex.EncodeToString(b), nil
}
