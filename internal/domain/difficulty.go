package domain

import "fmt"

// Difficulty is the requested depth for generated tutorials and learning paths.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// ParseDifficulty validates a raw difficulty value.
func ParseDifficulty(raw string) (Difficulty, error) {
	switch Difficulty(raw) {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return Difficulty(raw), nil
	}
	return "", fmt.Errorf("difficulty must be one of Easy, Medium, Hard, got %q", raw)
}

// Valid reports whether the difficulty is one of the known levels.
func (d Difficulty) Valid() bool {
	_, err := ParseDifficulty(string(d))
	return err == nil
}
