package scene

import (
	"strconv"

	"github.com/google/uuid"
)

// IDGenerator returns a fresh identifier for an entity or wire of the given
// kind ("block", "connector" or "wire").
type IDGenerator func(kind string) string

// UUIDs generates IDs of the form "<kind>-<uuid>".
func UUIDs(kind string) string {
	return kind + "-" + uuid.NewString()
}

// Sequential returns a generator producing "<kind>-1", "<kind>-2", ... with
// a separate counter per kind. Useful where output must be reproducible.
func Sequential() IDGenerator {
	next := make(map[string]int)
	return func(kind string) string {
		next[kind]++
		return kind + "-" + strconv.Itoa(next[kind])
	}
}
