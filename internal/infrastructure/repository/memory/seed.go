package memory

import (
	"time"

	"github.com/openfairway/one-and-done/internal/domain/user"
)

// SeedUsers returns a small demo pool for running without a database.
func SeedUsers() []user.User {
	now := time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)
	return []user.User{
		{ID: "demo-alice", Email: "alice@example.com", DisplayName: "Alice", IsAdmin: true, CreatedAt: now, UpdatedAt: now},
		{ID: "demo-bob", Email: "bob@example.com", DisplayName: "Bob", CreatedAt: now, UpdatedAt: now},
		{ID: "demo-cara", Email: "cara@example.com", DisplayName: "Cara", CreatedAt: now, UpdatedAt: now},
	}
}
