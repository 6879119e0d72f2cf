// Package migrations is a registry of database setup steps. Mongo creates
// collections lazily, so "migrating" here means ensuring the indexes the
// workflow relies on.
//
// Define a migration in any file in this package:
//
//	func init() {
//	    migrations.Register("users_email_unique", ensureUserIndexes)
//	}
//
// Then run via CLI: plantnet db:indexes
package migrations

import (
	"context"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/mongo"
)

// MigrationFunc is the signature for a setup step.
type MigrationFunc func(ctx context.Context, db *mongo.Database) error

type entry struct {
	name string
	fn   MigrationFunc
}

var (
	mu      sync.Mutex
	entries []entry
)

// Register adds a migration to the global registry.
// Call this from init() in your migration files.
func Register(name string, fn MigrationFunc) {
	mu.Lock()
	defer mu.Unlock()
	entries = append(entries, entry{name: name, fn: fn})
}

// RunAll executes every registered migration in registration order.
// It stops on the first error.
func RunAll(ctx context.Context, db *mongo.Database) error {
	mu.Lock()
	current := make([]entry, len(entries))
	copy(current, entries)
	mu.Unlock()

	for _, e := range current {
		fmt.Printf("  • %s … ", e.name)
		if err := e.fn(ctx, db); err != nil {
			fmt.Println("FAILED")
			return fmt.Errorf("migration %q: %w", e.name, err)
		}
		fmt.Println("done")
	}
	return nil
}
