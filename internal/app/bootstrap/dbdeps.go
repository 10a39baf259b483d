// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/dalemusser/stratapress/internal/app/system/authidp"
	"github.com/dalemusser/stratapress/internal/app/system/rebuild"
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds database and backend dependencies for this WAFFLE app.
//
// This struct is created in ConnectDB and passed to subsequent lifecycle
// hooks: EnsureSchema, Startup, BuildHandler, and Shutdown. It serves as
// the central place to store all database clients and backend connections
// that your application needs.
//
// The Shutdown hook is responsible for closing these connections gracefully
// when the application terminates.
type DBDeps struct {
	// MongoDB client and database
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database

	// AuthProvider verifies and manages login credentials (Firebase
	// Identity Toolkit or the local Mongo-backed provider).
	AuthProvider authidp.Provider

	// Rebuild triggers the static site rebuild webhook on publish.
	Rebuild *rebuild.Trigger
}
