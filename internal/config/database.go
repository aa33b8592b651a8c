package config

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names
const (
	CollAdminUsers = "admin_users"
	CollAgents     = "agents"
	CollOperators  = "operators"
	CollShops      = "shops"
	CollLegacy     = "legacy_shops"
	CollAgentShops = "agent_shops"
	CollPages      = "pages"
	CollOTPs       = "otps"
)

// Database owns the MongoDB connection for the whole process.
// It is created once at startup and passed to every collaborator;
// there is no lazy reconnect logic anywhere else.
type Database struct {
	client *mongo.Client
	db     *mongo.Database
}

// ConnectDatabase establishes the MongoDB connection and verifies it
func ConnectDatabase(cfg *Config) (*Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Database.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	database := &Database{
		client: client,
		db:     client.Database(cfg.Database.DBName),
	}

	if err := database.ensureIndexes(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure indexes: %w", err)
	}

	log.Printf("Database connected [%s]", cfg.Database.DBName)
	return database, nil
}

// Collection returns a handle for a named collection
func (d *Database) Collection(name string) *mongo.Collection {
	return d.db.Collection(name)
}

// HealthCheck pings the database
func (d *Database) HealthCheck(ctx context.Context) error {
	return d.client.Ping(ctx, nil)
}

// Close disconnects from the database
func (d *Database) Close(ctx context.Context) error {
	return d.client.Disconnect(ctx)
}

// ensureIndexes creates the schema-level constraints: unique lookups for
// principals and slugs, and the TTL index that auto-expires OTP documents.
func (d *Database) ensureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)

	indexes := map[string][]mongo.IndexModel{
		CollAdminUsers: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
		},
		CollAgents: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "code", Value: 1}}, Options: unique},
		},
		CollOperators: {
			{Keys: bson.D{{Key: "phone", Value: 1}}, Options: unique},
		},
		CollPages: {
			{Keys: bson.D{{Key: "slug", Value: 1}}, Options: unique},
		},
		CollAgentShops: {
			{Keys: bson.D{{Key: "agentId", Value: 1}}},
		},
		CollOTPs: {
			{Keys: bson.D{{Key: "expiresAt", Value: 1}}, Options: options.Index().SetExpireAfterSeconds(0)},
		},
	}

	for coll, models := range indexes {
		if _, err := d.db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("collection %s: %w", coll, err)
		}
	}

	return nil
}
