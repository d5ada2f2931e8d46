// Package mongo stores users and projects as documents. Collaborators are
// embedded in their project, so every write touches one document.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/researchdesk/internal/researchdesk/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	usersCollection    = "users"
	projectsCollection = "projects"
)

type Store struct {
	client   *mongo.Client
	users    *mongo.Collection
	projects *mongo.Collection
}

var _ store.Store = (*Store)(nil)

// NewStore connects to uri and uses database. The connection is verified
// with a ping.
func NewStore(ctx context.Context, uri, database string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	db := client.Database(database)
	return &Store{
		client:   client,
		users:    db.Collection(usersCollection),
		projects: db.Collection(projectsCollection),
	}, nil
}

func (s *Store) Users() store.Users       { return &usersRepo{users: s.users} }
func (s *Store) Projects() store.Projects { return &projectsRepo{projects: s.projects, users: s.users} }

// ApplyMigrations creates the indexes the queries rely on. It is safe to run
// on every start.
func (s *Store) ApplyMigrations() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	_, err := s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("users_email_unique"),
	})
	if err != nil {
		return fmt.Errorf("create users index: %w", err)
	}

	_, err = s.projects.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "owner_id", Value: 1}},
			Options: options.Index().SetName("projects_owner"),
		},
		{
			Keys:    bson.D{{Key: "collaborator_emails", Value: 1}},
			Options: options.Index().SetName("projects_collaborator_emails"),
		},
		{
			Keys:    bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}},
			Options: options.Index().SetName("projects_created"),
		},
	})
	if err != nil {
		return fmt.Errorf("create projects indexes: %w", err)
	}
	return nil
}

// WithTx runs fn against the store directly. Multi-document transactions
// need a replica set, and every repository write here is a single-document
// update, so there is nothing for a transaction to protect.
func (s *Store) WithTx(_ context.Context, fn func(tx store.Tx) error) error {
	return fn(s)
}

func (s *Store) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func mapNotFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return store.ErrNotFound
	}
	return err
}

func now() time.Time { return time.Now().UTC().Truncate(time.Millisecond) }
