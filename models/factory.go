package models

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
)

// Collection is the document store capability set repositories are built on.
// Documents are returned raw, decoding belongs to the caller.
type Collection interface {
	Insert(ctx context.Context, document interface{}) error
	InsertOrReplace(ctx context.Context, id string, document interface{}) error
	// FindByID returns nil without error when no document has the id
	FindByID(ctx context.Context, id string) (bson.Raw, error)
	FindAll(ctx context.Context) ([]bson.Raw, error)
	Exists(ctx context.Context, id string) (bool, error)
	DeleteByID(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}
