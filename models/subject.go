package models

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const SUBJECT_COLLECTION = "subjects"

type Subject struct {
	ID      string `json:"_id" bson:"_id" example:"637d5de216f58bc8ec7f7f51"`
	Subject string `json:"subject" bson:"subject" example:"Math"`
	V       int32  `json:"__v" bson:"__v"`
}

type SubjectModel struct {
	collection *mongo.Collection
}

func (subject *SubjectModel) Use() *mongo.Collection {
	return subject.collection
}

func (subject *SubjectModel) Insert(ctx context.Context, document interface{}) error {
	fields, err := withDocumentID(document)
	if err != nil {
		return err
	}
	_, err = subject.Use().InsertOne(ctx, fields)
	return err
}

func (subject *SubjectModel) InsertOrReplace(
	ctx context.Context,
	id string,
	document interface{},
) error {
	fields, err := withDocumentID(document)
	if err != nil {
		return err
	}
	_, err = subject.Use().ReplaceOne(
		ctx,
		bson.D{{Key: "_id", Value: documentID(id)}},
		fields,
		options.Replace().SetUpsert(true),
	)
	return err
}

func (subject *SubjectModel) FindByID(ctx context.Context, id string) (bson.Raw, error) {
	document, err := subject.Use().FindOne(ctx, byID(id)).Raw()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return document, nil
}

func (subject *SubjectModel) FindAll(ctx context.Context) ([]bson.Raw, error) {
	cursor, err := subject.Use().Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	documents := make([]bson.Raw, 0)
	for cursor.Next(ctx) {
		// Current is reused by the cursor on the next batch
		documents = append(documents, append(bson.Raw(nil), cursor.Current...))
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return documents, nil
}

func (subject *SubjectModel) Exists(ctx context.Context, id string) (bool, error) {
	count, err := subject.Use().CountDocuments(
		ctx,
		byID(id),
		options.Count().SetLimit(1),
	)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (subject *SubjectModel) DeleteByID(ctx context.Context, id string) error {
	_, err := subject.Use().DeleteOne(ctx, byID(id))
	return err
}

func (subject *SubjectModel) Count(ctx context.Context) (int64, error) {
	return subject.Use().CountDocuments(ctx, bson.D{})
}

// Mongoose keys subjects by ObjectID. Hex ids are stored that way and
// any other id stays a string.
func documentID(id string) interface{} {
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		return oid
	}
	return id
}

// byID also matches hex ids saved as plain strings
func byID(id string) bson.D {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return bson.D{{Key: "_id", Value: id}}
	}
	return bson.D{
		{
			Key: "_id",
			Value: bson.D{
				{Key: "$in", Value: bson.A{oid, id}},
			},
		},
	}
}

func withDocumentID(document interface{}) (bson.D, error) {
	raw, err := bson.Marshal(document)
	if err != nil {
		return nil, err
	}
	var fields bson.D
	if err := bson.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	for i, field := range fields {
		if id, ok := field.Value.(string); ok && field.Key == "_id" {
			fields[i].Value = documentID(id)
		}
	}
	return fields, nil
}

func NewSubjectModel(collection *mongo.Collection) *SubjectModel {
	return &SubjectModel{
		collection: collection,
	}
}
