package database

import (
	"context"
	"fmt"
	"time"

	"github.com/mdouchement/tastybites/internal/model"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mgo struct {
	client *mongo.Client
	db     *mongo.Database
}

// MongoOpen returns a new MongoDB connection on the given database name.
// The connection is checked with a ping before returning.
func MongoOpen(ctx context.Context, uri, database string) (Client, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1).SetStrict(true).SetDeprecationErrors(true))

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, errors.Wrap(err, "could not get database connection")
	}

	err = client.Database("admin").RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(err, "could not ping database")
	}

	return &mgo{
		client: client,
		db:     client.Database(database),
	}, nil
}

// Import inserts the given documents in the named collection, keeping their IDs when defined.
func (c *mgo) Import(ctx context.Context, collection string, documents []*model.Document) (int, error) {
	if !isCollection(collection) {
		return 0, errors.Errorf("unknown collection: %s", collection)
	}
	if len(documents) == 0 {
		return 0, nil
	}

	payload := make([]any, len(documents))
	for i, document := range documents {
		payload[i] = toBSON(document)
	}

	result, err := c.db.Collection(collection).InsertMany(ctx, payload)
	if err != nil {
		return 0, errors.Wrap(err, "could not import documents")
	}
	return len(result.InsertedIDs), nil
}

// Close the database.
func (c *mgo) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return c.client.Disconnect(ctx)
}

// IsNotFound returns true if err is a not found error.
func (c *mgo) IsNotFound(err error) bool {
	return errors.Cause(err) == mongo.ErrNoDocuments
}

// FindUsers returns all the users.
func (c *mgo) FindUsers(ctx context.Context) ([]*model.Document, error) {
	users, err := c.find(ctx, model.CollectionUsers, bson.M{})
	return users, errors.Wrap(err, "could not find users")
}

// FindUserByMail returns the user for the given email.
func (c *mgo) FindUserByMail(ctx context.Context, email string) (*model.Document, error) {
	var user bson.M
	err := c.db.Collection(model.CollectionUsers).FindOne(ctx, emailFilter(email)).Decode(&user)
	if err != nil {
		return nil, errors.Wrap(err, "find user by mail")
	}
	return fromBSON(user), nil
}

// InsertUser inserts the given user.
func (c *mgo) InsertUser(ctx context.Context, user *model.Document) (*model.InsertResult, error) {
	result, err := c.insert(ctx, model.CollectionUsers, user)
	return result, errors.Wrap(err, "could not insert user")
}

// UpdateUserRole sets the role of the user identified by id.
func (c *mgo) UpdateUserRole(ctx context.Context, id, role string) (*model.UpdateResult, error) {
	update := bson.M{"$set": bson.M{model.KeyRole: role}}

	r, err := c.db.Collection(model.CollectionUsers).UpdateOne(ctx, idFilter(id), update)
	if err != nil {
		return nil, errors.Wrap(err, "could not update user role")
	}

	result := &model.UpdateResult{
		Acknowledged:  true,
		MatchedCount:  r.MatchedCount,
		ModifiedCount: r.ModifiedCount,
		UpsertedCount: r.UpsertedCount,
	}
	if r.UpsertedID != nil {
		id := renderID(r.UpsertedID)
		result.UpsertedID = &id
	}
	return result, nil
}

// DeleteUser deletes the user identified by id.
func (c *mgo) DeleteUser(ctx context.Context, id string) (*model.DeleteResult, error) {
	result, err := c.delete(ctx, model.CollectionUsers, id)
	return result, errors.Wrap(err, "could not delete user")
}

// FindMenuItems returns all the menu items.
func (c *mgo) FindMenuItems(ctx context.Context) ([]*model.Document, error) {
	items, err := c.find(ctx, model.CollectionMenu, bson.M{})
	return items, errors.Wrap(err, "could not find menu items")
}

// FindReviews returns all the reviews.
func (c *mgo) FindReviews(ctx context.Context) ([]*model.Document, error) {
	reviews, err := c.find(ctx, model.CollectionReview, bson.M{})
	return reviews, errors.Wrap(err, "could not find reviews")
}

// FindCartItemsByMail returns all the cart items owned by the given email.
func (c *mgo) FindCartItemsByMail(ctx context.Context, email string) ([]*model.Document, error) {
	items, err := c.find(ctx, model.CollectionCarts, emailFilter(email))
	return items, errors.Wrap(err, "could not find cart items by mail")
}

// InsertCartItem inserts the given cart item.
func (c *mgo) InsertCartItem(ctx context.Context, item *model.Document) (*model.InsertResult, error) {
	result, err := c.insert(ctx, model.CollectionCarts, item)
	return result, errors.Wrap(err, "could not insert cart item")
}

// DeleteCartItem deletes the cart item identified by id.
func (c *mgo) DeleteCartItem(ctx context.Context, id string) (*model.DeleteResult, error) {
	result, err := c.delete(ctx, model.CollectionCarts, id)
	return result, errors.Wrap(err, "could not delete cart item")
}

func (c *mgo) find(ctx context.Context, collection string, filter bson.M) ([]*model.Document, error) {
	cursor, err := c.db.Collection(collection).Find(ctx, filter)
	if err != nil {
		return nil, err
	}

	var records []bson.M
	if err = cursor.All(ctx, &records); err != nil {
		return nil, err
	}

	documents := make([]*model.Document, len(records))
	for i, record := range records {
		documents[i] = fromBSON(record)
	}
	return documents, nil
}

func (c *mgo) insert(ctx context.Context, collection string, document *model.Document) (*model.InsertResult, error) {
	r, err := c.db.Collection(collection).InsertOne(ctx, toBSON(document))
	if err != nil {
		return nil, err
	}

	document.SetID(renderID(r.InsertedID))
	return &model.InsertResult{
		Acknowledged: true,
		InsertedID:   document.GetID(),
	}, nil
}

func (c *mgo) delete(ctx context.Context, collection, id string) (*model.DeleteResult, error) {
	r, err := c.db.Collection(collection).DeleteOne(ctx, idFilter(id))
	if err != nil {
		return nil, err
	}

	return &model.DeleteResult{
		Acknowledged: true,
		DeletedCount: r.DeletedCount,
	}, nil
}

// emailFilter matches the documents without email when email is empty.
func emailFilter(email string) bson.M {
	if email == "" {
		return bson.M{model.KeyEmail: nil}
	}
	return bson.M{model.KeyEmail: email}
}

// idFilter matches an ObjectID when id is a valid hexadecimal ObjectID, the raw string otherwise.
func idFilter(id string) bson.M {
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		return bson.M{model.KeyID: oid}
	}
	return bson.M{model.KeyID: id}
}

func renderID(id any) string {
	switch v := id.(type) {
	case primitive.ObjectID:
		return v.Hex()
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

func toBSON(document *model.Document) bson.M {
	m := bson.M(document.Attributes())
	if id, ok := m[model.KeyID].(string); ok {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			m[model.KeyID] = oid
		}
	}
	return m
}

func fromBSON(record bson.M) *model.Document {
	attributes := make(model.M, len(record))
	for k, v := range record {
		attributes[k] = v
	}

	if oid, ok := attributes[model.KeyID].(primitive.ObjectID); ok {
		attributes[model.KeyID] = oid.Hex()
	}
	return model.NewDocument(attributes)
}
