package database

import (
	"context"

	"github.com/asdine/storm/v3"
	scodec "github.com/asdine/storm/v3/codec"
	"github.com/asdine/storm/v3/codec/msgpack"
	"github.com/asdine/storm/v3/q"
	"github.com/gofrs/uuid"
	"github.com/mdouchement/tastybites/internal/model"
	"github.com/pkg/errors"
)

type strm struct {
	db *storm.DB
}

// StormCodec is the default format used to store data in the database.
var StormCodec scodec.MarshalUnmarshaler = msgpack.Codec

// StormInit initializes Storm database.
func StormInit(database string, codec scodec.MarshalUnmarshaler) error {
	db, err := storm.Open(database, storm.Codec(codec))
	if err != nil {
		return errors.Wrap(err, "could not get database connection")
	}
	defer db.Close()

	for _, collection := range Collections {
		if err := db.From(collection).Init(&model.Document{}); err != nil {
			return errors.Wrapf(err, "could not init %s index", collection)
		}
	}
	return nil
}

// StormReIndex reindex Storm database.
func StormReIndex(database string, codec scodec.MarshalUnmarshaler) error {
	db, err := storm.Open(database, storm.Codec(codec))
	if err != nil {
		return errors.Wrap(err, "could not get database connection")
	}
	defer db.Close()

	for _, collection := range Collections {
		if err := db.From(collection).ReIndex(&model.Document{}); err != nil {
			return errors.Wrapf(err, "could not ReIndex %s", collection)
		}
	}
	return nil
}

// StormOpen returns a new Storm database connection.
func StormOpen(database string, codec scodec.MarshalUnmarshaler) (Client, error) {
	db, err := storm.Open(database, storm.Codec(codec))
	if err != nil {
		return nil, errors.Wrap(err, "could not get database connection")
	}

	return &strm{
		db: db,
	}, nil
}

// Import inserts the given documents in the named collection, keeping their IDs when defined.
func (c *strm) Import(_ context.Context, collection string, documents []*model.Document) (int, error) {
	if !isCollection(collection) {
		return 0, errors.Errorf("unknown collection: %s", collection)
	}

	tx, err := c.db.From(collection).Begin(true)
	if err != nil {
		return 0, errors.Wrap(err, "could not begin import")
	}
	defer tx.Rollback()

	for i, document := range documents {
		if _, err = insert(tx, document); err != nil {
			return 0, errors.Wrapf(err, "could not import document #%d", i)
		}
	}

	return len(documents), errors.Wrap(tx.Commit(), "could not commit import")
}

// Close the database.
func (c *strm) Close() error {
	return c.db.Close()
}

// IsNotFound returns true if err is nil or a not found error.
func (c *strm) IsNotFound(err error) bool {
	return errors.Cause(err) == storm.ErrNotFound
}

// FindUsers returns all the users.
func (c *strm) FindUsers(_ context.Context) ([]*model.Document, error) {
	users, err := c.all(model.CollectionUsers)
	return users, errors.Wrap(err, "could not find users")
}

// FindUserByMail returns the user for the given email.
func (c *strm) FindUserByMail(_ context.Context, email string) (*model.Document, error) {
	users := c.db.From(model.CollectionUsers)

	var user model.Document
	var err error
	if email == "" {
		// Zero values are not indexed.
		err = users.Select(q.Eq("Email", email)).First(&user)
	} else {
		err = users.One("Email", email, &user)
	}
	if err != nil {
		return nil, errors.Wrap(err, "find user by mail")
	}
	return &user, nil
}

// InsertUser inserts the given user.
func (c *strm) InsertUser(_ context.Context, user *model.Document) (*model.InsertResult, error) {
	result, err := insert(c.db.From(model.CollectionUsers), user)
	return result, errors.Wrap(err, "could not insert user")
}

// UpdateUserRole sets the role of the user identified by id.
func (c *strm) UpdateUserRole(_ context.Context, id, role string) (*model.UpdateResult, error) {
	tx, err := c.db.From(model.CollectionUsers).Begin(true)
	if err != nil {
		return nil, errors.Wrap(err, "could not begin user update")
	}
	defer tx.Rollback()

	result := &model.UpdateResult{Acknowledged: true}

	var user model.Document
	err = tx.One("ID", id, &user)
	if err != nil {
		if c.IsNotFound(err) {
			return result, nil
		}
		return nil, errors.Wrap(err, "find user by id")
	}
	result.MatchedCount = 1

	if user.Role == role {
		return result, nil
	}

	user.Role = role
	if err = tx.Save(&user); err != nil {
		return nil, errors.Wrap(err, "could not save user role")
	}
	result.ModifiedCount = 1

	return result, errors.Wrap(tx.Commit(), "could not commit user update")
}

// DeleteUser deletes the user identified by id.
func (c *strm) DeleteUser(_ context.Context, id string) (*model.DeleteResult, error) {
	result, err := deleteByID(c.db.From(model.CollectionUsers), id)
	return result, errors.Wrap(err, "could not delete user")
}

// FindMenuItems returns all the menu items.
func (c *strm) FindMenuItems(_ context.Context) ([]*model.Document, error) {
	items, err := c.all(model.CollectionMenu)
	return items, errors.Wrap(err, "could not find menu items")
}

// FindReviews returns all the reviews.
func (c *strm) FindReviews(_ context.Context) ([]*model.Document, error) {
	reviews, err := c.all(model.CollectionReview)
	return reviews, errors.Wrap(err, "could not find reviews")
}

// FindCartItemsByMail returns all the cart items owned by the given email.
func (c *strm) FindCartItemsByMail(_ context.Context, email string) ([]*model.Document, error) {
	carts := c.db.From(model.CollectionCarts)

	items := make([]*model.Document, 0)
	var err error
	if email == "" {
		err = carts.Select(q.Eq("Email", email)).Find(&items)
	} else {
		err = carts.Find("Email", email, &items)
	}
	if err != nil && !c.IsNotFound(err) {
		return nil, errors.Wrap(err, "could not find cart items by mail")
	}
	return items, nil
}

// InsertCartItem inserts the given cart item.
func (c *strm) InsertCartItem(_ context.Context, item *model.Document) (*model.InsertResult, error) {
	result, err := insert(c.db.From(model.CollectionCarts), item)
	return result, errors.Wrap(err, "could not insert cart item")
}

// DeleteCartItem deletes the cart item identified by id.
func (c *strm) DeleteCartItem(_ context.Context, id string) (*model.DeleteResult, error) {
	result, err := deleteByID(c.db.From(model.CollectionCarts), id)
	return result, errors.Wrap(err, "could not delete cart item")
}

func (c *strm) all(collection string) ([]*model.Document, error) {
	documents := make([]*model.Document, 0)
	err := c.db.From(collection).All(&documents)
	if err != nil && !c.IsNotFound(err) {
		return nil, err
	}
	return documents, nil
}

func insert(node storm.Node, document model.Model) (*model.InsertResult, error) {
	if document.GetID() == "" {
		document.SetID(uuid.Must(uuid.NewV4()).String())
	}

	if err := node.Save(document); err != nil {
		return nil, err
	}

	return &model.InsertResult{
		Acknowledged: true,
		InsertedID:   document.GetID(),
	}, nil
}

func deleteByID(node storm.Node, id string) (*model.DeleteResult, error) {
	result := &model.DeleteResult{Acknowledged: true}

	var document model.Document
	err := node.One("ID", id, &document)
	if err != nil {
		if errors.Cause(err) == storm.ErrNotFound {
			return result, nil
		}
		return nil, err
	}

	if err = node.DeleteStruct(&document); err != nil {
		return nil, err
	}
	result.DeletedCount = 1

	return result, nil
}
