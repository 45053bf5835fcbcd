package database

import (
	"context"

	"github.com/mdouchement/tastybites/internal/model"
)

type (
	// A Client can interacts with the database.
	// Every collection is independent: there is no join and no transaction across collections.
	Client interface {
		// Import inserts the given documents in the named collection, keeping their IDs when defined.
		// It returns the number of inserted documents.
		Import(ctx context.Context, collection string, documents []*model.Document) (int, error)
		// Close the database.
		Close() error
		// IsNotFound returns true if err is a not found error.
		IsNotFound(err error) bool

		UserInteraction
		MenuInteraction
		ReviewInteraction
		CartInteraction
	}

	// An UserInteraction defines all the methods used to interact with a user record.
	UserInteraction interface {
		// FindUsers returns all the users.
		FindUsers(ctx context.Context) ([]*model.Document, error)
		// FindUserByMail returns the user for the given email.
		FindUserByMail(ctx context.Context, email string) (*model.Document, error)
		// InsertUser inserts the given user.
		InsertUser(ctx context.Context, user *model.Document) (*model.InsertResult, error)
		// UpdateUserRole sets the role of the user identified by id.
		UpdateUserRole(ctx context.Context, id, role string) (*model.UpdateResult, error)
		// DeleteUser deletes the user identified by id.
		DeleteUser(ctx context.Context, id string) (*model.DeleteResult, error)
	}

	// A MenuInteraction defines all the methods used to interact with menu records.
	MenuInteraction interface {
		// FindMenuItems returns all the menu items.
		FindMenuItems(ctx context.Context) ([]*model.Document, error)
	}

	// A ReviewInteraction defines all the methods used to interact with review records.
	ReviewInteraction interface {
		// FindReviews returns all the reviews.
		FindReviews(ctx context.Context) ([]*model.Document, error)
	}

	// A CartInteraction defines all the methods used to interact with cart records.
	CartInteraction interface {
		// FindCartItemsByMail returns all the cart items owned by the given email.
		FindCartItemsByMail(ctx context.Context, email string) ([]*model.Document, error)
		// InsertCartItem inserts the given cart item.
		InsertCartItem(ctx context.Context, item *model.Document) (*model.InsertResult, error)
		// DeleteCartItem deletes the cart item identified by id.
		DeleteCartItem(ctx context.Context, id string) (*model.DeleteResult, error)
	}
)

// Collections lists all the collections handled by a Client.
var Collections = []string{
	model.CollectionUsers,
	model.CollectionMenu,
	model.CollectionReview,
	model.CollectionCarts,
}

func isCollection(name string) bool {
	for _, c := range Collections {
		if c == name {
			return true
		}
	}
	return false
}
