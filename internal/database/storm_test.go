package database_test

import (
	"context"
	"os"
	"testing"

	"github.com/mdouchement/tastybites/internal/database"
	"github.com/mdouchement/tastybites/internal/model"
	"github.com/mdouchement/tastybites/pkg/stormcodec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) database.Client {
	tmpfile, err := os.CreateTemp("", "tastybites.*.db")
	require.NoError(t, err)
	filename := tmpfile.Name()
	tmpfile.Close()

	require.NoError(t, database.StormInit(filename, database.StormCodec))

	db, err := database.StormOpen(filename, database.StormCodec)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
		os.RemoveAll(filename)
	})
	return db
}

func TestStormUsers(t *testing.T) {
	ctx := context.Background()
	db := setup(t)

	users, err := db.FindUsers(ctx)
	assert.NoError(t, err)
	assert.Empty(t, users)
	assert.NotNil(t, users)

	_, err = db.FindUserByMail(ctx, "a@x.com")
	assert.Error(t, err)
	assert.True(t, db.IsNotFound(err))

	user := model.NewDocument(model.M{"email": "a@x.com", "name": "Alice"})
	result, err := db.InsertUser(ctx, user)
	assert.NoError(t, err)
	assert.True(t, result.Acknowledged)
	assert.NotEmpty(t, result.InsertedID)
	assert.Equal(t, user.ID, result.InsertedID)

	found, err := db.FindUserByMail(ctx, "a@x.com")
	assert.NoError(t, err)
	assert.Equal(t, result.InsertedID, found.ID)
	assert.Equal(t, "Alice", found.Fields["name"])
	assert.False(t, found.IsAdmin())

	users, err = db.FindUsers(ctx)
	assert.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestStormUsersWithoutEmail(t *testing.T) {
	ctx := context.Background()
	db := setup(t)

	_, err := db.InsertUser(ctx, model.NewDocument(model.M{"email": "a@x.com"}))
	require.NoError(t, err)

	_, err = db.FindUserByMail(ctx, "")
	assert.True(t, db.IsNotFound(err))

	anon := model.NewDocument(model.M{"name": "anon"})
	_, err = db.InsertUser(ctx, anon)
	require.NoError(t, err)

	found, err := db.FindUserByMail(ctx, "")
	assert.NoError(t, err)
	assert.Equal(t, anon.ID, found.ID)

	items, err := db.FindCartItemsByMail(ctx, "")
	assert.NoError(t, err)
	assert.Empty(t, items)
}

func TestStormUpdateUserRole(t *testing.T) {
	ctx := context.Background()
	db := setup(t)

	user := model.NewDocument(model.M{"email": "a@x.com", "name": "Alice"})
	_, err := db.InsertUser(ctx, user)
	require.NoError(t, err)

	result, err := db.UpdateUserRole(ctx, user.ID, model.RoleAdmin)
	assert.NoError(t, err)
	assert.Equal(t, &model.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}, result)

	found, err := db.FindUserByMail(ctx, "a@x.com")
	assert.NoError(t, err)
	assert.True(t, found.IsAdmin())
	assert.Equal(t, model.M{"_id": user.ID, "email": "a@x.com", "name": "Alice", "role": "admin"}, found.Attributes())

	// Already admin
	result, err = db.UpdateUserRole(ctx, user.ID, model.RoleAdmin)
	assert.NoError(t, err)
	assert.Equal(t, &model.UpdateResult{Acknowledged: true, MatchedCount: 1}, result)

	result, err = db.UpdateUserRole(ctx, "unknown", model.RoleAdmin)
	assert.NoError(t, err)
	assert.Equal(t, &model.UpdateResult{Acknowledged: true}, result)
}

func TestStormDeleteUser(t *testing.T) {
	ctx := context.Background()
	db := setup(t)

	user := model.NewDocument(model.M{"email": "a@x.com"})
	_, err := db.InsertUser(ctx, user)
	require.NoError(t, err)

	result, err := db.DeleteUser(ctx, "unknown")
	assert.NoError(t, err)
	assert.Equal(t, &model.DeleteResult{Acknowledged: true}, result)

	result, err = db.DeleteUser(ctx, user.ID)
	assert.NoError(t, err)
	assert.Equal(t, &model.DeleteResult{Acknowledged: true, DeletedCount: 1}, result)

	_, err = db.FindUserByMail(ctx, "a@x.com")
	assert.True(t, db.IsNotFound(err))
}

func TestStormCarts(t *testing.T) {
	ctx := context.Background()
	db := setup(t)

	items, err := db.FindCartItemsByMail(ctx, "a@x.com")
	assert.NoError(t, err)
	assert.Empty(t, items)
	assert.NotNil(t, items)

	first := model.NewDocument(model.M{"email": "a@x.com", "name": "Salad"})
	_, err = db.InsertCartItem(ctx, first)
	require.NoError(t, err)
	_, err = db.InsertCartItem(ctx, model.NewDocument(model.M{"email": "a@x.com", "name": "Soup"}))
	require.NoError(t, err)
	_, err = db.InsertCartItem(ctx, model.NewDocument(model.M{"email": "b@x.com", "name": "Pizza"}))
	require.NoError(t, err)

	items, err = db.FindCartItemsByMail(ctx, "a@x.com")
	assert.NoError(t, err)
	assert.Len(t, items, 2)

	result, err := db.DeleteCartItem(ctx, first.ID)
	assert.NoError(t, err)
	assert.EqualValues(t, 1, result.DeletedCount)

	items, err = db.FindCartItemsByMail(ctx, "a@x.com")
	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, "Soup", items[0].Fields["name"])
}

func TestStormImport(t *testing.T) {
	ctx := context.Background()
	db := setup(t)

	menu := []*model.Document{
		model.NewDocument(model.M{"_id": "642c155b2c4774f05c36eeaa", "name": "Caesar Salad", "price": 10.5}),
		model.NewDocument(model.M{"name": "Roast Duck", "price": 14.5}),
	}

	n, err := db.Import(ctx, model.CollectionMenu, menu)
	assert.NoError(t, err)
	assert.Equal(t, 2, n)

	items, err := db.FindMenuItems(ctx)
	assert.NoError(t, err)
	assert.Len(t, items, 2)

	ids := []string{items[0].ID, items[1].ID}
	assert.Contains(t, ids, "642c155b2c4774f05c36eeaa")

	reviews, err := db.FindReviews(ctx)
	assert.NoError(t, err)
	assert.Empty(t, reviews)

	_, err = db.Import(ctx, "orders", menu)
	assert.EqualError(t, err, "unknown collection: orders")
}

func TestStormCodecs(t *testing.T) {
	ctx := context.Background()

	for _, name := range []string{"json", "cbor", "binc"} {
		codec, err := stormcodec.ByName(name)
		require.NoError(t, err)

		tmpfile, err := os.CreateTemp("", "tastybites.*.db")
		require.NoError(t, err)
		filename := tmpfile.Name()
		tmpfile.Close()
		defer os.RemoveAll(filename)

		db, err := database.StormOpen(filename, codec)
		require.NoError(t, err)

		_, err = db.InsertCartItem(ctx, model.NewDocument(model.M{"email": "a@x.com", "name": "Salad"}))
		assert.NoError(t, err, name)

		items, err := db.FindCartItemsByMail(ctx, "a@x.com")
		assert.NoError(t, err, name)
		if assert.Len(t, items, 1, name) {
			assert.Equal(t, "Salad", items[0].Fields["name"], name)
		}

		db.Close()
	}
}
