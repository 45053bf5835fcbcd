package server_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/appleboy/gofight/v2"
	"github.com/mdouchement/tastybites/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/valyala/fastjson"
)

func TestRequestListCartItems(t *testing.T) {
	engine, ctrl, r, cleanup := setup()
	defer cleanup()

	_, err := ctrl.Database.Import(context.Background(), model.CollectionCarts, []*model.Document{
		model.NewDocument(model.M{"_id": "c1", "email": "a@x.com", "menuItemId": "m1", "name": "Soup", "price": 12.5}),
		model.NewDocument(model.M{"_id": "c2", "email": "a@x.com", "menuItemId": "m2", "name": "Salad"}),
		model.NewDocument(model.M{"_id": "c3", "email": "b@x.com", "menuItemId": "m1", "name": "Soup"}),
	})
	assert.NoError(t, err)

	r.GET("/carts?email=a@x.com").Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusUnauthorized, r.Code)
	})

	// Missing email
	r.GET("/carts").SetHeader(bearer(ctrl, "a@x.com")).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)
		assert.JSONEq(t, `[]`, r.Body.String())
	})

	// Someone else's cart
	r.GET("/carts?email=b@x.com").SetHeader(bearer(ctrl, "a@x.com")).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusForbidden, r.Code)
		assert.JSONEq(t, `{"error":true,"message":"Forbidden access"}`, r.Body.String())
	})

	r.GET("/carts?email=a@x.com").SetHeader(bearer(ctrl, "a@x.com")).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)

		v, err := fastjson.Parse(r.Body.String())
		assert.NoError(t, err)

		items := v.GetArray()
		assert.Len(t, items, 2)

		names := map[string]string{}
		for _, item := range items {
			assert.Equal(t, "a@x.com", string(item.GetStringBytes("email")))
			names[string(item.GetStringBytes("_id"))] = string(item.GetStringBytes("name"))
		}
		assert.Equal(t, map[string]string{"c1": "Soup", "c2": "Salad"}, names)
	})

	r.GET("/carts?email=c@x.com").SetHeader(bearer(ctrl, "c@x.com")).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)
		assert.JSONEq(t, `[]`, r.Body.String())
	})
}

func TestRequestCreateCartItem(t *testing.T) {
	engine, ctrl, r, cleanup := setup()
	defer cleanup()

	params := gofight.D{
		"email":      "a@x.com",
		"menuItemId": "m1",
		"name":       "Soup",
		"image":      "https://example.com/soup.png",
	}

	var id string
	r.POST("/carts").SetHeader(jsonHeader).SetJSON(params).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)

		v, err := fastjson.Parse(r.Body.String())
		assert.NoError(t, err)

		assert.True(t, v.GetBool("acknowledged"))
		id = string(v.GetStringBytes("insertedId"))
		assert.NotEmpty(t, id)
	})

	items, err := ctrl.Database.FindCartItemsByMail(context.Background(), "a@x.com")
	assert.NoError(t, err)
	if assert.Len(t, items, 1) {
		assert.Equal(t, model.M{
			"_id":        id,
			"email":      "a@x.com",
			"menuItemId": "m1",
			"name":       "Soup",
			"image":      "https://example.com/soup.png",
		}, items[0].Attributes())
	}

	// Duplicates are allowed
	r.POST("/carts").SetHeader(jsonHeader).SetJSON(params).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)
	})

	items, err = ctrl.Database.FindCartItemsByMail(context.Background(), "a@x.com")
	assert.NoError(t, err)
	assert.Len(t, items, 2)

	r.POST("/carts").Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusBadRequest, r.Code)
	})
}

func TestRequestDeleteCartItem(t *testing.T) {
	engine, ctrl, r, cleanup := setup()
	defer cleanup()

	_, err := ctrl.Database.Import(context.Background(), model.CollectionCarts, []*model.Document{
		model.NewDocument(model.M{"_id": "c1", "email": "a@x.com", "name": "Soup"}),
	})
	assert.NoError(t, err)

	r.DELETE("/carts/c1").Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)
		assert.JSONEq(t, `{"acknowledged":true,"deletedCount":1}`, r.Body.String())
	})

	r.DELETE("/carts/c1").Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)
		assert.JSONEq(t, `{"acknowledged":true,"deletedCount":0}`, r.Body.String())
	})

	items, err := ctrl.Database.FindCartItemsByMail(context.Background(), "a@x.com")
	assert.NoError(t, err)
	assert.Empty(t, items)
}
