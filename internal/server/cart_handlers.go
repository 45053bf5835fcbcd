package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/mdouchement/tastybites/internal/apierror"
	"github.com/mdouchement/tastybites/internal/database"
	"github.com/mdouchement/tastybites/internal/model"
)

// cart contains all cart handlers.
type cart struct {
	db database.Client
}

///// List
////
//

// List renders the cart items of the authenticated user.
func (h *cart) List(c echo.Context) error {
	email := c.QueryParam("email")
	if email == "" {
		return c.JSON(http.StatusOK, []*model.Document{})
	}

	if email != currentEmail(c) {
		return apierror.Forbidden()
	}

	items, err := h.db.FindCartItemsByMail(c.Request().Context(), email)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, documents(items))
}

///// Create
////
//

// Create inserts the posted cart item.
func (h *cart) Create(c echo.Context) error {
	var item model.Document
	if err := c.Bind(&item); err != nil {
		return err
	}
	item.SetID("")

	result, err := h.db.InsertCartItem(c.Request().Context(), &item)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}

///// Delete
////
//

// Delete removes the cart item identified by id.
func (h *cart) Delete(c echo.Context) error {
	result, err := h.db.DeleteCartItem(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}
