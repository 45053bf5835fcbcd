package server

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
	"github.com/mdouchement/tastybites/internal/apierror"
	"github.com/mdouchement/tastybites/internal/database"
	"github.com/mdouchement/tastybites/internal/model"
	"github.com/pkg/errors"
)

// user contains all user handlers.
type user struct {
	db database.Client
}

///// List
////
//

// List renders all the users. Admin only.
func (h *user) List(c echo.Context) error {
	users, err := h.db.FindUsers(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, documents(users))
}

///// Register
////
//

// Register inserts the posted user unless its email is already registered.
func (h *user) Register(c echo.Context) error {
	var params model.Document
	if err := c.Bind(&params); err != nil {
		return err
	}
	params.SetID("")

	ctx := c.Request().Context()

	// The check and the insertion are not atomic.
	_, err := h.db.FindUserByMail(ctx, params.Email)
	if err == nil {
		return c.JSON(http.StatusOK, echo.Map{
			"message": "User already exist",
		})
	}
	if !h.db.IsNotFound(err) {
		return errors.Wrap(err, "could not get access to database")
	}

	result, err := h.db.InsertUser(ctx, &params)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}

///// IsAdmin
////
//

// IsAdmin tells whether the authenticated user is an admin.
// Asking for another user always answers false.
func (h *user) IsAdmin(c echo.Context) error {
	email, err := url.PathUnescape(c.Param("email"))
	if err != nil {
		return apierror.New(http.StatusBadRequest, "Invalid email")
	}
	if currentEmail(c) != email {
		return c.JSON(http.StatusOK, echo.Map{"admin": false})
	}

	u, err := h.db.FindUserByMail(c.Request().Context(), email)
	if err != nil && !h.db.IsNotFound(err) {
		return errors.Wrap(err, "could not get access to database")
	}

	return c.JSON(http.StatusOK, echo.Map{"admin": u.IsAdmin()})
}

///// Promote
////
//

// Promote grants the admin role to the user identified by id.
func (h *user) Promote(c echo.Context) error {
	result, err := h.db.UpdateUserRole(c.Request().Context(), c.Param("id"), model.RoleAdmin)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}

///// Delete
////
//

// Delete removes the user identified by id.
func (h *user) Delete(c echo.Context) error {
	result, err := h.db.DeleteUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}
