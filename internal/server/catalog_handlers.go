package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/mdouchement/tastybites/internal/database"
)

// catalog contains the read-only menu and review handlers.
type catalog struct {
	db database.Client
}

// Menu renders all the menu items.
func (h *catalog) Menu(c echo.Context) error {
	items, err := h.db.FindMenuItems(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, documents(items))
}

// Reviews renders all the reviews.
func (h *catalog) Reviews(c echo.Context) error {
	reviews, err := h.db.FindReviews(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, documents(reviews))
}
