package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/mdouchement/tastybites/internal/apierror"
	"github.com/mdouchement/tastybites/internal/token"
)

// tokenHandlers contains all token handlers.
type tokenHandlers struct {
	tokens *token.Service
}

// Issue signs the posted identity and returns a bearer token valid for one hour.
func (h *tokenHandlers) Issue(c echo.Context) error {
	var payload token.Payload
	if err := c.Bind(&payload); err != nil {
		return err
	}
	if payload == nil {
		return apierror.New(http.StatusBadRequest, "Could not get token payload.")
	}

	tk, err := h.tokens.Issue(payload)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"token": tk,
	})
}
