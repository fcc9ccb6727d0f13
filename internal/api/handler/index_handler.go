package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// IndexHandler serves the API root, pointing clients at the endpoint groups.
type IndexHandler struct {
	baseURL string
}

func NewIndexHandler(baseURL string) *IndexHandler {
	return &IndexHandler{baseURL: baseURL}
}

func (h *IndexHandler) Index(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"authEndpointRoot":  h.baseURL + "/auth",
		"jobsEndpointRoot":  h.baseURL + "/jobs",
		"usersEndpointRoot": h.baseURL + "/users",
	})
}
