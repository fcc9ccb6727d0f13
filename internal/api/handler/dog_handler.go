package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dogwalk/marketplace/internal/core/ports"
)

// DogHandler handles HTTP requests for dogs, nested under their owner.
type DogHandler struct {
	service   ports.DogService
	assembler *Assembler
}

func NewDogHandler(service ports.DogService, assembler *Assembler) *DogHandler {
	return &DogHandler{service: service, assembler: assembler}
}

type createDogRequest struct {
	Name  string `json:"name" validate:"required"`
	Breed string `json:"breed" validate:"required"`
	Age   *int   `json:"age" validate:"required,min=0"`
}

type patchDogRequest struct {
	Name  *string `json:"name"`
	Breed *string `json:"breed"`
	Age   *int    `json:"age"`
}

// List handles GET /users/:user_id/dogs.
func (h *DogHandler) List(c echo.Context) error {
	details, err := h.service.ListByOwner(c.Request().Context(), c.Param("user_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.assembler.Dogs(details))
}

// Create handles POST /users/:user_id/dogs.
func (h *DogHandler) Create(c echo.Context) error {
	var req createDogRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	_, err := h.service.Create(c.Request().Context(), ports.CreateDogInput{
		OwnerID: c.Param("user_id"),
		Name:    req.Name,
		Breed:   req.Breed,
		Age:     *req.Age,
	})
	if err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Get handles GET /users/:user_id/dogs/:id.
func (h *DogHandler) Get(c echo.Context) error {
	detail, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.assembler.Dog(detail.Dog, detail.Owner))
}

// Patch handles PATCH /users/:user_id/dogs/:id. At least one field must be
// present; the service rejects an empty patch, and a dog that does not
// belong to the path's owner reads as absent.
func (h *DogHandler) Patch(c echo.Context) error {
	var req patchDogRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	err := h.service.Update(c.Request().Context(), c.Param("user_id"), c.Param("id"), ports.DogPatch{
		Name:  req.Name,
		Breed: req.Breed,
		Age:   req.Age,
	})
	if err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete handles DELETE /users/:user_id/dogs/:id. Refused while an active
// job references the dog; a dog that does not belong to the path's owner
// reads as absent.
func (h *DogHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("user_id"), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
