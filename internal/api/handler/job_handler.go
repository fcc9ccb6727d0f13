package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dogwalk/marketplace/internal/api/middleware"
	"github.com/dogwalk/marketplace/internal/core/domain"
	"github.com/dogwalk/marketplace/internal/core/ports"
)

// JobHandler handles HTTP requests for job operations.
type JobHandler struct {
	service   ports.JobService
	assembler *Assembler
}

func NewJobHandler(service ports.JobService, assembler *Assembler) *JobHandler {
	return &JobHandler{service: service, assembler: assembler}
}

type locationRequest struct {
	// Pointers so that a legitimate 0.0 coordinate still satisfies required.
	Latitude  *float64 `json:"latitude" validate:"required"`
	Longitude *float64 `json:"longitude" validate:"required"`
}

type postJobRequest struct {
	DogID    string           `json:"dogId" validate:"required"`
	Pay      float64          `json:"pay" validate:"required,gt=0"`
	Location *locationRequest `json:"location" validate:"required"`
	Deadline int64            `json:"deadline"`
}

// List handles GET /jobs, filtered by exactly one of id, owner_id, dog_id,
// walker_id, or status. The id filter returns a single object; the others
// return arrays. No filter at all is a 400.
func (h *JobHandler) List(c echo.Context) error {
	q := c.QueryParams()

	switch {
	case q.Get("id") != "":
		detail, err := h.service.Get(c.Request().Context(), q.Get("id"))
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, h.assembler.Job(detail))

	case q.Get("owner_id") != "":
		return h.list(c, ports.JobFilter{OwnerID: q.Get("owner_id")})

	case q.Get("dog_id") != "":
		return h.list(c, ports.JobFilter{DogID: q.Get("dog_id")})

	case q.Get("walker_id") != "":
		return h.list(c, ports.JobFilter{WalkerID: q.Get("walker_id")})

	case q.Get("status") != "":
		status := domain.JobStatus(q.Get("status"))
		if !status.IsValid() {
			return echo.NewHTTPError(http.StatusBadRequest, "unknown job status")
		}
		return h.list(c, ports.JobFilter{Status: status})
	}

	return echo.NewHTTPError(http.StatusBadRequest, "one of id, owner_id, dog_id, walker_id, or status is required")
}

func (h *JobHandler) list(c echo.Context, filter ports.JobFilter) error {
	details, err := h.service.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.assembler.Jobs(details))
}

// Create handles POST /jobs. Owner capability is enforced by the guard; the
// service additionally checks that the dog belongs to the caller.
func (h *JobHandler) Create(c echo.Context) error {
	var req postJobRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	_, err := h.service.Post(c.Request().Context(), ports.PostJobInput{
		OwnerID: middleware.Actor(c).ID,
		DogID:   req.DogID,
		Pay:     req.Pay,
		Location: domain.Coordinates{
			Latitude:  *req.Location.Latitude,
			Longitude: *req.Location.Longitude,
		},
		Deadline: req.Deadline,
	})
	if err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Get handles GET /jobs/:id.
func (h *JobHandler) Get(c echo.Context) error {
	detail, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.assembler.Job(detail))
}

// Delete handles DELETE /jobs/:id.
func (h *JobHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id"), middleware.Actor(c)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Accept handles POST /jobs/:id/accept.
func (h *JobHandler) Accept(c echo.Context) error {
	if err := h.service.Accept(c.Request().Context(), c.Param("id"), middleware.Actor(c)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Complete handles POST /jobs/:id/complete.
func (h *JobHandler) Complete(c echo.Context) error {
	if err := h.service.Complete(c.Request().Context(), c.Param("id"), middleware.Actor(c)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Pay handles POST /jobs/:id/pay.
func (h *JobHandler) Pay(c echo.Context) error {
	if err := h.service.Pay(c.Request().Context(), c.Param("id"), middleware.Actor(c)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
