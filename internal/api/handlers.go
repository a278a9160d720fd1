package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/renato0307/spotter/internal/domain"
	"github.com/renato0307/spotter/internal/ports"
	"github.com/renato0307/spotter/internal/services"
)

// LiveHandler serves the live coaching flow of the authenticated coach
type LiveHandler struct {
	connectivity ports.Connectivity
	registry     *services.ControllerRegistry
}

// NewLiveHandler creates a new LiveHandler
func NewLiveHandler(registry *services.ControllerRegistry, connectivity ports.Connectivity) *LiveHandler {
	return &LiveHandler{
		connectivity: connectivity,
		registry:     registry,
	}
}

// controller returns the caller's controller, aborting the request when there is none
func (h *LiveHandler) controller(c *gin.Context) (*services.Controller, bool) {
	identity, ok := identityFrom(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return nil, false
	}
	ctrl, err := h.registry.Get(c.Request.Context(), identity.UserID)
	if err != nil {
		abortWithError(c, err)
		return nil, false
	}
	return ctrl, true
}

func (h *LiveHandler) online() bool {
	if h.connectivity == nil {
		return true
	}
	return h.connectivity.Online()
}

func (h *LiveHandler) respond(c *gin.Context, ctrl *services.Controller) {
	c.JSON(http.StatusOK, toViewResponse(ctrl.View(), h.online()))
}

// View returns the current flow snapshot
func (h *LiveHandler) View(c *gin.Context) {
	ctrl, ok := h.controller(c)
	if !ok {
		return
	}
	h.respond(c, ctrl)
}

// Open re-enters date selection and runs the resume check (page reload)
func (h *LiveHandler) Open(c *gin.Context) {
	ctrl, ok := h.controller(c)
	if !ok {
		return
	}
	decision := ctrl.Open(c.Request.Context())
	c.JSON(http.StatusOK, openResponse{
		Decision: decision,
		View:     toViewResponse(ctrl.View(), h.online()),
	})
}

// Resume continues the offered run
func (h *LiveHandler) Resume(c *gin.Context) {
	h.do(c, func(ctrl *services.Controller) error {
		return ctrl.Resume(c.Request.Context())
	})
}

// Restart discards the persisted run
func (h *LiveHandler) Restart(c *gin.Context) {
	h.do(c, func(ctrl *services.Controller) error {
		return ctrl.Restart(c.Request.Context())
	})
}

// Sessions lists the coach's sessions for ?date=YYYY-MM-DD
func (h *LiveHandler) Sessions(c *gin.Context) {
	ctrl, ok := h.controller(c)
	if !ok {
		return
	}
	sessions, err := ctrl.SelectDate(c.Request.Context(), ctrl.UserID(), c.Query("date"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": toSessionResponses(sessions)})
}

// Start begins a live run
func (h *LiveHandler) Start(c *gin.Context) {
	var input startRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.do(c, func(ctrl *services.Controller) error {
		return ctrl.Start(c.Request.Context(), input.Date, input.SessionIDs)
	})
}

// Next moves to the next client
func (h *LiveHandler) Next(c *gin.Context) {
	h.do(c, func(ctrl *services.Controller) error {
		return ctrl.NextClient(c.Request.Context())
	})
}

// Previous moves to the previous client
func (h *LiveHandler) Previous(c *gin.Context) {
	h.do(c, func(ctrl *services.Controller) error {
		return ctrl.PreviousClient(c.Request.Context())
	})
}

// GoTo jumps to a client by index
func (h *LiveHandler) GoTo(c *gin.Context) {
	var input goToRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.do(c, func(ctrl *services.Controller) error {
		return ctrl.GoToClient(c.Request.Context(), *input.Index)
	})
}

// RecordExercise records an exercise outcome. Remote failures show up in saveStatus.
func (h *LiveHandler) RecordExercise(c *gin.Context) {
	var input exerciseRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.do(c, func(ctrl *services.Controller) error {
		return ctrl.RecordExercise(c.Request.Context(), input.SessionID, *input.ExerciseIndex, input.Outcome)
	})
}

// Refresh reloads the run's sessions from the remote store
func (h *LiveHandler) Refresh(c *gin.Context) {
	h.do(c, func(ctrl *services.Controller) error {
		return ctrl.Refresh(c.Request.Context())
	})
}

// Finish ends the run
func (h *LiveHandler) Finish(c *gin.Context) {
	h.do(c, func(ctrl *services.Controller) error {
		return ctrl.Finish(c.Request.Context())
	})
}

// SaveStatus returns the save indicator state
func (h *LiveHandler) SaveStatus(c *gin.Context) {
	ctrl, ok := h.controller(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, toSaveStatusResponse(ctrl.SaveStatus().Snapshot()))
}

// Connectivity reports whether the remote store is reachable
func (h *LiveHandler) Connectivity(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"online": h.online()})
}

// do runs op on the caller's controller and answers with the resulting view
func (h *LiveHandler) do(c *gin.Context, op func(ctrl *services.Controller) error) {
	ctrl, ok := h.controller(c)
	if !ok {
		return
	}
	if err := op(ctrl); err != nil {
		abortWithError(c, err)
		return
	}
	h.respond(c, ctrl)
}

func abortWithError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(statusFor(err), gin.H{"error": err.Error()})
}

// statusFor maps domain errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrNoResumeOffer):
		return http.StatusConflict
	case errors.Is(err, domain.ErrClientIndexOutOfRange),
		errors.Is(err, domain.ErrExerciseIndexOutOfRange),
		errors.Is(err, domain.ErrInvalidDate),
		errors.Is(err, domain.ErrInvalidOutcome),
		errors.Is(err, domain.ErrInvalidStep),
		errors.Is(err, domain.ErrNoSessions):
		return http.StatusBadRequest
	}
	return http.StatusBadGateway
}
