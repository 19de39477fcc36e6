package handlers

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/libreria-gestion/backoffice/internal/domain/models"
	"github.com/libreria-gestion/backoffice/internal/screens"
	"github.com/libreria-gestion/backoffice/internal/viewmodel"
)

// Navigator mounts screens.
type Navigator interface {
	Navigate(ctx context.Context, kind models.Kind) (screens.Screen, error)
	Active(kind models.Kind) (screens.Screen, error)
}

// ScreenHandler exposes the mounted screen and its intents over HTTP.
type ScreenHandler struct {
	nav    Navigator
	logger *zap.Logger

	// exclusive serialises intents that may reach the data service. Only one
	// screen is mounted at a time, so one lock covers it.
	exclusive sync.Mutex
}

// NewScreenHandler constructs the HTTP handler adapter.
func NewScreenHandler(nav Navigator, logger *zap.Logger) *ScreenHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScreenHandler{nav: nav, logger: logger}
}

type filterRequest struct {
	Term string `json:"term"`
}

// Routes lists the navigation entries.
func (h *ScreenHandler) Routes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"routes": screens.Routes})
}

// Show returns the view of a screen, mounting it first when another screen
// is active.
func (h *ScreenHandler) Show(c *gin.Context) {
	kind, ok := screenKind(c)
	if !ok {
		return
	}

	s, err := h.nav.Active(kind)
	if err != nil {
		s, err = h.nav.Navigate(c.Request.Context(), kind)
		if err != nil {
			h.logger.Error("failed to mount screen", zap.String("screen", string(kind)), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to open screen"})
			return
		}
	}

	c.JSON(http.StatusOK, s.View())
}

// Reload refetches the primary and related collections.
func (h *ScreenHandler) Reload(c *gin.Context) {
	h.intent(c, true, func(s screens.Screen) error {
		return s.Load(c.Request.Context())
	})
}

// Filter updates the search term.
func (h *ScreenHandler) Filter(c *gin.Context) {
	var req filterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	h.intent(c, false, func(s screens.Screen) error {
		s.SetFilterTerm(req.Term)
		return nil
	})
}

// Create opens the edit dialog on an empty draft.
func (h *ScreenHandler) Create(c *gin.Context) {
	h.intent(c, true, func(s screens.Screen) error {
		return s.BeginCreate()
	})
}

// Edit opens the edit dialog on a loaded record.
func (h *ScreenHandler) Edit(c *gin.Context) {
	id := models.ID(c.Param("id"))
	h.intent(c, true, func(s screens.Screen) error {
		return s.BeginEdit(id)
	})
}

// Delete opens the delete confirmation for a loaded record.
func (h *ScreenHandler) Delete(c *gin.Context) {
	id := models.ID(c.Param("id"))
	h.intent(c, true, func(s screens.Screen) error {
		return s.BeginDelete(id)
	})
}

// Submit saves the draft in the request body.
func (h *ScreenHandler) Submit(c *gin.Context) {
	payload, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	h.intent(c, true, func(s screens.Screen) error {
		return s.Submit(c.Request.Context(), payload)
	})
}

// ConfirmDelete deletes the record awaiting confirmation.
func (h *ScreenHandler) ConfirmDelete(c *gin.Context) {
	h.intent(c, true, func(s screens.Screen) error {
		return s.ConfirmDelete(c.Request.Context())
	})
}

// Cancel closes any open dialog.
func (h *ScreenHandler) Cancel(c *gin.Context) {
	h.intent(c, false, func(s screens.Screen) error {
		s.Cancel()
		return nil
	})
}

// DismissError clears the error banner.
func (h *ScreenHandler) DismissError(c *gin.Context) {
	h.intent(c, false, func(s screens.Screen) error {
		s.DismissError()
		return nil
	})
}

// intent runs fn against the mounted screen and answers with its view.
// Intents marked exclusive are refused while another exclusive intent runs
// or the screen is loading, so a form cannot be submitted twice.
func (h *ScreenHandler) intent(c *gin.Context, exclusive bool, fn func(screens.Screen) error) {
	kind, ok := screenKind(c)
	if !ok {
		return
	}

	s, err := h.nav.Active(kind)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "screen is not open"})
		return
	}
	if exclusive {
		if !h.exclusive.TryLock() {
			c.JSON(http.StatusConflict, gin.H{"error": "screen is busy", "view": s.View()})
			return
		}
		defer h.exclusive.Unlock()

		if s.Loading() {
			c.JSON(http.StatusConflict, gin.H{"error": "screen is busy", "view": s.View()})
			return
		}
	}

	if err := fn(s); err != nil {
		status := statusFor(err)
		if status >= http.StatusInternalServerError {
			h.logger.Error("screen intent failed", zap.String("screen", string(kind)), zap.Error(err))
		} else {
			h.logger.Warn("screen intent rejected", zap.String("screen", string(kind)), zap.Error(err))
		}
		c.JSON(status, gin.H{"error": messageFor(err), "view": s.View()})
		return
	}

	c.JSON(http.StatusOK, s.View())
}

func screenKind(c *gin.Context) (models.Kind, bool) {
	kind := models.Kind(c.Param("screen"))
	if !kind.Valid() {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown screen"})
		return "", false
	}
	return kind, true
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrUnsupported):
		return http.StatusMethodNotAllowed
	case errors.Is(err, viewmodel.ErrNothingSelected), errors.Is(err, viewmodel.ErrNoPendingDelete):
		return http.StatusConflict
	case errors.Is(err, viewmodel.ErrDisposed):
		return http.StatusGone
	}

	switch models.KindOf(err) {
	case models.ErrorValidation:
		return http.StatusUnprocessableEntity
	case models.ErrorNotFound:
		return http.StatusNotFound
	default:
		return http.StatusBadGateway
	}
}

func messageFor(err error) string {
	switch {
	case errors.Is(err, models.ErrUnsupported):
		return "operation not supported"
	case errors.Is(err, viewmodel.ErrNothingSelected):
		return "no record selected"
	case errors.Is(err, viewmodel.ErrNoPendingDelete):
		return "no delete awaiting confirmation"
	case errors.Is(err, viewmodel.ErrDisposed):
		return "screen was closed"
	}

	switch models.KindOf(err) {
	case models.ErrorValidation:
		return "invalid record"
	case models.ErrorNotFound:
		return "record not found"
	case models.ErrorNetwork:
		return "data service unreachable"
	default:
		return "data service error"
	}
}
