package handlers

import (
	"errors"
	"io"
	"net/http"
	"time"

	"rentora/middleware"
	"rentora/models"
	"rentora/services/booking"
	"rentora/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes booking views, lifecycle operations, and the
// edit-session flow over HTTP.
type BookingHandler struct {
	BookingService booking.Service
	SessionService booking.SessionService
}

// bookingErrorStatus maps typed booking errors to HTTP status codes. Anything
// untyped is a plain internal error.
func bookingErrorStatus(err error) (int, gin.H) {
	be, ok := booking.AsError(err)
	if !ok {
		return http.StatusInternalServerError, gin.H{"error": err.Error()}
	}
	body := gin.H{"error": be.Message, "code": be.Code}
	if be.Conflict != nil {
		body["conflict"] = be.Conflict
	}
	switch be.Code {
	case booking.CodeInvalidDateRange:
		return http.StatusUnprocessableEntity, body
	case booking.CodeAvailabilityConflict, booking.CodeSessionClosed:
		return http.StatusConflict, body
	case booking.CodeAvailabilityCheckFailed:
		return http.StatusBadGateway, body
	case booking.CodeInvalidInput:
		return http.StatusBadRequest, body
	case booking.CodeNotFound:
		return http.StatusNotFound, body
	default:
		return http.StatusInternalServerError, body
	}
}

// ListBookingsHandler handles GET /api/admin/bookings.
func (h *BookingHandler) ListBookingsHandler(c *gin.Context) {
	logger := utils.GetLogger()
	details, err := h.BookingService.List(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list bookings", zap.Error(err))
		status, body := bookingErrorStatus(err)
		c.JSON(status, body)
		return
	}
	c.JSON(http.StatusOK, details)
}

// ListClientBookingsHandler handles GET /api/admin/clients/:id/bookings.
func (h *BookingHandler) ListClientBookingsHandler(c *gin.Context) {
	details, err := h.BookingService.ListByClient(c.Request.Context(), c.Param("id"))
	if err != nil {
		status, body := bookingErrorStatus(err)
		c.JSON(status, body)
		return
	}
	c.JSON(http.StatusOK, details)
}

// ListPropertyBookingsHandler handles GET /api/admin/properties/:id/bookings.
func (h *BookingHandler) ListPropertyBookingsHandler(c *gin.Context) {
	details, err := h.BookingService.ListByProperty(c.Request.Context(), c.Param("id"))
	if err != nil {
		status, body := bookingErrorStatus(err)
		c.JSON(status, body)
		return
	}
	c.JSON(http.StatusOK, details)
}

// ListBookingsByRangeHandler handles GET /api/admin/bookings/range?start=&end=
// where start and end are YYYY-MM-DD dates bounding the check-in.
func (h *BookingHandler) ListBookingsByRangeHandler(c *gin.Context) {
	start, err := time.Parse("2006-01-02", c.Query("start"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start must be a YYYY-MM-DD date"})
		return
	}
	end, err := time.Parse("2006-01-02", c.Query("end"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end must be a YYYY-MM-DD date"})
		return
	}

	details, err := h.BookingService.ListByCheckInRange(c.Request.Context(), start, end)
	if err != nil {
		status, body := bookingErrorStatus(err)
		c.JSON(status, body)
		return
	}
	c.JSON(http.StatusOK, details)
}

// GetBookingHandler handles GET /api/admin/bookings/id/:id.
func (h *BookingHandler) GetBookingHandler(c *gin.Context) {
	id := c.Param("id")
	detail, err := h.BookingService.Get(c.Request.Context(), id)
	if err != nil {
		status, body := bookingErrorStatus(err)
		c.JSON(status, body)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// CancelBookingHandler handles POST /api/admin/bookings/cancel/:id. The
// booking is kept for history but stops holding the calendar.
func (h *BookingHandler) CancelBookingHandler(c *gin.Context) {
	logger := utils.GetLogger()
	id := c.Param("id")
	if err := h.BookingService.Cancel(c.Request.Context(), id); err != nil {
		logger.Error("Failed to cancel booking", zap.String("id", id), zap.Error(err))
		status, body := bookingErrorStatus(err)
		c.JSON(status, body)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking cancelled"})
}

// DeleteBookingHandler handles DELETE /api/admin/bookings/delete/:id.
func (h *BookingHandler) DeleteBookingHandler(c *gin.Context) {
	logger := utils.GetLogger()
	id := c.Param("id")
	if err := h.BookingService.Delete(c.Request.Context(), id); err != nil {
		logger.Error("Failed to delete booking", zap.String("id", id), zap.Error(err))
		status, body := bookingErrorStatus(err)
		c.JSON(status, body)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking deleted"})
}

// OpenSessionHandler handles POST /api/admin/bookings/sessions. An optional
// bookingId in the payload seeds the session from an existing booking.
func (h *BookingHandler) OpenSessionHandler(c *gin.Context) {
	logger := utils.GetLogger()
	var input struct {
		BookingID string `json:"bookingId"`
	}
	// An empty body opens a blank session; anything else must parse.
	if err := c.ShouldBindJSON(&input); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	session, err := h.SessionService.Open(c.Request.Context(), middleware.CallerUID(c), input.BookingID)
	if err != nil {
		logger.Error("Failed to open booking session", zap.Error(err))
		status, body := bookingErrorStatus(err)
		c.JSON(status, body)
		return
	}
	c.JSON(http.StatusCreated, session)
}

// UpdateSessionHandler handles PUT /api/admin/bookings/sessions/:sessionID.
// Partial edits; date or property changes re-run the availability check.
func (h *BookingHandler) UpdateSessionHandler(c *gin.Context) {
	logger := utils.GetLogger()
	sessionID := c.Param("sessionID")
	var edits models.BookingEdit
	if err := c.ShouldBindJSON(&edits); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	session, err := h.SessionService.Update(c.Request.Context(), sessionID, edits)
	if err != nil {
		logger.Error("Failed to update booking session", zap.String("sessionID", sessionID), zap.Error(err))
		status, body := bookingErrorStatus(err)
		c.JSON(status, body)
		return
	}
	c.JSON(http.StatusOK, session)
}

// CommitSessionHandler handles POST /api/admin/bookings/sessions/:sessionID/commit.
func (h *BookingHandler) CommitSessionHandler(c *gin.Context) {
	logger := utils.GetLogger()
	sessionID := c.Param("sessionID")

	bkg, err := h.SessionService.Commit(c.Request.Context(), sessionID)
	if err != nil {
		logger.Warn("Booking session commit failed", zap.String("sessionID", sessionID), zap.Error(err))
		status, body := bookingErrorStatus(err)
		c.JSON(status, body)
		return
	}
	c.JSON(http.StatusOK, bkg)
}

// AbortSessionHandler handles DELETE /api/admin/bookings/sessions/:sessionID.
func (h *BookingHandler) AbortSessionHandler(c *gin.Context) {
	sessionID := c.Param("sessionID")
	if err := h.SessionService.Abort(c.Request.Context(), sessionID); err != nil {
		status, body := bookingErrorStatus(err)
		c.JSON(status, body)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Session aborted"})
}
