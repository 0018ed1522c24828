package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"auto_grow/internal/models"
	"auto_grow/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	errInvalidID       = "invalid id"
	errInvalidBodyPref = "invalid body: "
	errInternal        = "internal server error"
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// serviceError maps domain errors onto statuses; anything unexpected is a 500.
func (h *Handler) serviceError(c *gin.Context, err error, logKey string, kv ...interface{}) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, service.ErrInvalidWindow):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.logAndJSONError(c, http.StatusInternalServerError, errInternal, logKey, err, kv...)
	}
}

// paramID reads a positive integer path parameter or writes a 400.
func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidID})
		return 0, false
	}
	return id, true
}

// registerCRUD mounts list/get/create/update/delete for one collection.
// kind only names log events.
func registerCRUD[T, C, U any](h *Handler, g *gin.RouterGroup, kind string, svc service.CRUD[T, C, U]) {
	g.GET("/", func(c *gin.Context) {
		out, err := svc.List(c.Request.Context())
		if err != nil {
			h.serviceError(c, err, kind+"_list_failed")
			return
		}
		c.JSON(http.StatusOK, out)
	})

	g.GET("/:id", func(c *gin.Context) {
		id, ok := paramID(c, "id")
		if !ok {
			return
		}
		out, err := svc.Get(c.Request.Context(), id)
		if err != nil {
			h.serviceError(c, err, kind+"_get_failed", "id", id)
			return
		}
		c.JSON(http.StatusOK, out)
	})

	g.POST("/", func(c *gin.Context) {
		var in C
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
			return
		}
		out, err := svc.Create(c.Request.Context(), in)
		if err != nil {
			h.serviceError(c, err, kind+"_create_failed")
			return
		}
		if h.log != nil {
			h.log.Infow(kind + "_created")
		}
		c.JSON(http.StatusCreated, out)
	})

	g.PUT("/:id", func(c *gin.Context) {
		id, ok := paramID(c, "id")
		if !ok {
			return
		}
		var in U
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
			return
		}
		out, err := svc.Update(c.Request.Context(), id, in)
		if err != nil {
			h.serviceError(c, err, kind+"_update_failed", "id", id)
			return
		}
		c.JSON(http.StatusOK, out)
	})

	g.DELETE("/:id", func(c *gin.Context) {
		id, ok := paramID(c, "id")
		if !ok {
			return
		}
		if err := svc.Delete(c.Request.Context(), id); err != nil {
			h.serviceError(c, err, kind+"_delete_failed", "id", id)
			return
		}
		c.Status(http.StatusNoContent)
	})
}

// @Summary      List trackings of a device
// @Tags         trackings
// @Produce      json
// @Param        deviceId  path  int  true  "Device ID"
// @Success      200  {array}   models.Tracking
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /api/trackings/device/{deviceId} [get]
// @Security     BasicAuth
func (h *Handler) trackingsByDevice(c *gin.Context) {
	deviceID, ok := paramID(c, "deviceId")
	if !ok {
		return
	}
	out, err := h.services.Trackings.ListByDevice(c.Request.Context(), deviceID)
	if err != nil {
		h.serviceError(c, err, "tracking_list_by_device_failed", "device_id", deviceID)
		return
	}
	c.JSON(http.StatusOK, out)
}

// @Summary      Tracking history of a device
// @Description  window is one of today, week, month, quarter, semester, year
// @Tags         trackings
// @Produce      json
// @Param        deviceId  path  int     true  "Device ID"
// @Param        window    path  string  true  "History window"  Enums(today,week,month,quarter,semester,year)
// @Success      200  {array}   models.Tracking
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /api/trackings/device/{deviceId}/history/{window} [get]
// @Security     BasicAuth
func (h *Handler) trackingHistory(c *gin.Context) {
	deviceID, ok := paramID(c, "deviceId")
	if !ok {
		return
	}
	window := models.HistoryWindow(c.Param("window"))
	out, err := h.services.Trackings.History(c.Request.Context(), deviceID, window)
	if err != nil {
		h.serviceError(c, err, "tracking_history_failed", "device_id", deviceID, "window", window)
		return
	}
	c.JSON(http.StatusOK, out)
}

// @Summary      Latest tracking of a device
// @Tags         trackings
// @Produce      json
// @Param        deviceId  path  int  true  "Device ID"
// @Success      200  {object}  models.Tracking
// @Failure      404  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /api/trackings/device/{deviceId}/latest [get]
// @Security     BasicAuth
func (h *Handler) latestTracking(c *gin.Context) {
	deviceID, ok := paramID(c, "deviceId")
	if !ok {
		return
	}
	out, err := h.services.Trackings.Latest(c.Request.Context(), deviceID)
	if err != nil {
		h.serviceError(c, err, "tracking_latest_failed", "device_id", deviceID)
		return
	}
	c.JSON(http.StatusOK, out)
}
