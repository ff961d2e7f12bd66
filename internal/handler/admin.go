package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shahidarif12/AstraCommand/internal/auth"
	"github.com/shahidarif12/AstraCommand/internal/middleware"
	"github.com/shahidarif12/AstraCommand/internal/store"
)

// AdminHandler serves the operator surface: login, command dispatch, and
// the read/delete views over devices, commands, and logs.
type AdminHandler struct {
	Store        *store.Store
	TokenConfig  auth.TokenConfig
	LoginLimiter *middleware.RateLimiter
}

type loginBody struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type sendCommandBody struct {
	DeviceID string `json:"device_id"`
	Command  string `json:"command"`
}

func (h *AdminHandler) Login(c *gin.Context) {
	var body loginBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if body.Username == "" || body.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing credentials"})
		return
	}

	if h.LoginLimiter != nil && !h.LoginLimiter.Allow(c.ClientIP()) {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded"})
		return
	}

	admin, err := h.Store.GetAdmin(body.Username)
	if errors.Is(err, store.ErrAdminNotFound) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Authentication failed"})
		return
	}
	if !auth.CheckPassword(admin.PasswordHash, body.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	sessionToken, err := auth.CreateToken(admin.Username, h.TokenConfig)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Token creation failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "token": sessionToken})
}

func (h *AdminHandler) SendCommand(c *gin.Context) {
	var body sendCommandBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if body.DeviceID == "" || body.Command == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required parameters"})
		return
	}

	cmd, err := h.Store.EnqueueCommand(body.DeviceID, body.Command)
	if errors.Is(err, store.ErrDeviceNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Device not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send command"})
		return
	}

	operator, _ := middleware.AdminFromContext(c)
	log.Printf("admin %s sent command %d to device %s", operator, cmd.ID, cmd.DeviceID)

	c.JSON(http.StatusOK, gin.H{
		"status":     "success",
		"message":    "Command sent successfully",
		"command_id": cmd.ID,
	})
}

func (h *AdminHandler) CommandHistory(c *gin.Context) {
	filter := store.CommandFilter{
		DeviceID: c.Query("device_id"),
		Status:   c.Query("status"),
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		filter.Limit = limit
	}

	commands, err := h.Store.CommandHistory(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch commands"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"commands": commands})
}

func (h *AdminHandler) ListDevices(c *gin.Context) {
	filter := store.DeviceFilter{
		Search: c.Query("search"),
		OS:     c.Query("os"),
	}
	switch c.Query("status") {
	case "":
	case "online":
		online := true
		filter.Online = &online
	case "offline":
		online := false
		filter.Online = &online
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status filter"})
		return
	}

	devices, err := h.Store.ListDevices(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch devices"})
		return
	}

	now := time.Now()
	resp := make([]gin.H, 0, len(devices))
	for i := range devices {
		d := &devices[i]
		resp = append(resp, gin.H{
			"device_id":  d.DeviceID,
			"name":       d.Name,
			"os":         d.OS,
			"ip_address": d.IPAddress,
			"last_seen":  d.LastSeen,
			"status":     d.Status,
			"online":     d.Online(now),
		})
	}
	c.JSON(http.StatusOK, gin.H{"devices": resp})
}

func (h *AdminHandler) DeleteDevice(c *gin.Context) {
	deviceID := c.Param("device_id")
	err := h.Store.DeleteDevice(deviceID)
	if errors.Is(err, store.ErrDeviceNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Device not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete device"})
		return
	}
	operator, _ := middleware.AdminFromContext(c)
	log.Printf("admin %s deleted device %s", operator, deviceID)

	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Device deleted"})
}

func (h *AdminHandler) QueryLogs(c *gin.Context) {
	filter := store.LogFilter{
		DeviceID: c.Query("device_id"),
		Type:     c.Query("type"),
		Contains: c.Query("contains"),
	}
	if raw := c.Query("since"); raw != "" {
		ts, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid since timestamp"})
			return
		}
		filter.Since = ts
	}
	if raw := c.Query("until"); raw != "" {
		ts, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid until timestamp"})
			return
		}
		filter.Until = ts
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		filter.Limit = limit
	}

	logs, err := h.Store.QueryLogs(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch logs"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"logs": logs})
}

func (h *AdminHandler) DeleteLog(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid log id"})
		return
	}

	err = h.Store.DeleteLog(uint(id))
	if errors.Is(err, store.ErrLogNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Log not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete log"})
		return
	}
	operator, _ := middleware.AdminFromContext(c)
	log.Printf("admin %s deleted log %d", operator, id)

	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Log deleted"})
}

func (h *AdminHandler) Overview(c *gin.Context) {
	overview, err := h.Store.GetOverview()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch overview"})
		return
	}
	c.JSON(http.StatusOK, overview)
}
