// Package handler binds the dispatch protocol to its HTTP/JSON wire shape.
package handler

import (
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shahidarif12/AstraCommand/internal/store"
)

// AgentHandler serves the device poll cycle:
// register -> heartbeat -> fetch command -> report log.
type AgentHandler struct {
	Store *store.Store
}

type registerBody struct {
	DeviceName string `json:"device_name"`
	OS         string `json:"os"`
	IPAddress  string `json:"ip_address"`
}

type agentCredentials struct {
	DeviceID  string `json:"device_id"`
	AuthToken string `json:"auth_token"`
}

type reportLogBody struct {
	agentCredentials
	Type      string `json:"type"`
	Content   string `json:"content"`
	CommandID uint   `json:"command_id"`
}

func (h *AgentHandler) Register(c *gin.Context) {
	var body registerBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if body.DeviceName == "" || body.OS == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required parameters"})
		return
	}

	// A malformed supplied address silently falls back to the observed one.
	ip := body.IPAddress
	if net.ParseIP(ip) == nil {
		ip = c.ClientIP()
	}

	dev, updated, err := h.Store.RegisterDevice(body.DeviceName, body.OS, ip)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register device"})
		return
	}

	status := "registered"
	if updated {
		status = "updated"
	}
	c.JSON(http.StatusOK, gin.H{
		"device_id":  dev.DeviceID,
		"auth_token": dev.AuthToken,
		"status":     status,
	})
}

// authenticate verifies device credentials and writes the failure response
// itself; callers bail out when it returns false.
func (h *AgentHandler) authenticate(c *gin.Context, creds agentCredentials) bool {
	if creds.DeviceID == "" || creds.AuthToken == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required parameters"})
		return false
	}
	ok, err := h.Store.VerifyDeviceAuth(creds.DeviceID, creds.AuthToken)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Authentication check failed"})
		return false
	}
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication failed"})
		return false
	}
	return true
}

func (h *AgentHandler) Heartbeat(c *gin.Context) {
	var creds agentCredentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if !h.authenticate(c, creds) {
		return
	}

	touched, err := h.Store.TouchDevice(creds.DeviceID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update heartbeat"})
		return
	}
	if !touched {
		// Device deleted between the auth check and the update.
		c.JSON(http.StatusNotFound, gin.H{"error": "Device not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "success",
		"message":   "Heartbeat updated",
		"timestamp": h.Store.Now().UTC().Format(time.RFC3339),
	})
}

func (h *AgentHandler) FetchCommand(c *gin.Context) {
	var creds agentCredentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if !h.authenticate(c, creds) {
		return
	}

	// Liveness piggybacks on every interaction; a race with deletion is
	// tolerated here, the fetch below just finds nothing.
	if _, err := h.Store.TouchDevice(creds.DeviceID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update device"})
		return
	}

	cmd, err := h.Store.FetchNextCommand(creds.DeviceID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch command"})
		return
	}
	if cmd == nil {
		c.JSON(http.StatusOK, gin.H{
			"status":  "success",
			"command": nil,
			"message": "No pending commands",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "success",
		"command_id": cmd.ID,
		"command":    cmd.Command,
		"issued_at":  cmd.IssuedAt,
	})
}

func (h *AgentHandler) ReportLog(c *gin.Context) {
	var body reportLogBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if body.Type == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required parameters"})
		return
	}
	if !h.authenticate(c, body.agentCredentials) {
		return
	}

	if _, err := h.Store.TouchDevice(body.DeviceID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update device"})
		return
	}

	entry, err := h.Store.AppendLog(body.DeviceID, body.Type, body.Content, body.CommandID)
	if errors.Is(err, store.ErrDeviceNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Device not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store log"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Log received",
		"log_id":  entry.ID,
	})
}
