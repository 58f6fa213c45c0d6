package handlers

import (
	"net/http"
	"time"

	"github.com/coffeemate/random-coffee-backend/internal/models"
	"github.com/coffeemate/random-coffee-backend/internal/services"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ParticipantHandler handles roster HTTP requests
type ParticipantHandler struct {
	participantService services.ParticipantService
}

// NewParticipantHandler creates a new ParticipantHandler
func NewParticipantHandler(participantService services.ParticipantService) *ParticipantHandler {
	return &ParticipantHandler{participantService: participantService}
}

// RegisterRequest is the payload for adding a participant
type RegisterRequest struct {
	ChatID string `json:"chatId" binding:"required"`
	Name   string `json:"name" binding:"required"`
}

// PauseRequest is the payload for setting an exclusion window
type PauseRequest struct {
	Start time.Time `json:"start" binding:"required"`
	End   time.Time `json:"end" binding:"required"`
}

// CadenceRequest is the payload for setting an individual cadence
type CadenceRequest struct {
	Periods int `json:"periods" binding:"required"`
}

// Register handles POST /participants
func (h *ParticipantHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	participant, err := h.participantService.Register(c, req.ChatID, req.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register participant: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, participant)
}

// GetAllParticipants handles GET /participants
func (h *ParticipantHandler) GetAllParticipants(c *gin.Context) {
	participants, err := h.participantService.GetAllParticipants(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get participants: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, participants)
}

// GetParticipantByID handles GET /participants/:id
func (h *ParticipantHandler) GetParticipantByID(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	participant, err := h.participantService.GetParticipantByID(c, id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Participant not found: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, participant)
}

// UpdateParticipant handles PUT /participants/:id
func (h *ParticipantHandler) UpdateParticipant(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	var participant models.Participant
	if err := c.ShouldBindJSON(&participant); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	participant.ID = id

	if err := h.participantService.UpdateParticipant(c, &participant); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update participant: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, participant)
}

// Pause handles POST /participants/:id/pause
func (h *ParticipantHandler) Pause(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	var req PauseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.participantService.Pause(c, id, req.Start, req.End); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to pause participant: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Participant paused"})
}

// SetCadence handles PUT /participants/:id/cadence
func (h *ParticipantHandler) SetCadence(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	var req CadenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.participantService.SetIndividualCadence(c, id, req.Periods); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to set cadence: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Cadence updated"})
}

// Deactivate handles DELETE /participants/:id. Deactivation, not deletion:
// pair and feedback history stays intact.
func (h *ParticipantHandler) Deactivate(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	if err := h.participantService.Deactivate(c, id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate participant: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Participant deactivated"})
}
