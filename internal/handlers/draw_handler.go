package handlers

import (
	"net/http"
	"time"

	"github.com/coffeemate/random-coffee-backend/internal/services"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DrawHandler handles draw-related HTTP requests
type DrawHandler struct {
	drawService services.DrawService
}

// NewDrawHandler creates a new DrawHandler
func NewDrawHandler(drawService services.DrawService) *DrawHandler {
	return &DrawHandler{drawService: drawService}
}

// GetDraws handles GET /draws
func (h *DrawHandler) GetDraws(c *gin.Context) {
	draws, err := h.drawService.GetDraws(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get draws: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, draws)
}

// GetLatestDraw handles GET /draws/latest
func (h *DrawHandler) GetLatestDraw(c *gin.Context) {
	draw, err := h.drawService.GetLatestDraw(c)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No draw found"})
		return
	}

	c.JSON(http.StatusOK, draw)
}

// GetDrawByID handles GET /draws/:id
func (h *DrawHandler) GetDrawByID(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	draw, err := h.drawService.GetDrawByID(c, id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Draw not found: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, draw)
}

// GetDrawPairs handles GET /draws/:id/pairs
func (h *DrawHandler) GetDrawPairs(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	pairs, err := h.drawService.GetPairsByDrawID(c, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get pairs: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, pairs)
}

// RunDraw handles POST /draws/run. Executes one draw pass immediately,
// outside the schedule.
func (h *DrawHandler) RunDraw(c *gin.Context) {
	draw, groups, err := h.drawService.PerformDraw(c, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Draw failed: " + err.Error()})
		return
	}
	if draw == nil {
		c.JSON(http.StatusOK, gin.H{"message": "No draw performed: not enough eligible participants"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"draw": draw, "groups": len(groups)})
}

// GetCycles handles GET /cycles
func (h *DrawHandler) GetCycles(c *gin.Context) {
	cycles, err := h.drawService.GetCycles(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get cycles: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, cycles)
}

// GetCurrentCycle handles GET /cycles/current
func (h *DrawHandler) GetCurrentCycle(c *gin.Context) {
	cycle, err := h.drawService.GetCurrentCycle(c)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No cycle found"})
		return
	}

	c.JSON(http.StatusOK, cycle)
}
