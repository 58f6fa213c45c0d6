package handlers

import (
	"net/http"

	"github.com/coffeemate/random-coffee-backend/internal/models"
	"github.com/coffeemate/random-coffee-backend/internal/services"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FeedbackHandler handles feedback and report HTTP requests
type FeedbackHandler struct {
	feedbackService services.FeedbackService
}

// NewFeedbackHandler creates a new FeedbackHandler
func NewFeedbackHandler(feedbackService services.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedbackService: feedbackService}
}

// SubmitFeedback handles POST /feedback
func (h *FeedbackHandler) SubmitFeedback(c *gin.Context) {
	var req models.SubmitFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	feedback, err := h.feedbackService.SubmitFeedback(c, &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to save feedback: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, feedback)
}

// GetFeedbackByDraw handles GET /feedback/draw/:id
func (h *FeedbackHandler) GetFeedbackByDraw(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	feedback, err := h.feedbackService.GetFeedbackByDraw(c, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get feedback: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, feedback)
}

// GetMeetingReport handles GET /reports/meetings
func (h *FeedbackHandler) GetMeetingReport(c *gin.Context) {
	rows, err := h.feedbackService.BuildMeetingReport(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build report: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, rows)
}
