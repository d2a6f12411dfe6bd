package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/xn_chatbot/backend/internal/catalog"
	"github.com/xn_chatbot/backend/internal/conversation"
	"github.com/xn_chatbot/backend/internal/models"
)

type Handler struct {
	Manager   *conversation.Manager
	Resources *catalog.ResourceCatalog
	Validator *validator.Validate
	Logger    zerolog.Logger
	AdminKey  string
}

func (h *Handler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":          "ok",
		"active_sessions": h.Manager.ActiveSessionCount(),
	})
}

type SessionCreated struct {
	SessionID string `json:"session_id"`
	Welcome   string `json:"welcome"`
}

// @Summary Start a conversation session
// @Tags sessions
// @Produce json
// @Success 201 {object} SessionCreated
// @Router /api/sessions [post]
func (h *Handler) CreateSession(c *gin.Context) {
	id := h.Manager.StartSession()
	c.JSON(http.StatusCreated, SessionCreated{
		SessionID: id,
		Welcome:   h.Manager.WelcomeMessage(),
	})
}

type MessageRequest struct {
	Text string `json:"text" validate:"required,min=1,max=4000"`
}

type MessageResponse struct {
	SessionID string `json:"session_id"`
	Response  string `json:"response"`
	IsCrisis  bool   `json:"is_crisis"`
}

// @Summary Send a message in a session
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "session id"
// @Param body body MessageRequest true "message"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} map[string]any
// @Router /api/sessions/{id}/messages [post]
func (h *Handler) PostMessage(c *gin.Context) {
	var req MessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid JSON body", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "text is required", err.Error())
		return
	}

	sessionID := c.Param("id")
	response, isCrisis := h.Manager.ProcessMessage(c.Request.Context(), sessionID, req.Text)
	c.JSON(http.StatusOK, MessageResponse{
		SessionID: sessionID,
		Response:  response,
		IsCrisis:  isCrisis,
	})
}

// @Summary Start a provider search in a session
// @Tags sessions
// @Produce json
// @Param id path string true "session id"
// @Success 200 {object} map[string]any
// @Router /api/sessions/{id}/provider-search [post]
func (h *Handler) StartProviderSearch(c *gin.Context) {
	prompt := h.Manager.StartProviderSearch(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"response": prompt})
}

// @Summary Session summary
// @Tags sessions
// @Produce json
// @Param id path string true "session id"
// @Success 200 {object} conversation.Summary
// @Failure 404 {object} map[string]any
// @Router /api/sessions/{id}/summary [get]
func (h *Handler) SessionSummary(c *gin.Context) {
	summary, ok := h.Manager.GetSessionSummary(c.Param("id"))
	if !ok {
		writeError(c, http.StatusNotFound, "NOT_FOUND", "session not found", nil)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// @Summary Conversation history
// @Tags sessions
// @Produce json
// @Param id path string true "session id"
// @Param limit query int false "max entries" default(10)
// @Success 200 {array} conversation.HistoryEntry
// @Router /api/sessions/{id}/history [get]
func (h *Handler) SessionHistory(c *gin.Context) {
	limit := 10
	if raw := c.Query("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			limit = v
		}
	}
	history := h.Manager.GetConversationHistory(c.Param("id"), limit)
	if history == nil {
		history = []conversation.HistoryEntry{}
	}
	c.JSON(http.StatusOK, history)
}

// @Summary End a session
// @Tags sessions
// @Produce json
// @Param id path string true "session id"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Router /api/sessions/{id} [delete]
func (h *Handler) EndSession(c *gin.Context) {
	if !h.Manager.EndSession(c.Param("id")) {
		writeError(c, http.StatusNotFound, "NOT_FOUND", "session not found", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ended": true})
}

// @Summary List support resources
// @Tags resources
// @Produce json
// @Param type query string false "resource type filter"
// @Param crisis query bool false "crisis resources only"
// @Success 200 {array} models.Resource
// @Router /api/resources [get]
func (h *Handler) ResourcesList(c *gin.Context) {
	var out []*models.Resource
	switch {
	case c.Query("crisis") == "true":
		out = h.Resources.CrisisResources()
	case c.Query("type") != "":
		out = h.Resources.ByType(models.ResourceType(c.Query("type")))
	default:
		out = h.Resources.All()
	}
	if out == nil {
		out = []*models.Resource{}
	}
	c.JSON(http.StatusOK, out)
}

type CleanupRequest struct {
	MaxAgeHours int `json:"max_age_hours" validate:"omitempty,min=1"`
}

// @Summary Remove expired sessions
// @Tags maintenance
// @Accept json
// @Produce json
// @Param body body CleanupRequest false "cutoff"
// @Success 200 {object} map[string]any
// @Router /api/maintenance/cleanup [post]
func (h *Handler) Cleanup(c *gin.Context) {
	req := CleanupRequest{MaxAgeHours: 24}
	_ = c.ShouldBindJSON(&req)
	if req.MaxAgeHours <= 0 {
		req.MaxAgeHours = 24
	}
	removed := h.Manager.CleanupOldSessions(req.MaxAgeHours)
	c.JSON(http.StatusOK, gin.H{"removed": removed})
}

func writeError(c *gin.Context, status int, code string, message string, details any) {
	c.JSON(status, gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}
