package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pocketledger/internal/assistant"
	"pocketledger/internal/auth"
	apperrors "pocketledger/internal/errors"
)

// AssistantHandler executes assistant tool calls against the ledger and
// keeps the in-memory conversation transcript on the session.
type AssistantHandler struct {
	dispatcher *assistant.Dispatcher
	session    *auth.Session
}

// NewAssistantHandler creates a new AssistantHandler.
func NewAssistantHandler(dispatcher *assistant.Dispatcher, session *auth.Session) *AssistantHandler {
	return &AssistantHandler{dispatcher: dispatcher, session: session}
}

// CommandRequest is one tool call as produced by the external assistant.
type CommandRequest struct {
	Tool string         `json:"tool" binding:"required"`
	Args map[string]any `json:"args"`
}

// ExecuteCommand validates and runs one tool call.
func (h *AssistantHandler) ExecuteCommand(c *gin.Context) {
	var req CommandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.dispatcher.Execute(req.Tool, req.Args)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": result})
}

// ChatMessageRequest appends one transcript turn.
type ChatMessageRequest struct {
	Role    string `json:"role" binding:"required,oneof=user assistant"`
	Content string `json:"content" binding:"required"`
}

// AppendChat records one turn of conversation. History lives in memory only
// and is discarded on logout.
func (h *AssistantHandler) AppendChat(c *gin.Context) {
	var req ChatMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	h.session.AppendChat(auth.ChatMessage{Role: req.Role, Content: req.Content})
	c.JSON(http.StatusCreated, gin.H{"appended": true})
}

// GetChat returns the in-memory conversation.
func (h *AssistantHandler) GetChat(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"messages": h.session.ChatHistory()})
}
