package api

import (
	"net/http"

	gin "github.com/gin-gonic/gin"

	"github.com/mcp-bridge/mcp-bridge/agent"
	"github.com/mcp-bridge/mcp-bridge/config"
	l "github.com/mcp-bridge/mcp-bridge/logger"
	"github.com/mcp-bridge/mcp-bridge/mcp"
	"github.com/mcp-bridge/mcp-bridge/providers"
	"github.com/mcp-bridge/mcp-bridge/session"
)

// ProviderFactory constructs a provider adapter from a logical name and
// an optional model override.
type ProviderFactory func(id string, modelOverride string) (providers.Provider, error)

type Router interface {
	CreateSessionHandler(c *gin.Context)
	SendMessageHandler(c *gin.Context)
	ListMessagesHandler(c *gin.Context)
	DeleteSessionHandler(c *gin.Context)
	ListToolsHandler(c *gin.Context)
	HealthcheckHandler(c *gin.Context)
	NotFoundHandler(c *gin.Context)
}

type RouterImpl struct {
	cfg      config.Config
	logger   l.Logger
	agent    agent.Agent
	bridge   mcp.ToolBridge
	sessions *session.Store
	factory  ProviderFactory
}

type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

func NewRouter(cfg config.Config, logger l.Logger, ag agent.Agent, bridge mcp.ToolBridge, sessions *session.Store, factory ProviderFactory) Router {
	return &RouterImpl{
		cfg:      cfg,
		logger:   logger,
		agent:    ag,
		bridge:   bridge,
		sessions: sessions,
		factory:  factory,
	}
}

type createSessionRequest struct {
	Provider     string `json:"provider"`
	Model        string `json:"model"`
	SystemPrompt string `json:"system_prompt"`
}

type createSessionResponse struct {
	ID       string `json:"id"`
	Provider string `json:"provider"`
	Model    string `json:"model"`
}

func (router *RouterImpl) CreateSessionHandler(c *gin.Context) {
	// An empty body is fine: everything falls back to config defaults.
	var req createSessionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
			return
		}
	}

	providerID := req.Provider
	if providerID == "" {
		providerID = router.cfg.DefaultProvider
	}

	provider, err := router.factory(providerID, req.Model)
	if err != nil {
		router.logger.Error("Failed to create provider", err, "provider", providerID)
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Kind: "configuration_error"})
		return
	}

	systemPrompt := req.SystemPrompt
	if systemPrompt == "" {
		tools, err := router.bridge.Discover(c.Request.Context())
		if err != nil {
			router.logger.Error("Tool discovery failed while creating session", err)
		}
		systemPrompt = agent.SystemPrompt(tools)
	}

	sess := session.New(provider, systemPrompt)
	router.sessions.Add(sess)

	router.logger.Info("Session created", "session", sess.ID(), "provider", provider.GetID(), "model", provider.GetModel())
	c.JSON(http.StatusCreated, createSessionResponse{
		ID:       sess.ID(),
		Provider: provider.GetID(),
		Model:    provider.GetModel(),
	})
}

type sendMessageRequest struct {
	Content string `json:"content"`
}

type sendMessageResponse struct {
	Content string `json:"content"`
}

func (router *RouterImpl) SendMessageHandler(c *gin.Context) {
	sess, err := router.sessions.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "session not found"})
		return
	}

	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Content == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "content is required"})
		return
	}

	content, err := router.agent.SendUserMessage(c.Request.Context(), sess, req.Content)
	if err != nil {
		kind := string(agent.FailureKindOf(err))
		router.logger.Error("Exchange failed", err, "session", sess.ID(), "kind", kind)

		status := http.StatusBadGateway
		switch agent.FailureKindOf(err) {
		case agent.FailureLoopBudgetExceeded:
			status = http.StatusUnprocessableEntity
		case agent.FailureCancelled:
			status = 499 // client closed request
		}
		c.JSON(status, ErrorResponse{Error: err.Error(), Kind: kind})
		return
	}

	c.JSON(http.StatusOK, sendMessageResponse{Content: content})
}

func (router *RouterImpl) ListMessagesHandler(c *gin.Context) {
	sess, err := router.sessions.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "session not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": sess.History()})
}

func (router *RouterImpl) DeleteSessionHandler(c *gin.Context) {
	if _, err := router.sessions.Get(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "session not found"})
		return
	}
	router.sessions.Remove(c.Param("id"))
	c.Status(http.StatusNoContent)
}

func (router *RouterImpl) ListToolsHandler(c *gin.Context) {
	tools, err := router.bridge.Discover(c.Request.Context())
	if err != nil {
		router.logger.Error("Tool discovery failed", err)
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"tools": tools})
}

func (router *RouterImpl) HealthcheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (router *RouterImpl) NotFoundHandler(c *gin.Context) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: "requested route is not found"})
}
