package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	gin "github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sethvargo/go-envconfig"

	"github.com/mcp-bridge/mcp-bridge/agent"
	api "github.com/mcp-bridge/mcp-bridge/api"
	middlewares "github.com/mcp-bridge/mcp-bridge/api/middlewares"
	config "github.com/mcp-bridge/mcp-bridge/config"
	l "github.com/mcp-bridge/mcp-bridge/logger"
	"github.com/mcp-bridge/mcp-bridge/mcp"
	otel "github.com/mcp-bridge/mcp-bridge/otel"
	providers "github.com/mcp-bridge/mcp-bridge/providers"
	"github.com/mcp-bridge/mcp-bridge/session"
)

func main() {
	_ = godotenv.Load()

	var config config.Config
	cfg, err := config.Load(envconfig.OsLookuper())
	if err != nil {
		log.Printf("Config load error: %v", err)
		return
	}

	logger, err := l.NewLogger(cfg.Environment)
	if err != nil {
		log.Printf("Logger init error: %v", err)
		return
	}

	var telemetry otel.OpenTelemetry
	if cfg.EnableTelemetry {
		otelImpl := &otel.OpenTelemetryImpl{}
		if err := otelImpl.Init(cfg); err != nil {
			logger.Error("OpenTelemetry init error", err)
			return
		}
		telemetry = otelImpl
	}

	mcpClient := mcp.NewClient(cfg.MCP.Servers, logger)
	initCtx, cancelInit := context.WithTimeout(context.Background(), cfg.MCP.InitTimeout)
	if err := mcpClient.Initialize(initCtx); err != nil {
		logger.Error("MCP initialization failed, tools will be unavailable", err)
	}
	cancelInit()

	bridge := mcp.NewBridge(mcpClient, cfg.MCP.ToolCallTimeout, logger)
	if mcpClient.IsInitialized() {
		discoverCtx, cancelDiscover := context.WithTimeout(context.Background(), cfg.MCP.InitTimeout)
		if _, err := bridge.Discover(discoverCtx); err != nil {
			logger.Error("Tool discovery failed at startup", err)
		}
		cancelDiscover()
	}

	httpClient := providers.NewHTTPClient()
	factory := func(id string, modelOverride string) (providers.Provider, error) {
		return providers.NewProvider(&cfg, id, modelOverride, httpClient, logger)
	}

	sessions := session.NewStore()
	ag := agent.NewAgent(logger, bridge, *cfg.Agent, telemetry)

	loggerMiddleware, err := middlewares.NewTelemetryMiddleware(cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize telemetry middleware", err)
		return
	}

	router := api.NewRouter(cfg, logger, ag, bridge, sessions, factory)

	if cfg.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(loggerMiddleware.Middleware())

	r.POST("/v1/sessions", router.CreateSessionHandler)
	r.POST("/v1/sessions/:id/messages", router.SendMessageHandler)
	r.GET("/v1/sessions/:id/messages", router.ListMessagesHandler)
	r.DELETE("/v1/sessions/:id", router.DeleteSessionHandler)
	r.GET("/v1/tools", router.ListToolsHandler)
	r.GET("/health", router.HealthcheckHandler)
	if cfg.EnableTelemetry {
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}
	r.NoRoute(router.NotFoundHandler)

	server := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("Starting MCP bridge", "port", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("ListenAndServe error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctxShutdown); err != nil {
		logger.Error("Server shutdown error", err)
	} else {
		logger.Info("Server gracefully stopped")
	}
}
