package shell

import (
	"fmt"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"weatherwise-shell/internal/models"
	"weatherwise-shell/shared/config"
	"weatherwise-shell/shared/monitoring"
)

// Bridge exposes the command surface over local HTTP so the front end can
// invoke commands the same way it would through a desktop shell's IPC. Every
// command reply is wrapped in an InvokeResult envelope; a failed command is
// still a successful HTTP exchange.
type Bridge struct {
	config   *config.BridgeConfig
	commands *Commands
	monitor  *monitoring.Monitor
}

func NewBridge(cfg *config.BridgeConfig, commands *Commands, monitor *monitoring.Monitor) *Bridge {
	return &Bridge{
		config:   cfg,
		commands: commands,
		monitor:  monitor,
	}
}

// Router builds the gin engine with all bridge routes attached.
func (b *Bridge) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestID())
	router.Use(cors.New(b.corsConfig()))

	commands := router.Group("/commands")
	{
		commands.POST("/get_weather_prediction", b.handlePredict)
		commands.GET("/check_backend_health", b.handleCheckHealth)
		commands.GET("/list_activities", b.handleListActivities)
	}

	router.GET("/health", b.handleHealth)
	router.GET("/status", b.handleStatus)

	return router
}

// corsConfig opens the bridge to any origin unless the deployment pins a
// list. The front end is served from an app origin that varies per platform,
// so the default must stay permissive.
func (b *Bridge) corsConfig() cors.Config {
	cfg := cors.DefaultConfig()
	if len(b.config.AllowedOrigins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = b.config.AllowedOrigins
	}
	cfg.AllowHeaders = append(cfg.AllowHeaders, "X-Request-ID")
	return cfg
}

// requestID tags every exchange so front-end logs and shell logs can be
// correlated. A caller-supplied X-Request-ID is kept, otherwise one is minted.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

func (b *Bridge) handlePredict(c *gin.Context) {
	var req models.PredictionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.InvokeResult{
			Success: false,
			Error:   fmt.Sprintf("invalid request body: %v", err),
		})
		return
	}

	resp, err := b.commands.GetWeatherPrediction(c.Request.Context(),
		req.Temperature, req.Humidity, req.WindSpeed, req.Pressure, req.Activity)
	if err != nil {
		c.JSON(http.StatusOK, models.InvokeResult{Success: false, Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, models.InvokeResult{Success: true, Result: resp})
}

func (b *Bridge) handleCheckHealth(c *gin.Context) {
	msg, err := b.commands.CheckBackendHealth(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusOK, models.InvokeResult{Success: false, Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, models.InvokeResult{Success: true, Result: msg})
}

func (b *Bridge) handleListActivities(c *gin.Context) {
	catalog, err := b.commands.ListActivities(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusOK, models.InvokeResult{Success: false, Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, models.InvokeResult{Success: true, Result: catalog})
}

// handleHealth reports the shell's own liveness plus what it last saw of the
// backend. Kept as plain text so a supervisor can curl it.
func (b *Bridge) handleHealth(c *gin.Context) {
	if b.monitor.IsHealthy() {
		c.String(http.StatusOK, "OK - %s", b.monitor.StatusSummary())
		return
	}
	c.String(http.StatusServiceUnavailable, "DEGRADED - %s", b.monitor.StatusSummary())
}

func (b *Bridge) handleStatus(c *gin.Context) {
	c.JSON(http.StatusOK, b.monitor.Snapshot())
}
