// internal/httpapi/server.go
package httpapi

import (
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tamzrod/toyotomi-remote/internal/protocol"
	"github.com/tamzrod/toyotomi-remote/internal/remote"
)

// Controller is the part of remote.Controller the HTTP surface drives.
type Controller interface {
	State() remote.State
	LastFrame() remote.LastSent
	Err() error

	PowerOn()
	PowerOff()
	SetMode(m protocol.Mode) protocol.Mode
	SetTemperature(t int) int
	SetFanSpeed(f protocol.FanSpeed) protocol.FanSpeed
	SetTimerOn(t protocol.TimerTime) protocol.TimerTime
	SetTimerOff(t protocol.TimerTime) protocol.TimerTime
	Press(b remote.Button) bool
}

// Unit is one addressable air conditioner.
type Unit struct {
	ID         string
	Controller Controller
}

type Server struct {
	units  map[string]Controller
	ids    []string
	logger *slog.Logger
	router *gin.Engine
}

// New builds the router for units. Unit ids must be unique.
func New(units []Unit, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		units:  make(map[string]Controller, len(units)),
		logger: logger,
	}
	for _, u := range units {
		s.units[u.ID] = u.Controller
		s.ids = append(s.ids, u.ID)
	}
	sort.Strings(s.ids)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), s.accessLog)

	router.GET("/units", s.listUnits)

	unit := router.Group("/units/:id")
	{
		unit.GET("/state", s.getState)
		unit.PUT("/state", s.putState)
		unit.POST("/buttons/:button", s.pressButton)
		unit.GET("/frame", s.getFrame)
	}

	s.router = router
	return s
}

// Handler returns the http.Handler serving the API.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) accessLog(c *gin.Context) {
	start := time.Now()
	path := c.Request.URL.Path

	c.Next()

	s.logger.Debug("http request",
		"method", c.Request.Method,
		"path", path,
		"status", c.Writer.Status(),
		"client", c.ClientIP(),
		"latency", time.Since(start))
}

// unit resolves the :id parameter, answering 404 itself when it is unknown.
func (s *Server) unit(c *gin.Context) (Controller, bool) {
	ctrl, ok := s.units[c.Param("id")]
	if !ok {
		c.JSON(http.StatusNotFound, errorJSON{Error: "unknown unit " + c.Param("id")})
		return nil, false
	}
	return ctrl, true
}
