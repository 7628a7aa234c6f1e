package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/fanalytics/sportsbot/internal/services"
	"github.com/fanalytics/sportsbot/internal/sports"
	"github.com/fanalytics/sportsbot/pkg/utils"
)

// WSHandler upgrades connections into live score subscriptions.
type WSHandler struct {
	hub      *services.ScoresHub
	upgrader websocket.Upgrader
	logger   *logrus.Logger
}

func NewWSHandler(hub *services.ScoresHub, allowedOrigins []string, logger *logrus.Logger) *WSHandler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}
	return &WSHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || allowed[origin]
			},
		},
		logger: logger,
	}
}

// Subscribe streams score updates for one sport.
// GET /ws?sport=nba
func (h *WSHandler) Subscribe(c *gin.Context) {
	sport, ok := sports.ParseSportKey(c.Query("sport"))
	if !ok {
		utils.SendValidationError(c, "Unknown sport", "expected one of nba, nfl, mlb, nhl, mcb, cfb")
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.WithError(err).Warn("Websocket upgrade failed")
		return
	}

	h.hub.Subscribe(sport, conn)

	// Reader loop detects disconnects; inbound messages are ignored.
	go func() {
		defer h.hub.Unsubscribe(sport, conn)
		conn.SetReadLimit(512)
		conn.SetReadDeadline(time.Now().Add(10 * time.Minute))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(10 * time.Minute))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
