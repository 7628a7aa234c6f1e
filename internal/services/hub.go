package services

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/fanalytics/sportsbot/internal/models"
	"github.com/fanalytics/sportsbot/internal/sports"
)

// ScoresHub fans live scoreboard updates out to websocket subscribers.
// Clients subscribe to one sport; broadcasts for other sports never reach
// them. Slow clients are dropped rather than blocking the broadcast.
type ScoresHub struct {
	mu      sync.RWMutex
	clients map[sports.SportKey]map[*websocket.Conn]bool
	logger  *logrus.Logger
}

// ScoreUpdate is the wire message pushed to subscribers.
type ScoreUpdate struct {
	Sport string        `json:"sport"`
	Games []models.Game `json:"games"`
}

func NewScoresHub(logger *logrus.Logger) *ScoresHub {
	return &ScoresHub{
		clients: make(map[sports.SportKey]map[*websocket.Conn]bool),
		logger:  logger,
	}
}

// Subscribe registers a connection for one sport's updates.
func (h *ScoresHub) Subscribe(sport sports.SportKey, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[sport] == nil {
		h.clients[sport] = make(map[*websocket.Conn]bool)
	}
	h.clients[sport][conn] = true
	h.logger.WithField("sport", sport).Debug("Websocket client subscribed")
}

// Unsubscribe removes a connection and closes it.
func (h *ScoresHub) Unsubscribe(sport sports.SportKey, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if subs, ok := h.clients[sport]; ok {
		delete(subs, conn)
	}
	conn.Close()
}

// Broadcast sends the current games to every subscriber of a sport.
func (h *ScoresHub) Broadcast(sport sports.SportKey, games []models.Game) {
	payload, err := json.Marshal(ScoreUpdate{Sport: string(sport), Games: games})
	if err != nil {
		h.logger.WithError(err).Error("Failed to marshal score update")
		return
	}

	h.mu.RLock()
	subs := make([]*websocket.Conn, 0, len(h.clients[sport]))
	for conn := range h.clients[sport] {
		subs = append(subs, conn)
	}
	h.mu.RUnlock()

	for _, conn := range subs {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			h.logger.WithError(err).Debug("Dropping websocket client")
			h.Unsubscribe(sport, conn)
		}
	}
}

// SubscriberCount returns the number of connections for a sport.
func (h *ScoresHub) SubscriberCount(sport sports.SportKey) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[sport])
}

// Close drops every connection.
func (h *ScoresHub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for sport, subs := range h.clients {
		for conn := range subs {
			conn.Close()
		}
		delete(h.clients, sport)
	}
}
