package utils

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"github.com/propmitra/propmitra-backend/pkg/logger"
	"go.uber.org/zap"
)

// Notifier manages active promoter websocket connections and delivers
// review and unlock events. Delivery is best-effort: a promoter that is
// not connected simply misses the event.
type Notifier struct {
	mu    sync.RWMutex
	conns map[uuid.UUID]*websocket.Conn
}

// DefaultNotifier is the package-level notifier instance.
var DefaultNotifier = NewNotifier()

// NewNotifier creates a new Notifier.
func NewNotifier() *Notifier {
	return &Notifier{
		conns: make(map[uuid.UUID]*websocket.Conn),
	}
}

// Register registers a websocket connection for a user.
func (n *Notifier) Register(userID uuid.UUID, conn *websocket.Conn) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.conns[userID] = conn
	logger.L().Info("ws_register", zap.String("user", userID.String()), zap.Int("total_connections", len(n.conns)))
}

// Unregister removes the websocket connection for a user.
func (n *Notifier) Unregister(userID uuid.UUID) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if conn, ok := n.conns[userID]; ok {
		_ = conn.Close()
		delete(n.conns, userID)
	}
	logger.L().Info("ws_unregister", zap.String("user", userID.String()), zap.Int("total_connections", len(n.conns)))
}

// Send sends a JSON-serializable payload to the user's websocket connection.
func (n *Notifier) Send(userID uuid.UUID, payload interface{}) error {
	n.mu.RLock()
	conn, ok := n.conns[userID]
	n.mu.RUnlock()
	if !ok || conn == nil {
		logger.L().Debug("notify_skip", zap.String("user", userID.String()), zap.String("reason", "no_connection"))
		return ErrNoConnection
	}

	msg, err := json.Marshal(payload)
	if err != nil {
		logger.L().Warn("notify_marshal_error", zap.String("user", userID.String()), zap.Error(err))
		return err
	}

	conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
		logger.L().Warn("notify_write_error", zap.String("user", userID.String()), zap.Error(err))
		return err
	}
	return nil
}

// NoConnError indicates the user has no active websocket connection.
type NoConnError struct{}

func (e *NoConnError) Error() string { return "no websocket connection for user" }

// ErrNoConnection is returned when there is no websocket connection for the user.
var ErrNoConnection = &NoConnError{}
