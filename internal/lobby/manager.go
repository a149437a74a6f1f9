package lobby

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Manager manages multiple lobbies and reaps abandoned ones.
type Manager struct {
	mu      sync.Mutex
	lobbies map[string]*Lobby
	log     *zap.Logger
}

func NewManager(log *zap.Logger) *Manager {
	return &Manager{
		lobbies: make(map[string]*Lobby),
		log:     log,
	}
}

// Create creates a new lobby and returns its ID.
func (m *Manager) Create() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := generateID()
	m.lobbies[id] = NewLobby(id)
	m.log.Info("lobby created", zap.String("game_id", id))
	return id
}

// Get returns a lobby by ID, nil when unknown.
func (m *Manager) Get(id string) *Lobby {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lobbies[id]
}

// Delete removes a lobby by ID.
func (m *Manager) Delete(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.lobbies, id)
}

// RemoveStale deletes every lobby older than maxAge and returns the removed
// IDs so the caller can tear down the matching game rooms.
func (m *Manager) RemoveStale(maxAge time.Duration) []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	var removed []string
	for id, l := range m.lobbies {
		if l.Age() > maxAge {
			delete(m.lobbies, id)
			removed = append(removed, id)
		}
	}
	return removed
}

// CleanupLoop reaps stale lobbies on a fixed cadence until the returned stop
// function is called. onRemove, if non-nil, runs once per removed lobby.
func (m *Manager) CleanupLoop(interval, maxAge time.Duration, onRemove func(id string)) func() {
	ticker := time.NewTicker(interval)
	quit := make(chan struct{})
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				removed := m.RemoveStale(maxAge)
				if len(removed) > 0 {
					m.log.Info("removed stale lobbies",
						zap.Int("count", len(removed)),
						zap.Strings("game_ids", removed))
				}
				if onRemove != nil {
					for _, id := range removed {
						onRemove(id)
					}
				}
			case <-quit:
				return
			}
		}
	}()
	return func() { close(quit) }
}

func generateID() string {
	return strings.SplitN(uuid.NewString(), "-", 2)[0]
}
