package session

import (
	"context"
	"strconv"
	"sync"
	"time"

	"go-weather/internal/domain/model"
)

type memoryEntry struct {
	generation int64
	lastSeen   time.Time
}

// MemorySessionGateway keeps generations in process memory. Idle sessions are
// removed by Sweep, which the session sweeper schedule calls periodically.
type MemorySessionGateway struct {
	mutex    sync.Mutex
	sessions map[string]*memoryEntry
	now      func() time.Time
}

func NewMemorySessionGateway() *MemorySessionGateway {
	return &MemorySessionGateway{
		sessions: make(map[string]*memoryEntry),
		now:      time.Now,
	}
}

func (g *MemorySessionGateway) Next(_ context.Context, sessionID string) (int64, error) {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	entry, ok := g.sessions[sessionID]
	if !ok {
		entry = &memoryEntry{}
		g.sessions[sessionID] = entry
	}
	entry.generation++
	entry.lastSeen = g.now()
	return entry.generation, nil
}

func (g *MemorySessionGateway) Current(_ context.Context, sessionID string) (int64, error) {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	if entry, ok := g.sessions[sessionID]; ok {
		return entry.generation, nil
	}
	return 0, nil
}

// Sweep drops sessions without a search for longer than idle and returns how many were removed
func (g *MemorySessionGateway) Sweep(idle time.Duration) int {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	cutoff := g.now().Add(-idle)
	removed := 0
	for id, entry := range g.sessions {
		if entry.lastSeen.Before(cutoff) {
			delete(g.sessions, id)
			removed++
		}
	}
	return removed
}

func (g *MemorySessionGateway) Health(_ context.Context) model.ComponentHealthStatus {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	return model.ComponentHealthStatus{
		Status: model.StatusUp,
		Details: map[string]string{
			"store":    "memory",
			"sessions": strconv.Itoa(len(g.sessions)),
		},
	}
}
