package game

import (
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// subscriber serialises writes; a websocket connection allows only one
// concurrent writer.
type subscriber struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (s *subscriber) send(v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteJSON(v)
}

// hub tracks websocket subscribers per game.
type hub struct {
	log  *zap.SugaredLogger
	mu   sync.RWMutex
	subs map[string]map[*subscriber]struct{}
}

func newHub(log *zap.SugaredLogger) *hub {
	return &hub{
		log:  log,
		subs: make(map[string]map[*subscriber]struct{}),
	}
}

func (h *hub) subscribe(gameID string, conn *websocket.Conn) *subscriber {
	sub := &subscriber{conn: conn}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subs[gameID] == nil {
		h.subs[gameID] = make(map[*subscriber]struct{})
	}
	h.subs[gameID][sub] = struct{}{}
	return sub
}

func (h *hub) unsubscribe(gameID string, sub *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.subs[gameID], sub)
	if len(h.subs[gameID]) == 0 {
		delete(h.subs, gameID)
	}
}

// broadcast sends v to every subscriber of gameID. Subscribers that fail
// are closed; their read loops then unsubscribe them.
func (h *hub) broadcast(gameID string, v any) {
	h.mu.RLock()
	subs := make([]*subscriber, 0, len(h.subs[gameID]))
	for sub := range h.subs[gameID] {
		subs = append(subs, sub)
	}
	h.mu.RUnlock()

	for _, sub := range subs {
		if err := sub.send(v); err != nil {
			h.log.Warnw("dropping websocket subscriber", "game_id", gameID, "error", err)
			_ = sub.conn.Close()
		}
	}
}

func (h *hub) count(gameID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[gameID])
}
