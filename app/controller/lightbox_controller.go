package controller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"me-python-boutique/lightbox"
	"me-python-boutique/service"
)

// SessionIdleTimeout is how long an untouched viewer session is kept
const SessionIdleTimeout = 10 * time.Minute

// viewerSession is one open lightbox. Its viewer is only touched while mu
// is held.
type viewerSession struct {
	mu       sync.Mutex
	id       string
	snakeID  string
	doc      *lightbox.Document
	viewer   *lightbox.Viewer
	lastSeen time.Time
}

type sessionResponse struct {
	ID           string `json:"id"`
	SnakeID      string `json:"snakeId"`
	ScrollLocked bool   `json:"scrollLocked"`
	lightbox.Snapshot
}

type openSessionRequest struct {
	SnakeID string `json:"snakeId"`
	Index   int    `json:"index"`
}

// viewerEvent is one input for the viewer state machine
type viewerEvent struct {
	Type  string        `json:"type"`
	X     float64       `json:"x"`
	Y     float64       `json:"y"`
	Rect  lightbox.Rect `json:"rect"`
	Key   string        `json:"key"`
	Index int           `json:"index"`
}

// LightboxController hosts image viewer sessions for thin clients
type LightboxController struct {
	catalog *service.CatalogService
	now     func() time.Time

	sessions      map[string]*viewerSession
	sessionsMutex sync.RWMutex
}

// NewLightboxController creates a new LightboxController
func NewLightboxController(catalog *service.CatalogService) *LightboxController {
	return &LightboxController{
		catalog:  catalog,
		now:      time.Now,
		sessions: make(map[string]*viewerSession),
	}
}

// Sessions handles POST /lightbox/sessions
func (c *LightboxController) Sessions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req openSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	snake, err := c.catalog.Get(req.SnakeID)
	if errors.Is(err, service.ErrNotFound) {
		writeNotFound(w, "Snake not found")
		return
	}
	if err != nil {
		http.Error(w, "Failed to load snake", http.StatusInternalServerError)
		return
	}

	doc := &lightbox.Document{}
	session := &viewerSession{
		id:       uuid.NewString(),
		snakeID:  snake.ID,
		doc:      doc,
		viewer:   lightbox.NewViewer(doc),
		lastSeen: c.now(),
	}
	session.viewer.Open(snake.LightboxImages(), req.Index)

	c.sessionsMutex.Lock()
	c.sessions[session.id] = session
	c.sessionsMutex.Unlock()

	log.Printf("✓ Viewer session %s opened for %s", session.id, snake.ID)
	session.mu.Lock()
	resp := session.response()
	session.mu.Unlock()
	writeJSON(w, http.StatusCreated, resp)
}

// Session handles GET and DELETE /lightbox/sessions/{id} and
// POST /lightbox/sessions/{id}/events
func (c *LightboxController) Session(w http.ResponseWriter, r *http.Request) {
	id, rest := pathID(r.URL.Path, "/lightbox/sessions/")

	switch {
	case rest == "" && r.Method == http.MethodGet:
		c.get(w, id)
	case rest == "" && r.Method == http.MethodDelete:
		c.release(w, id)
	case rest == "events" && r.Method == http.MethodPost:
		c.event(w, r, id)
	case rest == "" || rest == "events":
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	default:
		http.Error(w, "Not found", http.StatusNotFound)
	}
}

func (c *LightboxController) lookup(id string) (*viewerSession, bool) {
	c.sessionsMutex.RLock()
	defer c.sessionsMutex.RUnlock()
	session, ok := c.sessions[id]
	return session, ok
}

func (c *LightboxController) get(w http.ResponseWriter, id string) {
	session, ok := c.lookup(id)
	if !ok {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}

	session.mu.Lock()
	session.lastSeen = c.now()
	resp := session.response()
	session.mu.Unlock()

	writeJSON(w, http.StatusOK, resp)
}

func (c *LightboxController) release(w http.ResponseWriter, id string) {
	c.sessionsMutex.Lock()
	session, ok := c.sessions[id]
	delete(c.sessions, id)
	c.sessionsMutex.Unlock()

	if !ok {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}

	session.mu.Lock()
	session.viewer.Release()
	session.mu.Unlock()

	w.WriteHeader(http.StatusNoContent)
}

func (c *LightboxController) event(w http.ResponseWriter, r *http.Request, id string) {
	session, ok := c.lookup(id)
	if !ok {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}

	var ev viewerEvent
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	if err := c.apply(session, ev); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	session.lastSeen = c.now()
	writeJSON(w, http.StatusOK, session.response())
}

// apply feeds one event into the session's viewer. Caller holds session.mu.
func (c *LightboxController) apply(session *viewerSession, ev viewerEvent) error {
	v := session.viewer
	p := lightbox.Point{X: ev.X, Y: ev.Y}

	switch strings.ToLower(strings.TrimSpace(ev.Type)) {
	case "click":
		v.Click(p, ev.Rect)
	case "pointerdown":
		v.PointerDown(p)
	case "pointermove":
		v.PointerMove(p)
	case "pointerup":
		v.PointerUp()
	case "pointerleave":
		v.PointerLeave()
	case "key":
		v.HandleKey(ev.Key)
	case "next":
		v.Next()
	case "previous":
		v.Previous()
	case "close":
		v.Close()
	case "open":
		snake, err := c.catalog.Get(session.snakeID)
		if err != nil {
			return fmt.Errorf("snake %s is no longer listed", session.snakeID)
		}
		v.Open(snake.LightboxImages(), ev.Index)
	default:
		return fmt.Errorf("unknown event type %q", ev.Type)
	}
	return nil
}

func (s *viewerSession) response() sessionResponse {
	return sessionResponse{
		ID:           s.id,
		SnakeID:      s.snakeID,
		ScrollLocked: s.doc.ScrollLocked(),
		Snapshot:     s.viewer.Snapshot(),
	}
}

// SweepIdle releases and drops sessions untouched for SessionIdleTimeout.
// It returns how many were dropped.
func (c *LightboxController) SweepIdle() int {
	cutoff := c.now().Add(-SessionIdleTimeout)

	c.sessionsMutex.Lock()
	var idle []*viewerSession
	for id, session := range c.sessions {
		session.mu.Lock()
		expired := session.lastSeen.Before(cutoff)
		session.mu.Unlock()
		if expired {
			idle = append(idle, session)
			delete(c.sessions, id)
		}
	}
	c.sessionsMutex.Unlock()

	for _, session := range idle {
		session.mu.Lock()
		session.viewer.Release()
		session.mu.Unlock()
	}
	if len(idle) > 0 {
		log.Printf("🔄 Dropped %d idle viewer sessions", len(idle))
	}
	return len(idle)
}

// StartSweeper runs SweepIdle every minute until ctx is done
func (c *LightboxController) StartSweeper(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				c.SweepIdle()
			case <-ctx.Done():
				return
			}
		}
	}()
}

// CloseAll releases every session, used on shutdown
func (c *LightboxController) CloseAll() {
	c.sessionsMutex.Lock()
	sessions := c.sessions
	c.sessions = make(map[string]*viewerSession)
	c.sessionsMutex.Unlock()

	for _, session := range sessions {
		session.mu.Lock()
		session.viewer.Release()
		session.mu.Unlock()
	}
}
