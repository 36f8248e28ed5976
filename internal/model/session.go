package model

import (
	"fmt"
	"sync"
	"time"

	"github.com/apex/log"
	"github.com/benbeisheim/falconchess-backend/internal/ws"
	"github.com/gofiber/websocket/v2"
)

// Conn is the part of a websocket connection a session writes to.
type Conn interface {
	WriteJSON(v interface{}) error
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// SyncConn serializes writes to a Conn. Websocket connections allow one
// writer at a time, and a session writes from whichever goroutine completed
// an action.
type SyncConn struct {
	conn Conn
	mu   sync.Mutex
}

// Synchronized wraps conn in a SyncConn unless it already is one.
func Synchronized(conn Conn) *SyncConn {
	if sc, ok := conn.(*SyncConn); ok {
		return sc
	}
	return &SyncConn{conn: conn}
}

func (sc *SyncConn) WriteJSON(v interface{}) error {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.conn.WriteJSON(v)
}

func (sc *SyncConn) WriteMessage(messageType int, data []byte) error {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.conn.WriteMessage(messageType, data)
}

func (sc *SyncConn) Close() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.conn.Close()
}

// The connections for a specific game
type GameConnections struct {
	connections map[string]*SyncConn // playerID -> connection
	mu          sync.RWMutex
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]*SyncConn),
	}
}

// Session hosts one Game for the server: it seats the two players, serializes
// their actions and pushes the resulting state to every observer.
type Session struct {
	ID          string
	mu          sync.Mutex
	game        *Game
	players     Players
	actions     int
	connections *GameConnections
	// sendMu is taken while mu is still held, so states reach observers in
	// the order they were produced.
	sendMu     sync.Mutex
	startedAt  time.Time
	finishedAt time.Time
}

type Players struct {
	White ClientPlayer `json:"white"`
	Black ClientPlayer `json:"black"`
}

type GameState struct {
	Snapshot
	ID      string  `json:"id"`
	Players Players `json:"players"`
}

func NewSession(id string) *Session {
	return &Session{
		ID:          id,
		game:        NewGame(),
		connections: NewGameConnections(),
		startedAt:   time.Now(),
	}
}

func (s *Session) logger() *log.Entry {
	return log.WithField("game", s.ID)
}

// AddPlayer seats playerID as white, then black. A player already seated gets
// their existing color back.
func (s *Session) AddPlayer(playerID string) (Color, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c := s.seatOf(playerID); c != NoColor {
		return c, nil
	}
	if s.players.White.ID == "" {
		s.players.White = ClientPlayer{ID: playerID, Color: White}
		s.logger().WithField("player", playerID).Info("seated white")
		return White, nil
	}
	if s.players.Black.ID == "" {
		s.players.Black = ClientPlayer{ID: playerID, Color: Black}
		s.logger().WithField("player", playerID).Info("seated black")
		return Black, nil
	}
	return NoColor, ErrGameFull
}

func (s *Session) seatOf(playerID string) Color {
	switch {
	case playerID == "":
		return NoColor
	case s.players.White.ID == playerID:
		return White
	case s.players.Black.ID == playerID:
		return Black
	}
	return NoColor
}

func (s *Session) IsPlayerInGame(playerID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seatOf(playerID) != NoColor
}

func (s *Session) CanSpectate() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canSpectate()
}

func (s *Session) canSpectate() bool {
	return s.players.White.ID == "" || s.players.Black.ID == ""
}

func (s *Session) State() GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state()
}

func (s *Session) state() GameState {
	return GameState{
		Snapshot: s.game.Snapshot(),
		ID:       s.ID,
		Players:  s.players,
	}
}

// Status returns the engine status and the number of accepted actions,
// counting a king-capturing move.
func (s *Session) Status() (Status, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.Status(), s.actions
}

// Duration is how long the game ran, or has run so far.
func (s *Session) Duration() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.finishedAt.IsZero() {
		return time.Since(s.startedAt)
	}
	return s.finishedAt.Sub(s.startedAt)
}

// MakeMove plays a move on behalf of playerID.
func (s *Session) MakeMove(playerID string, move WSMove) (GameState, error) {
	return s.act(playerID, func(g *Game) error {
		return g.Move(move.From, move.To)
	})
}

// EnterFairy drops a fairy piece on behalf of playerID.
func (s *Session) EnterFairy(playerID string, entry WSFairyEntry) (GameState, error) {
	return s.act(playerID, func(g *Game) error {
		return g.EnterFairy(entry.Code, entry.To)
	})
}

func (s *Session) act(playerID string, apply func(*Game) error) (GameState, error) {
	s.mu.Lock()
	seat := s.seatOf(playerID)
	if seat == NoColor {
		s.mu.Unlock()
		return GameState{}, ErrNotSeated
	}
	if !s.game.Status().Finished() && seat != s.game.Turn() {
		s.mu.Unlock()
		return GameState{}, reject("action", ErrNotYourTurn)
	}
	if err := apply(s.game); err != nil {
		s.mu.Unlock()
		s.logger().WithField("player", playerID).WithError(err).Debug("action rejected")
		return GameState{}, err
	}
	s.actions++
	if s.game.Status().Finished() && s.finishedAt.IsZero() {
		s.finishedAt = time.Now()
		s.logger().WithField("status", s.game.Status()).Info("game finished")
	}
	state := s.state()
	s.sendMu.Lock()
	s.mu.Unlock()

	s.broadcastState(state)
	s.sendMu.Unlock()
	return state, nil
}

// RegisterConnection adds conn as an observer and sends everyone the current
// state. Pass the same SyncConn used for any other writes to the socket.
func (s *Session) RegisterConnection(playerID string, conn Conn) error {
	sc := Synchronized(conn)

	s.mu.Lock()
	if s.seatOf(playerID) == NoColor && !s.canSpectate() {
		s.mu.Unlock()
		return ErrConnectionRejected
	}
	state := s.state()
	s.sendMu.Lock()
	s.mu.Unlock()
	defer s.sendMu.Unlock()

	s.connections.mu.Lock()
	if _, exists := s.connections.connections[playerID]; exists {
		s.connections.mu.Unlock()
		_ = sc.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "Connection already exists"),
		)
		_ = sc.Close()
		return nil
	}
	s.connections.connections[playerID] = sc
	s.connections.mu.Unlock()
	s.logger().WithField("player", playerID).WithField("conn", fmt.Sprintf("%p", sc)).Debug("registered connection")

	s.broadcastState(state)
	return nil
}

func (s *Session) UnregisterConnection(playerID string) {
	s.connections.mu.Lock()
	defer s.connections.mu.Unlock()

	if _, exists := s.connections.connections[playerID]; exists {
		delete(s.connections.connections, playerID)
		s.logger().WithField("player", playerID).Debug("unregistered connection")
	}
}

// ConnectionCount is the number of live observers.
func (s *Session) ConnectionCount() int {
	s.connections.mu.RLock()
	defer s.connections.mu.RUnlock()
	return len(s.connections.connections)
}

// broadcastState sends state to every observer, dropping connections that
// fail to accept it. The caller holds sendMu.
func (s *Session) broadcastState(state GameState) {
	msg, err := ws.NewMessage(ws.MessageTypeGameState, state)
	if err != nil {
		s.logger().WithError(err).Error("marshal state")
		return
	}

	s.connections.mu.RLock()
	active := make(map[string]*SyncConn, len(s.connections.connections))
	for playerID, conn := range s.connections.connections {
		active[playerID] = conn
	}
	s.connections.mu.RUnlock()

	for playerID, conn := range active {
		if err := conn.WriteJSON(msg); err != nil {
			s.logger().WithField("player", playerID).WithError(err).Warn("failed to send state")
			s.UnregisterConnection(playerID)
		}
	}
}
