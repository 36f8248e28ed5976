package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/apex/log"
	"github.com/benbeisheim/falconchess-backend/internal/model"
	"github.com/benbeisheim/falconchess-backend/internal/ws"
	"github.com/google/uuid"
)

var ErrGameNotFound = errors.New("game not found")

type GameManager struct {
	games            map[string]*model.Session
	queue            *model.Queue
	matchingChannels map[string]chan string
	mu               sync.RWMutex
}

func NewGameManager() *GameManager {
	return &GameManager{
		games:            make(map[string]*model.Session),
		queue:            model.NewQueue(),
		matchingChannels: make(map[string]chan string),
	}
}

// RunMatchmaking pairs queued players every interval until ctx is done.
func (gm *GameManager) RunMatchmaking(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for gm.matchNextPair() {
			}
		}
	}
}

// matchNextPair seats the two longest-waiting players in a fresh game and
// tells them about it. It reports whether a pair was found.
func (gm *GameManager) matchNextPair() bool {
	player1, player2, ok := gm.queue.NextPair()
	if !ok {
		return false
	}

	gameID := uuid.New().String()
	session := model.NewSession(gameID)
	p1Color, err := session.AddPlayer(player1.ID)
	if err != nil {
		log.WithError(err).WithField("player", player1.ID).Error("seat matched player")
		return true
	}
	p2Color, err := session.AddPlayer(player2.ID)
	if err != nil {
		log.WithError(err).WithField("player", player2.ID).Error("seat matched player")
		return true
	}

	gm.mu.Lock()
	defer gm.mu.Unlock()
	gm.games[gameID] = session
	log.WithFields(log.Fields{"game": gameID, "white": player1.ID, "black": player2.ID}).Info("match found")

	gm.notifyMatch(player1.ID, model.MatchFoundEvent{GameID: gameID, Color: p1Color})
	gm.notifyMatch(player2.ID, model.MatchFoundEvent{GameID: gameID, Color: p2Color})
	return true
}

// notifyMatch sends event on the player's matchmaking channel and closes it.
// The caller holds gm.mu.
func (gm *GameManager) notifyMatch(playerID string, event model.MatchFoundEvent) {
	ch, ok := gm.matchingChannels[playerID]
	if !ok {
		return
	}
	delete(gm.matchingChannels, playerID)
	defer close(ch)

	msg, err := ws.NewMessage(ws.MessageTypeMatchFound, event)
	if err != nil {
		log.WithError(err).Error("marshal match event")
		return
	}
	body, err := json.Marshal(msg)
	if err != nil {
		log.WithError(err).Error("marshal match message")
		return
	}
	select {
	case ch <- string(body):
	default:
		log.WithField("player", playerID).Warn("matchmaking channel not ready")
	}
}

// RegisterMatchmakingChannel subscribes ch to the player's next match. A
// previously registered channel is closed.
func (gm *GameManager) RegisterMatchmakingChannel(playerID string, ch chan string) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if existing, ok := gm.matchingChannels[playerID]; ok {
		delete(gm.matchingChannels, playerID)
		close(existing)
	}
	gm.matchingChannels[playerID] = ch
}

// UnregisterMatchmakingChannel forgets the player's channel without closing
// it; the registering side owns it.
func (gm *GameManager) UnregisterMatchmakingChannel(playerID string) {
	gm.mu.Lock()
	defer gm.mu.Unlock()
	delete(gm.matchingChannels, playerID)
}

func (gm *GameManager) CreateGame(gameID string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[gameID]; exists {
		return fmt.Errorf("game %s already exists", gameID)
	}
	gm.games[gameID] = model.NewSession(gameID)
	log.WithField("game", gameID).Info("game created")
	return nil
}

func (gm *GameManager) GetGame(gameID string) (*model.Session, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	session, exists := gm.games[gameID]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}
	return session, nil
}

func (gm *GameManager) AddPlayerToGame(gameID string, playerID string) (model.Color, error) {
	session, err := gm.GetGame(gameID)
	if err != nil {
		return model.NoColor, err
	}
	return session.AddPlayer(playerID)
}

func (gm *GameManager) JoinMatchmaking(playerID string) error {
	return gm.queue.AddPlayer(model.Player{ID: playerID})
}

func (gm *GameManager) LeaveMatchmaking(playerID string) bool {
	return gm.queue.Remove(playerID)
}

func (gm *GameManager) GetGameState(gameID string) (model.GameState, error) {
	session, err := gm.GetGame(gameID)
	if err != nil {
		return model.GameState{}, err
	}
	return session.State(), nil
}

func (gm *GameManager) MakeMove(gameID string, playerID string, move model.WSMove) (model.GameState, error) {
	session, err := gm.GetGame(gameID)
	if err != nil {
		return model.GameState{}, err
	}
	return session.MakeMove(playerID, move)
}

func (gm *GameManager) EnterFairy(gameID string, playerID string, entry model.WSFairyEntry) (model.GameState, error) {
	session, err := gm.GetGame(gameID)
	if err != nil {
		return model.GameState{}, err
	}
	return session.EnterFairy(playerID, entry)
}

func (gm *GameManager) RegisterConnection(gameID string, playerID string, conn model.Conn) error {
	session, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return session.RegisterConnection(playerID, conn)
}

func (gm *GameManager) UnregisterConnection(gameID string, playerID string) {
	session, err := gm.GetGame(gameID)
	if err != nil {
		return
	}
	session.UnregisterConnection(playerID)
}

// sessions returns a copy of the registry for read-only walks.
func (gm *GameManager) sessions() []*model.Session {
	gm.mu.RLock()
	defer gm.mu.RUnlock()
	out := make([]*model.Session, 0, len(gm.games))
	for _, s := range gm.games {
		out = append(out, s)
	}
	return out
}
