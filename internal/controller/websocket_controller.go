package controller

import (
	"encoding/json"
	"fmt"

	"github.com/apex/log"
	"github.com/benbeisheim/falconchess-backend/internal/model"
	"github.com/benbeisheim/falconchess-backend/internal/service"
	"github.com/benbeisheim/falconchess-backend/internal/ws"
	"github.com/gofiber/websocket/v2"
)

type WebSocketController struct {
	gameService *service.GameService
}

func NewWebSocketController(gameService *service.GameService) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
	}
}

// HandleConnection is called when a new WebSocket connection is established
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID := c.Params("gameId")
	playerID, _ := c.Locals("playerID").(string)
	logger := log.WithFields(log.Fields{"game": gameID, "player": playerID})
	// broadcasts from other goroutines and error replies share this writer
	conn := model.Synchronized(c)

	if err := wsc.gameService.RegisterConnection(gameID, playerID, conn); err != nil {
		logger.WithError(err).Warn("failed to register connection")
		wsc.sendError(conn, err)
		_ = conn.Close()
		return
	}
	defer wsc.gameService.UnregisterConnection(gameID, playerID)

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			logger.WithError(err).Debug("read ended")
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			logger.WithError(err).Debug("parse error")
			wsc.sendError(conn, err)
			continue
		}
		if err := wsc.handleMessage(gameID, playerID, msg); err != nil {
			logger.WithError(err).Debug("handle error")
			wsc.sendError(conn, err)
		}
	}
}

// handleMessage applies an inbound action. The new state reaches this
// connection through the session broadcast.
func (wsc *WebSocketController) handleMessage(gameID, playerID string, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeMove:
		var move model.WSMove
		if err := json.Unmarshal(msg.Payload, &move); err != nil {
			return err
		}
		_, err := wsc.gameService.HandleMove(gameID, playerID, move)
		return err
	case ws.MessageTypeEnterFairy:
		var entry model.WSFairyEntry
		if err := json.Unmarshal(msg.Payload, &entry); err != nil {
			return err
		}
		_, err := wsc.gameService.HandleFairyEntry(gameID, playerID, entry)
		return err
	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
}

// HandleMatchmaking queues the player and holds the socket open until a match
// is announced or the client goes away.
func (wsc *WebSocketController) HandleMatchmaking(c *websocket.Conn) {
	playerID, _ := c.Locals("playerID").(string)
	logger := log.WithField("player", playerID)

	ch := make(chan string, 1)
	wsc.gameService.RegisterMatchmakingChannel(playerID, ch)
	if err := wsc.gameService.JoinMatchmaking(playerID); err != nil {
		wsc.gameService.UnregisterMatchmakingChannel(playerID)
		wsc.sendError(c, err)
		return
	}

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}()

	select {
	case event, ok := <-ch:
		if !ok {
			return
		}
		if err := c.WriteMessage(websocket.TextMessage, []byte(event)); err != nil {
			logger.WithError(err).Warn("failed to send match event")
		}
	case <-closed:
		wsc.gameService.UnregisterMatchmakingChannel(playerID)
		wsc.gameService.LeaveMatchmaking(playerID)
		logger.Debug("left matchmaking")
	}
}

func (wsc *WebSocketController) sendError(c model.Conn, err error) {
	msg, mErr := ws.NewMessage(ws.MessageTypeError, ws.ErrorPayload{Error: err.Error()})
	if mErr != nil {
		return
	}
	_ = c.WriteJSON(msg)
}
