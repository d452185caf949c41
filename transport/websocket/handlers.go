package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dgravitate/quantum-examples/internal/apperror"
	"github.com/dgravitate/quantum-examples/internal/entity"
	"github.com/dgravitate/quantum-examples/internal/tictactoe"
)

func (that *Server) handleConnect(ctx context.Context, msg *Message, conn *connection) error {
	log := that.logger.With("method", "handleConnect")

	var payloadReq Payload

	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	var playerID string
	if payloadReq.Player != nil {
		playerID = payloadReq.Player.ID
	}

	player, err := that.gameUseCase.GetOrCreatePlayer(ctx, playerID)
	if err != nil {
		log.Error("failed to create or get player", "error", err)
		return that.sendErrorResponse(conn, msg.Action, "failed to create a new player")
	}

	that.registerConnection(player.ID, conn)

	payloadResp := Payload{
		Player: player,
	}

	if player.GameID != "" {
		game, err := that.gameUseCase.GetGameByPlayerID(ctx, player.ID)
		if err != nil {
			log.Error("failed to get game", "gameID", player.GameID, "error", err)
			return that.sendErrorResponse(conn, msg.Action, "failed to get the game")
		}

		payloadResp.Game = game
	}

	if err = that.sendMessage(conn, msg.Action, payloadResp); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	log.Info("successfully connected player", "playerID", player.ID)

	return nil
}

func (that *Server) handleNewGame(ctx context.Context, msg *Message, conn *connection) error {
	log := that.logger.With("method", "handleNewGame")

	var payloadReq Payload

	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if payloadReq.Player == nil {
		log.Error("Player is missing in payload")
		return that.sendErrorResponse(conn, msg.Action, "Player is required")
	}

	that.registerConnection(payloadReq.Player.ID, conn)

	gameType := payloadReq.GameType
	if gameType == "" {
		gameType = entity.PrivateType
	}

	game, err := that.gameUseCase.GetOrCreateGame(ctx, payloadReq.Player.ID, gameType)
	if err != nil {
		log.Error("failed to create or get game", "error", err)
		return that.sendErrorResponse(conn, msg.Action, "failed to create a new game")
	}

	that.broadcastGameUpdate(msg.Action, game, nil)

	log.Info("game created", "gameID", game.ID)

	return nil
}

func (that *Server) handleJoinGame(ctx context.Context, msg *Message, conn *connection) error {
	log := that.logger.With("method", "handleJoinGame")

	var payloadReq Payload

	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if payloadReq.Player == nil {
		log.Error("Player is missing in payload")
		return that.sendErrorResponse(conn, msg.Action, "Player is required")
	}

	if payloadReq.GameID == "" {
		log.Error("Game ID is missing in payload")
		return that.sendErrorResponse(conn, msg.Action, "Game ID is required")
	}

	that.registerConnection(payloadReq.Player.ID, conn)

	log = log.With("playerID", payloadReq.Player.ID)

	game, err := that.gameUseCase.ConnectToGame(ctx, payloadReq.GameID, payloadReq.Player.ID)
	if errors.Is(err, apperror.ErrGameAlreadyExists) {
		return that.sendErrorResponse(conn, msg.Action, fmt.Sprintf("game %s is already full", payloadReq.GameID))
	}

	if err != nil {
		log.Error("failed to join game", "error", err)
		return that.sendErrorResponse(conn, msg.Action, fmt.Sprintf("game %s: %v", payloadReq.GameID, err))
	}

	that.broadcastGameUpdate(msg.Action, game, nil)

	log.Info("player joined game", "gameID", game.ID)

	return nil
}

func (that *Server) handleGameTurn(ctx context.Context, msg *Message, conn *connection) error {
	log := that.logger.With("method", "handleGameTurn")

	var payloadReq Payload

	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if payloadReq.Player == nil {
		log.Error("Player is missing in payload")
		return that.sendErrorResponse(conn, msg.Action, "Player is required")
	}

	if payloadReq.Cell == nil {
		log.Error("Cell is missing in payload")
		return that.sendErrorResponse(conn, msg.Action, "Cell is required")
	}

	that.registerConnection(payloadReq.Player.ID, conn)

	log = log.With("playerID", payloadReq.Player.ID)

	game, collapses, err := that.gameUseCase.MakeTurn(ctx, payloadReq.Player.ID, *payloadReq.Cell)
	if isTurnRejection(err) {
		return that.sendErrorResponse(conn, msg.Action, err.Error())
	}

	if err != nil {
		log.Error("failed to make turn", "error", err)
		return that.sendErrorResponse(conn, msg.Action, fmt.Sprintf("failed to make turn: %v", err))
	}

	that.broadcastGameUpdate(msg.Action, game, collapses)

	log.Info("player made a turn", "gameID", game.ID, "cell", *payloadReq.Cell)

	return nil
}

// isTurnRejection reports whether the error is a game rule violation
// that should be reported to the sender without tearing the connection down.
func isTurnRejection(err error) bool {
	return errors.Is(err, apperror.ErrGameFinished) ||
		errors.Is(err, apperror.ErrGameIsNotStarted) ||
		errors.Is(err, apperror.ErrNotYourTurn) ||
		errors.Is(err, apperror.ErrInvalidCell) ||
		errors.Is(err, apperror.ErrCellOwnedBySelf) ||
		errors.Is(err, apperror.ErrCellInSuperposition)
}

func (that *Server) registerConnection(playerID string, conn *connection) {
	that.connectionsMutex.Lock()
	that.connections[playerID] = conn
	that.connectionsMutex.Unlock()
}

// broadcastGameUpdate sends the current game state to every player in the game.
func (that *Server) broadcastGameUpdate(action string, game *entity.Game, collapses []tictactoe.Collapse) {
	log := that.logger.With("method", "broadcastGameUpdate", "gameID", game.ID)

	for _, player := range game.Players {
		that.connectionsMutex.RLock()
		conn, ok := that.connections[player.ID]
		that.connectionsMutex.RUnlock()

		if !ok {
			log.Warn("connection not found for player", "playerID", player.ID)
			continue
		}

		payloadResp := Payload{
			Player:    player,
			Game:      game,
			Collapses: collapses,
		}

		if err := that.sendMessage(conn, action, payloadResp); err != nil {
			log.Error("failed to send game update", "error", err)
		}
	}
}
