package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dgravitate/quantum-examples/internal/apperror"
	"github.com/dgravitate/quantum-examples/internal/entity"
	"github.com/dgravitate/quantum-examples/internal/pkg"
	"github.com/dgravitate/quantum-examples/internal/tictactoe"
	"github.com/google/uuid"
)

type playerRepo interface {
	CreateOrUpdate(ctx context.Context, player *entity.Player) error
	GetByID(ctx context.Context, id string) (*entity.Player, error)
}

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type archiveRepo interface {
	SaveResult(ctx context.Context, game *entity.Game) error
}

type gameController interface {
	MakeTurn(ctx context.Context, game *entity.Game, mark string, cell int) ([]tictactoe.Collapse, error)
}

// GameManager owns the lifecycle of networked games: players, rooms,
// turns with quantum collapse, and archival of finished games.
type GameManager struct {
	logger     *slog.Logger
	playerRepo playerRepo
	gameRepo   gameRepo
	archive    archiveRepo
	controller gameController
}

func NewGameManager(
	logger *slog.Logger,
	playerRepo playerRepo,
	gameRepo gameRepo,
	archive archiveRepo,
	controller gameController,
) *GameManager {
	return &GameManager{
		logger:     logger.With("component", "game_manager"),
		playerRepo: playerRepo,
		gameRepo:   gameRepo,
		archive:    archive,
		controller: controller,
	}
}

// GetOrCreatePlayer returns the player with the given ID, or registers a
// new one when the ID is empty.
func (that *GameManager) GetOrCreatePlayer(ctx context.Context, id string) (*entity.Player, error) {
	if id == "" {
		player := &entity.Player{ID: uuid.NewString()}
		if err := that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
			return nil, fmt.Errorf("could not create player: %w", err)
		}
		return player, nil
	}

	player, err := that.playerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	return player, nil
}

// GetOrCreateGame returns the player's current game, or opens a new
// waiting room with the player marked X until an opponent joins.
func (that *GameManager) GetOrCreateGame(ctx context.Context, playerID, gameType string) (*entity.Game, error) {
	player, err := that.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	if player.GameID != "" {
		game, err := that.gameRepo.GetByID(ctx, player.GameID)
		if err != nil {
			return nil, fmt.Errorf("failed to get game by id: %w", err)
		}
		return game, nil
	}

	game := entity.NewGame(pkg.GenerateGameID(), gameType)

	player.GameID = game.ID
	player.Mark = entity.PlayerX
	game.Players = append(game.Players, player)

	if err = that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to update player: %w", err)
	}

	if err = that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	that.logger.Info("game created", "game", game.ID, "player", player.ID)

	return game, nil
}

// ConnectToGame joins a second player into a waiting game. Marks are
// reassigned randomly when the room fills, and the game starts.
func (that *GameManager) ConnectToGame(ctx context.Context, gameID, playerID string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	player, err := that.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	if player.GameID == game.ID {
		return game, nil
	}

	if len(game.Players) >= 2 {
		return nil, fmt.Errorf("%w: game id %s", apperror.ErrGameAlreadyExists, gameID)
	}

	if len(game.Players) == 0 {
		return nil, fmt.Errorf("%w: game id %s has no host", apperror.ErrNoActiveGames, gameID)
	}

	host := game.Players[0]
	hostMark, joinerMark := game.GetRandomMarks()
	host.Mark = hostMark

	player.GameID = game.ID
	player.Mark = joinerMark

	game.Players = append(game.Players, player)
	game.Status = entity.StatusOngoing

	if err = that.playerRepo.CreateOrUpdate(ctx, host); err != nil {
		return nil, fmt.Errorf("failed to update host: %w", err)
	}

	if err = that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to update player: %w", err)
	}

	if err = that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	that.logger.Info("player joined game", "game", game.ID, "player", player.ID)

	return game, nil
}

// GetGameByPlayerID returns the active game the player is part of.
func (that *GameManager) GetGameByPlayerID(ctx context.Context, playerID string) (*entity.Game, error) {
	player, err := that.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	if player.GameID == "" {
		return nil, apperror.ErrNoActiveGames
	}

	game, err := that.gameRepo.GetByID(ctx, player.GameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	return game, nil
}

// MakeTurn plays one move for the player, persists the game and, when
// the game finishes, archives the result and tears the room down.
func (that *GameManager) MakeTurn(ctx context.Context, playerID string, cell int) (*entity.Game, []tictactoe.Collapse, error) {
	player, err := that.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	if player.GameID == "" {
		return nil, nil, apperror.ErrNoActiveGames
	}

	game, err := that.gameRepo.GetByID(ctx, player.GameID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	if err = game.ConfirmOngoingState(); err != nil {
		return game, nil, err
	}

	collapses, err := that.controller.MakeTurn(ctx, game, player.Mark, cell)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to make turn: %w", err)
	}

	if err = that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, nil, fmt.Errorf("failed to update game: %w", err)
	}

	if game.IsFinished() {
		that.finishGame(ctx, game)
	}

	return game, collapses, nil
}

// finishGame archives the result and releases the players. Failures here
// are logged rather than returned: the turn itself already succeeded.
func (that *GameManager) finishGame(ctx context.Context, game *entity.Game) {
	log := that.logger.With("method", "finishGame", "game", game.ID)

	if err := that.archive.SaveResult(ctx, game); err != nil {
		log.Error("could not archive game", "error", err)
	}

	for _, player := range game.Players {
		player.GameID = ""
		player.Mark = ""
		if err := that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
			log.Error("could not release player", "player", player.ID, "error", err)
		}
	}

	if err := that.gameRepo.DeleteByID(ctx, game.ID); err != nil {
		log.Error("could not delete finished game", "error", err)
	}

	log.Info("game finished", "winner", game.Winner)
}
