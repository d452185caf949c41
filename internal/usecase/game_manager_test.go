package usecase

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/dgravitate/quantum-examples/internal/apperror"
	"github.com/dgravitate/quantum-examples/internal/entity"
	"github.com/dgravitate/quantum-examples/internal/quantum"
	"github.com/dgravitate/quantum-examples/internal/repository"
	"github.com/dgravitate/quantum-examples/internal/tictactoe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// in-memory repositories so manager tests stay free of redis and sqlite.

type fakePlayerRepo struct {
	players map[string]*entity.Player
}

func (that *fakePlayerRepo) CreateOrUpdate(_ context.Context, player *entity.Player) error {
	copied := *player
	that.players[player.ID] = &copied
	return nil
}

func (that *fakePlayerRepo) GetByID(_ context.Context, id string) (*entity.Player, error) {
	player, ok := that.players[id]
	if !ok {
		return nil, repository.ErrPlayerNotFound
	}
	copied := *player
	return &copied, nil
}

type fakeGameRepo struct {
	games map[string]*entity.Game
}

func (that *fakeGameRepo) CreateOrUpdate(_ context.Context, game *entity.Game) error {
	that.games[game.ID] = game
	return nil
}

func (that *fakeGameRepo) GetByID(_ context.Context, id string) (*entity.Game, error) {
	game, ok := that.games[id]
	if !ok {
		return nil, repository.ErrGameNotFound
	}
	return game, nil
}

func (that *fakeGameRepo) DeleteByID(_ context.Context, id string) error {
	delete(that.games, id)
	return nil
}

type fakeArchive struct {
	saved []*entity.Game
}

func (that *fakeArchive) SaveResult(_ context.Context, game *entity.Game) error {
	that.saved = append(that.saved, game)
	return nil
}

func newTestManager(t *testing.T) (*GameManager, *fakePlayerRepo, *fakeGameRepo, *fakeArchive) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	players := &fakePlayerRepo{players: make(map[string]*entity.Player)}
	games := &fakeGameRepo{games: make(map[string]*entity.Game)}
	archive := &fakeArchive{}

	collapser := tictactoe.NewQuantumCollapser(logger, quantum.NewSimulator(quantum.WithSeed(1)))
	controller := tictactoe.NewController(collapser)

	return NewGameManager(logger, players, games, archive, controller), players, games, archive
}

func TestGameManager_GetOrCreatePlayer(t *testing.T) {
	ctx := context.Background()

	t.Run("Empty ID registers a new player", func(t *testing.T) {
		manager, players, _, _ := newTestManager(t)

		player, err := manager.GetOrCreatePlayer(ctx, "")

		require.NoError(t, err)
		assert.NotEmpty(t, player.ID)
		assert.Contains(t, players.players, player.ID)
	})

	t.Run("Existing ID returns the stored player", func(t *testing.T) {
		manager, players, _, _ := newTestManager(t)
		players.players["p-1"] = &entity.Player{ID: "p-1", Mark: entity.PlayerX}

		player, err := manager.GetOrCreatePlayer(ctx, "p-1")

		require.NoError(t, err)
		assert.Equal(t, entity.PlayerX, player.Mark)
	})

	t.Run("Unknown ID is an error", func(t *testing.T) {
		manager, _, _, _ := newTestManager(t)

		_, err := manager.GetOrCreatePlayer(ctx, "missing")

		assert.ErrorIs(t, err, repository.ErrPlayerNotFound)
	})
}

func TestGameManager_GetOrCreateGame(t *testing.T) {
	ctx := context.Background()

	t.Run("Creates a waiting game hosted by the player as X", func(t *testing.T) {
		manager, _, games, _ := newTestManager(t)
		player, err := manager.GetOrCreatePlayer(ctx, "")
		require.NoError(t, err)

		game, err := manager.GetOrCreateGame(ctx, player.ID, entity.PrivateType)

		require.NoError(t, err)
		assert.True(t, game.IsWaiting())
		require.Len(t, game.Players, 1)
		assert.Equal(t, entity.PlayerX, game.Players[0].Mark)
		assert.Contains(t, games.games, game.ID)
	})

	t.Run("Returns the player's existing game", func(t *testing.T) {
		manager, _, _, _ := newTestManager(t)
		player, err := manager.GetOrCreatePlayer(ctx, "")
		require.NoError(t, err)

		created, err := manager.GetOrCreateGame(ctx, player.ID, entity.PrivateType)
		require.NoError(t, err)

		again, err := manager.GetOrCreateGame(ctx, player.ID, entity.PrivateType)
		require.NoError(t, err)
		assert.Equal(t, created.ID, again.ID)
	})
}

func TestGameManager_ConnectToGame(t *testing.T) {
	ctx := context.Background()

	t.Run("Second player starts the game with opposing marks", func(t *testing.T) {
		manager, _, _, _ := newTestManager(t)
		host, err := manager.GetOrCreatePlayer(ctx, "")
		require.NoError(t, err)
		game, err := manager.GetOrCreateGame(ctx, host.ID, entity.PrivateType)
		require.NoError(t, err)

		joiner, err := manager.GetOrCreatePlayer(ctx, "")
		require.NoError(t, err)

		joined, err := manager.ConnectToGame(ctx, game.ID, joiner.ID)

		require.NoError(t, err)
		assert.True(t, joined.IsOngoing())
		require.Len(t, joined.Players, 2)
		assert.NotEqual(t, joined.Players[0].Mark, joined.Players[1].Mark)
	})

	t.Run("Full game rejects a third player", func(t *testing.T) {
		manager, _, _, _ := newTestManager(t)
		host, _ := manager.GetOrCreatePlayer(ctx, "")
		game, _ := manager.GetOrCreateGame(ctx, host.ID, entity.PrivateType)
		joiner, _ := manager.GetOrCreatePlayer(ctx, "")
		_, err := manager.ConnectToGame(ctx, game.ID, joiner.ID)
		require.NoError(t, err)

		third, _ := manager.GetOrCreatePlayer(ctx, "")
		_, err = manager.ConnectToGame(ctx, game.ID, third.ID)

		assert.ErrorIs(t, err, apperror.ErrGameAlreadyExists)
	})

	t.Run("Rejoining your own game is idempotent", func(t *testing.T) {
		manager, _, _, _ := newTestManager(t)
		host, _ := manager.GetOrCreatePlayer(ctx, "")
		game, _ := manager.GetOrCreateGame(ctx, host.ID, entity.PrivateType)

		rejoined, err := manager.ConnectToGame(ctx, game.ID, host.ID)

		require.NoError(t, err)
		assert.Equal(t, game.ID, rejoined.ID)
	})
}

func TestGameManager_MakeTurn(t *testing.T) {
	ctx := context.Background()

	startGame := func(t *testing.T, manager *GameManager) (*entity.Game, *entity.Player, *entity.Player) {
		t.Helper()

		host, err := manager.GetOrCreatePlayer(ctx, "")
		require.NoError(t, err)
		game, err := manager.GetOrCreateGame(ctx, host.ID, entity.PrivateType)
		require.NoError(t, err)
		joiner, err := manager.GetOrCreatePlayer(ctx, "")
		require.NoError(t, err)
		game, err = manager.ConnectToGame(ctx, game.ID, joiner.ID)
		require.NoError(t, err)

		var playerX, playerO *entity.Player
		for _, p := range game.Players {
			if p.Mark == entity.PlayerX {
				playerX = p
			} else {
				playerO = p
			}
		}
		require.NotNil(t, playerX)
		require.NotNil(t, playerO)

		return game, playerX, playerO
	}

	t.Run("Turn is applied and persisted", func(t *testing.T) {
		manager, _, games, _ := newTestManager(t)
		game, playerX, _ := startGame(t, manager)

		updated, collapses, err := manager.MakeTurn(ctx, playerX.ID, 0)

		require.NoError(t, err)
		assert.Empty(t, collapses)
		assert.Equal(t, entity.OwnedCell(entity.PlayerX), updated.Board[0])
		assert.Equal(t, entity.OwnedCell(entity.PlayerX), games.games[game.ID].Board[0])
	})

	t.Run("Waiting game rejects turns", func(t *testing.T) {
		manager, _, _, _ := newTestManager(t)
		host, _ := manager.GetOrCreatePlayer(ctx, "")
		_, err := manager.GetOrCreateGame(ctx, host.ID, entity.PrivateType)
		require.NoError(t, err)

		_, _, err = manager.MakeTurn(ctx, host.ID, 0)

		assert.ErrorIs(t, err, apperror.ErrGameIsNotStarted)
	})

	t.Run("Player without a game has no active games", func(t *testing.T) {
		manager, _, _, _ := newTestManager(t)
		player, _ := manager.GetOrCreatePlayer(ctx, "")

		_, _, err := manager.MakeTurn(ctx, player.ID, 0)

		assert.ErrorIs(t, err, apperror.ErrNoActiveGames)
	})

	t.Run("Finished game is archived and torn down", func(t *testing.T) {
		manager, players, games, archive := newTestManager(t)
		game, playerX, playerO := startGame(t, manager)

		// X takes the top row while O fills the bottom
		moves := []struct {
			player *entity.Player
			cell   int
		}{
			{playerX, 0}, {playerO, 6},
			{playerX, 1}, {playerO, 7},
			{playerX, 2},
		}

		var final *entity.Game
		for _, move := range moves {
			var err error
			final, _, err = manager.MakeTurn(ctx, move.player.ID, move.cell)
			require.NoError(t, err)
		}

		// Then: X won, the game is archived, the room is gone
		require.True(t, final.IsFinished())
		assert.Equal(t, entity.PlayerX, final.Winner)
		require.Len(t, archive.saved, 1)
		assert.NotContains(t, games.games, game.ID)

		// and both players are released for a new game
		for _, id := range []string{playerX.ID, playerO.ID} {
			stored, err := players.GetByID(ctx, id)
			require.NoError(t, err)
			assert.Empty(t, stored.GameID)
		}
	})
}
