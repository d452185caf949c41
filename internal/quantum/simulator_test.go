package quantum

import (
	"context"
	"testing"

	"github.com/dgravitate/quantum-examples/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulator_Run(t *testing.T) {
	ctx := context.Background()

	t.Run("Deterministic circuit always yields the same bitstring", func(t *testing.T) {
		// Given: a circuit that flips qubit 0 into |1>
		circuit := NewCircuit(1).X(0).MeasureAll()
		simulator := NewSimulator()

		// When: running 50 shots
		result, err := simulator.Run(ctx, circuit, 50)

		// Then: every shot observes "1"
		require.NoError(t, err)
		assert.Equal(t, Counts{"1": 50}, result.Counts)
		assert.Len(t, result.Memory, 50)
	})

	t.Run("Bell state only produces correlated outcomes", func(t *testing.T) {
		// Given: an entangling H + CX circuit
		circuit := NewCircuit(2).H(0).CX(0, 1).MeasureAll()
		simulator := NewSimulator(WithSeed(7))

		// When: running many shots
		result, err := simulator.Run(ctx, circuit, 500)

		// Then: only "00" and "11" appear, and both appear
		require.NoError(t, err)
		for bits := range result.Counts {
			assert.Contains(t, []string{"00", "11"}, bits)
		}
		assert.Positive(t, result.Counts["00"])
		assert.Positive(t, result.Counts["11"])
		assert.Equal(t, 500, result.Counts.Total())
	})

	t.Run("Seeded runs are reproducible", func(t *testing.T) {
		// Given: two simulators with the same seed
		circuit := NewCircuit(3).H(0).H(1).H(2).MeasureAll()
		first := NewSimulator(WithSeed(42))
		second := NewSimulator(WithSeed(42))

		// When: running the same circuit on both
		resultA, err := first.Run(ctx, circuit, 100)
		require.NoError(t, err)
		resultB, err := second.Run(ctx, circuit, 100)
		require.NoError(t, err)

		// Then: the shot sequences match exactly
		assert.Equal(t, resultA.Memory, resultB.Memory)
	})

	t.Run("Error when circuit has no measurements", func(t *testing.T) {
		circuit := NewCircuit(1).H(0)

		_, err := NewSimulator().Run(ctx, circuit, 10)

		assert.ErrorIs(t, err, apperror.ErrNoMeasurements)
	})

	t.Run("Error on zero shots", func(t *testing.T) {
		circuit := NewCircuit(1).H(0).MeasureAll()

		_, err := NewSimulator().Run(ctx, circuit, 0)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "shots must be at least 1")
	})

	t.Run("Error on invalid circuit", func(t *testing.T) {
		// Given: a circuit touching a qubit it does not have
		circuit := NewCircuit(2).H(5).MeasureAll()

		_, err := NewSimulator().Run(ctx, circuit, 10)

		assert.ErrorIs(t, err, ErrQubitOutOfRange)
	})

	t.Run("Error on CX with control equal to target", func(t *testing.T) {
		// Given: both CX indices in range but identical
		circuit := NewCircuit(2).H(0).CX(1, 1).MeasureAll()

		_, err := NewSimulator().Run(ctx, circuit, 10)

		assert.ErrorIs(t, err, ErrSelfControlledCX)
		assert.NotErrorIs(t, err, ErrQubitOutOfRange)
	})

	t.Run("Canceled context stops the run", func(t *testing.T) {
		circuit := NewCircuit(1).H(0).MeasureAll()
		canceled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := NewSimulator().Run(canceled, circuit, 10)

		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestSimulator_BitOrder(t *testing.T) {
	// Given: qubit 0 left in |0>, qubit 1 flipped to |1>
	circuit := NewCircuit(2).X(1).MeasureAll()

	// When: running a single shot
	result, err := NewSimulator().Run(context.Background(), circuit, 1)

	// Then: the highest qubit is the leftmost character
	require.NoError(t, err)
	assert.Equal(t, "10", result.Memory[0])
}

func TestCounts_MostFrequent(t *testing.T) {
	counts := Counts{"01": 3, "10": 7, "11": 7}

	bits, n := counts.MostFrequent()

	// Ties break lexicographically.
	assert.Equal(t, "10", bits)
	assert.Equal(t, 7, n)
}

func TestRegistry_LeastBusy(t *testing.T) {
	t.Run("Picks the backend with the fewest pending jobs", func(t *testing.T) {
		// Given: two simulators with different queue depths
		busy := NewSimulator(WithName("ibm_brisbane"), WithQueueDepth(12))
		idle := NewSimulator(WithName("aer_simulator"), WithQueueDepth(0))
		registry := NewRegistry(busy, idle)

		// When: asking for the least busy backend
		backend, err := registry.LeastBusy()

		// Then: the idle simulator is selected
		require.NoError(t, err)
		assert.Equal(t, "aer_simulator", backend.Name())
	})

	t.Run("Error when the registry is empty", func(t *testing.T) {
		_, err := NewRegistry().LeastBusy()

		assert.ErrorIs(t, err, apperror.ErrNoBackendsRegistered)
	})

	t.Run("Get finds a backend by name", func(t *testing.T) {
		registry := NewRegistry(NewSimulator(WithName("aer_simulator")))

		backend, ok := registry.Get("aer_simulator")

		require.True(t, ok)
		assert.Equal(t, "aer_simulator", backend.Name())
	})
}
