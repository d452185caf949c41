package quantum

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/dgravitate/quantum-examples/internal/apperror"
)

const DefaultShots = 1000

// Counts maps measured bitstrings to how often they were observed.
// Bitstring order follows the usual convention: the highest measured
// qubit is the leftmost character.
type Counts map[string]int

// Total returns the number of shots recorded in the counts.
func (that Counts) Total() int {
	total := 0
	for _, n := range that {
		total += n
	}
	return total
}

// MostFrequent returns the bitstring with the highest count. Ties break
// lexicographically so the result is stable.
func (that Counts) MostFrequent() (string, int) {
	best, bestCount := "", -1
	for bits, n := range that {
		if n > bestCount || (n == bestCount && bits < best) {
			best, bestCount = bits, n
		}
	}
	return best, bestCount
}

// Result holds the outcome of running a circuit: aggregated counts plus
// the per-shot bitstrings in execution order.
type Result struct {
	Counts Counts
	Memory []string
	Shots  int
}

// Simulator is a local statevector backend. It evolves the circuit's
// state once and samples the measurement distribution per shot, which is
// equivalent to independent end-of-circuit measurements.
type Simulator struct {
	name     string
	baseLoad int
	inFlight atomic.Int64
	rngMu    sync.Mutex
	rng      *rand.Rand
}

type SimulatorOption func(*Simulator)

// WithSeed makes the simulator's shot sampling reproducible.
func WithSeed(seed uint64) SimulatorOption {
	return func(s *Simulator) {
		s.rng = rand.New(rand.NewPCG(seed, seed))
	}
}

// WithName sets the backend name reported to the registry.
func WithName(name string) SimulatorOption {
	return func(s *Simulator) {
		s.name = name
	}
}

// WithQueueDepth sets a constant simulated queue depth, letting several
// local simulators stand in for a fleet of differently loaded backends.
func WithQueueDepth(depth int) SimulatorOption {
	return func(s *Simulator) {
		s.baseLoad = depth
	}
}

func NewSimulator(opts ...SimulatorOption) *Simulator {
	s := &Simulator{
		name: "aer_simulator",
		rng:  rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (that *Simulator) Name() string { return that.name }

// PendingJobs reports the simulated queue depth plus any in-flight runs.
func (that *Simulator) PendingJobs() int {
	return that.baseLoad + int(that.inFlight.Load())
}

// Run executes the circuit for the requested number of shots.
func (that *Simulator) Run(ctx context.Context, circuit *Circuit, shots int) (*Result, error) {
	that.inFlight.Add(1)
	defer that.inFlight.Add(-1)

	if err := circuit.Err(); err != nil {
		return nil, fmt.Errorf("invalid circuit: %w", err)
	}

	if shots < 1 {
		return nil, fmt.Errorf("shots must be at least 1, got %d", shots)
	}

	measured := circuit.Measured()
	if len(measured) == 0 {
		return nil, apperror.ErrNoMeasurements
	}

	state := NewState(circuit.NumQubits())
	for _, gate := range circuit.Gates() {
		if err := state.Apply(gate); err != nil {
			return nil, fmt.Errorf("failed to apply gate: %w", err)
		}
	}

	cumulative := cumulativeDistribution(state.Probabilities())

	result := &Result{
		Counts: make(Counts),
		Memory: make([]string, 0, shots),
		Shots:  shots,
	}

	for shot := 0; shot < shots; shot++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("run canceled after %d shots: %w", shot, err)
		}

		basis := that.sampleBasis(cumulative)
		bits := formatBits(basis, measured)
		result.Memory = append(result.Memory, bits)
		result.Counts[bits]++
	}

	return result, nil
}

func (that *Simulator) sampleBasis(cumulative []float64) int {
	that.rngMu.Lock()
	r := that.rng.Float64()
	that.rngMu.Unlock()

	basis := sort.SearchFloat64s(cumulative, r)
	if basis >= len(cumulative) {
		basis = len(cumulative) - 1
	}
	return basis
}

func cumulativeDistribution(probs []float64) []float64 {
	cumulative := make([]float64, len(probs))
	sum := 0.0
	for i, p := range probs {
		sum += p
		cumulative[i] = sum
	}
	// Absorb float drift so the final bucket always catches r close to 1.
	cumulative[len(cumulative)-1] = 1.0
	return cumulative
}

// formatBits renders the measured qubits of a basis state, last declared
// qubit leftmost.
func formatBits(basis int, measured []int) string {
	bits := make([]byte, len(measured))
	for i, q := range measured {
		if basis&(1<<q) != 0 {
			bits[len(measured)-1-i] = '1'
		} else {
			bits[len(measured)-1-i] = '0'
		}
	}
	return string(bits)
}
