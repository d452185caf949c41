package walk

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"
)

var (
	ErrInvalidPositions = errors.New("positions must be >= 1")
	ErrInvalidSteps     = errors.New("steps must be >= 0")
	ErrStartOutOfRange  = errors.New("start position out of range")
	ErrZeroCoinState    = errors.New("coin state has zero norm")
)

// CenterStart selects the middle of the lattice as the starting position.
const CenterStart = -1

// Config parameterizes a discrete-time quantum walk on a one-dimensional
// lattice with a Hadamard coin and reflecting boundaries.
type Config struct {
	Steps     int
	Positions int
	// StartPos is the initial lattice site, or CenterStart for the middle.
	StartPos int
	// CoinState is the initial 2-vector of the coin; nil means |0>.
	// It is normalized before use.
	CoinState []complex128
}

// DefaultConfig mirrors the usual demonstration parameters.
func DefaultConfig() Config {
	return Config{
		Steps:     5,
		Positions: 11,
		StartPos:  CenterStart,
	}
}

// Distribution is a normalized probability distribution over lattice
// positions.
type Distribution []float64

// Simulate runs the walk and returns the position distribution after
// cfg.Steps iterations of coin-then-shift evolution.
//
// The joint coin-position state lives in a 2N-dimensional vector indexed
// by 2*pos + coin. Coin 0 moves left, coin 1 moves right; an attempted
// move off either edge reflects, flipping the coin and staying in place.
func Simulate(cfg Config) (Distribution, error) {
	if cfg.Positions < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidPositions, cfg.Positions)
	}
	if cfg.Steps < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSteps, cfg.Steps)
	}

	positions := cfg.Positions
	dim := 2 * positions

	startPos := cfg.StartPos
	if startPos == CenterStart {
		startPos = positions / 2
	}
	if startPos < 0 || startPos >= positions {
		return nil, fmt.Errorf("%w: %d of %d", ErrStartOutOfRange, startPos, positions)
	}

	coinState, err := normalizedCoin(cfg.CoinState)
	if err != nil {
		return nil, err
	}

	psi := mat.NewCDense(dim, 1, nil)
	psi.Set(2*startPos+0, 0, coinState[0])
	psi.Set(2*startPos+1, 0, coinState[1])

	coinOp := coinOperator(positions)
	shiftOp := shiftOperator(positions)

	tmp := mat.NewCDense(dim, 1, nil)
	for step := 0; step < cfg.Steps; step++ {
		applyOperator(coinOp, psi, tmp)
		applyOperator(shiftOp, tmp, psi)
	}

	return positionProbabilities(psi, positions), nil
}

// applyOperator computes out = op * in. gonum implements no multiply on
// complex matrices, so the product is spelled out. in and out must differ.
func applyOperator(op, in, out *mat.CDense) {
	rows, cols := op.Dims()
	for r := 0; r < rows; r++ {
		var sum complex128
		for c := 0; c < cols; c++ {
			sum += op.At(r, c) * in.At(c, 0)
		}
		out.Set(r, 0, sum)
	}
}

func normalizedCoin(coin []complex128) ([2]complex128, error) {
	if coin == nil {
		return [2]complex128{1, 0}, nil
	}
	if len(coin) != 2 {
		return [2]complex128{}, fmt.Errorf("coin state must have 2 amplitudes, got %d", len(coin))
	}

	norm := math.Sqrt(real(coin[0]*cmplx.Conj(coin[0]) + coin[1]*cmplx.Conj(coin[1])))
	if norm == 0 {
		return [2]complex128{}, ErrZeroCoinState
	}

	scale := complex(1/norm, 0)
	return [2]complex128{coin[0] * scale, coin[1] * scale}, nil
}

// coinOperator is I_N tensor H: a Hadamard on the coin at every position.
func coinOperator(positions int) *mat.CDense {
	dim := 2 * positions
	h := complex(1/math.Sqrt2, 0)

	op := mat.NewCDense(dim, dim, nil)
	for pos := 0; pos < positions; pos++ {
		base := 2 * pos
		op.Set(base+0, base+0, h)
		op.Set(base+0, base+1, h)
		op.Set(base+1, base+0, h)
		op.Set(base+1, base+1, -h)
	}
	return op
}

func shiftOperator(positions int) *mat.CDense {
	dim := 2 * positions

	op := mat.NewCDense(dim, dim, nil)
	for pos := 0; pos < positions; pos++ {
		// coin 0 moves left
		if pos > 0 {
			op.Set(2*(pos-1)+0, 2*pos+0, 1)
		} else {
			// reflect at the left edge: stay, flip coin to 1
			op.Set(2*pos+1, 2*pos+0, 1)
		}

		// coin 1 moves right
		if pos < positions-1 {
			op.Set(2*(pos+1)+1, 2*pos+1, 1)
		} else {
			// reflect at the right edge: stay, flip coin to 0
			op.Set(2*pos+0, 2*pos+1, 1)
		}
	}
	return op
}

func positionProbabilities(psi *mat.CDense, positions int) Distribution {
	probs := make(Distribution, positions)
	total := 0.0
	for pos := 0; pos < positions; pos++ {
		amp0 := psi.At(2*pos+0, 0)
		amp1 := psi.At(2*pos+1, 0)
		p := real(amp0*cmplx.Conj(amp0) + amp1*cmplx.Conj(amp1))
		probs[pos] = p
		total += p
	}

	for pos := range probs {
		probs[pos] /= total
	}
	return probs
}
