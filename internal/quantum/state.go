package quantum

import (
	"fmt"
	"math"
	"math/cmplx"
)

// State is a statevector over n qubits: 1<<n complex amplitudes, basis
// index bit q holding the value of qubit q.
type State struct {
	amps      []complex128
	numQubits int
}

// NewState returns the |0...0> state.
func NewState(numQubits int) *State {
	amps := make([]complex128, 1<<numQubits)
	amps[0] = 1
	return &State{amps: amps, numQubits: numQubits}
}

func (that *State) NumQubits() int { return that.numQubits }

// Amplitude returns the amplitude of the given basis state.
func (that *State) Amplitude(basis int) complex128 { return that.amps[basis] }

// Norm returns the total probability mass; gate kernels must preserve 1.
func (that *State) Norm() float64 {
	sum := 0.0
	for _, a := range that.amps {
		sum += real(a * cmplx.Conj(a))
	}
	return sum
}

// Apply evolves the state by a single gate.
func (that *State) Apply(g Gate) error {
	switch g.Type {
	case GateH:
		that.applyH(g.Target)
	case GateX:
		that.applyX(g.Target)
	case GateZ:
		that.applyZ(g.Target)
	case GateRZ:
		that.applyRZ(g.Target, g.Theta)
	case GateCX:
		that.applyCX(g.Control, g.Target)
	default:
		return fmt.Errorf("unsupported gate type %q", g.Type)
	}
	return nil
}

func (that *State) applyH(q int) {
	hFactor := complex(1.0/math.Sqrt2, 0)
	n := len(that.amps)
	bit := 1 << q
	newAmps := make([]complex128, n)
	for i := 0; i < n; i++ {
		if i&bit == 0 {
			j := i | bit
			newAmps[i] = hFactor * (that.amps[i] + that.amps[j])
			newAmps[j] = hFactor * (that.amps[i] - that.amps[j])
		}
	}
	that.amps = newAmps
}

func (that *State) applyX(q int) {
	n := len(that.amps)
	bit := 1 << q
	for i := 0; i < n; i++ {
		if i&bit == 0 {
			j := i | bit
			that.amps[i], that.amps[j] = that.amps[j], that.amps[i]
		}
	}
}

func (that *State) applyZ(q int) {
	n := len(that.amps)
	bit := 1 << q
	for i := 0; i < n; i++ {
		if i&bit != 0 {
			that.amps[i] *= -1
		}
	}
}

func (that *State) applyRZ(q int, theta float64) {
	n := len(that.amps)
	bit := 1 << q
	phase := cmplx.Exp(complex(0, theta/2))
	for i := 0; i < n; i++ {
		if i&bit != 0 {
			that.amps[i] *= phase
		} else {
			that.amps[i] *= cmplx.Conj(phase)
		}
	}
}

func (that *State) applyCX(control, target int) {
	n := len(that.amps)
	cBit := 1 << control
	tBit := 1 << target
	for i := 0; i < n; i++ {
		if i&cBit != 0 && i&tBit == 0 {
			j := i | tBit
			that.amps[i], that.amps[j] = that.amps[j], that.amps[i]
		}
	}
}

// Probabilities returns the Born-rule probability of every basis state.
func (that *State) Probabilities() []float64 {
	probs := make([]float64, len(that.amps))
	for i, a := range that.amps {
		probs[i] = real(a * cmplx.Conj(a))
	}
	return probs
}
