package quantum

import (
	"errors"
	"fmt"
)

var (
	ErrQubitOutOfRange  = errors.New("qubit index out of range")
	ErrSelfControlledCX = errors.New("CX control and target must differ")
)

type GateType string

const (
	GateH  GateType = "H"
	GateX  GateType = "X"
	GateZ  GateType = "Z"
	GateRZ GateType = "RZ"
	GateCX GateType = "CX"
)

// Gate is a single operation placed on the circuit. Control is -1 for
// single-qubit gates; Theta is only meaningful for rotation gates.
type Gate struct {
	Type    GateType
	Target  int
	Control int
	Theta   float64
}

// Circuit accumulates gates and measurement declarations. Builder methods
// never fail in place; the first invalid operation is remembered and
// surfaces when the circuit is run.
type Circuit struct {
	numQubits int
	gates     []Gate
	measured  []int
	err       error
}

func NewCircuit(numQubits int) *Circuit {
	c := &Circuit{numQubits: numQubits}
	if numQubits < 1 {
		c.err = fmt.Errorf("%w: circuit needs at least one qubit", ErrQubitOutOfRange)
	}
	return c
}

func (that *Circuit) NumQubits() int { return that.numQubits }

func (that *Circuit) Gates() []Gate { return that.gates }

// Measured returns the declared measurement targets in declaration order.
func (that *Circuit) Measured() []int { return that.measured }

// Err reports the first invalid builder operation, if any.
func (that *Circuit) Err() error { return that.err }

// H applies a Hadamard gate, placing the qubit into superposition.
func (that *Circuit) H(qubit int) *Circuit {
	return that.addGate(Gate{Type: GateH, Target: qubit, Control: -1})
}

// X applies a Pauli-X (NOT) gate.
func (that *Circuit) X(qubit int) *Circuit {
	return that.addGate(Gate{Type: GateX, Target: qubit, Control: -1})
}

// Z applies a Pauli-Z gate.
func (that *Circuit) Z(qubit int) *Circuit {
	return that.addGate(Gate{Type: GateZ, Target: qubit, Control: -1})
}

// RZ applies a phase rotation of theta radians around the Z axis.
func (that *Circuit) RZ(theta float64, qubit int) *Circuit {
	return that.addGate(Gate{Type: GateRZ, Target: qubit, Control: -1, Theta: theta})
}

// CX applies a controlled-NOT, entangling control and target.
func (that *Circuit) CX(control, target int) *Circuit {
	if that.err == nil && control == target {
		that.err = fmt.Errorf("%w: got %d for both", ErrSelfControlledCX, target)
		return that
	}
	if that.err == nil && (control < 0 || control >= that.numQubits) {
		that.err = fmt.Errorf("%w: control %d of %d", ErrQubitOutOfRange, control, that.numQubits)
		return that
	}
	return that.addGate(Gate{Type: GateCX, Target: target, Control: control})
}

// Measure declares the given qubits as measured, in order.
func (that *Circuit) Measure(qubits ...int) *Circuit {
	for _, q := range qubits {
		if that.err == nil && (q < 0 || q >= that.numQubits) {
			that.err = fmt.Errorf("%w: measure %d of %d", ErrQubitOutOfRange, q, that.numQubits)
			return that
		}
		that.measured = append(that.measured, q)
	}
	return that
}

// MeasureAll declares every qubit as measured.
func (that *Circuit) MeasureAll() *Circuit {
	for q := 0; q < that.numQubits; q++ {
		that.measured = append(that.measured, q)
	}
	return that
}

func (that *Circuit) addGate(g Gate) *Circuit {
	if that.err != nil {
		return that
	}
	if g.Target < 0 || g.Target >= that.numQubits {
		that.err = fmt.Errorf("%w: target %d of %d", ErrQubitOutOfRange, g.Target, that.numQubits)
		return that
	}
	that.gates = append(that.gates, g)
	return that
}
