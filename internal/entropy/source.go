package entropy

import (
	"context"
	"crypto/sha256"
	"fmt"
	"math"
	"strconv"

	"github.com/dgravitate/quantum-examples/internal/apperror"
	"github.com/dgravitate/quantum-examples/internal/quantum"
)

const (
	// KeyBits is the default key strength.
	KeyBits = 256

	keyQubits  = 16
	byteQubits = 8
)

type backend interface {
	Run(ctx context.Context, circuit *quantum.Circuit, shots int) (*quantum.Result, error)
}

// Source turns simulated qubit measurements into random bytes and keys.
type Source struct {
	backend backend
}

func NewSource(b backend) *Source {
	return &Source{backend: b}
}

// RandomBytes produces n random bytes, one 8-qubit measurement per byte.
// Every qubit is placed in superposition with a Hadamard gate, so each
// shot observes a uniformly random 8-bit string.
func (that *Source) RandomBytes(ctx context.Context, n int) ([]byte, error) {
	if n < 1 {
		return nil, fmt.Errorf("byte count must be positive, got %d", n)
	}

	circuit := quantum.NewCircuit(byteQubits)
	for q := 0; q < byteQubits; q++ {
		circuit.H(q)
	}
	circuit.MeasureAll()

	randomBytes := make([]byte, 0, n)
	for i := 0; i < n; i++ {
		result, err := that.backend.Run(ctx, circuit, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to run random byte circuit: %w", err)
		}

		value, err := strconv.ParseUint(result.Memory[0], 2, byteQubits)
		if err != nil {
			return nil, fmt.Errorf("failed to parse measurement %q: %w", result.Memory[0], err)
		}

		randomBytes = append(randomBytes, byte(value))
	}

	return randomBytes, nil
}

// GenerateKey derives a 32-byte key from the measurements of a 16-qubit
// circuit that mixes superposition, per-qubit phase rotations and an
// entangling CX chain. One shot yields 16 bits; the collected bits are
// packed into bytes and folded through SHA-256 so the key is uniform.
func (that *Source) GenerateKey(ctx context.Context, bits int) ([]byte, error) {
	if bits < 1 {
		return nil, fmt.Errorf("key length must be positive, got %d bits", bits)
	}

	circuit := quantum.NewCircuit(keyQubits)
	for q := 0; q < keyQubits; q++ {
		circuit.H(q)
		circuit.RZ(math.Pi/float64(q+1), q)
	}
	for q := 0; q < keyQubits-1; q++ {
		circuit.CX(q, q+1)
	}
	circuit.MeasureAll()

	shots := (bits + keyQubits - 1) / keyQubits

	result, err := that.backend.Run(ctx, circuit, shots)
	if err != nil {
		return nil, fmt.Errorf("failed to run key circuit: %w", err)
	}

	quantumBits := make([]byte, 0, shots*keyQubits)
	for _, measurement := range result.Memory {
		// Reverse so qubit 0 comes first.
		for i := len(measurement) - 1; i >= 0; i-- {
			quantumBits = append(quantumBits, measurement[i]-'0')
		}
	}

	if len(quantumBits) < bits {
		return nil, fmt.Errorf("%w: got %d, needed %d", apperror.ErrInsufficientEntropy, len(quantumBits), bits)
	}
	quantumBits = quantumBits[:bits]

	keyBytes := packBits(quantumBits)

	digest := sha256.Sum256(keyBytes)
	return digest[:], nil
}

// packBits folds bits into bytes MSB-first, dropping any trailing
// partial byte.
func packBits(bits []byte) []byte {
	packed := make([]byte, 0, len(bits)/8)
	for i := 0; i+8 <= len(bits); i += 8 {
		var value byte
		for j, bit := range bits[i : i+8] {
			value |= bit << (7 - j)
		}
		packed = append(packed, value)
	}
	return packed
}
