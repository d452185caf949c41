package entity

// CellState tags how a board cell is occupied. A superposed cell has no
// owner until a measurement collapses it.
type CellState string

const (
	CellEmpty         CellState = "empty"
	CellDeterministic CellState = "deterministic"
	CellSuperposed    CellState = "superposition"
)

type Cell struct {
	State CellState `json:"state"`
	Owner string    `json:"owner,omitempty"`
}

func EmptyCell() Cell {
	return Cell{State: CellEmpty}
}

func OwnedCell(owner string) Cell {
	return Cell{State: CellDeterministic, Owner: owner}
}

func SuperposedCell() Cell {
	return Cell{State: CellSuperposed}
}

func (that Cell) IsEmpty() bool {
	return that.State == CellEmpty
}

func (that Cell) IsDeterministic() bool {
	return that.State == CellDeterministic
}

func (that Cell) IsSuperposed() bool {
	return that.State == CellSuperposed
}
