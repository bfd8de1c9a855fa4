package game

import (
	"fmt"
	"strings"
)

// Board is a 3x...x3 grid of marks. It is mutated in place; engines work on
// clones so a caller's board is never touched by a search.
type Board struct {
	dims  int
	cells []Mark
	lines *LineTable
}

// NewBoard returns an empty board with the given number of axes (2 or 3)
func NewBoard(dims int) (*Board, error) {
	lines, err := Lines(dims)
	if err != nil {
		return nil, fmt.Errorf("new board with %d axes: %w", dims, err)
	}
	return &Board{
		dims:  dims,
		cells: make([]Mark, pow3(dims)),
		lines: lines,
	}, nil
}

// FromCells builds a board from row-major cell values
func FromCells(dims int, cells []Mark) (*Board, error) {
	b, err := NewBoard(dims)
	if err != nil {
		return nil, err
	}
	if len(cells) != len(b.cells) {
		return nil, fmt.Errorf("%w: %d cells for %d axes", ErrIllegalMove, len(cells), dims)
	}
	for i, m := range cells {
		if m != Empty && !m.IsPlayer() {
			return nil, fmt.Errorf("%w: cell %d holds %d", ErrIllegalMove, i, m)
		}
		b.cells[i] = m
	}
	return b, nil
}

// FromGrid builds a 2-axis board from a literal like [[1,1,0],[0,-1,0],[0,0,-1]]
func FromGrid(grid [][]int) (*Board, error) {
	cells := make([]Mark, 0, Size*Size)
	if len(grid) != Size {
		return nil, fmt.Errorf("%w: grid has %d rows", ErrDimensions, len(grid))
	}
	for _, row := range grid {
		if len(row) != Size {
			return nil, fmt.Errorf("%w: grid row has %d cells", ErrDimensions, len(row))
		}
		for _, v := range row {
			cells = append(cells, Mark(v))
		}
	}
	return FromCells(2, cells)
}

// FromGrid3D builds a 3-axis board from a [i][j][k] literal
func FromGrid3D(grid [][][]int) (*Board, error) {
	if len(grid) != Size {
		return nil, fmt.Errorf("%w: grid has %d layers", ErrDimensions, len(grid))
	}
	cells := make([]Mark, 0, Size*Size*Size)
	for _, layer := range grid {
		if len(layer) != Size {
			return nil, fmt.Errorf("%w: layer has %d rows", ErrDimensions, len(layer))
		}
		for _, row := range layer {
			if len(row) != Size {
				return nil, fmt.Errorf("%w: grid row has %d cells", ErrDimensions, len(row))
			}
			for _, v := range row {
				cells = append(cells, Mark(v))
			}
		}
	}
	return FromCells(3, cells)
}

func (b *Board) Dims() int {
	return b.dims
}

// Len is the number of cells, 3^dims
func (b *Board) Len() int {
	return len(b.cells)
}

func (b *Board) Clone() *Board {
	return &Board{
		dims:  b.dims,
		cells: append([]Mark(nil), b.cells...),
		lines: b.lines,
	}
}

// CopyFrom overwrites b with other's cells. Both boards must share dims.
func (b *Board) CopyFrom(other *Board) {
	if b.dims != other.dims {
		panic("cannot copy between boards of different dimensions")
	}
	copy(b.cells, other.cells)
}

// Cells returns a copy of the row-major cell values
func (b *Board) Cells() []Mark {
	return append([]Mark(nil), b.cells...)
}

// Equal reports whether both boards hold the same marks
func (b *Board) Equal(other *Board) bool {
	if b.dims != other.dims {
		return false
	}
	for i, m := range b.cells {
		if other.cells[i] != m {
			return false
		}
	}
	return true
}

// Negate returns a copy with every mark swapped for its opponent's
func (b *Board) Negate() *Board {
	n := b.Clone()
	for i, m := range n.cells {
		n.cells[i] = -m
	}
	return n
}

// Evaluate scans the canonical lines in table order and reports the first
// completed line's owner, a draw on a full board, or NotOver.
func (b *Board) Evaluate() Outcome {
	for _, line := range b.lines.lines {
		m := b.cells[line[0]]
		if m != Empty && m == b.cells[line[1]] && m == b.cells[line[2]] {
			return Outcome{Status: Win, Winner: m}
		}
	}
	for _, m := range b.cells {
		if m == Empty {
			return Outcome{Status: NotOver}
		}
	}
	return Outcome{Status: Draw}
}

// EmptyCells lists the empty coordinates in ascending lexicographic order
func (b *Board) EmptyCells() []Coord {
	var coords []Coord
	for i, m := range b.cells {
		if m == Empty {
			coords = append(coords, toCoord(b.dims, Cell(i)))
		}
	}
	return coords
}

// EmptyCellIndices appends the empty cells to dst in ascending order
func (b *Board) EmptyCellIndices(dst []Cell) []Cell {
	dst = dst[:0]
	for i, m := range b.cells {
		if m == Empty {
			dst = append(dst, Cell(i))
		}
	}
	return dst
}

// NextToMove infers the side to move from the mark counts; PlayerA moves first
func (b *Board) NextToMove() Mark {
	balance := 0
	for _, m := range b.cells {
		balance += int(m)
	}
	if balance > 0 {
		return PlayerB
	}
	return PlayerA
}

func (b *Board) At(c Coord) (Mark, error) {
	cell, err := b.Cell(c)
	if err != nil {
		return Empty, err
	}
	return b.cells[cell], nil
}

func (b *Board) MarkAt(cell Cell) Mark {
	return b.cells[cell]
}

// Cell converts a coordinate to its row-major index
func (b *Board) Cell(c Coord) (Cell, error) {
	if len(c) != b.dims {
		return NoCell, fmt.Errorf("%w: coordinate %v has %d axes, board has %d", ErrIllegalMove, c, len(c), b.dims)
	}
	cell := 0
	for _, v := range c {
		if v < 0 || v >= Size {
			return NoCell, fmt.Errorf("%w: coordinate %v out of range", ErrIllegalMove, c)
		}
		cell = cell*Size + v
	}
	return Cell(cell), nil
}

func (b *Board) Coord(cell Cell) Coord {
	return toCoord(b.dims, cell)
}

// Apply places mark at c. The cell must be empty and in range; otherwise the
// board is left unmodified and an error wrapping ErrIllegalMove is returned.
func (b *Board) Apply(c Coord, mark Mark) error {
	if !mark.IsPlayer() {
		return fmt.Errorf("%w: %v is not a player mark", ErrIllegalMove, mark)
	}
	cell, err := b.Cell(c)
	if err != nil {
		return err
	}
	if b.cells[cell] != Empty {
		return fmt.Errorf("%w: cell %v already holds %v", ErrIllegalMove, c, b.cells[cell])
	}
	b.cells[cell] = mark
	return nil
}

// Undo clears the cell at c
func (b *Board) Undo(c Coord) error {
	cell, err := b.Cell(c)
	if err != nil {
		return err
	}
	b.cells[cell] = Empty
	return nil
}

// Place writes mark without any check. Engines pair it with Clear.
func (b *Board) Place(cell Cell, mark Mark) {
	b.cells[cell] = mark
}

func (b *Board) Clear(cell Cell) {
	b.cells[cell] = Empty
}

// String renders rows separated by '/' and, for 3 axes, layers separated by '|'
func (b *Board) String() string {
	var sb strings.Builder
	if b.dims == 2 {
		for row := 0; row < Size; row++ {
			for col := 0; col < Size; col++ {
				sb.WriteString(b.cells[row*Size+col].String())
			}
			if row < Size-1 {
				sb.WriteByte('/')
			}
		}
		return sb.String()
	}
	for layer := 0; layer < Size; layer++ {
		for row := 0; row < Size; row++ {
			for col := 0; col < Size; col++ {
				sb.WriteString(b.cells[(layer*Size+row)*Size+col].String())
			}
			if row < Size-1 {
				sb.WriteByte('/')
			}
		}
		if layer < Size-1 {
			sb.WriteByte('|')
		}
	}
	return sb.String()
}
