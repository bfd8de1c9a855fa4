package game

import "sync"

// Line holds the three cells of a winning line, in stepping order
type Line [3]Cell

// LineTable is the set of canonical winning lines for one dimensionality.
// It is immutable once built and shared by every board of that dimensionality.
type LineTable struct {
	dims  int
	lines []Line
}

var (
	tables    [4]*LineTable
	tableOnce [4]sync.Once
)

// Lines returns the shared table for dims, building it on first use.
func Lines(dims int) (*LineTable, error) {
	if dims != 2 && dims != 3 {
		return nil, ErrDimensions
	}
	tableOnce[dims].Do(func() {
		tables[dims] = newLineTable(dims)
	})
	return tables[dims], nil
}

func (t *LineTable) Dims() int {
	return t.dims
}

func (t *LineTable) Len() int {
	return len(t.lines)
}

// All returns a copy of the lines
func (t *LineTable) All() []Line {
	return append([]Line(nil), t.lines...)
}

func newLineTable(dims int) *LineTable {
	table := &LineTable{dims: dims}
	seen := make(map[[3]Cell]bool)

	for _, dir := range directions(dims) {
		for _, start := range allCoords(dims) {
			line, ok := stepLine(start, dir)
			if !ok {
				continue
			}
			key := sortedKey(line)
			if seen[key] {
				continue
			}
			seen[key] = true
			table.lines = append(table.lines, line)
		}
	}
	return table
}

// directions lists every vector in {-1,0,1}^dims except zero, keeping only
// the lexicographically smaller of each vector and its negation.
func directions(dims int) [][]int {
	var dirs [][]int
	dir := make([]int, dims)
	for i := range dir {
		dir[i] = -1
	}
	for {
		if firstNonZero(dir) < 0 {
			dirs = append(dirs, append([]int(nil), dir...))
		}
		// Odometer increment over {-1,0,1}
		i := dims - 1
		for i >= 0 && dir[i] == 1 {
			dir[i] = -1
			i--
		}
		if i < 0 {
			return dirs
		}
		dir[i]++
	}
}

func firstNonZero(v []int) int {
	for _, x := range v {
		if x != 0 {
			return x
		}
	}
	return 0
}

func allCoords(dims int) []Coord {
	n := pow3(dims)
	coords := make([]Coord, n)
	for i := 0; i < n; i++ {
		coords[i] = toCoord(dims, Cell(i))
	}
	return coords
}

func stepLine(start Coord, dir []int) (Line, bool) {
	var line Line
	for step := 0; step < 3; step++ {
		cell := 0
		for axis := range start {
			v := start[axis] + step*dir[axis]
			if v < 0 || v >= Size {
				return Line{}, false
			}
			cell = cell*Size + v
		}
		line[step] = Cell(cell)
	}
	return line, true
}

func sortedKey(line Line) [3]Cell {
	a, b, c := line[0], line[1], line[2]
	if a > b {
		a, b = b, a
	}
	if b > c {
		b, c = c, b
	}
	if a > b {
		a, b = b, a
	}
	return [3]Cell{a, b, c}
}

func pow3(dims int) int {
	n := 1
	for i := 0; i < dims; i++ {
		n *= Size
	}
	return n
}

func toCoord(dims int, cell Cell) Coord {
	c := make(Coord, dims)
	v := int(cell)
	for axis := dims - 1; axis >= 0; axis-- {
		c[axis] = v % Size
		v /= Size
	}
	return c
}
