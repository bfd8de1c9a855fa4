package game

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Size is the number of cells along every axis
const Size = 3

var (
	ErrIllegalMove  = errors.New("illegal move")
	ErrInvalidState = errors.New("invalid state")
	ErrDimensions   = errors.New("unsupported dimensions")
)

// Mark is the content of a single cell
type Mark int8

const (
	PlayerB Mark = -1
	Empty   Mark = 0
	PlayerA Mark = 1
)

func (m Mark) Opponent() Mark {
	return -m
}

func (m Mark) IsPlayer() bool {
	return m == PlayerA || m == PlayerB
}

func (m Mark) String() string {
	switch m {
	case PlayerA:
		return "O"
	case PlayerB:
		return "X"
	case Empty:
		return "."
	default:
		return fmt.Sprintf("Mark(%d)", int8(m))
	}
}

type Status int

const (
	NotOver Status = iota
	Draw
	Win
)

func (s Status) String() string {
	switch s {
	case NotOver:
		return "not over"
	case Draw:
		return "draw"
	case Win:
		return "win"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Outcome is the result of evaluating a board. Winner is only set for Win.
type Outcome struct {
	Status Status
	Winner Mark
}

func (o Outcome) IsOver() bool {
	return o.Status != NotOver
}

// Score is +1 if PlayerA won, -1 if PlayerB won and 0 otherwise
func (o Outcome) Score() int {
	if o.Status != Win {
		return 0
	}
	return int(o.Winner)
}

// RelativeTo returns +1, 0 or -1 depending on whether player won, drew or lost
func (o Outcome) RelativeTo(player Mark) int {
	return o.Score() * int(player)
}

func (o Outcome) String() string {
	if o.Status == Win {
		return "win(" + o.Winner.String() + ")"
	}
	return o.Status.String()
}

// Coord addresses a cell with one index in [0, Size) per axis, outermost axis first
type Coord []int

func (c Coord) String() string {
	parts := make([]string, len(c))
	for i, v := range c {
		parts[i] = strconv.Itoa(v)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Cell is the row-major index of a coordinate. Ascending cells enumerate
// coordinates in ascending lexicographic order.
type Cell int

// NoCell marks the absence of a move, e.g. on a tree root
const NoCell Cell = -1
