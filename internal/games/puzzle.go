package games

import "math/rand/v2"

// GridSize is the puzzle's edge length: a classic 15-puzzle.
const GridSize = 4

// Puzzle is the sliding 15-puzzle. Tiles hold 1..15 with 0 as the blank.
type Puzzle struct {
	grid     [GridSize][GridSize]int
	emptyRow int
	emptyCol int
}

// NewPuzzle deals a randomly shuffled board.
func NewPuzzle() *Puzzle {
	numbers := make([]int, GridSize*GridSize)
	for i := 1; i < len(numbers); i++ {
		numbers[i-1] = i
	}
	rand.Shuffle(len(numbers), func(i, j int) {
		numbers[i], numbers[j] = numbers[j], numbers[i]
	})

	p := &Puzzle{}
	for i := 0; i < GridSize; i++ {
		for j := 0; j < GridSize; j++ {
			v := numbers[i*GridSize+j]
			p.grid[i][j] = v
			if v == 0 {
				p.emptyRow, p.emptyCol = i, j
			}
		}
	}
	return p
}

// Tile returns the value at (row, col); 0 is the blank.
func (p *Puzzle) Tile(row, col int) int {
	return p.grid[row][col]
}

// Move slides the tile at (row, col) into the blank when they are
// orthogonally adjacent. Reports whether a move happened.
func (p *Puzzle) Move(row, col int) bool {
	if row < 0 || row >= GridSize || col < 0 || col >= GridSize {
		return false
	}
	rowDiff := abs(row - p.emptyRow)
	colDiff := abs(col - p.emptyCol)
	if !(rowDiff == 1 && colDiff == 0 || rowDiff == 0 && colDiff == 1) {
		return false
	}

	p.grid[p.emptyRow][p.emptyCol] = p.grid[row][col]
	p.grid[row][col] = 0
	p.emptyRow, p.emptyCol = row, col
	return true
}

// Solved reports whether the tiles read 1..15 with the blank last.
func (p *Puzzle) Solved() bool {
	expected := 1
	for i := 0; i < GridSize; i++ {
		for j := 0; j < GridSize; j++ {
			if i == GridSize-1 && j == GridSize-1 {
				return p.grid[i][j] == 0
			}
			if p.grid[i][j] != expected {
				return false
			}
			expected++
		}
	}
	return true
}

// Blank returns the blank cell's position.
func (p *Puzzle) Blank() (row, col int) {
	return p.emptyRow, p.emptyCol
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
