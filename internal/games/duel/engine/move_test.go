package engine

import (
	"math/rand"
	"testing"
)

func TestMergeLine(t *testing.T) {
	tests := []struct {
		name     string
		input    line
		expected line
		score    int
	}{
		{
			name:     "simple merge",
			input:    line{2, 2, 0, 0, 0, 0, 0},
			expected: line{4, 0, 0, 0, 0, 0, 0},
			score:    4,
		},
		{
			name:     "merge with trailing tile",
			input:    line{2, 2, 2, 0, 0, 0, 0},
			expected: line{4, 2, 0, 0, 0, 0, 0},
			score:    4,
		},
		{
			name:     "pairwise merge of four",
			input:    line{4, 4, 4, 4, 0, 0, 0},
			expected: line{8, 8, 0, 0, 0, 0, 0},
			score:    16,
		},
		{
			name:     "merged tile does not merge again",
			input:    line{2, 2, 4, 0, 0, 0, 0},
			expected: line{4, 4, 0, 0, 0, 0, 0},
			score:    4,
		},
		{
			name:     "merge after unmatched tile",
			input:    line{4, 2, 2, 0, 0, 0, 0},
			expected: line{4, 4, 0, 0, 0, 0, 0},
			score:    4,
		},
		{
			name:     "seven equal tiles",
			input:    line{2, 2, 2, 2, 2, 2, 2},
			expected: line{4, 4, 4, 2, 0, 0, 0},
			score:    12,
		},
		{
			name:     "no merge possible",
			input:    line{2, 4, 8, 16, 32, 64, 128},
			expected: line{2, 4, 8, 16, 32, 64, 128},
			score:    0,
		},
		{
			name:     "slide across gaps",
			input:    line{0, 2, 0, 0, 2, 0, 8},
			expected: line{4, 8, 0, 0, 0, 0, 0},
			score:    4,
		},
		{
			name:     "empty line",
			input:    line{},
			expected: line{},
			score:    0,
		},
		{
			name:     "single tile at far end",
			input:    line{0, 0, 0, 0, 0, 0, 1024},
			expected: line{1024, 0, 0, 0, 0, 0, 0},
			score:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, score := mergeLine(tt.input)
			if result != tt.expected {
				t.Errorf("mergeLine(%v) = %v, want %v", tt.input, result, tt.expected)
			}
			if score != tt.score {
				t.Errorf("mergeLine(%v) score = %d, want %d", tt.input, score, tt.score)
			}
		})
	}
}

// referenceMerge compacts the line and merges pairs, skipping the partner
// of each merge.
func referenceMerge(in line) line {
	var compact []int
	for _, v := range in {
		if v != 0 {
			compact = append(compact, v)
		}
	}

	var out line
	n := 0
	for i := 0; i < len(compact); i++ {
		if i+1 < len(compact) && compact[i] == compact[i+1] {
			out[n] = compact[i] * 2
			i++
		} else {
			out[n] = compact[i]
		}
		n++
	}
	return out
}

func TestMergeLineMatchesReference(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	values := []int{0, 0, 2, 2, 4, 4, 8}

	for i := 0; i < 5000; i++ {
		var in line
		for k := range Size {
			in[k] = values[rng.Intn(len(values))]
		}
		got, _ := mergeLine(in)
		want := referenceMerge(in)
		if got != want {
			t.Fatalf("mergeLine(%v) = %v, want %v", in, got, want)
		}
	}
}

func TestApplyLeftRow(t *testing.T) {
	var b Board
	b[0] = [Size]int{4, 4, 4, 4, 0, 0, 0}

	next, moved := Apply(b, Left)
	if !moved {
		t.Fatal("Apply(Left) should report a move")
	}

	want := [Size]int{8, 8, 0, 0, 0, 0, 0}
	if next[0] != want {
		t.Errorf("row 0 = %v, want %v", next[0], want)
	}
}

func TestApplyDirections(t *testing.T) {
	var b Board
	b[0] = [Size]int{2, 2, 0, 0, 0, 0, 4}
	b[3][3] = 8
	b[6][3] = 8

	tests := []struct {
		name  string
		dir   Direction
		check func(Board) bool
	}{
		{
			name: "left",
			dir:  Left,
			check: func(n Board) bool {
				return n[0] == [Size]int{4, 4, 0, 0, 0, 0, 0} && n[3][0] == 8 && n[6][0] == 8
			},
		},
		{
			name: "right",
			dir:  Right,
			check: func(n Board) bool {
				return n[0] == [Size]int{0, 0, 0, 0, 0, 4, 4} && n[3][6] == 8 && n[6][6] == 8
			},
		},
		{
			name: "up",
			dir:  Up,
			check: func(n Board) bool {
				return n[0][3] == 16 && n[1][3] == 0 && n[0][0] == 2 && n[0][6] == 4
			},
		},
		{
			name: "down",
			dir:  Down,
			check: func(n Board) bool {
				return n[6][3] == 16 && n[5][3] == 0 && n[6][0] == 2 && n[6][1] == 2 && n[6][6] == 4
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, moved := Apply(b, tt.dir)
			if !moved {
				t.Fatalf("Apply(%s) should report a move", tt.dir)
			}
			if !tt.check(next) {
				t.Errorf("Apply(%s) produced\n%s", tt.dir, next)
			}
		})
	}
}

func TestApplyDoesNotModifyInput(t *testing.T) {
	var b Board
	b[2] = [Size]int{2, 2, 2, 2, 0, 0, 0}
	orig := b

	Apply(b, Left)
	Apply(b, Down)

	if b != orig {
		t.Errorf("Apply modified its input:\n%s", b)
	}
}

func TestApplyNoOp(t *testing.T) {
	var b Board
	b[0] = [Size]int{2, 4, 8, 16, 0, 0, 0}
	b[1] = [Size]int{4, 2, 0, 0, 0, 0, 0}

	next, moved := Apply(b, Left)
	if moved {
		t.Error("Apply(Left) on a left-packed board should not move")
	}
	if next != b {
		t.Errorf("no-op move changed the board:\n%s", next)
	}

	if _, moved := Apply(b, Up); moved {
		t.Error("Apply(Up) on a top-packed board should not move")
	}
}

func TestApplyConservesMass(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 500; i++ {
		b := randomBoard(rng, 0.4)
		for _, d := range Directions {
			next, score, moved := ApplyScored(b, d)
			if next.Sum() != b.Sum() {
				t.Fatalf("Apply(%s) changed tile sum %d -> %d", d, b.Sum(), next.Sum())
			}
			if count(next) > count(b) {
				t.Fatalf("Apply(%s) increased tile count", d)
			}
			if !moved && score != 0 {
				t.Fatalf("Apply(%s) scored %d without moving", d, score)
			}
			if moved != (next != b) {
				t.Fatalf("Apply(%s) moved=%v disagrees with board equality", d, moved)
			}
		}
	}
}

func TestApplyIsIdempotentAfterSaturation(t *testing.T) {
	rng := rand.New(rand.NewSource(3))

	for i := 0; i < 200; i++ {
		b := randomBoard(rng, 0.5)
		for _, d := range Directions {
			once, _ := Apply(b, d)
			// Keep sliding until no merge is left in this direction.
			for {
				again, moved := Apply(once, d)
				if !moved {
					break
				}
				once = again
			}
			if _, moved := Apply(once, d); moved {
				t.Fatalf("saturated board still moves %s:\n%s", d, once)
			}
		}
	}
}

func TestParseDirection(t *testing.T) {
	for _, d := range Directions {
		got, err := ParseDirection(d.String())
		if err != nil {
			t.Fatalf("ParseDirection(%q) failed: %v", d.String(), err)
		}
		if got != d {
			t.Errorf("ParseDirection(%q) = %v, want %v", d.String(), got, d)
		}
	}

	if _, err := ParseDirection("sideways"); err == nil {
		t.Error("ParseDirection should reject unknown names")
	}
}

func count(b Board) int {
	return Size*Size - b.EmptyCount()
}

// randomBoard fills each cell with probability density using small powers of two.
func randomBoard(rng *rand.Rand, density float64) Board {
	var b Board
	values := []int{2, 4, 8, 16, 32}
	for r := range Size {
		for c := range Size {
			if rng.Float64() < density {
				b[r][c] = values[rng.Intn(len(values))]
			}
		}
	}
	return b
}
