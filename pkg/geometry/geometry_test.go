package geometry

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func TestReverse(t *testing.T) {
	for _, d := range Directions {
		if d.Reverse().Reverse() != d {
			t.Errorf("reverse of reverse of %v is %v. Should be %v", d, d.Reverse().Reverse(), d)
		}
		p := MakePoint(5, 5)
		if back := p.Move(d).Move(d.Reverse()); back != p {
			t.Errorf("moving %v and back ends at %v. Should be %v", d, back, p)
		}
	}
}

func TestMoveOffGrid(t *testing.T) {
	origin := MakePoint(0, 0)
	tests := []struct {
		d        Direction
		expected Point
	}{
		{North, Point{-1, 0}},
		{West, Point{0, -1}},
		{NorthWest, Point{-1, -1}},
		{NorthEast, Point{-1, 1}},
		{SouthWest, Point{1, -1}},
		{SouthEast, Point{1, 1}},
	}
	for _, test := range tests {
		if moved := origin.Move(test.d); moved != test.expected {
			t.Errorf("move %v from origin is %v. Should be %v", test.d, moved, test.expected)
		}
	}
}

func TestCost(t *testing.T) {
	for _, d := range []Direction{East, South, West, North} {
		if d.Cost() != ParallelCost {
			t.Errorf("cost of %v is %v. Should be %v", d, d.Cost(), ParallelCost)
		}
	}
	for _, d := range []Direction{NorthEast, SouthEast, SouthWest, NorthWest} {
		if d.Cost() != DiagonalCost {
			t.Errorf("cost of %v is %v. Should be %v", d, d.Cost(), DiagonalCost)
		}
	}
	if DiagonalCost <= ParallelCost {
		t.Errorf("diagonal cost %v is not above parallel cost %v", DiagonalCost, ParallelCost)
	}
}

func TestOctile(t *testing.T) {
	tests := []struct {
		a, b     Point
		expected float64
	}{
		{Point{0, 0}, Point{0, 0}, 0},
		{Point{0, 0}, Point{0, 5}, 5},
		{Point{0, 0}, Point{2, 2}, 2 * math.Sqrt2},
		{Point{0, 0}, Point{2, 0}, 2},
		{Point{4, 1}, Point{0, 8}, 4*math.Sqrt2 + 3},
	}
	for _, test := range tests {
		if got := Octile(test.a, test.b); math.Abs(got-test.expected) > epsilon {
			t.Errorf("octile %v -> %v is %v. Should be %v", test.a, test.b, got, test.expected)
		}
		if got, back := Octile(test.a, test.b), Octile(test.b, test.a); got != back {
			t.Errorf("octile is not symmetric: %v vs %v", got, back)
		}
	}
}

func TestOctileConsistent(t *testing.T) {
	goal := MakePoint(7, 3)
	for row := 0; row < 10; row++ {
		for col := 0; col < 10; col++ {
			p := MakePoint(row, col)
			for _, d := range Directions {
				if Octile(p, goal) > d.Cost()+Octile(p.Move(d), goal)+epsilon {
					t.Errorf("heuristic not consistent at %v moving %v", p, d)
				}
			}
		}
	}
}

func TestDirectionBetween(t *testing.T) {
	p := MakePoint(3, 3)
	for _, d := range Directions {
		got, ok := DirectionBetween(p, p.Move(d))
		if !ok || got != d {
			t.Errorf("direction between %v and %v is %v (%v). Should be %v", p, p.Move(d), got, ok, d)
		}
	}
	if _, ok := DirectionBetween(p, p); ok {
		t.Errorf("equal points must not have a direction")
	}
	if _, ok := DirectionBetween(p, MakePoint(5, 3)); ok {
		t.Errorf("distant points must not have a direction")
	}
}
