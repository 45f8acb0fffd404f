package geom

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewRingCopiesInput(t *testing.T) {
	source := []Position{{Lat: 1, Lon: 2}, {Lat: 3, Lon: 4}}
	ring := NewRing(source)

	source[0].Lat = 99

	got := ring.Positions()
	if got[0].Lat != 1 {
		t.Fatalf("expected ring to own its positions, got mutated lat %v", got[0].Lat)
	}
}

func TestPositionsReturnsCopy(t *testing.T) {
	ring := NewRing([]Position{{Lat: 1}, {Lat: 2}})

	first := ring.Positions()
	first[0].Lat = 42

	second := ring.Positions()
	if second[0].Lat != 1 {
		t.Fatalf("expected stored positions untouched, got %v", second[0].Lat)
	}
}

func TestCenterVertexMean(t *testing.T) {
	ring := NewRing([]Position{
		{Lat: 10, Lon: 10},
		{Lat: 10, Lon: 20},
		{Lat: 20, Lon: 20},
		{Lat: 20, Lon: 10},
	})

	got := ring.Center()
	want := Position{Lat: 15, Lon: 15}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("center mismatch (-want +got):\n%s", diff)
	}
}

func TestCenterIgnoresClosingVertex(t *testing.T) {
	open := NewRing([]Position{
		{Lat: 10, Lon: 10},
		{Lat: 10, Lon: 20},
		{Lat: 20, Lon: 20},
		{Lat: 20, Lon: 10},
	})
	closed := NewRing([]Position{
		{Lat: 10, Lon: 10},
		{Lat: 10, Lon: 20},
		{Lat: 20, Lon: 20},
		{Lat: 20, Lon: 10},
		{Lat: 10, Lon: 10},
	})

	if diff := cmp.Diff(open.Center(), closed.Center()); diff != "" {
		t.Fatalf("closed ring center should match open ring (-open +closed):\n%s", diff)
	}
}

func TestCenterEmptyRing(t *testing.T) {
	var ring *Ring
	if got := ring.Center(); got != (Position{}) {
		t.Fatalf("expected zero position for nil ring, got %+v", got)
	}
	if got := NewRing(nil).Center(); got != (Position{}) {
		t.Fatalf("expected zero position for empty ring, got %+v", got)
	}
}
