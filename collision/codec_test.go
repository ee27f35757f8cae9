package collision

import (
	"bytes"
	"errors"
	"testing"

	"github.com/automoto/islandcore/shared/gamemath"
)

func sampleTiles() *TileSet {
	ts := NewTileSet()
	ts.Set(1, []LineSegment{
		NewSegment(gamemath.Vec(0, 0), gamemath.Vec(32, 0), gamemath.Vec(0, 1)),
	})
	ts.Set(7, []LineSegment{
		NewSegment(gamemath.Vec(0, 0), gamemath.Vec(32, 32), gamemath.Vec(-1, 1)),
		NewSegment(gamemath.Vec(32, 0), gamemath.Vec(32, 32), gamemath.Vec(1, 0)),
	})
	return ts
}

func TestTilesRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTiles(&buf, sampleTiles()); err != nil {
		t.Fatalf("WriteTiles() error: %v", err)
	}
	if buf.Bytes()[0] != TilesSignature {
		t.Fatalf("signature byte = %d", buf.Bytes()[0])
	}

	got, err := ParseTiles(&buf)
	if err != nil {
		t.Fatalf("ParseTiles() error: %v", err)
	}
	if got.Len() != 2 || got.SegmentCount() != 3 {
		t.Fatalf("parsed %d tiles / %d segments, expected 2 / 3", got.Len(), got.SegmentCount())
	}
	diag := got.Tile(7).Segments[0]
	if !diag.End.ApproxEqual(gamemath.Vec(32, 32), 1e-6) {
		t.Errorf("segment end = %v", diag.End)
	}
	if l := diag.Normal.Length(); l < 0.999 || l > 1.001 {
		t.Errorf("normal %v not unit length", diag.Normal)
	}
	if got.Tile(2) != nil {
		t.Error("unlisted tile index is not empty")
	}
}

func TestParseTilesErrors(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		expected error
	}{
		{"empty", nil, ErrTruncated},
		{"wrong signature", []byte{42, 0}, ErrBadSignature},
		{"missing tile records", []byte{TilesSignature, 2, 1, 0}, ErrTruncated},
		{"short segment data", append([]byte{TilesSignature, 1, 3, 2}, make([]byte, 30)...), ErrTruncated},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseTiles(bytes.NewReader(tc.data))
			if !errors.Is(err, tc.expected) {
				t.Errorf("ParseTiles() error = %v, expected %v", err, tc.expected)
			}
		})
	}
}

func TestLoadCollisionTilesBadData(t *testing.T) {
	s := newTestSystem(2, 2)
	s.World().SetTile(0, 0, floorTile)

	if s.LoadCollisionTiles(bytes.NewReader([]byte{99, 1, 2, 3})) {
		t.Fatal("LoadCollisionTiles() accepted a bad signature")
	}
	if s.Tiles().Len() != 0 {
		t.Errorf("tile table has %d tiles after a failed load", s.Tiles().Len())
	}
	if _, ok := s.CastRay(gamemath.Vec(16, 50), gamemath.Vec(16, -50), AnyDirection); ok {
		t.Error("CastRay() hit after a failed load")
	}

	var buf bytes.Buffer
	if err := WriteTiles(&buf, sampleTiles()); err != nil {
		t.Fatal(err)
	}
	if !s.LoadCollisionTiles(&buf) {
		t.Fatal("LoadCollisionTiles() rejected valid data")
	}
	if _, ok := s.CastRay(gamemath.Vec(16, 50), gamemath.Vec(16, -50), AnyDirection); !ok {
		t.Error("CastRay() missed after reload")
	}
}

func TestWorldRoundTrip(t *testing.T) {
	w := NewWorld(3, 2)
	w.SetTile(0, 0, 1)
	w.SetTile(2, 1, 7)

	var buf bytes.Buffer
	if err := WriteWorld(&buf, w); err != nil {
		t.Fatalf("WriteWorld() error: %v", err)
	}
	raw := buf.Bytes()
	// First stored row is the top of the level.
	if raw[9+2] != 7 || raw[9+3] != 1 || raw[9] != emptyCellByte {
		t.Fatalf("unexpected cell bytes %v", raw[9:])
	}

	got, err := ParseWorld(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("ParseWorld() error: %v", err)
	}
	if got.Width() != 3 || got.Height() != 2 {
		t.Fatalf("size = %dx%d", got.Width(), got.Height())
	}
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			if got.TileAt(x, y) != w.TileAt(x, y) {
				t.Errorf("cell (%d,%d) = %d, expected %d", x, y, got.TileAt(x, y), w.TileAt(x, y))
			}
		}
	}
}

func TestParseWorldErrors(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		expected error
	}{
		{"short header", []byte{WorldSignature, 1}, ErrTruncated},
		{"wrong signature", []byte{TilesSignature, 1, 0, 0, 0, 1, 0, 0, 0, 0}, ErrBadSignature},
		{"short grid", []byte{WorldSignature, 2, 0, 0, 0, 2, 0, 0, 0, 1, 1}, ErrTruncated},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseWorld(bytes.NewReader(tc.data)); !errors.Is(err, tc.expected) {
				t.Errorf("ParseWorld() error = %v, expected %v", err, tc.expected)
			}
		})
	}
}

func TestWorldOutOfRange(t *testing.T) {
	w := NewWorld(2, 2)
	w.SetTile(5, 5, 3)
	for _, c := range [][2]int{{-1, 0}, {0, -1}, {2, 0}, {0, 2}} {
		if got := w.TileAt(c[0], c[1]); got != EmptyCell {
			t.Errorf("TileAt(%d,%d) = %d, expected EmptyCell", c[0], c[1], got)
		}
	}
}
