package collision

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/automoto/islandcore/shared/gamemath"
)

const (
	// TilesSignature opens a collision tile file.
	TilesSignature = 52
	// WorldSignature opens a tile grid file.
	WorldSignature = 42

	segmentSize   = 6 * 4
	minTileRecord = 1 + 1 + segmentSize
	emptyCellByte = 0xFF
)

var (
	ErrBadSignature = errors.New("collision: bad signature")
	ErrTruncated    = errors.New("collision: truncated data")
)

// ParseTiles decodes a collision tile file:
//
//	byte signature (52)
//	byte tileCount
//	tileCount x { byte index; byte segmentCount; segmentCount x 6 float32 LE }
//
// The six floats are startX, startY, endX, endY, normalX, normalY.
func ParseTiles(r io.Reader) (*TileSet, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read collision tiles: %w", err)
	}
	if len(data) < 2 {
		return nil, fmt.Errorf("header: %w", ErrTruncated)
	}
	if data[0] != TilesSignature {
		return nil, fmt.Errorf("got %d, expected %d: %w", data[0], TilesSignature, ErrBadSignature)
	}

	tileCount := int(data[1])
	payload := data[2:]
	if len(payload) < tileCount*minTileRecord {
		return nil, fmt.Errorf("%d tiles need at least %d bytes, have %d: %w",
			tileCount, tileCount*minTileRecord, len(payload), ErrTruncated)
	}

	ts := NewTileSet()
	pos := 0
	for i := 0; i < tileCount; i++ {
		if pos+2 > len(payload) {
			return nil, fmt.Errorf("tile %d header: %w", i, ErrTruncated)
		}
		index := int(payload[pos])
		segmentCount := int(payload[pos+1])
		pos += 2

		if pos+segmentCount*segmentSize > len(payload) {
			return nil, fmt.Errorf("tile %d segments: %w", index, ErrTruncated)
		}
		segments := make([]LineSegment, segmentCount)
		for j := range segments {
			segments[j] = NewSegment(
				gamemath.Vec(readFloat(payload, pos), readFloat(payload, pos+4)),
				gamemath.Vec(readFloat(payload, pos+8), readFloat(payload, pos+12)),
				gamemath.Vec(readFloat(payload, pos+16), readFloat(payload, pos+20)),
			)
			pos += segmentSize
		}
		ts.Set(index, segments)
	}
	return ts, nil
}

func readFloat(b []byte, at int) float64 {
	return float64(math.Float32frombits(binary.LittleEndian.Uint32(b[at:])))
}

// WriteTiles encodes ts in the format ParseTiles reads.
func WriteTiles(w io.Writer, ts *TileSet) error {
	count := ts.Len()
	if count > math.MaxUint8 {
		return fmt.Errorf("collision: %d tiles exceed the format limit of %d", count, math.MaxUint8)
	}

	var buf bytes.Buffer
	buf.WriteByte(TilesSignature)
	buf.WriteByte(byte(count))

	var err error
	ts.Each(func(index int, t *Tile) {
		if err != nil {
			return
		}
		if len(t.Segments) > math.MaxUint8 {
			err = fmt.Errorf("collision: tile %d has %d segments", index, len(t.Segments))
			return
		}
		buf.WriteByte(byte(index))
		buf.WriteByte(byte(len(t.Segments)))
		for _, s := range t.Segments {
			for _, f := range [...]float64{s.Start.X, s.Start.Y, s.End.X, s.End.Y, s.Normal.X, s.Normal.Y} {
				_ = binary.Write(&buf, binary.LittleEndian, float32(f))
			}
		}
	})
	if err != nil {
		return err
	}

	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("write collision tiles: %w", err)
	}
	return nil
}

// ParseWorld decodes a tile grid file:
//
//	byte signature (42)
//	int32 width, int32 height (LE)
//	width*height bytes, row-major, first row is the top; 0xFF is empty
func ParseWorld(r io.Reader) (*World, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read world: %w", err)
	}
	if len(data) < 9 {
		return nil, fmt.Errorf("header: %w", ErrTruncated)
	}
	if data[0] != WorldSignature {
		return nil, fmt.Errorf("got %d, expected %d: %w", data[0], WorldSignature, ErrBadSignature)
	}

	width := int(int32(binary.LittleEndian.Uint32(data[1:])))
	height := int(int32(binary.LittleEndian.Uint32(data[5:])))
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("collision: invalid world size %dx%d", width, height)
	}
	cells := data[9:]
	if len(cells) < width*height {
		return nil, fmt.Errorf("%dx%d grid needs %d bytes, have %d: %w",
			width, height, width*height, len(cells), ErrTruncated)
	}

	world := NewWorld(width, height)
	for row := 0; row < height; row++ {
		for x := 0; x < width; x++ {
			b := cells[row*width+x]
			if b == emptyCellByte {
				continue
			}
			world.SetTile(x, height-1-row, int(b))
		}
	}
	return world, nil
}

// WriteWorld encodes world in the format ParseWorld reads.
func WriteWorld(w io.Writer, world *World) error {
	var buf bytes.Buffer
	buf.WriteByte(WorldSignature)
	_ = binary.Write(&buf, binary.LittleEndian, int32(world.width))
	_ = binary.Write(&buf, binary.LittleEndian, int32(world.height))

	for row := 0; row < world.height; row++ {
		for x := 0; x < world.width; x++ {
			index := world.TileAt(x, world.height-1-row)
			if index < 0 || index >= emptyCellByte {
				buf.WriteByte(emptyCellByte)
				continue
			}
			buf.WriteByte(byte(index))
		}
	}

	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("write world: %w", err)
	}
	return nil
}
