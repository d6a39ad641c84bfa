package slide

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// TIFF magic numbers
const (
	magicClassic = 42
	magicBigTIFF = 43
)

// TIFF tags the reader cares about
const (
	tagImageWidth  = 256
	tagImageLength = 257
	tagCompression = 259
	tagTileWidth   = 322
	tagTileLength  = 323
)

// TIFF field types
const (
	typeByte  = 1
	typeShort = 3
	typeLong  = 4
	typeLong8 = 16
)

// Parser guards against corrupt files
const (
	maxDirectories = 256
	maxDirEntries  = 4096
)

// Level describes one image directory within a slide file
type Level struct {
	Width       int64
	Height      int64
	TileWidth   int64
	TileHeight  int64
	Compression uint16
	Downsample  float64 // relative to level 0
}

// Tiled returns true if the level stores its pixels in tiles
func (l Level) Tiled() bool {
	return l.TileWidth > 0 && l.TileHeight > 0
}

// CompressionName returns a readable name for the level's compression scheme
func (l Level) CompressionName() string {
	switch l.Compression {
	case 1:
		return "uncompressed"
	case 5:
		return "lzw"
	case 7:
		return "jpeg"
	case 8:
		return "deflate"
	case 33003, 33005:
		return "jpeg2000"
	default:
		return fmt.Sprintf("unknown(%d)", l.Compression)
	}
}

// Slide is a parsed whole-slide image file. Aperio SVS files are TIFF
// containers, so both .tiff and .svs resolve through the same parser
type Slide struct {
	Path    string
	BigTIFF bool

	levels []Level
}

// Open parses the TIFF directory structure of the file at path
func Open(path string) (*Slide, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open slide: %w", err)
	}
	defer f.Close()

	order, big, firstOffset, err := parseHeader(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	levels, err := parseDirectories(f, order, big, firstOffset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(levels) == 0 {
		return nil, fmt.Errorf("%s: no image directories", path)
	}

	base := levels[0]
	for i := range levels {
		if levels[i].Width > 0 {
			levels[i].Downsample = float64(base.Width) / float64(levels[i].Width)
		}
	}

	return &Slide{Path: path, BigTIFF: big, levels: levels}, nil
}

// Size returns the level-0 pixel dimensions
func (s *Slide) Size() (int64, int64) {
	return s.levels[0].Width, s.levels[0].Height
}

// Levels returns every image directory in file order
func (s *Slide) Levels() []Level {
	return s.levels
}

// LevelCount returns the number of image directories
func (s *Slide) LevelCount() int {
	return len(s.levels)
}

// IsPyramidal returns true if the slide holds multiple resolution levels
// and a tiled base level
func (s *Slide) IsPyramidal() bool {
	return len(s.levels) > 1 && s.levels[0].Tiled()
}

// parseHeader reads the byte order, magic number, and first directory offset
func parseHeader(r io.ReaderAt) (binary.ByteOrder, bool, int64, error) {
	var head [8]byte
	if _, err := r.ReadAt(head[:], 0); err != nil {
		return nil, false, 0, fmt.Errorf("failed to read header: %w", err)
	}

	var order binary.ByteOrder
	switch {
	case head[0] == 'I' && head[1] == 'I':
		order = binary.LittleEndian
	case head[0] == 'M' && head[1] == 'M':
		order = binary.BigEndian
	default:
		return nil, false, 0, fmt.Errorf("not a TIFF file: bad byte order %q", head[:2])
	}

	switch magic := order.Uint16(head[2:4]); magic {
	case magicClassic:
		return order, false, int64(order.Uint32(head[4:8])), nil

	case magicBigTIFF:
		if order.Uint16(head[4:6]) != 8 || order.Uint16(head[6:8]) != 0 {
			return nil, false, 0, fmt.Errorf("malformed BigTIFF header")
		}
		var off [8]byte
		if _, err := r.ReadAt(off[:], 8); err != nil {
			return nil, false, 0, fmt.Errorf("failed to read BigTIFF offset: %w", err)
		}
		return order, true, int64(order.Uint64(off[:])), nil

	default:
		return nil, false, 0, fmt.Errorf("not a TIFF file: bad magic %d", magic)
	}
}

// parseDirectories walks the IFD chain starting at offset
func parseDirectories(r io.ReaderAt, order binary.ByteOrder, big bool, offset int64) ([]Level, error) {
	var levels []Level

	for offset != 0 {
		if len(levels) >= maxDirectories {
			return nil, fmt.Errorf("too many image directories")
		}

		level, next, err := parseDirectory(r, order, big, offset)
		if err != nil {
			return nil, fmt.Errorf("directory %d: %w", len(levels), err)
		}

		levels = append(levels, level)
		offset = next
	}

	return levels, nil
}

// parseDirectory reads one IFD and returns the level it describes plus the
// offset of the next IFD, zero when the chain ends
func parseDirectory(r io.ReaderAt, order binary.ByteOrder, big bool, offset int64) (Level, int64, error) {
	countSize, entrySize, offsetSize := 2, 12, 4
	if big {
		countSize, entrySize, offsetSize = 8, 20, 8
	}

	countBuf := make([]byte, countSize)
	if _, err := r.ReadAt(countBuf, offset); err != nil {
		return Level{}, 0, fmt.Errorf("failed to read entry count: %w", err)
	}

	var count int64
	if big {
		count = int64(order.Uint64(countBuf))
	} else {
		count = int64(order.Uint16(countBuf))
	}
	if count <= 0 || count > maxDirEntries {
		return Level{}, 0, fmt.Errorf("implausible entry count %d", count)
	}

	entries := make([]byte, count*int64(entrySize))
	entriesOffset := offset + int64(countSize)
	if _, err := r.ReadAt(entries, entriesOffset); err != nil {
		return Level{}, 0, fmt.Errorf("failed to read %d entries: %w", count, err)
	}

	var level Level
	for i := int64(0); i < count; i++ {
		entry := entries[i*int64(entrySize) : (i+1)*int64(entrySize)]
		tag := order.Uint16(entry[0:2])

		switch tag {
		case tagImageWidth, tagImageLength, tagCompression, tagTileWidth, tagTileLength:
		default:
			continue
		}

		value, err := scalarValue(entry, order, big)
		if err != nil {
			return Level{}, 0, fmt.Errorf("tag %d: %w", tag, err)
		}

		switch tag {
		case tagImageWidth:
			level.Width = value
		case tagImageLength:
			level.Height = value
		case tagCompression:
			level.Compression = uint16(value)
		case tagTileWidth:
			level.TileWidth = value
		case tagTileLength:
			level.TileHeight = value
		}
	}

	if level.Width <= 0 || level.Height <= 0 {
		return Level{}, 0, fmt.Errorf("missing image dimensions")
	}

	nextBuf := make([]byte, offsetSize)
	nextOffset := entriesOffset + count*int64(entrySize)
	if _, err := r.ReadAt(nextBuf, nextOffset); err != nil {
		return Level{}, 0, fmt.Errorf("failed to read next-directory offset: %w", err)
	}

	var next int64
	if big {
		next = int64(order.Uint64(nextBuf))
	} else {
		next = int64(order.Uint32(nextBuf))
	}

	return level, next, nil
}

// scalarValue decodes a single inline numeric entry value. All tags the
// reader extracts are count-1 scalars, which TIFF stores inline
func scalarValue(entry []byte, order binary.ByteOrder, big bool) (int64, error) {
	fieldType := order.Uint16(entry[2:4])

	var count int64
	var value []byte
	if big {
		count = int64(order.Uint64(entry[4:12]))
		value = entry[12:20]
	} else {
		count = int64(order.Uint32(entry[4:8]))
		value = entry[8:12]
	}
	if count != 1 {
		return 0, fmt.Errorf("expected scalar, got count %d", count)
	}

	switch fieldType {
	case typeByte:
		return int64(value[0]), nil
	case typeShort:
		return int64(order.Uint16(value[0:2])), nil
	case typeLong:
		return int64(order.Uint32(value[0:4])), nil
	case typeLong8:
		if !big {
			return 0, fmt.Errorf("LONG8 value in classic TIFF")
		}
		return int64(order.Uint64(value[0:8])), nil
	default:
		return 0, fmt.Errorf("unsupported field type %d", fieldType)
	}
}
