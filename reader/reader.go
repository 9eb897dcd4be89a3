// Package reader implements the CCF reader: selective column reads that
// touch only the file's fixed prefix, its header directory, and the
// byte range of the columns actually requested (spec §4.5).
package reader

import (
	"fmt"
	"io"
	"os"

	"github.com/colinmarc/ccf/codec"
	"github.com/colinmarc/ccf/column"
	"github.com/colinmarc/ccf/endian"
	"github.com/colinmarc/ccf/errs"
	"github.com/colinmarc/ccf/format"
	"github.com/colinmarc/ccf/internal/pool"
)

type columnEntry struct {
	name             string
	dtype            format.Type
	offset           uint64
	compressedSize   uint64
	uncompressedSize uint64
}

// Reader holds an open CCF file and its parsed header directory. A
// Reader must be closed after use; it is not safe for concurrent use by
// multiple goroutines without external synchronization, matching the
// rest of the package's single-writer-per-handle convention.
type Reader struct {
	f        *os.File
	codec    codec.Decompressor
	rowCount int
	order    []string
	byName   map[string]columnEntry
}

// Open validates the file's magic and version, reads its header
// directory, and returns a Reader ready to serve column reads.
func Open(path string, opts ...Option) (*Reader, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reader: open %s: %w", path, err)
	}

	r, err := newReader(f, cfg)
	if err != nil {
		f.Close()
		return nil, err
	}

	return r, nil
}

func newReader(f *os.File, cfg *config) (*Reader, error) {
	prefix := make([]byte, format.PrefixSize)
	n, err := io.ReadFull(f, prefix)
	if n >= len(format.Magic) && string(prefix[0:7]) != format.Magic {
		return nil, errs.ErrBadMagic
	}
	if err != nil {
		if err == io.ErrUnexpectedEOF || err == io.EOF {
			return nil, fmt.Errorf("reader: read prefix: %w", errs.ErrTruncatedFile)
		}
		return nil, fmt.Errorf("reader: read prefix: %w", err)
	}

	if prefix[7] != format.Version {
		return nil, fmt.Errorf("reader: version %d: %w", prefix[7], errs.ErrUnsupportedVersion)
	}

	engine := endian.Engine()
	headerSize := engine.Uint32(prefix[8:12])
	numRows := engine.Uint64(prefix[12:20])
	numCols := engine.Uint16(prefix[20:22])

	header := make([]byte, headerSize)
	if _, err := io.ReadFull(f, header); err != nil {
		return nil, fmt.Errorf("reader: read header directory: %w", errs.ErrTruncatedFile)
	}

	order := make([]string, 0, numCols)
	byName := make(map[string]columnEntry, numCols)

	pos := 0
	for i := 0; i < int(numCols); i++ {
		if pos+2 > len(header) {
			return nil, fmt.Errorf("reader: header entry %d: %w", i, errs.ErrTruncatedFile)
		}
		nameLen := int(engine.Uint16(header[pos : pos+2]))
		pos += 2

		fixedRest := 1 + 8 + 8 + 8
		if pos+nameLen+fixedRest > len(header) {
			return nil, fmt.Errorf("reader: header entry %d: %w", i, errs.ErrTruncatedFile)
		}

		name := string(header[pos : pos+nameLen])
		pos += nameLen

		dtype := format.Type(header[pos])
		pos++
		if !dtype.Valid() {
			return nil, fmt.Errorf("reader: column %q: %w", name, errs.ErrUnknownType)
		}

		offset := engine.Uint64(header[pos : pos+8])
		pos += 8
		compressedSize := engine.Uint64(header[pos : pos+8])
		pos += 8
		uncompressedSize := engine.Uint64(header[pos : pos+8])
		pos += 8

		entry := columnEntry{
			name:             name,
			dtype:            dtype,
			offset:           offset,
			compressedSize:   compressedSize,
			uncompressedSize: uncompressedSize,
		}
		order = append(order, name)
		if _, exists := byName[name]; !exists {
			// Duplicate column names resolve to the first declared entry
			// (spec §4.5): the writer may allow duplicates via
			// WithColumnNameUniqueness(false), so ReadColumn must not let a
			// later entry silently overwrite the first.
			byName[name] = entry
		}
	}

	return &Reader{
		f:        f,
		codec:    codec.NewZlibCodec(cfg.allocationCeiling),
		rowCount: int(numRows),
		order:    order,
		byName:   byName,
	}, nil
}

// Close releases the underlying file handle.
func (r *Reader) Close() error {
	return r.f.Close()
}

// RowCount returns the file's NUM_ROWS.
func (r *Reader) RowCount() int {
	return r.rowCount
}

// ListColumns returns column names in their on-disk header-directory
// order.
func (r *Reader) ListColumns() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// ReadColumn decodes one column by name. It seeks directly to the
// column's byte range and never reads any other column's bytes (spec
// §4.5, invariant 4).
func (r *Reader) ReadColumn(name string) ([]column.Cell, error) {
	entry, ok := r.byName[name]
	if !ok {
		return nil, errs.NewUnknownColumnError(name)
	}

	compressed := make([]byte, entry.compressedSize)
	if _, err := r.f.ReadAt(compressed, int64(entry.offset)); err != nil {
		return nil, fmt.Errorf("reader: column %q: %w", name, errs.ErrTruncatedFile)
	}

	return column.DecodeBlock(r.codec, entry.dtype, compressed, r.rowCount, int(entry.uncompressedSize))
}

// ReadTable decodes the requested columns (all columns, in header order,
// if columns is empty) and zips them into text rows via Cell.Render.
func (r *Reader) ReadTable(columns []string) ([]string, [][]string, error) {
	names := columns
	if len(names) == 0 {
		names = r.order
	}

	cols := make([][]column.Cell, len(names))
	for i, name := range names {
		cells, err := r.ReadColumn(name)
		if err != nil {
			return nil, nil, err
		}
		cols[i] = cells
	}

	rows := make([][]string, r.rowCount)
	for rowIdx := range rows {
		row, free := pool.GetStringSlice(len(names))
		for colIdx, cells := range cols {
			if rowIdx < len(cells) {
				row[colIdx] = cells[rowIdx].Render()
			}
		}
		rows[rowIdx] = append([]string(nil), row...)
		free()
	}

	return names, rows, nil
}
