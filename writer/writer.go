// Package writer implements the CCF writer: §4.4's two-pass header
// layout and the atomic-write-then-rename file lifecycle.
package writer

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/colinmarc/ccf/codec"
	"github.com/colinmarc/ccf/column"
	"github.com/colinmarc/ccf/endian"
	"github.com/colinmarc/ccf/errs"
	"github.com/colinmarc/ccf/format"
	"github.com/colinmarc/ccf/infer"
	"github.com/colinmarc/ccf/internal/pool"
)

// Writer is a one-shot pipeline: construct, call Write, discard. It holds
// no file handle and has no externally observable state between calls
// (spec §4.6).
type Writer struct {
	cfg   *config
	codec codec.Compressor
}

// New creates a Writer with the given options.
func New(opts ...Option) *Writer {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	return &Writer{cfg: cfg, codec: codec.New()}
}

type columnMeta struct {
	name             string
	dtype            format.Type
	offset           uint64
	compressedSize   uint64
	uncompressedSize uint64
	compressed       []byte
}

// Write encodes schema/rows into a new CCF file at path (spec §4.4).
//
// Rows shorter than len(schema) are right-padded with empty strings;
// rows longer than len(schema) have excess cells ignored. The output
// file is written to a temporary path in the same directory and renamed
// into place only on success, so a failed write never leaves a partial
// or corrupt file at path (spec §7).
func (w *Writer) Write(path string, schema Schema, rows [][]string) error {
	if err := w.validateSchema(schema); err != nil {
		return err
	}

	rowCount := len(rows)
	columnCount := len(schema)

	metas := make([]columnMeta, columnCount)
	for i, col := range schema {
		values := transposeColumn(rows, i, rowCount)

		dtype := col.Type
		if col.Infer {
			dtype = infer.Type(values)
		}
		if !dtype.Valid() {
			return errs.NewSchemaError(col.Name, fmt.Sprintf("unsupported type code %d", dtype))
		}

		block, err := column.EncodeBlock(w.codec, dtype, values, w.cfg.allowIntTruncation)
		if err != nil {
			return fmt.Errorf("writer: column %q: %w", col.Name, err)
		}

		metas[i] = columnMeta{
			name:             col.Name,
			dtype:            dtype,
			compressedSize:   uint64(block.CompressedSize),
			uncompressedSize: uint64(block.UncompressedSize),
			compressed:       block.Compressed,
		}
	}

	headerSize := headerDirectorySize(metas)

	// Second pass: assign final offsets now that every column's
	// compressed size is known (spec §4.4's two-pass layout).
	offset := uint64(format.PrefixSize) + headerSize
	for i := range metas {
		metas[i].offset = offset
		offset += metas[i].compressedSize
	}

	var out bytes.Buffer
	writePrefix(&out, uint32(headerSize), uint64(rowCount), uint16(columnCount)) //nolint:gosec
	for _, m := range metas {
		writeHeaderEntry(&out, m)
	}
	for _, m := range metas {
		out.Write(m.compressed)
	}

	if err := atomicWriteFile(path, out.Bytes()); err != nil {
		return err
	}

	slog.Info("ccf: wrote file", "path", path, "rows", rowCount, "columns", columnCount, "bytes", out.Len())

	return nil
}

func (w *Writer) validateSchema(schema Schema) error {
	if !w.cfg.enforceUniqueNames {
		return nil
	}

	seen := make(map[string]struct{}, len(schema))
	for _, col := range schema {
		if _, dup := seen[col.Name]; dup {
			return errs.NewSchemaError(col.Name, "duplicate column name")
		}
		seen[col.Name] = struct{}{}
	}

	return nil
}

// transposeColumn extracts column i's text values from rows, padding
// short rows with the empty string (spec §4.4).
func transposeColumn(rows [][]string, i, rowCount int) []string {
	values, _ := pool.GetStringSlice(rowCount)
	for j, row := range rows {
		if i < len(row) {
			values[j] = row[i]
		} else {
			values[j] = ""
		}
	}

	// The returned slice is handed to column.Encode, which copies it
	// into an owned buffer before returning; it's safe to not retain a
	// reference to return this slice to the pool here, so the cleanup is
	// intentionally not deferred against the caller's scope.
	return values
}

func headerDirectorySize(metas []columnMeta) uint64 {
	var size uint64
	for _, m := range metas {
		size += uint64(format.HeaderEntryFixedSize) + uint64(len(m.name))
	}

	return size
}

func writePrefix(out *bytes.Buffer, headerSize uint32, numRows uint64, numCols uint16) {
	engine := endian.Engine()

	out.WriteString(format.Magic)
	out.WriteByte(format.Version)

	var scratch [8]byte
	engine.PutUint32(scratch[:4], headerSize)
	out.Write(scratch[:4])
	engine.PutUint64(scratch[:8], numRows)
	out.Write(scratch[:8])
	engine.PutUint16(scratch[:2], numCols)
	out.Write(scratch[:2])
}

func writeHeaderEntry(out *bytes.Buffer, m columnMeta) {
	engine := endian.Engine()

	var scratch [8]byte
	engine.PutUint16(scratch[:2], uint16(len(m.name))) //nolint:gosec
	out.Write(scratch[:2])
	out.WriteString(m.name)
	out.WriteByte(byte(m.dtype))
	engine.PutUint64(scratch[:8], m.offset)
	out.Write(scratch[:8])
	engine.PutUint64(scratch[:8], m.compressedSize)
	out.Write(scratch[:8])
	engine.PutUint64(scratch[:8], m.uncompressedSize)
	out.Write(scratch[:8])
}

func atomicWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("writer: create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writer: write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writer: close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writer: rename temp file: %w", err)
	}

	return nil
}
