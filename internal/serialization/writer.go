package serialization

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// WriterOptions configures how matrices are written.
type WriterOptions struct {
	Compress bool              // zstd-compress the data section
	Metadata map[string]string // stored in the JSON header
}

// Writer writes matrices to a .cvm file.
type Writer struct {
	file   *os.File
	opts   WriterOptions
	closed bool
}

// NewWriter creates (or truncates) the file at path.
func NewWriter(path string, opts WriterOptions) (*Writer, error) {
	//nolint:gosec // G304: path is chosen by the caller
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	return &Writer{file: file, opts: opts}, nil
}

// Write encodes mats into the file. It may be called once per Writer.
func (w *Writer) Write(mats []NamedMat) error {
	if w.closed {
		return ErrClosed
	}
	return Encode(w.file, mats, w.opts)
}

// Close closes the underlying file.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	return w.file.Close()
}

// WriteFile writes mats to a new .cvm file at path.
func WriteFile(path string, mats []NamedMat, opts WriterOptions) error {
	w, err := NewWriter(path, opts)
	if err != nil {
		return err
	}
	if err := w.Write(mats); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}

// Encode writes mats in .cvm format to dst. Matrices are stored in the given
// order; region views are copied first.
func Encode(dst io.Writer, mats []NamedMat, opts WriterOptions) error {
	seen := make(map[string]bool, len(mats))
	for i, nm := range mats {
		if nm.Mat == nil {
			return fmt.Errorf("matrix %d (%q) is nil", i, nm.Name)
		}
		if err := ValidateMatrixName(nm.Name); err != nil {
			return err
		}
		if seen[nm.Name] {
			return &ValidationError{Type: "duplicate_name", Matrix: nm.Name, Details: "name used twice", Err: ErrInvalidName}
		}
		seen[nm.Name] = true
	}

	blobs, err := packAll(mats)
	if err != nil {
		return err
	}

	header := Header{
		FormatVersion: FormatVersion,
		CreatedAt:     time.Now().UTC(),
		Matrices:      make([]MatrixMeta, len(mats)),
		Metadata:      opts.Metadata,
	}
	if header.Metadata == nil {
		header.Metadata = make(map[string]string)
	}

	var offset int64
	for i, nm := range mats {
		size := int64(len(blobs[i]))
		header.Matrices[i] = MatrixMeta{
			Name:   nm.Name,
			Type:   nm.Mat.Type().String(),
			Rows:   nm.Mat.Rows(),
			Cols:   nm.Mat.Cols(),
			Offset: offset,
			Size:   size,
		}
		offset += size
	}
	header.DataSize = offset

	data := make([]byte, 0, offset)
	for _, b := range blobs {
		data = append(data, b...)
	}

	flags := uint32(0)
	if len(header.Metadata) > 0 {
		flags |= FlagHasMetadata
	}
	if opts.Compress {
		data, err = compressZstd(data)
		if err != nil {
			return err
		}
		flags |= FlagCompressed
	}

	headerJSON, err := json.Marshal(header)
	if err != nil {
		return fmt.Errorf("failed to marshal header: %w", err)
	}

	fh := fixedHeader{
		version:    FormatVersion,
		flags:      flags,
		headerSize: uint64(len(headerJSON)),
		dataSize:   uint64(len(data)),
		checksum:   ComputeChecksum(data),
	}
	if _, err := dst.Write(fh.marshal()); err != nil {
		return fmt.Errorf("failed to write fixed header: %w", err)
	}
	if _, err := dst.Write(headerJSON); err != nil {
		return fmt.Errorf("failed to write header JSON: %w", err)
	}
	pos := int64(FixedHeaderSize) + int64(len(headerJSON))
	if padding := dataOffset(fh.headerSize) - pos; padding > 0 {
		if _, err := dst.Write(make([]byte, padding)); err != nil {
			return fmt.Errorf("failed to write padding: %w", err)
		}
	}
	if _, err := dst.Write(data); err != nil {
		return fmt.Errorf("failed to write matrix data: %w", err)
	}

	log.Debugf("serialization: wrote %d matrices, %d data bytes (compressed=%t)", len(mats), len(data), opts.Compress)
	return nil
}

// packAll exports every matrix to its packed byte form concurrently.
func packAll(mats []NamedMat) ([][]byte, error) {
	blobs := make([][]byte, len(mats))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, nm := range mats {
		g.Go(func() error {
			m := nm.Mat
			if m.IsRegion() {
				c, err := m.Copy(nil)
				if err != nil {
					return fmt.Errorf("failed to copy region %q: %w", nm.Name, err)
				}
				m = c
			}
			data, err := m.GetData()
			if err != nil {
				return fmt.Errorf("failed to export matrix %q: %w", nm.Name, err)
			}
			blobs[i] = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return blobs, nil
}
