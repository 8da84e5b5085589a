package serialization

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/born-ml/cvmat/internal/mat"
)

// MmapReader gives memory-mapped access to an uncompressed .cvm file.
// Only the header is parsed up front; matrix bytes are paged in on demand.
//
// Always call Close when done to unmap the file.
type MmapReader struct {
	file       *os.File
	data       []byte // mapped file, read-only
	size       int64
	header     Header
	fixed      fixedHeader
	dataOffset int64
	closed     bool
}

// NewMmapReader maps the file at path. Compressed files are rejected with
// ErrCompressed; use NewReader for those.
func NewMmapReader(path string) (*MmapReader, error) {
	//nolint:gosec // G304: path is chosen by the caller
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	stat, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	if stat.Size() < FixedHeaderSize {
		_ = file.Close()
		return nil, fmt.Errorf("file too small: %d bytes (minimum %d required)", stat.Size(), FixedHeaderSize)
	}

	data, err := mmapFile(file, stat.Size())
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("mmap failed: %w", err)
	}

	r := &MmapReader{file: file, data: data, size: stat.Size()}
	if err := r.parseHeader(); err != nil {
		_ = r.Close()
		return nil, fmt.Errorf("failed to parse header: %w", err)
	}
	return r, nil
}

func (r *MmapReader) parseHeader() error {
	fh, err := parseFixedHeader(r.data)
	if err != nil {
		return err
	}
	if fh.flags&FlagCompressed != 0 {
		return ErrCompressed
	}
	r.fixed = fh

	headerEnd := int64(FixedHeaderSize) + int64(fh.headerSize) //nolint:gosec // G115: bounded by MaxHeaderSize
	if headerEnd > r.size {
		return fmt.Errorf("header extends beyond file: header_end=%d, file_size=%d", headerEnd, r.size)
	}
	if err := json.Unmarshal(r.data[FixedHeaderSize:headerEnd], &r.header); err != nil {
		return fmt.Errorf("failed to parse header JSON: %w", err)
	}

	r.dataOffset = dataOffset(fh.headerSize)
	dataSize := int64(fh.dataSize) //nolint:gosec // G115: checked in parseFixedHeader
	if r.dataOffset+dataSize > r.size {
		return fmt.Errorf("%w: data section ends at %d, file has %d bytes", ErrOutOfBounds, r.dataOffset+dataSize, r.size)
	}
	return ValidateHeader(&r.header, dataSize, ValidationStrict)
}

// VerifyChecksum hashes the mapped data section and compares it with the
// stored checksum. It touches every page, so it is not run by NewMmapReader.
func (r *MmapReader) VerifyChecksum() error {
	if r.closed {
		return ErrClosed
	}
	return ValidateChecksum(r.section(), r.fixed.checksum)
}

func (r *MmapReader) section() []byte {
	return r.data[r.dataOffset : r.dataOffset+int64(r.fixed.dataSize)] //nolint:gosec // G115: validated
}

// Close unmaps and closes the file.
func (r *MmapReader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true

	var err error
	if r.data != nil {
		err = munmapFile(r.data)
		r.data = nil
	}
	if closeErr := r.file.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	return err
}

// Header returns the file header.
func (r *MmapReader) Header() Header { return r.header }

// Checksum returns the stored SHA-256 of the data section.
func (r *MmapReader) Checksum() [ChecksumSize]byte { return r.fixed.checksum }

// Names returns the matrix names in file order.
func (r *MmapReader) Names() []string {
	names := make([]string, len(r.header.Matrices))
	for i, m := range r.header.Matrices {
		names[i] = m.Name
	}
	return names
}

// Info returns the metadata of the named matrix.
func (r *MmapReader) Info(name string) (*MatrixMeta, error) {
	return findMeta(r.header.Matrices, name)
}

// MatrixData returns the packed bytes of the named matrix without copying.
// The slice is read-only and valid only until Close.
func (r *MmapReader) MatrixData(name string) ([]byte, error) {
	if r.closed {
		return nil, ErrClosed
	}
	meta, err := r.Info(name)
	if err != nil {
		return nil, err
	}
	return matrixBytes(meta, r.section())
}

// Load copies the named matrix out of the mapping.
func (r *MmapReader) Load(name string) (*mat.Mat, error) {
	if r.closed {
		return nil, ErrClosed
	}
	meta, err := r.Info(name)
	if err != nil {
		return nil, err
	}
	return loadMatrix(meta, r.section())
}
