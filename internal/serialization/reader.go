package serialization

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/born-ml/cvmat/internal/mat"
)

// ReaderOptions configures the behavior of Reader.
type ReaderOptions struct {
	SkipChecksumValidation bool            // skip the SHA-256 check (faster, less safe)
	ValidationLevel        ValidationLevel // header validation strictness
}

// Reader holds a decoded .cvm file in memory.
type Reader struct {
	header Header
	flags  uint32
	data   []byte // uncompressed data section
	closed bool
}

// NewReader opens and decodes the file at path with strict validation.
func NewReader(path string) (*Reader, error) {
	return NewReaderWithOptions(path, ReaderOptions{ValidationLevel: ValidationStrict})
}

// NewReaderWithOptions opens and decodes the file at path.
func NewReaderWithOptions(path string, opts ReaderOptions) (*Reader, error) {
	//nolint:gosec // G304: path is chosen by the caller
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	r, err := Decode(file, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	log.Debugf("serialization: read %s (%d matrices)", path, len(r.header.Matrices))
	return r, nil
}

// Decode reads a complete .cvm stream from src.
func Decode(src io.Reader, opts ReaderOptions) (*Reader, error) {
	fixed := make([]byte, FixedHeaderSize)
	if _, err := io.ReadFull(src, fixed); err != nil {
		return nil, fmt.Errorf("failed to read fixed header: %w", err)
	}
	fh, err := parseFixedHeader(fixed)
	if err != nil {
		return nil, err
	}

	headerBytes := make([]byte, fh.headerSize)
	if _, err := io.ReadFull(src, headerBytes); err != nil {
		return nil, fmt.Errorf("failed to read header JSON: %w", err)
	}
	r := &Reader{flags: fh.flags}
	if err := json.Unmarshal(headerBytes, &r.header); err != nil {
		return nil, fmt.Errorf("failed to parse header JSON: %w", err)
	}

	pos := int64(FixedHeaderSize) + int64(fh.headerSize) //nolint:gosec // G115: bounded by MaxHeaderSize
	if _, err := io.CopyN(io.Discard, src, dataOffset(fh.headerSize)-pos); err != nil {
		return nil, fmt.Errorf("failed to skip padding: %w", err)
	}

	stored, err := io.ReadAll(io.LimitReader(src, int64(fh.dataSize))) //nolint:gosec // G115: checked in parseFixedHeader
	if err != nil {
		return nil, fmt.Errorf("failed to read matrix data: %w", err)
	}
	if uint64(len(stored)) != fh.dataSize {
		return nil, fmt.Errorf("%w: data section has %d bytes, header says %d", ErrOutOfBounds, len(stored), fh.dataSize)
	}
	if !opts.SkipChecksumValidation {
		if err := ValidateChecksum(stored, fh.checksum); err != nil {
			return nil, err
		}
	}

	r.data = stored
	if fh.flags&FlagCompressed != 0 {
		r.data, err = decompressZstd(stored, r.header.DataSize)
		if err != nil {
			return nil, err
		}
	}

	if err := ValidateHeader(&r.header, int64(len(r.data)), opts.ValidationLevel); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	return r, nil
}

// Header returns the file header.
func (r *Reader) Header() Header { return r.header }

// Metadata returns the metadata map from the header.
func (r *Reader) Metadata() map[string]string { return r.header.Metadata }

// Flags returns the flags bitfield.
func (r *Reader) Flags() uint32 { return r.flags }

// Compressed reports whether the data section was stored compressed.
func (r *Reader) Compressed() bool { return r.flags&FlagCompressed != 0 }

// Names returns the matrix names in file order.
func (r *Reader) Names() []string {
	names := make([]string, len(r.header.Matrices))
	for i, m := range r.header.Matrices {
		names[i] = m.Name
	}
	return names
}

// Info returns the metadata of the named matrix.
func (r *Reader) Info(name string) (*MatrixMeta, error) {
	return findMeta(r.header.Matrices, name)
}

func findMeta(metas []MatrixMeta, name string) (*MatrixMeta, error) {
	for i := range metas {
		if metas[i].Name == name {
			return &metas[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
}

// ReadData returns a copy of the packed bytes of the named matrix.
func (r *Reader) ReadData(name string) ([]byte, error) {
	if r.closed {
		return nil, ErrClosed
	}
	meta, err := r.Info(name)
	if err != nil {
		return nil, err
	}
	b, err := matrixBytes(meta, r.data)
	if err != nil {
		return nil, err
	}
	return bytes.Clone(b), nil
}

// Load decodes the named matrix.
func (r *Reader) Load(name string) (*mat.Mat, error) {
	if r.closed {
		return nil, ErrClosed
	}
	meta, err := r.Info(name)
	if err != nil {
		return nil, err
	}
	return loadMatrix(meta, r.data)
}

// loadMatrix builds a matrix from meta and the uncompressed data section.
func loadMatrix(meta *MatrixMeta, data []byte) (*mat.Mat, error) {
	t, err := mat.ParseType(meta.Type)
	if err != nil {
		return nil, fmt.Errorf("matrix %q: %w", meta.Name, err)
	}
	b, err := matrixBytes(meta, data)
	if err != nil {
		return nil, err
	}
	m, err := mat.NewFromBytes(meta.Rows, meta.Cols, t, b, 0)
	if err != nil {
		return nil, fmt.Errorf("matrix %q: %w", meta.Name, err)
	}
	return m, nil
}

// matrixBytes returns the slice of the data section meta points at. Offsets
// are checked here whatever the validation level.
func matrixBytes(meta *MatrixMeta, data []byte) ([]byte, error) {
	n := int64(len(data))
	if meta.Offset < 0 || meta.Size < 0 || meta.Offset > n || meta.Size > n-meta.Offset {
		return nil, fmt.Errorf("%w: matrix %q", ErrOutOfBounds, meta.Name)
	}
	return data[meta.Offset : meta.Offset+meta.Size], nil
}

// LoadAll decodes every matrix in file order.
func (r *Reader) LoadAll() ([]NamedMat, error) {
	if r.closed {
		return nil, ErrClosed
	}
	out := make([]NamedMat, 0, len(r.header.Matrices))
	for i := range r.header.Matrices {
		meta := &r.header.Matrices[i]
		m, err := loadMatrix(meta, r.data)
		if err != nil {
			return nil, err
		}
		out = append(out, NamedMat{Name: meta.Name, Mat: m})
	}
	return out, nil
}

// Close releases the decoded data.
func (r *Reader) Close() error {
	r.closed = true
	r.data = nil
	return nil
}

// ReadFile decodes every matrix of the file at path.
func ReadFile(path string) ([]NamedMat, Header, error) {
	r, err := NewReader(path)
	if err != nil {
		return nil, Header{}, err
	}
	defer func() { _ = r.Close() }()

	mats, err := r.LoadAll()
	if err != nil {
		return nil, Header{}, err
	}
	return mats, r.Header(), nil
}
