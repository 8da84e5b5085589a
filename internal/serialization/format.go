package serialization

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/born-ml/cvmat/internal/mat"
)

// Format constants.
const (
	MagicBytes      = "CVMT"
	FormatVersion   = 2    // SHA-256 checksum in the fixed header
	HeaderAlignment = 64   // data section starts on a 64-byte boundary
	FixedHeaderSize = 64   // magic, version, flags, sizes, checksum
	ChecksumSize    = 32   // SHA-256
	ChecksumOffset  = 0x20 // checksum position in the fixed header
)

// Flags for the .cvm format.
const (
	FlagCompressed  uint32 = 1 << 0 // bit 0: data section is zstd-compressed
	FlagHasMetadata uint32 = 1 << 1 // bit 1: custom metadata included
)

// Header is the JSON header of a .cvm file.
type Header struct {
	FormatVersion int               `json:"format_version"`
	CreatedAt     time.Time         `json:"created_at"`
	DataSize      int64             `json:"data_size"` // uncompressed data section size
	Matrices      []MatrixMeta      `json:"matrices"`
	Metadata      map[string]string `json:"metadata"`
}

// MatrixMeta describes one matrix stored in the data section.
type MatrixMeta struct {
	Name   string `json:"name"`   // unique within the file
	Type   string `json:"type"`   // element type name, e.g. "CV_8UC3"
	Rows   int    `json:"rows"`   // row count
	Cols   int    `json:"cols"`   // column count
	Offset int64  `json:"offset"` // bytes from the start of the uncompressed data section
	Size   int64  `json:"size"`   // rows*cols*element size
}

// NamedMat pairs a matrix with the name it is stored under.
type NamedMat struct {
	Name string
	Mat  *mat.Mat
}

// fixedHeader is the binary prefix of a .cvm file.
//
//	0x00-0x03 magic "CVMT"
//	0x04-0x07 version (uint32 LE)
//	0x08-0x0B flags (uint32 LE)
//	0x0C-0x0F reserved
//	0x10-0x17 JSON header size (uint64 LE)
//	0x18-0x1F stored data section size (uint64 LE)
//	0x20-0x3F SHA-256 of the stored data section
type fixedHeader struct {
	version    uint32
	flags      uint32
	headerSize uint64
	dataSize   uint64
	checksum   [ChecksumSize]byte
}

func (h *fixedHeader) marshal() []byte {
	b := make([]byte, FixedHeaderSize)
	copy(b[0:4], MagicBytes)
	binary.LittleEndian.PutUint32(b[4:8], h.version)
	binary.LittleEndian.PutUint32(b[8:12], h.flags)
	binary.LittleEndian.PutUint64(b[16:24], h.headerSize)
	binary.LittleEndian.PutUint64(b[24:32], h.dataSize)
	copy(b[ChecksumOffset:ChecksumOffset+ChecksumSize], h.checksum[:])
	return b
}

func parseFixedHeader(b []byte) (fixedHeader, error) {
	var h fixedHeader
	if len(b) < FixedHeaderSize {
		return h, fmt.Errorf("file too small: %d bytes (minimum %d required)", len(b), FixedHeaderSize)
	}
	if string(b[0:4]) != MagicBytes {
		return h, ErrInvalidMagic
	}
	h.version = binary.LittleEndian.Uint32(b[4:8])
	if h.version != FormatVersion {
		return h, fmt.Errorf("%w: got %d, expected %d", ErrUnsupportedVersion, h.version, FormatVersion)
	}
	h.flags = binary.LittleEndian.Uint32(b[8:12])
	h.headerSize = binary.LittleEndian.Uint64(b[16:24])
	h.dataSize = binary.LittleEndian.Uint64(b[24:32])
	copy(h.checksum[:], b[ChecksumOffset:ChecksumOffset+ChecksumSize])

	if h.headerSize > MaxHeaderSize {
		return h, ErrHeaderTooLarge
	}
	if h.dataSize > 1<<62 {
		return h, fmt.Errorf("data size too large: %d", h.dataSize)
	}
	return h, nil
}

// dataOffset returns where the data section starts for a JSON header of n bytes.
func dataOffset(n uint64) int64 {
	end := int64(FixedHeaderSize) + int64(n) //nolint:gosec // G115: bounded by MaxHeaderSize
	return (end + HeaderAlignment - 1) / HeaderAlignment * HeaderAlignment
}
