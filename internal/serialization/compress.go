package serialization

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/zstd"
)

var zstdEncPool = sync.Pool{
	New: func() any {
		enc, _ := zstd.NewWriter(nil)
		return enc
	},
}

var zstdDecPool = sync.Pool{
	New: func() any {
		dec, _ := zstd.NewReader(nil)
		return dec
	},
}

func compressZstd(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return data, nil
	}

	var buf bytes.Buffer
	enc := zstdEncPool.Get().(*zstd.Encoder)
	defer zstdEncPool.Put(enc)
	enc.Reset(&buf)

	if _, err := enc.Write(data); err != nil {
		_ = enc.Close()
		return nil, fmt.Errorf("zstd compress: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("zstd compress: %w", err)
	}
	return buf.Bytes(), nil
}

// decompressZstd inflates data, which must expand to exactly want bytes.
func decompressZstd(data []byte, want int64) ([]byte, error) {
	if want < 0 {
		return nil, fmt.Errorf("zstd decompress: negative size %d: %w", want, ErrOutOfBounds)
	}
	if len(data) == 0 {
		if want != 0 {
			return nil, fmt.Errorf("zstd decompress: empty payload, header says %d: %w", want, ErrOutOfBounds)
		}
		return data, nil
	}

	dec := zstdDecPool.Get().(*zstd.Decoder)
	defer zstdDecPool.Put(dec)
	if err := dec.Reset(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("zstd decompress: %w", err)
	}

	// One byte past want is enough to tell an oversized stream apart.
	out := bytes.NewBuffer(make([]byte, 0, min(want, 64<<20)))
	if _, err := out.ReadFrom(io.LimitReader(dec, want+1)); err != nil {
		return nil, fmt.Errorf("zstd decompress: %w", err)
	}
	if int64(out.Len()) != want {
		return nil, fmt.Errorf("zstd decompress: got %d bytes, header says %d: %w", out.Len(), want, ErrOutOfBounds)
	}
	return out.Bytes(), nil
}
