package blobstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression identifies the framing of a stored blob.
type Compression uint8

const (
	// CompressionNone indicates a raw blob.
	CompressionNone Compression = 0
	// CompressionLZ4 indicates an LZ4 frame (fast, larger).
	CompressionLZ4 Compression = 1
	// CompressionZSTD indicates a Zstandard frame (slower, smaller).
	CompressionZSTD Compression = 2
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZSTD:
		return "zstd"
	default:
		return fmt.Sprintf("compression(%d)", uint8(c))
	}
}

// Frame magic numbers, as they appear on disk.
var (
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	lz4Magic  = []byte{0x04, 0x22, 0x4d, 0x18}
)

// DefaultMaxDecompressedSize bounds the inflated size of a single blob.
const DefaultMaxDecompressedSize = 1 << 32

// ErrDecompressedTooLarge is returned when a frame inflates beyond the configured bound.
var ErrDecompressedTooLarge = errors.New("blobstore: decompressed blob exceeds size limit")

// DetectCompression inspects the leading bytes of a blob.
func DetectCompression(prefix []byte) Compression {
	switch {
	case bytes.HasPrefix(prefix, zstdMagic):
		return CompressionZSTD
	case bytes.HasPrefix(prefix, lz4Magic):
		return CompressionLZ4
	default:
		return CompressionNone
	}
}

// DecompressingStore wraps a BlobStore and inflates framed blobs on Open.
// Raw blobs are passed through untouched, so mmap-backed blobs stay zero-copy.
type DecompressingStore struct {
	inner   BlobStore
	maxSize int64
}

// NewDecompressingStore creates a new DecompressingStore.
// maxSize defaults to DefaultMaxDecompressedSize if <= 0.
func NewDecompressingStore(inner BlobStore, maxSize int64) *DecompressingStore {
	if maxSize <= 0 {
		maxSize = DefaultMaxDecompressedSize
	}
	return &DecompressingStore{inner: inner, maxSize: maxSize}
}

// Open opens a blob, inflating it into memory when it carries a known frame magic.
func (s *DecompressingStore) Open(ctx context.Context, name string) (Blob, error) {
	b, err := s.inner.Open(ctx, name)
	if err != nil {
		return nil, err
	}

	prefix := make([]byte, len(zstdMagic))
	n, err := b.ReadAt(ctx, prefix, 0)
	if err != nil && !errors.Is(err, io.EOF) {
		_ = b.Close()
		return nil, err
	}

	kind := DetectCompression(prefix[:n])
	if kind == CompressionNone {
		return b, nil
	}
	defer b.Close()

	data, err := s.inflate(kind, io.NewSectionReader(&ctxReaderAt{ctx: ctx, b: b}, 0, b.Size()))
	if err != nil {
		return nil, fmt.Errorf("blobstore: inflate %s blob %q: %w", kind, name, err)
	}
	return &memoryBlob{data: data}, nil
}

// List delegates to the wrapped store.
func (s *DecompressingStore) List(ctx context.Context, prefix string) ([]string, error) {
	return s.inner.List(ctx, prefix)
}

func (s *DecompressingStore) inflate(kind Compression, r io.Reader) ([]byte, error) {
	var src io.Reader
	switch kind {
	case CompressionZSTD:
		dec, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		src = dec
	case CompressionLZ4:
		src = lz4.NewReader(r)
	default:
		return nil, fmt.Errorf("unsupported compression %s", kind)
	}

	data, err := io.ReadAll(io.LimitReader(src, s.maxSize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > s.maxSize {
		return nil, ErrDecompressedTooLarge
	}
	return data, nil
}

// ctxReaderAt binds a context to a Blob so it can serve as an io.ReaderAt.
type ctxReaderAt struct {
	ctx context.Context
	b   Blob
}

func (r *ctxReaderAt) ReadAt(p []byte, off int64) (int, error) {
	return r.b.ReadAt(r.ctx, p, off)
}
