package content

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/cask-games/marquee/pkg/log"
	"github.com/klauspost/compress/zstd"
)

// Cache stores resolved payloads keyed by variant.
type Cache interface {
	Close(ctx context.Context) error
	Get(ctx context.Context, variant Variant) (*Payload, error)
	Put(ctx context.Context, payload *Payload) error
}

type ErrNotFound struct {
}

func (e *ErrNotFound) Error() string {
	return "not found"
}

func IsNotFound(err error) bool {
	_, ok := err.(*ErrNotFound)
	return ok
}

// CachingStore is a read-through cache in front of another Store. Cache
// failures are logged and degrade to a plain fetch; they never surface to
// the caller.
type CachingStore struct {
	store Store
	cache Cache
}

// NewCachingStore wraps store with cache.
func NewCachingStore(store Store, cache Cache) *CachingStore {
	return &CachingStore{
		store: store,
		cache: cache,
	}
}

func (s *CachingStore) Resolve(ctx context.Context, variant Variant) (*Payload, error) {
	cached, err := s.cache.Get(ctx, variant)
	if err == nil {
		log.Debug("Content cache hit for variant %q", variant)
		return cached, nil
	}
	if !IsNotFound(err) {
		log.Warn("Content cache read failed for variant %q: %v", variant, err)
	}

	payload, err := s.store.Resolve(ctx, variant)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Put(ctx, payload); err != nil {
		log.Warn("Content cache write failed for variant %q: %v", variant, err)
	}

	return payload, nil
}

// compressPayload compresses payload data for at-rest storage.
func compressPayload(data []byte) ([]byte, error) {
	compressed := bytes.NewBuffer(nil)
	compWriter, err := zstd.NewWriter(compressed, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd writer: %v", err)
	}
	if _, err := compWriter.Write(data); err != nil {
		return nil, fmt.Errorf("failed to compress payload: %v", err)
	}
	if err := compWriter.Close(); err != nil {
		return nil, fmt.Errorf("failed to close zstd writer: %v", err)
	}
	return compressed.Bytes(), nil
}

// decompressPayload reverses compressPayload.
func decompressPayload(data []byte) ([]byte, error) {
	compReader, err := zstd.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd reader: %v", err)
	}
	defer compReader.Close()
	b, err := io.ReadAll(compReader)
	if err != nil {
		return nil, fmt.Errorf("failed to read decompressed payload: %v", err)
	}
	return b, nil
}

// payloadFromRow rebuilds a Payload from at-rest columns.
func payloadFromRow(variant Variant, compressed []byte, fetchedAt int64) (*Payload, error) {
	data, err := decompressPayload(compressed)
	if err != nil {
		return nil, err
	}
	return &Payload{
		Variant:   variant,
		Data:      data,
		FetchedAt: time.UnixMilli(fetchedAt),
	}, nil
}
