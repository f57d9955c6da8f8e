package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// NATSKVStore keeps entries in a JetStream key/value bucket.
type NATSKVStore struct {
	nc *nats.Conn
	kv jetstream.KeyValue
}

// NewNATSKVStore creates the bucket if needed. Only the latest revision of each key is kept.
func NewNATSKVStore(ctx context.Context, nc *nats.Conn, bucket string) (*NATSKVStore, error) {
	js, err := jetstream.New(nc)
	if err != nil {
		return nil, fmt.Errorf("create JetStream context: %w", err)
	}
	kv, err := js.CreateOrUpdateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket:      bucket,
		Description: "OpenGym session views",
		History:     1,
	})
	if err != nil {
		return nil, fmt.Errorf("create kv bucket %s: %w", bucket, err)
	}
	return &NATSKVStore{nc: nc, kv: kv}, nil
}

// kvKey maps the shared key scheme onto NATS KV's allowed characters.
func kvKey(key string) string {
	return strings.ReplaceAll(key, ":", ".")
}

func (s *NATSKVStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	entry, err := s.kv.Get(ctx, kvKey(key))
	if errors.Is(err, jetstream.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("kv get %s: %w", key, err)
	}
	return entry.Value(), true, nil
}

func (s *NATSKVStore) Set(ctx context.Context, key string, value []byte) error {
	if _, err := s.kv.Put(ctx, kvKey(key), value); err != nil {
		return fmt.Errorf("kv put %s: %w", key, err)
	}
	return nil
}

func (s *NATSKVStore) Delete(ctx context.Context, key string) error {
	if err := s.kv.Delete(ctx, kvKey(key)); err != nil && !errors.Is(err, jetstream.ErrKeyNotFound) {
		return fmt.Errorf("kv delete %s: %w", key, err)
	}
	return nil
}

func (s *NATSKVStore) Ping(context.Context) error {
	if !s.nc.IsConnected() {
		return errors.New("nats disconnected")
	}
	return nil
}
