// Package auth verifies bearer tokens against the identity provider's
// published signing keys.
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"
)

// keyTTL is how long a fetched key set stays fresh. The provider rotates
// keys slowly; an hour matches its cache-control guidance.
const keyTTL = time.Hour

// KeySet caches the identity provider's public signing keys, indexed by key
// id. It is safe for concurrent use. Concurrent refreshes of a stale cache
// may race; last writer wins, which is fine because the endpoint content is
// provider-authoritative.
type KeySet struct {
	url    string
	ttl    time.Duration
	client *http.Client

	mu     sync.RWMutex
	keys   map[string]string
	expiry time.Time
}

// NewKeySet returns a KeySet that reads from the given certificate endpoint.
func NewKeySet(url string) *KeySet {
	return &KeySet{
		url:    url,
		ttl:    keyTTL,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// Has reports whether the provider currently publishes a key with the given
// id, refreshing the cached set if it has gone stale.
func (k *KeySet) Has(ctx context.Context, kid string) (bool, error) {
	keys, err := k.current(ctx)
	if err != nil {
		return false, err
	}
	_, ok := keys[kid]
	return ok, nil
}

func (k *KeySet) current(ctx context.Context) (map[string]string, error) {
	k.mu.RLock()
	if k.keys != nil && time.Now().Before(k.expiry) {
		keys := k.keys
		k.mu.RUnlock()
		return keys, nil
	}
	k.mu.RUnlock()

	return k.refresh(ctx)
}

func (k *KeySet) refresh(ctx context.Context) (map[string]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, k.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build key set request: %w", err)
	}

	resp, err := k.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch key set: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch key set: unexpected status %d", resp.StatusCode)
	}

	var keys map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&keys); err != nil {
		return nil, fmt.Errorf("decode key set: %w", err)
	}

	k.mu.Lock()
	k.keys = keys
	k.expiry = time.Now().Add(k.ttl)
	k.mu.Unlock()

	return keys, nil
}
