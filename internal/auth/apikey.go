// Package auth provides API key authentication for the admin API.
package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/evcraddock/hvr-studio/internal/store"
)

// KeyCollection is the store collection holding API keys.
const KeyCollection = "apiKeys"

const (
	apiKeyBytes  = 32 // 256-bit keys
	apiKeyPrefix = "hvr_"
)

// ErrKeyNotFound is returned when deleting an unknown key.
var ErrKeyNotFound = errors.New("key not found")

// APIKey is the stored representation of an API key. The raw key is
// never stored, only its SHA-256 hash.
type APIKey struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	KeyPrefix  string     `json:"keyPrefix"` // first 8 chars for identification
	CreatedAt  time.Time  `json:"createdAt"`
	LastUsedAt *time.Time `json:"lastUsedAt,omitempty"`
}

// APIKeyStore manages API keys in the document store.
type APIKeyStore struct {
	store store.Store
}

// NewAPIKeyStore creates an API key store.
func NewAPIKeyStore(s store.Store) *APIKeyStore {
	return &APIKeyStore{store: s}
}

// Create generates a new API key with the given name.
// Returns the raw key (shown once to the user) and the stored record.
func (s *APIKeyStore) Create(ctx context.Context, name string) (string, *APIKey, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", nil, fmt.Errorf("key name is required")
	}

	raw, err := generateAPIKey()
	if err != nil {
		return "", nil, fmt.Errorf("generating key: %w", err)
	}
	prefix := raw[:8]

	id, err := s.store.Add(ctx, KeyCollection, map[string]any{
		"name":      name,
		"keyPrefix": prefix,
		"keyHash":   hashAPIKey(raw),
		"createdAt": store.ServerTimestamp,
	})
	if err != nil {
		return "", nil, fmt.Errorf("storing key: %w", err)
	}

	return raw, &APIKey{ID: id, Name: name, KeyPrefix: prefix}, nil
}

// List returns all API keys, newest first.
func (s *APIKeyStore) List(ctx context.Context) ([]*APIKey, error) {
	docs, err := s.store.Query(ctx, store.Query{
		Collection: KeyCollection,
		OrderBy:    "createdAt",
		Direction:  store.Desc,
	})
	if err != nil {
		return nil, fmt.Errorf("querying keys: %w", err)
	}

	keys := make([]*APIKey, 0, len(docs))
	for _, doc := range docs {
		k, err := keyFromDocument(doc)
		if err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, nil
}

// Delete removes an API key by ID.
func (s *APIKeyStore) Delete(ctx context.Context, id string) error {
	if _, err := s.store.Get(ctx, KeyCollection, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrKeyNotFound
		}
		return fmt.Errorf("looking up key: %w", err)
	}
	if err := s.store.Delete(ctx, KeyCollection, id); err != nil {
		return fmt.Errorf("deleting key: %w", err)
	}
	return nil
}

// Validate checks a raw API key against stored hashes and stamps
// lastUsedAt on a match.
func (s *APIKeyStore) Validate(ctx context.Context, rawKey string) (bool, error) {
	if !strings.HasPrefix(rawKey, apiKeyPrefix) {
		return false, nil
	}

	docs, err := s.store.Query(ctx, store.Query{
		Collection: KeyCollection,
		Filters:    []store.Filter{store.Where("keyHash", store.Equal, hashAPIKey(rawKey))},
	})
	if err != nil {
		return false, fmt.Errorf("validating key: %w", err)
	}
	if len(docs) == 0 {
		return false, nil
	}

	err = s.store.Update(ctx, KeyCollection, docs[0].ID, []store.Update{
		{Path: "lastUsedAt", Value: store.ServerTimestamp},
	})
	if err != nil {
		return false, fmt.Errorf("recording key use: %w", err)
	}
	return true, nil
}

func keyFromDocument(doc *store.Document) (*APIKey, error) {
	var k APIKey
	if err := doc.DataTo(&k); err != nil {
		return nil, err
	}
	k.ID = doc.ID
	return &k, nil
}

func generateAPIKey() (string, error) {
	b := make([]byte, apiKeyBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return apiKeyPrefix + hex.EncodeToString(b), nil
}

func hashAPIKey(key string) string {
	h := sha256.Sum256([]byte(key))
	return hex.EncodeToString(h[:])
}
