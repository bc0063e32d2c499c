package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/tahoefourseasons/itinerary-api/internal/types"
)

// Store memoizes validated itineraries for a bounded time window. It is an
// optimization layer only: a miss is never an error, and nothing downstream
// depends on entries surviving a restart. Only validated itineraries may ever
// be stored.
type Store interface {
	Get(ctx context.Context, key string) (*types.Itinerary, bool)
	Set(ctx context.Context, key string, itinerary *types.Itinerary)
}

// keyPayload fixes the field order of the key material. With typed structs
// json.Marshal output is deterministic, so identical (model, request,
// candidates) tuples always produce the same key.
type keyPayload struct {
	Model      string               `json:"model"`
	Request    types.PlanRequest    `json:"request"`
	Candidates []types.CandidatePOI `json:"candidates"`
}

// Key derives the cache key for a normalized request against a candidate set.
func Key(model string, req types.PlanRequest, candidates []types.CandidatePOI) string {
	raw, err := json.Marshal(keyPayload{Model: model, Request: req, Candidates: candidates})
	if err != nil {
		// Marshalling plain structs of strings/ints/floats cannot fail.
		panic(err)
	}
	sum := sha256.Sum256(raw)
	return "itinerary:" + hex.EncodeToString(sum[:])
}

// Ensure implementation satisfies the interface
var _ Store = (*MemoryStore)(nil)

// MemoryStore is the default per-process store backed by go-cache, which
// handles TTL expiry and background cleanup.
type MemoryStore struct {
	cache *gocache.Cache
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{cache: gocache.New(ttl, 10*time.Minute)}
}

func (s *MemoryStore) Get(_ context.Context, key string) (*types.Itinerary, bool) {
	cached, found := s.cache.Get(key)
	if !found {
		return nil, false
	}
	itinerary, ok := cached.(*types.Itinerary)
	if !ok {
		return nil, false
	}
	return itinerary, true
}

func (s *MemoryStore) Set(_ context.Context, key string, itinerary *types.Itinerary) {
	s.cache.Set(key, itinerary, gocache.DefaultExpiration)
}
