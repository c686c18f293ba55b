package asset

import (
	"context"
	"fmt"
	"sync"

	"custody/core"
)

// Registry resolve assets; unknown ids fall back to the standard token
type Registry struct {
	mu     sync.RWMutex
	assets map[string]core.Asset
}

// NewRegistry new asset registry
func NewRegistry() *Registry {
	return &Registry{
		assets: make(map[string]core.Asset),
	}
}

// Register use a custom implementation for asset.ID()
func (r *Registry) Register(asset core.Asset) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.assets[core.CanonicalIdentity(asset.ID())] = asset
}

// Find implements core.AssetRegistry
func (r *Registry) Find(ctx context.Context, assetID string) (core.Asset, error) {
	assetID = core.CanonicalIdentity(assetID)
	if !core.ValidIdentity(assetID) {
		return nil, fmt.Errorf("invalid asset id %q: %w", assetID, core.ErrInvalidArgument)
	}

	r.mu.RLock()
	asset, ok := r.assets[assetID]
	r.mu.RUnlock()

	if ok {
		return asset, nil
	}

	return NewToken(assetID), nil
}
