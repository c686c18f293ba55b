package checkpoint

import (
	"context"

	"custody/core"

	"github.com/fox-one/pkg/property"
)

const prefix = "checkpoint:"

type checkpointStore struct {
	property property.Store
}

// New worker cursors kept in the property store
func New(property property.Store) core.CheckpointStore {
	return &checkpointStore{property: property}
}

func (s *checkpointStore) Load(ctx context.Context, key string) (int64, error) {
	v, err := s.property.Get(ctx, prefix+key)
	if err != nil {
		return 0, err
	}

	return v.Int64(), nil
}

func (s *checkpointStore) Save(ctx context.Context, key string, value int64) error {
	return s.property.Save(ctx, prefix+key, value)
}
