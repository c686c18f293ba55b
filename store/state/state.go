package state

import (
	"context"

	"custody/core"

	"github.com/fox-one/pkg/store"
	"github.com/fox-one/pkg/store/db"
)

const stateID = 1

type stateStore struct {
	db    *db.DB
	state *core.VaultState
}

// New new state store bound to db, one per transaction; reads use the
// transaction handle so a row created in it is visible to the next load
func New(db *db.DB) core.StateStore {
	return &stateStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.VaultState{})
		if err := tx.AutoMigrate(core.VaultState{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *stateStore) load() (*core.VaultState, error) {
	if s.state != nil {
		return s.state, nil
	}

	var state core.VaultState
	err := s.db.Update().Where("id = ?", stateID).First(&state).Error
	if store.IsErrNotFound(err) {
		state = core.VaultState{ID: stateID}
	} else if err != nil {
		return nil, err
	}

	s.state = &state
	return s.state, nil
}

// save write the row back on the version it was read at
func (s *stateStore) save(next core.VaultState) error {
	current, err := s.load()
	if err != nil {
		return err
	}

	next.Version = current.Version + 1

	if current.Version == 0 {
		if err := s.db.Update().Create(&next).Error; err != nil {
			return err
		}
	} else {
		tx := s.db.Update().Model(core.VaultState{}).
			Where("id = ? AND version = ?", stateID, current.Version).
			Updates(map[string]interface{}{
				"paused":      next.Paused,
				"initialized": next.Initialized,
				"sequence":    next.Sequence,
				"version":     next.Version,
			})
		if tx.Error != nil {
			return tx.Error
		}

		if tx.RowsAffected == 0 {
			return db.ErrOptimisticLock
		}
	}

	s.state = &next
	return nil
}

func (s *stateStore) Paused(ctx context.Context) (bool, error) {
	state, err := s.load()
	if err != nil {
		return false, err
	}

	return state.Paused, nil
}

func (s *stateStore) SetPaused(ctx context.Context, paused bool) error {
	state, err := s.load()
	if err != nil {
		return err
	}

	next := *state
	next.Paused = paused
	return s.save(next)
}

func (s *stateStore) NextSequence(ctx context.Context) (uint64, error) {
	state, err := s.load()
	if err != nil {
		return 0, err
	}

	next := *state
	next.Sequence++
	if err := s.save(next); err != nil {
		return 0, err
	}

	return next.Sequence, nil
}

func (s *stateStore) Initialized(ctx context.Context) (bool, error) {
	state, err := s.load()
	if err != nil {
		return false, err
	}

	return state.Initialized, nil
}

func (s *stateStore) SetInitialized(ctx context.Context) error {
	state, err := s.load()
	if err != nil {
		return err
	}

	next := *state
	next.Initialized = true
	return s.save(next)
}
