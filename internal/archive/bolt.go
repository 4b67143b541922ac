package archive

import (
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
	"pkg.jsn.cam/fixturegen/pkg/fixture"
)

// BoltStore implements Store on a single bbolt file
type BoltStore struct {
	db *bolt.DB
}

// OpenBolt opens (or creates) the archive at path
func OpenBolt(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open archive %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{runsBucket, rostersBucket} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize archive buckets: %w", err)
	}

	return &BoltStore{db: db}, nil
}

// SaveRun stores the run and its roster in one transaction
func (s *BoltStore) SaveRun(run *Run, roster []fixture.Student) error {
	runData, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("failed to encode run: %w", err)
	}
	rosterData, err := json.Marshal(roster)
	if err != nil {
		return fmt.Errorf("failed to encode roster: %w", err)
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket(runsBucket).Put([]byte(run.ID), runData); err != nil {
			return err
		}
		return tx.Bucket(rostersBucket).Put([]byte(run.ID), rosterData)
	})
}

// GetRun returns the run with the given ID
func (s *BoltStore) GetRun(id string) (*Run, error) {
	var run Run
	if err := s.get(runsBucket, id, &run); err != nil {
		return nil, err
	}
	return &run, nil
}

// ListRuns returns every archived run, newest first
func (s *BoltStore) ListRuns() ([]*Run, error) {
	var runs []*Run
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(runsBucket).ForEach(func(k, v []byte) error {
			var run Run
			if err := json.Unmarshal(v, &run); err != nil {
				return fmt.Errorf("failed to decode run %s: %w", k, err)
			}
			runs = append(runs, &run)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	sortNewestFirst(runs)
	return runs, nil
}

// LoadRoster returns the roster stored with a run
func (s *BoltStore) LoadRoster(id string) ([]fixture.Student, error) {
	var roster []fixture.Student
	if err := s.get(rostersBucket, id, &roster); err != nil {
		return nil, err
	}
	return roster, nil
}

// DeleteRun removes a run and its roster
func (s *BoltStore) DeleteRun(id string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		runs := tx.Bucket(runsBucket)
		if runs.Get([]byte(id)) == nil {
			return fmt.Errorf("%w: %s", ErrRunNotFound, id)
		}
		if err := runs.Delete([]byte(id)); err != nil {
			return err
		}
		return tx.Bucket(rostersBucket).Delete([]byte(id))
	})
}

// Close closes the database
func (s *BoltStore) Close() error {
	return s.db.Close()
}

func (s *BoltStore) get(bucket []byte, id string, v any) error {
	return s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(bucket).Get([]byte(id))
		if data == nil {
			return fmt.Errorf("%w: %s", ErrRunNotFound, id)
		}
		// data is only valid inside the transaction; Unmarshal copies what it needs
		if err := json.Unmarshal(data, v); err != nil {
			return fmt.Errorf("failed to decode %s/%s: %w", bucket, id, err)
		}
		return nil
	})
}
