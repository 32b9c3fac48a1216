// Package orderjournal keeps an append-only audit trail of order commands.
// It is never read back to make trading decisions.
package orderjournal

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/vadiminshakov/gowal"

	"github.com/vadiminshakov/marti-upbit/internal/domain"
)

const (
	journalSegmentLimit = 1000
	journalMaxSegments  = 100
	journalDirPerm      = 0o755
	orderEventKeyPrefix = "order_event_"
)

// WALStore persists order events in a WAL.
type WALStore struct {
	wal *gowal.Wal
	mu  sync.RWMutex
}

// NewWALStore initializes a WAL-backed journal under dir.
func NewWALStore(dir string) (*WALStore, error) {
	if dir == "" {
		return nil, errors.New("order journal directory is required")
	}
	if err := os.MkdirAll(dir, journalDirPerm); err != nil {
		return nil, errors.Wrapf(err, "failed to ensure journal directory %s", dir)
	}

	cfg := gowal.Config{
		Dir:              dir,
		Prefix:           "orders_",
		SegmentThreshold: journalSegmentLimit,
		MaxSegments:      journalMaxSegments,
		IsInSyncDiskMode: true,
	}

	wal, err := gowal.NewWAL(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "init order journal WAL")
	}

	return &WALStore{wal: wal}, nil
}

// Append writes the event, assigning an id when missing.
func (s *WALStore) Append(event domain.OrderEvent) error {
	if s == nil || s.wal == nil {
		return errors.New("order journal is not initialized")
	}
	if event.Action == "" {
		return fmt.Errorf("order event action is required")
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return errors.Wrap(err, "marshal order event")
	}

	key := orderEventKeyPrefix + event.ID

	s.mu.Lock()
	defer s.mu.Unlock()

	nextIndex := s.wal.CurrentIndex() + 1
	return s.wal.Write(nextIndex, key, payload)
}

// Records returns all events written after the provided WAL index.
func (s *WALStore) Records(after uint64) ([]domain.OrderEventRecord, error) {
	if s == nil || s.wal == nil {
		return nil, errors.New("order journal is not initialized")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	current := s.wal.CurrentIndex()
	if current <= after {
		return nil, nil
	}

	records := make([]domain.OrderEventRecord, 0, current-after)
	for idx := after + 1; idx <= current; idx++ {
		key, payload, err := s.wal.Get(idx)
		if err != nil || !strings.HasPrefix(key, orderEventKeyPrefix) {
			continue
		}
		var event domain.OrderEvent
		if err := json.Unmarshal(payload, &event); err != nil {
			return nil, errors.Wrap(err, "decode order event")
		}
		records = append(records, domain.OrderEventRecord{Index: idx, Event: event})
	}

	return records, nil
}

// CurrentIndex returns the latest WAL index stored.
func (s *WALStore) CurrentIndex() uint64 {
	if s == nil || s.wal == nil {
		return 0
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.wal.CurrentIndex()
}

// Close closes the underlying WAL.
func (s *WALStore) Close() error {
	if s == nil || s.wal == nil {
		return errors.New("order journal is not initialized")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.wal.Close()
}
