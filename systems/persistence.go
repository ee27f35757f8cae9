package systems

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/quasilyte/gdata"

	"github.com/automoto/islandcore/pool"
)

// PoolRecord is one run's pool usage, kept so pool sizes can be tuned from
// real levels.
type PoolRecord struct {
	Level   string       `json:"level"`
	Frames  int          `json:"frames"`
	Dropped int          `json:"droppedSurfaces"`
	Pools   []pool.Stats `json:"pools"`
}

// Record snapshots e's pools.
func (e *Engine) Record(level string) *PoolRecord {
	return &PoolRecord{
		Level:   level,
		Frames:  e.frames,
		Dropped: e.Collision.DroppedSurfaces(),
		Pools:   e.Stats(),
	}
}

// Merge keeps the higher high-water and exhaustion counts of r and prev, so
// repeated runs only ever raise the recorded need.
func (r *PoolRecord) Merge(prev *PoolRecord) {
	if prev == nil {
		return
	}
	byName := make(map[string]pool.Stats, len(prev.Pools))
	for _, s := range prev.Pools {
		byName[s.Name] = s
	}
	for i, s := range r.Pools {
		old, ok := byName[s.Name]
		if !ok {
			continue
		}
		r.Pools[i].HighWater = max(s.HighWater, old.HighWater)
		r.Pools[i].Exhausted = max(s.Exhausted, old.Exhausted)
	}
	r.Frames = max(r.Frames, prev.Frames)
	r.Dropped = max(r.Dropped, prev.Dropped)
}

// ItemStore is the part of gdata.Manager the record store needs.
type ItemStore interface {
	SaveItem(key string, data []byte) error
	LoadItem(key string) ([]byte, error)
	DeleteItem(key string) error
}

// RecordStore saves pool records keyed by level name.
type RecordStore struct {
	items  ItemStore
	logger *log.Logger
}

// OpenRecordStore opens the app's gdata storage.
func OpenRecordStore(appName string, logger *log.Logger) (*RecordStore, error) {
	m, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		return nil, fmt.Errorf("open record store: %w", err)
	}
	return NewRecordStore(m, logger), nil
}

func NewRecordStore(items ItemStore, logger *log.Logger) *RecordStore {
	if logger == nil {
		logger = log.Default()
	}
	return &RecordStore{items: items, logger: logger}
}

func recordKey(level string) string {
	return "pools_" + level
}

// Load returns the saved record for level, or nil when none was saved.
func (s *RecordStore) Load(level string) (*PoolRecord, error) {
	data, err := s.items.LoadItem(recordKey(level))
	if err != nil {
		return nil, fmt.Errorf("load record %s: %w", level, err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	var r PoolRecord
	if err := json.Unmarshal(data, &r); err != nil {
		s.logger.Warn("could not parse saved pool record", "level", level, "err", err)
		return nil, err
	}
	return &r, nil
}

// Save merges r into the saved record for its level and stores the result.
func (s *RecordStore) Save(r *PoolRecord) error {
	prev, err := s.Load(r.Level)
	if err != nil {
		s.logger.Warn("replacing unreadable pool record", "level", r.Level, "err", err)
		prev = nil
	}
	r.Merge(prev)

	data, err := json.Marshal(r)
	if err != nil {
		return err
	}
	if err := s.items.SaveItem(recordKey(r.Level), data); err != nil {
		return fmt.Errorf("save record %s: %w", r.Level, err)
	}
	return nil
}

// Clear deletes the saved record for level.
func (s *RecordStore) Clear(level string) error {
	if err := s.items.DeleteItem(recordKey(level)); err != nil {
		return fmt.Errorf("clear record %s: %w", level, err)
	}
	return nil
}
