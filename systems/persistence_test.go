package systems

import (
	"errors"
	"testing"

	"github.com/automoto/islandcore/object"
	"github.com/automoto/islandcore/pool"
	"github.com/automoto/islandcore/shared/gamemath"
)

type memoryItems map[string][]byte

func (m memoryItems) SaveItem(key string, data []byte) error {
	m[key] = data
	return nil
}

func (m memoryItems) LoadItem(key string) ([]byte, error) {
	return m[key], nil
}

func (m memoryItems) DeleteItem(key string) error {
	delete(m, key)
	return nil
}

type brokenItems struct{}

func (brokenItems) SaveItem(string, []byte) error   { return errors.New("disk full") }
func (brokenItems) LoadItem(string) ([]byte, error) { return nil, errors.New("disk gone") }
func (brokenItems) DeleteItem(string) error         { return errors.New("read only") }

func TestRecordStoreKeepsHighestUsage(t *testing.T) {
	items := memoryItems{}
	store := NewRecordStore(items, quietLogger())

	if r, err := store.Load("level1"); r != nil || err != nil {
		t.Fatalf("Load() on empty store = %+v, %v", r, err)
	}

	first := &PoolRecord{Level: "level1", Frames: 600, Pools: []pool.Stats{
		{Name: "objects", Capacity: 64, HighWater: 20},
		{Name: "physics", Capacity: 64, HighWater: 8, Exhausted: 2},
	}}
	if err := store.Save(first); err != nil {
		t.Fatalf("Save: %v", err)
	}
	second := &PoolRecord{Level: "level1", Frames: 300, Pools: []pool.Stats{
		{Name: "objects", Capacity: 64, HighWater: 12},
		{Name: "physics", Capacity: 64, HighWater: 30},
	}}
	if err := store.Save(second); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := store.Load("level1")
	if err != nil || got == nil {
		t.Fatalf("Load() = %+v, %v", got, err)
	}
	if got.Frames != 600 {
		t.Errorf("Frames = %d", got.Frames)
	}
	want := map[string][2]int{"objects": {20, 0}, "physics": {30, 2}}
	for _, s := range got.Pools {
		if w := want[s.Name]; s.HighWater != w[0] || s.Exhausted != w[1] {
			t.Errorf("%s: high water %d exhausted %d, want %v", s.Name, s.HighWater, s.Exhausted, w)
		}
	}

	if err := store.Clear("level1"); err != nil {
		t.Fatal(err)
	}
	if r, _ := store.Load("level1"); r != nil {
		t.Error("record survived Clear")
	}
	if _, ok := items[recordKey("level1")]; ok {
		t.Error("Clear() left an empty item behind")
	}
}

func TestRecordStoreErrors(t *testing.T) {
	store := NewRecordStore(brokenItems{}, quietLogger())
	if _, err := store.Load("level1"); err == nil {
		t.Error("Load() hid the storage error")
	}
	if err := store.Save(&PoolRecord{Level: "level1"}); err == nil {
		t.Error("Save() hid the storage error")
	}
	if err := store.Clear("level1"); err == nil {
		t.Error("Clear() hid the storage error")
	}

	corrupt := NewRecordStore(memoryItems{recordKey("level1"): []byte("{")}, quietLogger())
	if _, err := corrupt.Load("level1"); err == nil {
		t.Error("Load() accepted a corrupt record")
	}
	if err := corrupt.Save(&PoolRecord{Level: "level1", Frames: 1}); err != nil {
		t.Errorf("Save() over a corrupt record: %v", err)
	}
}

func TestEngineRecord(t *testing.T) {
	e := newTestEngine()
	registerFaller(e, object.SpawnPatrolEnemy, object.TeamEnemy, object.AlwaysActive)
	for i := 0; i < 3; i++ {
		e.Objects.Spawn(object.SpawnPatrolEnemy, gamemath.Vec(float64(i*20), 64), false)
	}
	e.Step(step)

	r := e.Record("floor")
	if r.Level != "floor" || r.Frames != 1 {
		t.Errorf("record = %+v", r)
	}
	for _, s := range r.Pools {
		if s.Name == "objects" && s.HighWater != 3 {
			t.Errorf("objects high water = %d", s.HighWater)
		}
	}
}
