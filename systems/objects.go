package systems

import (
	"github.com/charmbracelet/log"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"

	"github.com/automoto/islandcore/collision"
	"github.com/automoto/islandcore/components"
	"github.com/automoto/islandcore/object"
	"github.com/automoto/islandcore/pool"
	"github.com/automoto/islandcore/shared/gamemath"
	"github.com/automoto/islandcore/tags"
)

// Factory builds one spawn type. Build attaches components to a freshly
// allocated object and fills in its fields; returning false aborts the
// spawn and hands everything attached so far back to its pools.
type Factory struct {
	// Components are extra donburi components filed on the object's entry.
	Components []donburi.IComponentType
	Build      func(o *object.GameObject) bool
}

// ObjectManager owns every game object. Spawns become live at the next
// Commit and despawns are flushed at the end of the frame, so no sweep ever
// sees the object list change under it.
type ObjectManager struct {
	world     donburi.World
	objects   *pool.Pool[object.GameObject]
	factories [object.SpawnTypeCount]Factory

	live     []*object.GameObject
	entities []donburi.Entity
	active   []*object.GameObject
	spawning []*object.GameObject
	dying    []*object.GameObject
	scratch  []donburi.IComponentType

	nextID  collision.OwnerID
	reserve int
	logger  *log.Logger
}

// NewObjectManager builds the object pool. release returns a despawned
// object's components to their pools. reserve slots are held back from
// CanSpawn for spawns that must not fail.
func NewObjectManager(world donburi.World, capacity, componentsPerObject, reserve int, release func(object.Component), logger *log.Logger) *ObjectManager {
	if logger == nil {
		logger = log.Default()
	}
	reset := func(o *object.GameObject) {
		o.Reset(release)
		o.Reserve(componentsPerObject)
	}
	return &ObjectManager{
		world:    world,
		objects:  pool.New("objects", capacity, reset, logger),
		live:     make([]*object.GameObject, 0, capacity),
		entities: make([]donburi.Entity, 0, capacity),
		active:   make([]*object.GameObject, 0, capacity),
		spawning: make([]*object.GameObject, 0, capacity),
		dying:    make([]*object.GameObject, 0, capacity),
		scratch:  make([]donburi.IComponentType, 0, 8),
		reserve:  reserve,
		logger:   logger,
	}
}

// Register installs the factory for t, replacing any earlier one.
func (m *ObjectManager) Register(t object.SpawnType, f Factory) {
	if t == object.SpawnNone || t >= object.SpawnTypeCount {
		m.logger.Error("register of invalid spawn type", "type", t)
		return
	}
	m.factories[t] = f
}

// Spawn allocates and builds an object of type t at position. It returns
// nil when no factory is registered, the pool is exhausted or the factory
// fails.
func (m *ObjectManager) Spawn(t object.SpawnType, position gamemath.Vector2, flip bool) *object.GameObject {
	if t == object.SpawnNone || t >= object.SpawnTypeCount || m.factories[t].Build == nil {
		m.logger.Warn("no factory for spawn type", "type", t)
		return nil
	}
	o, ok := m.objects.Allocate()
	if !ok {
		return nil
	}

	m.nextID++
	if m.nextID == collision.NoOwner {
		m.nextID++
	}
	o.ID = m.nextID
	o.SpawnType = t
	o.Position = position
	if flip {
		o.Facing = gamemath.Vec(-1, 0)
	}

	if !m.factories[t].Build(o) {
		m.logger.Warn("spawn failed", "type", t)
		m.objects.Release(o)
		return nil
	}
	m.spawning = append(m.spawning, o)
	return o
}

// Destroy marks o for removal at the end of the frame. Destroying an object
// twice, or one that is not live, does nothing.
func (m *ObjectManager) Destroy(o *object.GameObject) {
	if o == nil || o.ID == collision.NoOwner || !m.objects.Owns(o) {
		return
	}
	if indexOfObject(m.dying, o) >= 0 {
		return
	}
	m.dying = append(m.dying, o)
}

// DestroyAll marks every live and pending object for removal.
func (m *ObjectManager) DestroyAll() {
	for _, o := range m.live {
		m.Destroy(o)
	}
	for _, o := range m.spawning {
		m.Destroy(o)
	}
}

// CanSpawn reports whether count more objects fit while keeping the reserve.
func (m *ObjectManager) CanSpawn(count int) bool {
	return m.objects.Available()-count >= m.reserve
}

// Commit makes pending spawns live, commits every live object's component
// changes and picks the objects within activation range of camera.
func (m *ObjectManager) Commit(camera gamemath.Vector2) {
	m.flushSpawns()

	clear(m.active)
	m.active = m.active[:0]
	for _, o := range m.live {
		o.CommitUpdates()
		if inRange(o, camera) {
			m.active = append(m.active, o)
		}
	}
}

func inRange(o *object.GameObject, camera gamemath.Vector2) bool {
	if o.ActivationRadius < 0 {
		return true
	}
	return o.Center().Distance2(camera) <= o.ActivationRadius*o.ActivationRadius
}

func (m *ObjectManager) flushSpawns() {
	for _, o := range m.spawning {
		m.scratch = append(m.scratch[:0], components.Object, tags.ForTeam(o.Team))
		m.scratch = append(m.scratch, m.factories[o.SpawnType].Components...)

		entity := m.world.Create(m.scratch...)
		components.Object.SetValue(m.world.Entry(entity), components.ObjectData{GameObject: o})
		m.live = append(m.live, o)
		m.entities = append(m.entities, entity)
	}
	clear(m.spawning)
	m.spawning = m.spawning[:0]
}

// UpdatePhase runs phase on every active object in spawn order.
func (m *ObjectManager) UpdatePhase(ctx *object.Context, dt float64, phase object.Phase) {
	for _, o := range m.active {
		o.UpdatePhase(ctx, dt, phase)
	}
}

// FlushDestroys removes the objects destroyed this frame and returns them
// and their components to their pools.
func (m *ObjectManager) FlushDestroys() {
	for _, o := range m.dying {
		if i := indexOfObject(m.live, o); i >= 0 {
			m.world.Remove(m.entities[i])
			m.live = removeObjectAt(m.live, i)
			copy(m.entities[i:], m.entities[i+1:])
			m.entities = m.entities[:len(m.entities)-1]
		} else if i := indexOfObject(m.spawning, o); i >= 0 {
			m.spawning = removeObjectAt(m.spawning, i)
		}
		if i := indexOfObject(m.active, o); i >= 0 {
			m.active = removeObjectAt(m.active, i)
		}
		m.objects.Release(o)
	}
	clear(m.dying)
	m.dying = m.dying[:0]
}

// Live returns the live objects in spawn order. The slice is reused.
func (m *ObjectManager) Live() []*object.GameObject { return m.live }

// Active returns the objects updated this frame.
func (m *ObjectManager) Active() []*object.GameObject { return m.active }

func (m *ObjectManager) Pending() int                        { return len(m.spawning) }
func (m *ObjectManager) World() donburi.World                { return m.world }
func (m *ObjectManager) Pool() *pool.Pool[object.GameObject] { return m.objects }

// Player returns the first live object filed under the player tag.
func (m *ObjectManager) Player() *object.GameObject {
	entry, ok := tags.Player.First(m.world)
	if !ok {
		return nil
	}
	return components.Object.Get(entry).GameObject
}

// CountTeam returns how many live objects belong to team.
func (m *ObjectManager) CountTeam(team object.Team) int {
	return donburi.NewQuery(filter.Contains(tags.ForTeam(team))).Count(m.world)
}

func indexOfObject(list []*object.GameObject, o *object.GameObject) int {
	for i, item := range list {
		if item == o {
			return i
		}
	}
	return -1
}

func removeObjectAt(list []*object.GameObject, i int) []*object.GameObject {
	copy(list[i:], list[i+1:])
	list[len(list)-1] = nil
	return list[:len(list)-1]
}
