package systems

import (
	"math"

	"github.com/charmbracelet/log"
	"github.com/solarlune/resolv"

	"github.com/automoto/islandcore/components"
	"github.com/automoto/islandcore/object"
	"github.com/automoto/islandcore/shared/gamemath"
	"github.com/automoto/islandcore/tags"
)

type hitRecord struct {
	owner  *object.GameObject
	volume gamemath.Volume
	place  gamemath.Placement
	body   *resolv.Object
}

// HitSystem matches the attack volumes objects register during collision
// detection against everyone's vulnerable volumes. A resolv space does the
// broad phase; gamemath volumes decide the actual overlap.
type HitSystem struct {
	space      *resolv.Space
	attacks    []hitRecord
	vulnerable []hitRecord
	nAttack    int
	nVuln      int

	delivered int
	dropped   int
	logger    *log.Logger
}

// NewHitSystem preallocates capacity attack and capacity vulnerable slots.
func NewHitSystem(capacity int, logger *log.Logger) *HitSystem {
	if logger == nil {
		logger = log.Default()
	}
	h := &HitSystem{
		attacks:    make([]hitRecord, capacity),
		vulnerable: make([]hitRecord, capacity),
		logger:     logger,
	}
	for i := range h.attacks {
		h.attacks[i].body = resolv.NewObject(0, 0, 1, 1, tags.ResolvAttack)
		h.attacks[i].body.Data = &h.attacks[i]
	}
	for i := range h.vulnerable {
		h.vulnerable[i].body = resolv.NewObject(0, 0, 1, 1, tags.ResolvVulnerable)
		h.vulnerable[i].body.Data = &h.vulnerable[i]
	}
	return h
}

// SetBounds rebuilds the broad-phase space to cover width by height world
// units. Volumes outside it never collide.
func (h *HitSystem) SetBounds(width, height float64, cellSize int) {
	h.Clear()
	if cellSize <= 0 {
		cellSize = 32
	}
	h.space = resolv.NewSpace(int(math.Ceil(width)), int(math.Ceil(height)), cellSize, cellSize)
}

// Register files owner's volumes for this frame. It returns false when no
// level is loaded or some volume found no free slot.
func (h *HitSystem) Register(owner *object.GameObject, attack, vulnerable []gamemath.Volume) bool {
	if h.space == nil || owner == nil {
		return false
	}
	place := owner.Placement()
	ok := true
	for _, v := range attack {
		ok = h.add(h.attacks, &h.nAttack, owner, v, place) && ok
	}
	for _, v := range vulnerable {
		ok = h.add(h.vulnerable, &h.nVuln, owner, v, place) && ok
	}
	return ok
}

func (h *HitSystem) add(records []hitRecord, n *int, owner *object.GameObject, v gamemath.Volume, place gamemath.Placement) bool {
	if *n == len(records) {
		h.dropped++
		h.logger.Debug("hit volume dropped", "owner", owner.ID, "capacity", len(records))
		return false
	}
	r := &records[*n]
	*n++

	r.owner = owner
	r.volume = v
	r.place = place
	b := v.Bounds(place)
	r.body.X, r.body.Y = b.Min.X, b.Min.Y
	r.body.W, r.body.H = b.Width(), b.Height()
	h.space.Add(r.body)
	return true
}

// Resolve delivers every overlapping attack to its victim's HitReaction.
// The volumes stay registered until the next Clear so they can be drawn.
func (h *HitSystem) Resolve(now float64) {
	for i := 0; i < h.nAttack; i++ {
		a := &h.attacks[i]
		check := a.body.Check(0, 0, tags.ResolvVulnerable)
		if check == nil {
			continue
		}
		for _, other := range check.Objects {
			v, ok := other.Data.(*hitRecord)
			if !ok || !matches(a, v) {
				continue
			}
			h.deliver(a, v, now)
		}
	}
}

// matches applies the team and hit type rules and then the exact overlap
// test. A vulnerable volume with no hit type accepts any attack.
func matches(a, v *hitRecord) bool {
	if a.owner == v.owner {
		return false
	}
	if a.owner.Team != object.TeamNone && a.owner.Team == v.owner.Team {
		return false
	}
	if v.volume.HitType != gamemath.HitNone && v.volume.HitType != a.volume.HitType {
		return false
	}
	return a.volume.Intersects(a.place, v.volume, v.place)
}

func (h *HitSystem) deliver(a, v *hitRecord, now float64) {
	victim, ok := v.owner.Find(components.KindHitReaction).(*components.HitReaction)
	if !ok {
		return
	}
	if !victim.ReceiveHit(a.volume.HitType, a.owner.Center(), now) {
		return
	}
	h.delivered++
	if attacker, ok := a.owner.Find(components.KindHitReaction).(*components.HitReaction); ok {
		attacker.LandHit(a.volume.HitType, now)
	}
}

// Clear drops every registered volume.
func (h *HitSystem) Clear() {
	if h.space != nil {
		for i := 0; i < h.nAttack; i++ {
			h.space.Remove(h.attacks[i].body)
		}
		for i := 0; i < h.nVuln; i++ {
			h.space.Remove(h.vulnerable[i].body)
		}
	}
	for i := 0; i < h.nAttack; i++ {
		h.attacks[i].owner = nil
	}
	for i := 0; i < h.nVuln; i++ {
		h.vulnerable[i].owner = nil
	}
	h.nAttack, h.nVuln = 0, 0
}

// EachVolume calls fn for every volume registered since the last Clear.
func (h *HitSystem) EachVolume(fn func(bounds gamemath.AABB, attack bool)) {
	for i := 0; i < h.nAttack; i++ {
		r := &h.attacks[i]
		fn(r.volume.Bounds(r.place), true)
	}
	for i := 0; i < h.nVuln; i++ {
		r := &h.vulnerable[i]
		fn(r.volume.Bounds(r.place), false)
	}
}

func (h *HitSystem) Delivered() int { return h.delivered }
func (h *HitSystem) Dropped() int   { return h.dropped }
