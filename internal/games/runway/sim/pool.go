package sim

import "time"

// Entity is a live hazard or collectible record.
type Entity struct {
	ID         uint64
	Kind       Kind
	Lane       int
	Depth      float64
	Consumed   bool          // One-way: never reset once set
	ConsumedAt time.Duration // Session clock at consumption
	Passed     bool          // Crossed the camera plane; removed on next reap
	BornTick   uint64
	Screen     Projection // Cached by the last Advance
	Visible    bool       // Screen holds a valid projection
}

// EntityPool owns all entity records for one session.
type EntityPool struct {
	entities  []Entity
	nextID    uint64
	projector Projector
	baseRate  float64       // Depth units per simulated frame at speed 1
	grace     time.Duration // How long consumed entities linger before removal
}

// NewEntityPool creates an empty pool.
func NewEntityPool(projector Projector, baseRate float64, grace time.Duration) *EntityPool {
	return &EntityPool{
		entities:  make([]Entity, 0, 32),
		projector: projector,
		baseRate:  baseRate,
		grace:     grace,
	}
}

// Insert adds a new entity and returns its ID.
// Entities are never inserted at a non-positive depth.
func (p *EntityPool) Insert(kind Kind, lane int, depth float64, tick uint64) (uint64, bool) {
	if !(depth > 0) {
		return 0, false
	}
	p.nextID++
	e := Entity{
		ID:       p.nextID,
		Kind:     kind,
		Lane:     lane,
		Depth:    depth,
		BornTick: tick,
	}
	e.Screen, e.Visible = p.projector.Project(depth)
	p.entities = append(p.entities, e)
	return e.ID, true
}

// Advance moves every live, unconsumed entity toward the camera and caches
// its projection. Entities born on this tick keep their spawn depth.
// An entity reaching depth <= 0 is marked passed and skipped thereafter.
func (p *EntityPool) Advance(deltaTicks, speed float64, tick uint64) {
	step := speed * p.baseRate * deltaTicks
	for i := range p.entities {
		e := &p.entities[i]
		if e.Passed || e.Consumed || e.BornTick == tick {
			continue
		}

		e.Depth -= step
		if e.Depth <= 0 {
			e.Passed = true
			e.Visible = false
			continue
		}
		e.Screen, e.Visible = p.projector.Project(e.Depth)
	}
}

// Consume marks an entity consumed. It reports false if the entity is
// unknown, already consumed or already past the camera.
func (p *EntityPool) Consume(id uint64, now time.Duration) bool {
	for i := range p.entities {
		e := &p.entities[i]
		if e.ID != id {
			continue
		}
		if e.Consumed || e.Passed {
			return false
		}
		e.Consumed = true
		e.ConsumedAt = now
		return true
	}
	return false
}

// Reap removes passed entities and consumed ones whose grace period has
// elapsed. It returns the number of removed entities.
func (p *EntityPool) Reap(now time.Duration) int {
	kept := p.entities[:0]
	removed := 0
	for _, e := range p.entities {
		if e.Passed || (e.Consumed && now-e.ConsumedAt >= p.grace) {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	// Clear the tail so dropped records are not retained by the backing array
	for i := len(kept); i < len(p.entities); i++ {
		p.entities[i] = Entity{}
	}
	p.entities = kept
	return removed
}

// Snapshot returns a copy of all records, including consumed and passed
// ones that have not been reaped yet.
func (p *EntityPool) Snapshot() []Entity {
	out := make([]Entity, len(p.entities))
	copy(out, p.entities)
	return out
}

// Len returns the number of records held by the pool.
func (p *EntityPool) Len() int {
	return len(p.entities)
}

// Count returns the number of live (not consumed, not passed) entities of a kind.
func (p *EntityPool) Count(kind Kind) int {
	n := 0
	for _, e := range p.entities {
		if e.Kind == kind && !e.Consumed && !e.Passed {
			n++
		}
	}
	return n
}

// Reproject refreshes cached projections after a geometry change.
func (p *EntityPool) Reproject() {
	for i := range p.entities {
		e := &p.entities[i]
		if e.Passed {
			continue
		}
		e.Screen, e.Visible = p.projector.Project(e.Depth)
	}
}
