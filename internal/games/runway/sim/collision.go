package sim

// Outcome is the effect a proposal asks the controller to apply.
type Outcome int

const (
	OutcomeCollect Outcome = iota
	OutcomeHit
)

// String returns a human-readable name for the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeCollect:
		return "collect"
	case OutcomeHit:
		return "hit"
	default:
		return "unknown"
	}
}

// Proposal is a collision result the controller may apply.
type Proposal struct {
	EntityID uint64
	Outcome  Outcome
	Points   int // Score delta for OutcomeCollect
}

// CollisionDetector finds entities inside the collision band that share the
// player's lane. It only reads; state changes happen when the controller
// applies the returned proposals.
type CollisionDetector struct {
	near   float64
	far    float64
	points int
}

// NewCollisionDetector creates a detector for the band [near, far].
func NewCollisionDetector(near, far float64, points int) CollisionDetector {
	return CollisionDetector{near: near, far: far, points: points}
}

// InBand reports whether a depth lies inside the collision band.
func (d CollisionDetector) InBand(depth float64) bool {
	return depth >= d.near && depth <= d.far
}

// Detect evaluates a snapshot against the player. Airborne players clear
// obstacles; consumed or passed entities are never proposed again.
func (d CollisionDetector) Detect(entities []Entity, player PlayerState) []Proposal {
	var proposals []Proposal
	for _, e := range entities {
		if e.Consumed || e.Passed || e.Lane != player.Lane || !d.InBand(e.Depth) {
			continue
		}

		switch e.Kind {
		case KindCollectible:
			proposals = append(proposals, Proposal{
				EntityID: e.ID,
				Outcome:  OutcomeCollect,
				Points:   d.points,
			})
		case KindObstacle:
			if player.Jump.Airborne() {
				continue
			}
			proposals = append(proposals, Proposal{
				EntityID: e.ID,
				Outcome:  OutcomeHit,
			})
		}
	}
	return proposals
}
