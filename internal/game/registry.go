package game

import "sort"

// BallState is the advisory lock a live ball holds. Growing and Merging are
// the two ways of being blocked from starting a merge.
type BallState int

const (
	StateFree BallState = iota
	StateGrowing
	StateMerging
	StateJustDropped
)

func (s BallState) String() string {
	switch s {
	case StateFree:
		return "free"
	case StateGrowing:
		return "growing"
	case StateMerging:
		return "merging"
	case StateJustDropped:
		return "just_dropped"
	default:
		return "unknown"
	}
}

// BlocksMerging reports whether the state excludes the ball from a new merge.
func (s BallState) BlocksMerging() bool {
	return s == StateGrowing || s == StateMerging
}

// Role separates scored balls from the props that share the registry.
type Role int

const (
	RolePlay    Role = iota // a real, colliding, scored ball
	RoleNext                // the hanging next-ball placeholder
	RoleStandIn             // the gliding proxy of a merge
)

type ballEntry struct {
	proto *Prototype
	state BallState
	role  Role
	seq   uint64
}

// Registry maps live bodies to their tier and lock state. Membership is the
// single source of truth for "this ball is still in play".
type Registry struct {
	balls   map[Body]*ballEntry
	nextSeq uint64
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{balls: make(map[Body]*ballEntry)}
}

func (r *Registry) add(b Body, p *Prototype, role Role) {
	r.nextSeq++
	r.balls[b] = &ballEntry{proto: p, role: role, seq: r.nextSeq}
}

// remove deletes the entry and its state in one go. Reports whether b was present.
func (r *Registry) remove(b Body) bool {
	if _, ok := r.balls[b]; !ok {
		return false
	}
	delete(r.balls, b)
	return true
}

// Has reports whether b is live.
func (r *Registry) Has(b Body) bool {
	_, ok := r.balls[b]
	return ok
}

// Prototype returns b's tier, or nil when b has left play.
func (r *Registry) Prototype(b Body) *Prototype {
	if e, ok := r.balls[b]; ok {
		return e.proto
	}
	return nil
}

// State returns b's lock state. ok is false when b is not registered.
func (r *Registry) State(b Body) (BallState, bool) {
	e, ok := r.balls[b]
	if !ok {
		return StateFree, false
	}
	return e.state, true
}

// Role returns b's role. ok is false when b is not registered.
func (r *Registry) Role(b Body) (Role, bool) {
	e, ok := r.balls[b]
	if !ok {
		return RolePlay, false
	}
	return e.role, true
}

// setState changes b's state; a missing body is ignored.
func (r *Registry) setState(b Body, s BallState) {
	if e, ok := r.balls[b]; ok {
		e.state = s
	}
}

// release moves b back to free only if it is still in state from.
func (r *Registry) release(b Body, from BallState) {
	if e, ok := r.balls[b]; ok && e.state == from {
		e.state = StateFree
	}
}

// Len returns the number of registered bodies.
func (r *Registry) Len() int { return len(r.balls) }

// Count returns the number of registered bodies with the given role.
func (r *Registry) Count(role Role) int {
	n := 0
	for _, e := range r.balls {
		if e.role == role {
			n++
		}
	}
	return n
}

// Bodies returns all registered bodies in insertion order.
func (r *Registry) Bodies() []Body {
	out := make([]Body, 0, len(r.balls))
	for b := range r.balls {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		return r.balls[out[i]].seq < r.balls[out[j]].seq
	})
	return out
}
