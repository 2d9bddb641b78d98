package game

import (
	"math"
	"time"
)

// Vec is a 2D point or direction in world pixels. Y grows downwards.
type Vec struct {
	X, Y float64
}

func (v Vec) Add(o Vec) Vec { return Vec{v.X + o.X, v.Y + o.Y} }
func (v Vec) Sub(o Vec) Vec { return Vec{v.X - o.X, v.Y - o.Y} }
func (v Vec) Scale(k float64) Vec { return Vec{v.X * k, v.Y * k} }
func (v Vec) Len() float64 { return math.Hypot(v.X, v.Y) }
func (v Vec) Dot(o Vec) float64 { return v.X*o.X + v.Y*o.Y }

// LerpVec interpolates componentwise.
func LerpVec(a, b Vec, t float64) Vec { return Vec{Linear(a.X, b.X, t), Linear(a.Y, b.Y, t)} }

// VisualKind tells a renderer how to draw a body.
type VisualKind int

const (
	VisualBall VisualKind = iota
	VisualSplash
	VisualBubble
	VisualPiece
)

// Visual is the renderer-facing appearance handle carried by a body.
type Visual struct {
	Kind   VisualKind
	Tier   int
	Sprite string
}

// Material holds the contact parameters of a body.
type Material struct {
	Friction       float64
	FrictionAir    float64
	FrictionStatic float64
	Restitution    float64
	Density        float64
}

// BodyOptions configures a body at creation.
type BodyOptions struct {
	Static    bool
	Sensor    bool
	NoCollide bool // excluded from contact detection entirely
	Material  Material
	Visual    Visual
}

// Body is a live simulation entity. The game layer never invents its own
// identities: a Body value is the handle.
type Body interface {
	Position() Vec
	SetPosition(Vec)
	Speed() float64
	AngularSpeed() float64
	Radius() float64
	IsStatic() bool
	SetStatic(bool)
	IsSensor() bool
	Opacity() float64
	SetOpacity(float64)
	Scale() float64
	SetScale(float64)
	Angle() float64
	SetAngle(float64)
}

// CollisionKind distinguishes a fresh contact from a sustained one.
type CollisionKind int

const (
	CollisionStart CollisionKind = iota
	CollisionActive
)

func (k CollisionKind) String() string {
	if k == CollisionStart {
		return "start"
	}
	return "active"
}

// Pair is one reported contact.
type Pair struct {
	A, B Body
}

// StepListener receives the simulation's per-step notifications. All calls
// happen on the goroutine that drives the simulation.
type StepListener interface {
	BeforeStep(now time.Duration)
	Collision(kind CollisionKind, pairs []Pair)
	AfterStep(now time.Duration)
}

// Simulation is the rigid-body world the core plays inside.
type Simulation interface {
	AddCircle(pos Vec, radius float64, opts BodyOptions) Body
	Remove(b Body)
	Subscribe(l StepListener)
	Resume()
	Halt()
}
