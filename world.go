package physics

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// Default tuning pulled from libopus's physics_private.h constants.
const (
	DefaultVelocityIterations = 14
	DefaultPositionIterations = 12
	DefaultPositionSlop       = 0.04
	DefaultBiasFactor         = 0.4
	// DefaultRestFactor gates out degenerate near-coincident V-Clip
	// points (see contact.go's merge). The C source hard-codes this at
	// 1 for its own pixel-scale demo coordinates; rescaled here for a
	// unit-sized-shape world (see DESIGN.md).
	DefaultRestFactor = 1e-6
	// DefaultDamping is the damping coefficient in the per-step velocity
	// multiplier 1/(1+dt*DefaultDamping) (see Body.integrateVelocity). The C
	// source hard-codes this at 0.9 for its own pixel-scale demo,
	// where bodies never travel far enough in one uninterrupted flight
	// for the compounding per-step loss to matter; at this spec's
	// scale a free body subject to it for a full second of unbroken
	// flight can never travel farther than roughly v0/DefaultDamping
	// before its velocity decays to noise, which at 0.9 caps travel
	// well under the separations the elastic-bounce scenario uses.
	// Rescaled down, the same way DefaultRestFactor is, to a value
	// that still damps out numerical jitter on resting contacts
	// without silently bounding how far a fast-moving body can coast.
	DefaultDamping = 0.05
)

// World owns every Body and Contact in one simulation and is the sole
// entry point for stepping them forward in time. A World is not safe
// for concurrent use; Step must not be re-entered — AddPolygon,
// AddRect, AddCircle, and Remove all reject calls made while stepping
// is true, mirroring the Lock/Unlock reentrancy guard in
// undefinedopcode-cp/space.go (see DESIGN.md).
type World struct {
	id uuid.UUID

	Gravity Vec2

	VelocityIterations int
	PositionIterations int
	PositionSlop       float64
	BiasFactor         float64
	RestFactor         float64

	LinearDamping  float64
	AngularDamping float64

	EnableSleeping         bool
	MotionBias             float64
	SleepMotionThreshold   float64
	SleepCounterThreshold  int
	WakeMotionThreshold    float64

	bodies   []*Body
	ids      *idAllocator
	contacts *contactStore

	stepping bool

	logger *slog.Logger
}

// Option configures a World at construction time.
type Option func(*World)

func WithGravity(g Vec2) Option { return func(w *World) { w.Gravity = g } }

func WithIterations(velocity, position int) Option {
	return func(w *World) {
		w.VelocityIterations = velocity
		w.PositionIterations = position
	}
}

func WithPositionCorrection(biasFactor, slop float64) Option {
	return func(w *World) {
		w.BiasFactor = biasFactor
		w.PositionSlop = slop
	}
}

func WithDamping(linear, angular float64) Option {
	return func(w *World) {
		w.LinearDamping = linear
		w.AngularDamping = angular
	}
}

func WithSleeping(enabled bool) Option { return func(w *World) { w.EnableSleeping = enabled } }

func WithLogger(logger *slog.Logger) Option {
	return func(w *World) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// NewWorld builds a World with libopus-matched defaults, gravity
// pointing down the Y axis, and sleeping enabled.
func NewWorld(opts ...Option) *World {
	w := &World{
		id:                    uuid.New(),
		Gravity:               V(0, -10),
		VelocityIterations:    DefaultVelocityIterations,
		PositionIterations:    DefaultPositionIterations,
		PositionSlop:          DefaultPositionSlop,
		BiasFactor:            DefaultBiasFactor,
		RestFactor:            DefaultRestFactor,
		LinearDamping:         DefaultDamping,
		AngularDamping:        DefaultDamping,
		EnableSleeping:        true,
		MotionBias:            defaultMotionBias,
		SleepMotionThreshold:  defaultSleepMotionThreshold,
		SleepCounterThreshold: defaultSleepCounterThreshold,
		WakeMotionThreshold:   defaultWakeMotionThreshold,
		ids:                   newIDAllocator(),
		contacts:              newContactStore(),
		logger:                slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.logger = w.logger.With("world", w.id.String())
	w.logger.Debug("world created", "gravity", w.Gravity)
	return w
}

// ID uniquely identifies this World instance, for log correlation
// across multiple concurrent simulations; no algorithm reads it.
func (w *World) ID() uuid.UUID { return w.id }

func (w *World) newBody(bodyType BodyType, position Vec2, rotation float64) *Body {
	b := newBody(w.ids.alloc())
	b.Type = bodyType
	b.Position = position
	b.Rotation = rotation
	b.world = w
	return b
}

// AddPolygon builds a convex polygon body from vertices (any winding,
// any centroid — NewPolygon normalizes both) and adds it to the World.
func (w *World) AddPolygon(vertices []Vec2, bodyType BodyType, position Vec2) (*Body, error) {
	if w.stepping {
		return nil, fmt.Errorf("physics: AddPolygon during Step: %w", ErrStepPrecondition)
	}
	shape, err := NewPolygon(vertices)
	if err != nil {
		return nil, err
	}
	b := w.newBody(bodyType, position, 0)
	b.setShape(shape)
	w.bodies = append(w.bodies, b)
	w.logger.Debug("body added", "id", b.id, "kind", "polygon", "type", bodyType)
	return b, nil
}

// AddRect is a convenience wrapper over AddPolygon for an axis-aligned
// w x h rectangle.
func (w *World) AddRect(width, height float64, bodyType BodyType, position Vec2) (*Body, error) {
	if w.stepping {
		return nil, fmt.Errorf("physics: AddRect during Step: %w", ErrStepPrecondition)
	}
	shape, err := NewRectangle(width, height)
	if err != nil {
		return nil, err
	}
	b := w.newBody(bodyType, position, 0)
	b.setShape(shape)
	w.bodies = append(w.bodies, b)
	w.logger.Debug("body added", "id", b.id, "kind", "rectangle", "type", bodyType)
	return b, nil
}

// AddCircle adds a circle body of the given radius to the World.
func (w *World) AddCircle(radius float64, bodyType BodyType, position Vec2) (*Body, error) {
	if w.stepping {
		return nil, fmt.Errorf("physics: AddCircle during Step: %w", ErrStepPrecondition)
	}
	shape, err := NewCircle(radius)
	if err != nil {
		return nil, err
	}
	b := w.newBody(bodyType, position, 0)
	b.setShape(shape)
	w.bodies = append(w.bodies, b)
	w.logger.Debug("body added", "id", b.id, "kind", "circle", "type", bodyType)
	return b, nil
}

// Remove detaches a body from the World and releases its id for
// reuse. Any contacts referencing it are dropped.
func (w *World) Remove(b *Body) error {
	if w.stepping {
		return fmt.Errorf("physics: Remove during Step: %w", ErrStepPrecondition)
	}
	idx := -1
	for i, body := range w.bodies {
		if body == b {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil
	}
	w.bodies = append(w.bodies[:idx], w.bodies[idx+1:]...)
	w.ids.release(b.id)
	b.world = nil

	for key, bucket := range w.contacts.buckets {
		if bucket.A == b || bucket.B == b {
			delete(w.contacts.buckets, key)
		}
	}
	w.logger.Debug("body removed", "id", b.id)
	return nil
}

// Step advances the simulation by dt seconds, running the full
// pipeline in order: integrate velocities, broad and narrow phase
// collision detection, persistent-contact preparation, velocity
// solve, integrate positions, position solve, force clearing, sleep
// bookkeeping, and contact reset for the next frame.
func (w *World) Step(dt float64) error {
	if dt <= 0 {
		return fmt.Errorf("physics: Step(dt=%v): %w", dt, ErrStepPrecondition)
	}

	w.stepping = true
	defer func() { w.stepping = false }()

	for _, b := range w.bodies {
		b.integrateVelocity(w.Gravity, w.LinearDamping, w.AngularDamping, dt)
	}

	sweepAndPrune(w.bodies, func(a, b *Body, ta, tb Mat2d) {
		if a.Type != BodyDynamic && a.Type != BodyBullet &&
			b.Type != BodyDynamic && b.Type != BodyBullet {
			return
		}

		var ov overlap
		if a.shape.Kind == ShapeCircle && b.shape.Kind == ShapeCircle {
			ov = satCircleCircle(a, b, ta, tb)
		} else {
			ov = sat(a, b, ta, tb)
		}
		if !ov.isOverlap {
			return
		}

		w.contacts.merge(ov, vclip(ov), w.RestFactor)
	})

	active := w.activeContacts()
	for _, c := range active {
		c.prepare()
	}

	solveVelocity(active, w.BiasFactor, w.PositionSlop, dt, w.VelocityIterations)

	for _, b := range w.bodies {
		b.integratePosition(dt)
	}

	solvePosition(active, w.BiasFactor, w.PositionSlop, dt, w.PositionIterations)

	for _, b := range w.bodies {
		b.clearForce()
	}

	w.updateSleep(dt)
	w.wakeFromCollisions(dt)

	w.contacts.each(func(bucket *Contacts) {
		for _, c := range bucket.contacts {
			c.IsActive = false
		}
	})

	return nil
}

func (w *World) activeContacts() []*Contact {
	var out []*Contact
	w.contacts.each(func(bucket *Contacts) {
		for _, c := range bucket.contacts {
			if c.IsActive {
				out = append(out, c)
			}
		}
	})
	return out
}

// QueryPoint returns every body whose shape contains p, world-space
// AABB first as a broad-phase reject then an exact per-shape test,
// mirroring the two-stage PointQueryNearest in
// undefinedopcode-cp/space.go (AABB query, then shape.PointQuery).
func (w *World) QueryPoint(p Vec2) []*Body {
	var out []*Body
	for _, b := range w.bodies {
		if b.shape == nil || !b.shape.Bound().Contains(p) {
			continue
		}
		if b.shape.ContainsPoint(b.WorldToLocal(p)) {
			out = append(out, b)
		}
	}
	return out
}

// QueryAABB returns every body whose world-space AABB intersects region.
func (w *World) QueryAABB(region AABB) []*Body {
	var out []*Body
	for _, b := range w.bodies {
		if b.shape != nil && b.shape.Bound().Intersects(region) {
			out = append(out, b)
		}
	}
	return out
}

// Bodies returns the World's current body list. The returned slice is
// owned by the World; callers must not mutate it.
func (w *World) Bodies() []*Body { return w.bodies }
