package physics

// Default sleeping tuning, mirroring libopus's sleeping.c.
const (
	defaultMotionBias            = 0.9
	defaultSleepCounterThreshold = 60
	defaultSleepMotionThreshold  = 0.01
	defaultWakeMotionThreshold   = 0.02
)

// updateSleep runs the per-body motion-averaging inactivity detector:
// biased rolling average of squared motion between frames, and a
// counter that rises by one on each low-motion step and falls by one
// on each other step; the body sleeps once the counter reaches
// SleepCounterThreshold. It never wakes a body: waking is done by
// Body.ApplyForce and wakeFromCollisions.
//
// A body that just had an external force applied this step was
// already woken eagerly by Body.ApplyForce (see body.go); that mirrors
// spec.md §4.8 ("If an external force is present, wake immediately")
// without the original C source's bug of reading the force
// accumulator after gravity has already been folded into it (which
// would make every falling body look "force-applied" and never sleep).
func (w *World) updateSleep(dt float64) {
	if !w.EnableSleeping {
		return
	}

	timeFactor := dt * dt * dt
	for _, b := range w.bodies {
		if b.Type != BodyDynamic && b.Type != BodyBullet {
			continue
		}

		minMotion := minf(b.motion, b.prevMotion)
		maxMotion := maxf(b.motion, b.prevMotion)
		b.prevMotion = b.motion
		b.motion = w.MotionBias*minMotion + (1-w.MotionBias)*maxMotion

		if b.isSleeping {
			continue
		}

		if w.SleepCounterThreshold > 0 && b.motion < timeFactor*w.SleepMotionThreshold {
			b.sleepCounter++
			if b.sleepCounter >= w.SleepCounterThreshold {
				w.sleepBody(b)
			}
		} else if b.sleepCounter > 0 {
			b.sleepCounter--
		}
	}
}

func (w *World) sleepBody(b *Body) {
	if b.Type == BodyKinematic {
		return
	}
	b.isSleeping = true
	b.sleepCounter = w.SleepCounterThreshold
	b.Velocity = Vec2Zero
	b.AngularVelocity = 0
	b.motion = 0
}

// wake immediately wakes a body (used for explicit force application
// and external wake propagation).
func (w *World) wake(b *Body) {
	if b.Type == BodyStatic {
		return
	}
	b.isSleeping = false
	b.sleepCounter = 0
}

// wakeFromCollisions implements "After collisions: if two contacting
// bodies include a sleeper and the non-sleeper's motion exceeds the
// wake threshold, wake the sleeper."
func (w *World) wakeFromCollisions(dt float64) {
	if !w.EnableSleeping {
		return
	}

	wakeThreshold := w.WakeMotionThreshold * dt * dt * dt
	w.contacts.each(func(bucket *Contacts) {
		hasActive := false
		for _, c := range bucket.contacts {
			if c.IsActive {
				hasActive = true
				break
			}
		}
		if !hasActive {
			return
		}

		A, B := bucket.A, bucket.B
		if A.isSleeping && B.isSleeping {
			return
		}
		if A.Type == BodyStatic || B.Type == BodyStatic {
			return
		}

		if A.isSleeping && B.motion > wakeThreshold {
			w.wake(A)
		}
		if B.isSleeping && A.motion > wakeThreshold {
			w.wake(B)
		}
	})
}
