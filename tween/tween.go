package tween

import "time"

// Options describes one timed transition. A zero Duration applies the end
// value as soon as the tween starts. A nil Ease uses DefaultEase.
type Options struct {
	Delay      time.Duration
	Duration   time.Duration
	Ease       Ease
	OnComplete func()
}

// Tween interpolates a single float64 between two values.
type Tween struct {
	target   *float64
	from, to float64
	hasFrom  bool
	opts     Options
	startAt  time.Duration
	started  bool
	done     bool
}

// Done reports whether the tween finished or was killed.
func (t *Tween) Done() bool {
	return t == nil || t.done
}

// Kill stops the tween where it is. OnComplete does not run.
func (t *Tween) Kill() {
	if t != nil {
		t.done = true
	}
}

func (t *Tween) apply(now time.Duration) {
	if now < t.startAt {
		return
	}
	if !t.started {
		t.started = true
		if !t.hasFrom && t.target != nil {
			t.from = *t.target
		}
	}

	p := 1.0
	if t.opts.Duration > 0 {
		p = float64(now-t.startAt) / float64(t.opts.Duration)
		if p > 1 {
			p = 1
		}
	}

	if t.target != nil {
		ease := t.opts.Ease
		if ease == nil {
			ease = DefaultEase
		}
		e := ease(p)
		if p >= 1 {
			e = 1
		}
		*t.target = t.from + (t.to-t.from)*e
	}

	if p >= 1 {
		t.done = true
		if t.opts.OnComplete != nil {
			t.opts.OnComplete()
		}
	}
}

// Timeline owns every running tween and delayed call. It only advances
// when Update is called, so a simulated clock replays it exactly.
type Timeline struct {
	now    time.Duration
	tweens []*Tween
}

func NewTimeline() *Timeline {
	return &Timeline{}
}

// Now returns the time of the last Update.
func (tl *Timeline) Now() time.Duration {
	return tl.now
}

// Active returns the number of tweens that have not finished.
func (tl *Timeline) Active() int {
	n := 0
	for _, t := range tl.tweens {
		if !t.done {
			n++
		}
	}
	return n
}

// To animates target from whatever value it holds when the tween starts.
func (tl *Timeline) To(target *float64, to float64, opts Options) *Tween {
	return tl.add(&Tween{target: target, to: to, opts: opts})
}

// FromTo snaps target to from immediately and animates it to to.
func (tl *Timeline) FromTo(target *float64, from, to float64, opts Options) *Tween {
	if target != nil {
		*target = from
	}
	return tl.add(&Tween{target: target, from: from, to: to, hasFrom: true, opts: opts})
}

// Call runs fn once delay has elapsed.
func (tl *Timeline) Call(delay time.Duration, fn func()) *Tween {
	return tl.add(&Tween{opts: Options{Delay: delay, OnComplete: fn}})
}

func (tl *Timeline) add(t *Tween) *Tween {
	t.startAt = tl.now + t.opts.Delay
	tl.tweens = append(tl.tweens, t)
	return t
}

// Update advances the timeline to now and applies every started tween in
// creation order. Tweens created by callbacks during Update are first
// applied on the next Update.
func (tl *Timeline) Update(now time.Duration) {
	if now < tl.now {
		now = tl.now
	}
	tl.now = now

	current := tl.tweens
	tl.tweens = nil
	for _, t := range current {
		if t.done {
			continue
		}
		t.apply(now)
	}

	kept := current[:0]
	for _, t := range current {
		if !t.done {
			kept = append(kept, t)
		}
	}
	tl.tweens = append(kept, tl.tweens...)
}
