//go:build !tinygo

package hal

import "sync"

// SceneStep scripts the simulated sensors from a point in tick time onward.
type SceneStep struct {
	AtMs       uint64 `yaml:"at_ms"`
	DistanceCm int    `yaml:"distance_cm"`
	Motion     bool   `yaml:"motion"`
}

// scene holds the current simulated sensor state. Scripted steps are applied
// as tick time passes; the window keys may override them in between.
type scene struct {
	mu    sync.Mutex
	steps []SceneStep
	next  int

	distanceCm int
	motion     bool
}

func newScene(steps []SceneStep) *scene {
	return &scene{steps: steps}
}

// advance applies every scripted step due at or before nowMs.
func (s *scene) advance(nowMs uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for s.next < len(s.steps) && s.steps[s.next].AtMs <= nowMs {
		s.distanceCm = s.steps[s.next].DistanceCm
		s.motion = s.steps[s.next].Motion
		s.next++
	}
}

func (s *scene) current() (distanceCm int, motion bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.distanceCm, s.motion
}

func (s *scene) nudgeDistance(deltaCm int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.distanceCm += deltaCm
	if s.distanceCm < 0 {
		s.distanceCm = 0
	}
}

func (s *scene) toggleMotion() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.motion = !s.motion
}

type hostRanger struct {
	scene *scene
}

func (r *hostRanger) RangeCentimeters() int {
	d, _ := r.scene.current()
	return d
}

type hostMotion struct {
	scene *scene
}

func (m *hostMotion) Active() bool {
	_, motion := m.scene.current()
	return motion
}
