package monitor

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"vigil/internal/buildinfo"
	"vigil/vigilos/assess"
)

// State holds the last reported values from each pipeline stage. A fresh
// session ID is minted per process so dashboards can tell restarts apart.
type State struct {
	mu        sync.RWMutex
	session   string
	startedAt time.Time

	capturing  bool
	distanceCm int
	motion     bool

	verdict        assess.Verdict
	meanPerson     float32
	meanNoPerson   float32
	windowPerson   int
	windowNoPerson int

	framesDecoded  uint32
	framesDropped  uint32
	framesCorrupt  uint32
	bytesDiscarded uint32
}

// NewState creates an empty State with a new session ID.
func NewState() *State {
	return &State{
		session:   uuid.New().String(),
		startedAt: time.Now().UTC(),
	}
}

// Session returns the process session ID.
func (s *State) Session() string {
	return s.session
}

func (s *State) setCapture(distanceCm int, motion, capturing bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.distanceCm = distanceCm
	s.motion = motion
	s.capturing = capturing
}

func (s *State) setLinkStats(decoded, dropped, corrupt, discardedBytes uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.framesDecoded = decoded
	s.framesDropped = dropped
	s.framesCorrupt = corrupt
	s.bytesDiscarded = discardedBytes
}

func (s *State) setVerdict(v assess.Verdict, meanPerson, meanNoPerson float32, lenPerson, lenNoPerson int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.verdict = v
	s.meanPerson = meanPerson
	s.meanNoPerson = meanNoPerson
	s.windowPerson = lenPerson
	s.windowNoPerson = lenNoPerson
}

// Status is the JSON shape served by GET /status.
type Status struct {
	Session        string  `json:"session"`
	Version        string  `json:"version"`
	StartedAt      string  `json:"started_at"`
	Capturing      bool    `json:"capturing"`
	DistanceCm     int     `json:"distance_cm"`
	Motion         bool    `json:"motion"`
	Verdict        string  `json:"verdict"`
	MeanPerson     float32 `json:"mean_person"`
	MeanNoPerson   float32 `json:"mean_no_person"`
	WindowPerson   int     `json:"window_person"`
	WindowNoPerson int     `json:"window_no_person"`
	FramesDecoded  uint32  `json:"frames_decoded"`
	FramesDropped  uint32  `json:"frames_dropped"`
	FramesCorrupt  uint32  `json:"frames_corrupt"`
	BytesDiscarded uint32  `json:"bytes_discarded"`
	Clients        int     `json:"ws_clients"`
}

// Snapshot copies the current state. Clients is filled by the caller.
func (s *State) Snapshot() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Status{
		Session:        s.session,
		Version:        buildinfo.Short(),
		StartedAt:      s.startedAt.Format(time.RFC3339),
		Capturing:      s.capturing,
		DistanceCm:     s.distanceCm,
		Motion:         s.motion,
		Verdict:        s.verdict.String(),
		MeanPerson:     s.meanPerson,
		MeanNoPerson:   s.meanNoPerson,
		WindowPerson:   s.windowPerson,
		WindowNoPerson: s.windowNoPerson,
		FramesDecoded:  s.framesDecoded,
		FramesDropped:  s.framesDropped,
		FramesCorrupt:  s.framesCorrupt,
		BytesDiscarded: s.bytesDiscarded,
	}
}
