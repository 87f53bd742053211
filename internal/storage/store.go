package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/san-kum/orbitsim/internal/physics"
	"github.com/san-kum/orbitsim/internal/sim"
)

// Store keeps one directory per run holding a metadata.json summary.
// Trajectories are never written.
type Store struct {
	baseDir string
	now     func() time.Time
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, now: time.Now}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type BodyState struct {
	ID       string     `json:"id"`
	Mass     float64    `json:"mass"`
	Position [2]float64 `json:"position"`
	Velocity [2]float64 `json:"velocity"`
	Radius   float64    `json:"radius"`
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Scenario  string             `json:"scenario"`
	Timestamp time.Time          `json:"timestamp"`
	Dt        float64            `json:"dt"`
	Ticks     int                `json:"ticks"`
	SimTime   float64            `json:"sim_time"`
	Bodies    int                `json:"bodies"`
	Final     []BodyState        `json:"final"`
	Metrics   map[string]float64 `json:"metrics"`
	Collision string             `json:"collision,omitempty"`
}

func bodyStates(bodies []physics.Body) []BodyState {
	out := make([]BodyState, len(bodies))
	for i, b := range bodies {
		out[i] = BodyState{
			ID:       b.ID,
			Mass:     b.Mass,
			Position: [2]float64{b.Pos.X, b.Pos.Y},
			Velocity: [2]float64{b.Vel.X, b.Vel.Y},
			Radius:   b.Radius,
		}
	}
	return out
}

// Save records the summary of a finished or halted run. runErr is the
// error Run stopped with, if any; a collision is stored as its message.
func (s *Store) Save(scenario string, dt float64, result *sim.Result, runErr error) (string, error) {
	now := s.now()
	runID := fmt.Sprintf("%s_%d", scenario, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Scenario:  scenario,
		Timestamp: now,
		Dt:        dt,
		Ticks:     result.Ticks,
		SimTime:   result.Time,
		Bodies:    len(result.Final),
		Final:     bodyStates(result.Final),
		Metrics:   make(map[string]float64, len(result.Metrics)),
	}
	// encoding/json rejects NaN and Inf
	for k, v := range result.Metrics {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			meta.Metrics[k] = v
		}
	}
	if runErr != nil {
		meta.Collision = runErr.Error()
	}

	// a run directory without a complete summary is not a run
	if err := ExportFile(filepath.Join(runDir, "metadata.json"), &meta); err != nil {
		os.RemoveAll(runDir)
		return "", fmt.Errorf("write metadata: %w", err)
	}

	return runID, nil
}

// List returns all readable runs, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}

	return &meta, nil
}
