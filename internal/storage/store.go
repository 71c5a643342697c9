package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/fishsim/internal/env"
	"github.com/san-kum/fishsim/internal/policy"
	"github.com/san-kum/fishsim/internal/rollout"
)

const (
	metadataFile   = "metadata.json"
	trajectoryFile = "trajectory.csv"
)

var trajectoryHeader = []string{"step", "population", "action", "harvest", "reward"}

// Store keeps one directory per run under baseDir.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      uint64             `json:"seed"`
	Params    env.Params         `json:"params"`
	Policy    policy.Config      `json:"policy"`
	Return    float64            `json:"return"`
	Steps     int                `json:"steps"`
	Collapsed bool               `json:"collapsed"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Record is one row of a stored trajectory. Step 0 is the reset
// observation and carries no action or reward. Action is what the policy
// asked for, Harvest the mass actually removed.
type Record struct {
	Step       int     `json:"step"`
	Population float64 `json:"population"`
	Action     float64 `json:"action"`
	Harvest    float64 `json:"harvest"`
	Reward     float64 `json:"reward"`
}

// Save writes the metadata and trajectory of res and returns the new
// run ID.
func (s *Store) Save(params env.Params, pol policy.Config, res *rollout.Result) (string, error) {
	runID := uuid.New().String()
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Timestamp: time.Now().UTC(),
		Seed:      res.Seed,
		Params:    params,
		Policy:    pol,
		Return:    res.Return,
		Steps:     res.Steps,
		Collapsed: res.Collapsed,
		Metrics:   res.Metrics,
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeTrajectory(filepath.Join(runDir, trajectoryFile), Records(res)); err != nil {
		return "", err
	}

	return runID, nil
}

// Records flattens the first species of a rollout into rows.
func Records(res *rollout.Result) []Record {
	pops := res.Populations()
	out := make([]Record, len(pops))
	for i, p := range pops {
		out[i] = Record{Step: i, Population: p}
		if i == 0 {
			continue
		}
		if a := res.Actions[i-1]; len(a) > 0 {
			out[i].Action = a[0]
		}
		if i-1 < len(res.Harvests) && len(res.Harvests[i-1]) > 0 {
			out[i].Harvest = res.Harvests[i-1][0]
		}
		out[i].Reward = res.Rewards[i-1]
	}
	return out
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeTrajectory(path string, records []Record) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(trajectoryHeader); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			strconv.Itoa(r.Step),
			strconv.FormatFloat(r.Population, 'g', -1, 64),
			strconv.FormatFloat(r.Action, 'g', -1, 64),
			strconv.FormatFloat(r.Harvest, 'g', -1, 64),
			strconv.FormatFloat(r.Reward, 'g', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns the metadata of every readable run, oldest first.
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
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return &meta, nil
}

func (s *Store) LoadTrajectory(runID string) ([]Record, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, trajectoryFile))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(trajectoryHeader)

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	if len(rows) < 2 {
		return []Record{}, nil
	}

	records := make([]Record, 0, len(rows)-1)
	for i, row := range rows[1:] {
		rec, err := parseRecord(row)
		if err != nil {
			return nil, fmt.Errorf("run %s line %d: %w", runID, i+2, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func parseRecord(row []string) (Record, error) {
	var rec Record
	var err error
	if rec.Step, err = strconv.Atoi(row[0]); err != nil {
		return rec, err
	}
	if rec.Population, err = strconv.ParseFloat(row[1], 64); err != nil {
		return rec, err
	}
	if rec.Action, err = strconv.ParseFloat(row[2], 64); err != nil {
		return rec, err
	}
	if rec.Harvest, err = strconv.ParseFloat(row[3], 64); err != nil {
		return rec, err
	}
	if rec.Reward, err = strconv.ParseFloat(row[4], 64); err != nil {
		return rec, err
	}
	return rec, nil
}

type ExportData struct {
	RunMetadata
	Trajectory []Record `json:"trajectory"`
}

// ExportJSON writes a stored run, metadata and trajectory, as a single
// JSON document.
func (s *Store) ExportJSON(runID, path string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	records, err := s.LoadTrajectory(runID)
	if err != nil {
		return err
	}
	return writeJSON(path, ExportData{RunMetadata: *meta, Trajectory: records})
}
