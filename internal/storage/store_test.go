package storage

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/san-kum/fishsim/internal/dynamo"
	"github.com/san-kum/fishsim/internal/env"
	"github.com/san-kum/fishsim/internal/policy"
	"github.com/san-kum/fishsim/internal/rollout"
)

func sampleResult() *rollout.Result {
	return &rollout.Result{
		Seed:         42,
		Observations: []dynamo.State{{0.5}, {0.65}, {0.8775}},
		Actions:      []dynamo.Control{{0.1}, {0.1}},
		Harvests:     []dynamo.Control{{0.1}, {0.1}},
		Rewards:      []float64{0.1, 0.1},
		Return:       0.2,
		Steps:        2,
		Metrics:      map[string]float64{"total_harvest": 0.2},
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	pol := policy.Config{Name: policy.NameConstant, Value: 0.1}
	runID, err := st.Save(env.DefaultParams(), pol, sampleResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if _, err := uuid.Parse(runID); err != nil {
		t.Errorf("run id %q is not a uuid: %v", runID, err)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Seed != 42 {
		t.Errorf("expected seed 42, got %d", meta.Seed)
	}
	if meta.Policy != pol {
		t.Errorf("expected policy %v, got %v", pol, meta.Policy)
	}
	if meta.Params.TMax != env.DefaultTMax {
		t.Errorf("expected t_max %d, got %d", env.DefaultTMax, meta.Params.TMax)
	}
	if meta.Metrics["total_harvest"] != 0.2 {
		t.Errorf("expected total_harvest 0.2, got %f", meta.Metrics["total_harvest"])
	}

	records, err := st.LoadTrajectory(runID)
	if err != nil {
		t.Fatalf("load trajectory failed: %v", err)
	}
	want := []Record{
		{Step: 0, Population: 0.5},
		{Step: 1, Population: 0.65, Action: 0.1, Harvest: 0.1, Reward: 0.1},
		{Step: 2, Population: 0.8775, Action: 0.1, Harvest: 0.1, Reward: 0.1},
	}
	if len(records) != len(want) {
		t.Fatalf("expected %d records, got %d", len(want), len(records))
	}
	for i := range want {
		if records[i] != want[i] {
			t.Errorf("record %d = %+v, want %+v", i, records[i], want[i])
		}
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	for i := 0; i < 3; i++ {
		if _, err := st.Save(env.DefaultParams(), policy.Config{Name: policy.NameNone}, sampleResult()); err != nil {
			t.Fatalf("save %d failed: %v", i, err)
		}
	}
	if err := os.MkdirAll(filepath.Join(st.baseDir, "junk"), 0755); err != nil {
		t.Fatal(err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 3 {
		t.Errorf("expected 3 runs, got %d", len(runs))
	}
}

func TestStoreListMissingDir(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "absent"))
	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}

func TestStoreLoadMissing(t *testing.T) {
	st := New(t.TempDir())
	if _, err := st.Load("nope"); err == nil {
		t.Error("expected error for missing run")
	}
}

func TestExportJSON(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	f, err := env.New(env.DefaultParams())
	if err != nil {
		t.Fatal(err)
	}
	res, err := rollout.NewRunner().Run(context.Background(), f, policy.NewConstant(0.2), 0)
	if err != nil {
		t.Fatal(err)
	}
	runID, err := st.Save(f.Params(), policy.Config{Name: policy.NameConstant, Value: 0.2}, res)
	if err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(t.TempDir(), "run.json")
	if err := st.ExportJSON(runID, out); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	var exported ExportData
	if err := json.Unmarshal(data, &exported); err != nil {
		t.Fatalf("decode export: %v", err)
	}
	if exported.ID != runID {
		t.Errorf("expected id %s, got %s", runID, exported.ID)
	}
	if len(exported.Trajectory) != res.Steps+1 {
		t.Errorf("expected %d rows, got %d", res.Steps+1, len(exported.Trajectory))
	}
	if exported.Return != res.Return {
		t.Errorf("expected return %v, got %v", res.Return, exported.Return)
	}
}
