package runtime

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nugen/evgb/internal/config"
	"github.com/nugen/evgb/internal/pipeline"
	"github.com/nugen/evgb/internal/storage"
	"github.com/nugen/evgb/internal/testutil"
)

func memoryConfig() *config.Config {
	return &config.Config{
		Server:  config.ServerConfig{Port: 18081, RequestTimeout: 5 * time.Second},
		Storage: config.StorageConfig{Driver: "memory"},
		Generator: config.GeneratorConfig{
			Version:            "3.4.2",
			Tune:               "G18_02a_00_000",
			EventGeneratorList: "CCQE",
			GlobalTimeOffsetNs: 1000,
		},
		Pipeline:  config.PipelineConfig{Workers: 2},
		Telemetry: config.TelemetryConfig{ServiceName: "evgb"},
	}
}

func TestBridge_New_RequiresConfig(t *testing.T) {
	_, err := New()
	if err == nil {
		t.Fatal("Expected error without config")
	}
	if err.Error() != "config required (use WithConfigFile or WithConfig)" {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestBridge_New_InvalidConfig(t *testing.T) {
	cfg := memoryConfig()
	cfg.Storage.Driver = "mongo"
	if _, err := New(WithConfig(cfg)); err == nil {
		t.Error("Expected error for unknown storage driver")
	}
}

func TestBridge_New_UnresolvedTune(t *testing.T) {
	cfg := memoryConfig()
	cfg.Generator.Tune = "$EVGB_TEST_UNSET_TUNE"
	_, err := New(WithConfig(cfg))
	if !errors.Is(err, config.ErrUnresolvedEnvVariable) {
		t.Fatalf("New() error = %v, want %v", err, config.ErrUnresolvedEnvVariable)
	}
}

func TestBridge_New_SharedTuneMismatch(t *testing.T) {
	run := config.NewRunOptions(nil)
	if _, err := New(WithConfig(memoryConfig()), WithRunOptions(run)); err != nil {
		t.Fatalf("New() error = %v", err)
	}

	cfg := memoryConfig()
	cfg.Generator.Tune = "AR23_20i_00_000"
	_, err := New(WithConfig(cfg), WithRunOptions(run))
	if !errors.Is(err, config.ErrTuneNameMismatch) {
		t.Fatalf("New() error = %v, want %v", err, config.ErrTuneNameMismatch)
	}
}

func TestBridge_TranslatesOverHTTP(t *testing.T) {
	b, err := New(WithConfig(memoryConfig()))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	ts := httptest.NewServer(b.Handler())
	defer ts.Close()

	var body bytes.Buffer
	err = pipeline.EncodeEvents(&body, []*pipeline.GeneratedEvent{{ID: "evt-1", Run: 7, Event: 1, Record: testutil.CCQE()}})
	if err != nil {
		t.Fatalf("EncodeEvents() error = %v", err)
	}
	resp, err := http.Post(ts.URL+"/v1/events", "application/x-ndjson", &body)
	if err != nil {
		t.Fatalf("Post() error = %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusCreated)
	}

	resp, err = http.Get(ts.URL + "/v1/events/evt-1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	defer resp.Body.Close()
	var got storage.EventTruth
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	info := got.MCTruth.GeneratorInfo
	if info.Version != "3.4.2" {
		t.Errorf("generator version = %q, want 3.4.2", info.Version)
	}
	if info.Tune() != "G18_02a_00_000" {
		t.Errorf("tune = %q, want G18_02a_00_000", info.Tune())
	}
	if info.Config[EventGeneratorListKey] != "CCQE" {
		t.Errorf("generator config %s = %q, want CCQE", EventGeneratorListKey, info.Config[EventGeneratorListKey])
	}
	if tm := float64(got.MCTruth.Particles[0].Position().T); tm < 1000 {
		t.Errorf("probe time = %v, want spill offset applied", tm)
	}
}

func TestBridge_Reload(t *testing.T) {
	b, err := New(WithConfig(memoryConfig()))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	next := memoryConfig()
	next.Generator.Version = "3.6.0"
	next.Pipeline.Workers = 8
	if err := b.Reload(next); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	opts := b.Processor().Options()
	if opts.Translation.GeneratorVersion != "3.6.0" || opts.Workers != 8 {
		t.Errorf("Options() = %+v, want reloaded version and workers", opts)
	}

	bad := memoryConfig()
	bad.Generator.Version = "9.9.9"
	bad.Generator.Tune = "AR23_20i_00_000"
	if err := b.Reload(bad); !errors.Is(err, config.ErrTuneNameMismatch) {
		t.Fatalf("Reload() error = %v, want %v", err, config.ErrTuneNameMismatch)
	}
	if got := b.Processor().Options().Translation.GeneratorVersion; got != "3.6.0" {
		t.Errorf("GeneratorVersion = %q after rejected reload, want 3.6.0", got)
	}
}

func TestPipelineOptionsKeepsExplicitList(t *testing.T) {
	cfg := memoryConfig()
	cfg.Generator.Config = map[string]string{EventGeneratorListKey: "Default"}
	run := config.NewRunOptions(nil)
	if err := SelectGenerator(run, cfg.Generator); err != nil {
		t.Fatalf("SelectGenerator() error = %v", err)
	}

	opts := PipelineOptions(cfg, run)
	if got := opts.Translation.GeneratorConfig[EventGeneratorListKey]; got != "Default" {
		t.Errorf("%s = %q, want Default", EventGeneratorListKey, got)
	}
	if cfg.Generator.Config[EventGeneratorListKey] != "Default" {
		t.Error("PipelineOptions modified the config map")
	}
}

func TestOpenStore(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.StorageConfig
		wantErr bool
	}{
		{"memory", config.StorageConfig{Driver: "memory"}, false},
		{"sqlite", config.StorageConfig{Driver: "sqlite", DSN: filepath.Join(t.TempDir(), "evgb.db")}, false},
		{"unknown", config.StorageConfig{Driver: "mongo"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := OpenStore(tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("OpenStore() error = %v, wantErr %v", err, tt.wantErr)
			}
			if store != nil {
				store.Close()
			}
		})
	}
}

func TestLoadSpeciesFromEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "species.yaml")
	if err := os.WriteFile(path, []byte("species:\n  - {code: 9900012, name: N1, mass: 0.5}\n"), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	t.Setenv("EVGB_TEST_SPECIES", path)

	table, err := LoadSpecies("$EVGB_TEST_SPECIES", testLogger())
	if err != nil {
		t.Fatalf("LoadSpecies() error = %v", err)
	}
	if _, ok := table.Find(9900012); !ok {
		t.Error("species from file not found")
	}
	if _, ok := table.Find(14); !ok {
		t.Error("built-in species missing after overlay")
	}
}

func TestBridge_Start_And_Shutdown(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "evgb.yaml")
	content := fmt.Sprintf(`
server:
  port: %d
storage:
  driver: sqlite
  dsn: %s
generator:
  tune: G18_02a_00_000
`, freePort(t), filepath.Join(tmpDir, "evgb.db"))
	if err := os.WriteFile(configPath, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	b, err := New(WithLogger(testLogger()), WithConfigFile(configPath))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := b.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := b.Shutdown(ctx); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}

	select {
	case err := <-b.Done():
		if err != nil {
			t.Errorf("server error = %v", err)
		}
	case <-ctx.Done():
		t.Error("server did not stop")
	}
}

func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen() error = %v", err)
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port
}

func testLogger() *slog.Logger {
	logger, _ := testutil.CaptureLogger()
	return logger
}
