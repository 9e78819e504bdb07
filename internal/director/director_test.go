package director

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ivlev/img2clip/internal/anim"
)

func TestDefaultScenarioCoversCatalog(t *testing.T) {
	scenario := DefaultScenario()

	if scenario.Version != "1.0" {
		t.Errorf("version %q, want 1.0", scenario.Version)
	}
	if len(scenario.Clips) != 16 {
		t.Fatalf("expected 16 preset clips, got %d", len(scenario.Clips))
	}

	for _, clip := range scenario.Clips {
		if clip.Duration <= 0 {
			t.Errorf("clip %q has non-positive duration %v", clip.Animation, clip.Duration)
		}
		if _, err := anim.Get(clip.Animation); err != nil {
			t.Errorf("clip %q is not in the catalog: %v", clip.Animation, err)
		}
	}

	// IDs must be sequential so clips stay in presentation order.
	for i, clip := range scenario.Clips {
		if clip.ID != i+1 {
			t.Errorf("clip %d has ID %d", i, clip.ID)
		}
	}
}

func TestScenarioWriteRead(t *testing.T) {
	scenario := &Scenario{
		Version: "1.0",
		Clips: []Clip{
			{ID: 1, Animation: "slide_in", Duration: 0.3, Direction: "left", SFX: "whoosh"},
			{ID: 2, Animation: "bounce", Duration: 0.5, Output: "bounce.webm"},
		},
	}

	tmpFile := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := WriteScenario(scenario, tmpFile); err != nil {
		t.Fatalf("WriteScenario failed: %v", err)
	}

	got, err := ReadScenario(tmpFile)
	if err != nil {
		t.Fatalf("ReadScenario failed: %v", err)
	}

	if got.Version != scenario.Version {
		t.Errorf("version mismatch: %q vs %q", got.Version, scenario.Version)
	}
	if len(got.Clips) != len(scenario.Clips) {
		t.Fatalf("clip count mismatch: %d vs %d", len(got.Clips), len(scenario.Clips))
	}
	if got.Clips[0].Direction != "left" || got.Clips[1].Output != "bounce.webm" {
		t.Errorf("clip fields lost in round trip: %+v", got.Clips)
	}
}

func TestReadScenarioRejectsNamelessClip(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "bad.yaml")
	body := "version: \"1.0\"\nclips:\n  - id: 1\n    duration: 0.3\n"
	if err := os.WriteFile(tmpFile, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := ReadScenario(tmpFile); err == nil {
		t.Error("expected error for a clip without an animation name")
	}
}

func TestFindLatestScenario(t *testing.T) {
	dir := t.TempDir()

	files := []string{
		filepath.Join(dir, "scenario_2026-08-20_10-00-00.yaml"),
		filepath.Join(dir, "scenario_2026-08-21_01-00-00.yaml"),
		filepath.Join(dir, "scenario_2026-08-19_15-30-00.yaml"),
	}
	for i, f := range files {
		os.WriteFile(f, []byte("version: \"1.0\""), 0644)
		modTime := time.Now().Add(time.Duration(i) * time.Hour)
		os.Chtimes(f, modTime, modTime)
	}

	latest, err := FindLatestScenario(dir)
	if err != nil {
		t.Fatalf("FindLatestScenario failed: %v", err)
	}
	if latest != files[len(files)-1] {
		t.Errorf("expected %s, got %s", files[len(files)-1], latest)
	}
}

func TestFindLatestScenarioEmptyDir(t *testing.T) {
	if _, err := FindLatestScenario(t.TempDir()); err == nil {
		t.Error("expected error for empty directory")
	}
}
