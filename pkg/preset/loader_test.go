package preset_test

import (
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-kmlscene/pkg/preset"
)

func TestLoadFS_JSON(t *testing.T) {
	store := loadStore(t, "basic")
	if store.Empty() {
		t.Fatalf("expected store to contain presets")
	}

	if diff := cmp.Diff([]string{"parkland", "waterline"}, store.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}

	parkland, ok := store.Preset("parkland")
	if !ok {
		t.Fatalf("preset parkland not found")
	}
	if parkland.Normal.LineColor != "ff00aa00" {
		t.Fatalf("line color not normalised: %q", parkland.Normal.LineColor)
	}
	if parkland.Normal.LineWidth != 2 {
		t.Fatalf("line width mismatch: %v", parkland.Normal.LineWidth)
	}
	if parkland.Normal.InteriorColor != "7f00ff00" {
		t.Fatalf("interior color mismatch: %q", parkland.Normal.InteriorColor)
	}
	if parkland.Normal.Fill == nil || !*parkland.Normal.Fill {
		t.Fatalf("fill not parsed: %#v", parkland.Normal.Fill)
	}
	if parkland.Source != "presets.json" {
		t.Fatalf("source mismatch: %q", parkland.Source)
	}

	waterline, ok := store.Preset("waterline")
	if !ok {
		t.Fatalf("preset waterline not found")
	}
	if waterline.Normal.Fill == nil || *waterline.Normal.Fill {
		t.Fatalf("explicit fill false should survive: %#v", waterline.Normal.Fill)
	}
	if waterline.Normal.Outline != nil {
		t.Fatalf("absent outline should stay nil: %#v", waterline.Normal.Outline)
	}
	if !waterline.Highlight.IsZero() {
		t.Fatalf("expected zero highlight presentation: %#v", waterline.Highlight)
	}
}

func TestLoadFS_YAMLHighlight(t *testing.T) {
	store := loadStore(t, "layered")

	contour, ok := store.Preset("contour")
	if !ok {
		t.Fatalf("preset contour not found")
	}
	if contour.Normal.Outline == nil || !*contour.Normal.Outline {
		t.Fatalf("outline not parsed: %#v", contour.Normal.Outline)
	}
	if contour.Highlight.LineColor != "ffffffff" {
		t.Fatalf("highlight line color mismatch: %q", contour.Highlight.LineColor)
	}
	if contour.Highlight.LineWidth != 3 {
		t.Fatalf("highlight line width mismatch: %v", contour.Highlight.LineWidth)
	}
}

func TestLoadFS_DuplicatePreset(t *testing.T) {
	_, err := preset.LoadFS(subDirFS(t, "invalid_duplicate"))
	if err == nil {
		t.Fatalf("expected duplicate preset error")
	}
	if !strings.Contains(err.Error(), "duplicate preset") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoadFS_MalformedColor(t *testing.T) {
	_, err := preset.LoadFS(subDirFS(t, "invalid_color"))
	if err == nil {
		t.Fatalf("expected malformed color error")
	}
	if !strings.Contains(err.Error(), "malformed lineColor") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoadFS_NilFS(t *testing.T) {
	store, err := preset.LoadFS(nil)
	if err != nil {
		t.Fatalf("load nil fs: %v", err)
	}
	if !store.Empty() {
		t.Fatalf("expected empty store")
	}
}

func TestPresetStyleClonesPointers(t *testing.T) {
	store := loadStore(t, "basic")
	parkland, _ := store.Preset("parkland")

	st := parkland.Style()
	if st.ID != "preset:parkland" {
		t.Fatalf("style id mismatch: %q", st.ID)
	}
	if st.Normal.Fill == nil || !*st.Normal.Fill {
		t.Fatalf("style fill mismatch: %#v", st.Normal.Fill)
	}

	*st.Normal.Fill = false
	again, _ := store.Preset("parkland")
	if again.Normal.Fill == nil || !*again.Normal.Fill {
		t.Fatalf("mutating the style should not reach the stored preset")
	}
}

func TestNewStoreValidation(t *testing.T) {
	if _, err := preset.NewStore(preset.Preset{}); err == nil {
		t.Fatalf("expected error for empty preset name")
	}
	if _, err := preset.NewStore(
		preset.Preset{Name: "dup"},
		preset.Preset{Name: "dup"},
	); err == nil {
		t.Fatalf("expected duplicate error")
	}

	store, err := preset.NewStore(preset.Preset{Name: " padded "})
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if _, ok := store.Preset("padded"); !ok {
		t.Fatalf("expected trimmed name lookup")
	}
}

func TestPresetStyleGenerate(t *testing.T) {
	store := loadStore(t, "basic")
	waterline, _ := store.Preset("waterline")

	config := waterline.Style().Generate()
	want := map[string]any{
		"lineColor": "ffff8800",
		"lineWidth": 1.5,
		"fill":      false,
	}
	if diff := cmp.Diff(want, config); diff != "" {
		t.Fatalf("generated config mismatch (-want +got):\n%s", diff)
	}
}

func loadStore(t *testing.T, subdir string) *preset.Store {
	t.Helper()
	store, err := preset.LoadFS(subDirFS(t, subdir))
	if err != nil {
		t.Fatalf("load store: %v", err)
	}
	return store
}

func subDirFS(t *testing.T, subdir string) fs.FS {
	t.Helper()
	base := os.DirFS(testdataRoot())
	fsys, err := fs.Sub(base, subdir)
	if err != nil {
		t.Fatalf("sub fs: %v", err)
	}
	return fsys
}

func testdataRoot() string {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return "testdata"
	}
	return filepath.Join(filepath.Dir(filename), "testdata")
}
