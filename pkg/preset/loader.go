package preset

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-kmlscene/pkg/style"
)

// LoadFS walks the provided filesystem and parses JSON/YAML preset files.
// When fsys is nil or no preset files are present, the returned store is
// empty.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{presets: make(map[string]Preset)}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() {
			return nil
		}
		if !isPresetFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("preset: read %s: %w", path, err)
		}

		doc, err := parseDocument(data, path)
		if err != nil {
			return err
		}

		for rawName, raw := range doc.Presets {
			name := strings.TrimSpace(rawName)
			if name == "" {
				return fmt.Errorf("preset: file %s defines an empty preset name", path)
			}
			if _, exists := store.presets[name]; exists {
				return fmt.Errorf("preset: duplicate preset %q (file %s)", name, path)
			}

			p, err := normalisePreset(raw, name, path)
			if err != nil {
				return err
			}
			store.presets[name] = p
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return store, nil
}

type documentFile struct {
	Presets map[string]presetFile `json:"presets" yaml:"presets"`
}

type presetFile struct {
	LineColor     string            `json:"lineColor" yaml:"lineColor"`
	LineWidth     float64           `json:"lineWidth" yaml:"lineWidth"`
	InteriorColor string            `json:"interiorColor" yaml:"interiorColor"`
	Fill          *bool             `json:"fill" yaml:"fill"`
	Outline       *bool             `json:"outline" yaml:"outline"`
	Highlight     *presentationFile `json:"highlight,omitempty" yaml:"highlight,omitempty"`
}

type presentationFile struct {
	LineColor     string  `json:"lineColor" yaml:"lineColor"`
	LineWidth     float64 `json:"lineWidth" yaml:"lineWidth"`
	InteriorColor string  `json:"interiorColor" yaml:"interiorColor"`
	Fill          *bool   `json:"fill" yaml:"fill"`
	Outline       *bool   `json:"outline" yaml:"outline"`
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("preset: file %s is empty", source)
	}

	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	if err := yaml.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	return documentFile{}, fmt.Errorf("preset: parse %s: invalid JSON or YAML", source)
}

func normalisePreset(raw presetFile, name, source string) (Preset, error) {
	normal, err := normalisePresentation(presentationFile{
		LineColor:     raw.LineColor,
		LineWidth:     raw.LineWidth,
		InteriorColor: raw.InteriorColor,
		Fill:          raw.Fill,
		Outline:       raw.Outline,
	}, name, source)
	if err != nil {
		return Preset{}, err
	}

	p := Preset{
		Name:   name,
		Source: source,
		Normal: normal,
	}

	if raw.Highlight != nil {
		highlight, err := normalisePresentation(*raw.Highlight, name, source)
		if err != nil {
			return Preset{}, err
		}
		p.Highlight = highlight
	}

	return p, nil
}

func normalisePresentation(raw presentationFile, name, source string) (style.Presentation, error) {
	var p style.Presentation

	if raw.LineWidth < 0 {
		return style.Presentation{}, fmt.Errorf("preset: preset %q (file %s) has negative lineWidth %v", name, source, raw.LineWidth)
	}
	p.LineWidth = raw.LineWidth

	lineColor, err := normaliseColour(raw.LineColor, "lineColor", name, source)
	if err != nil {
		return style.Presentation{}, err
	}
	p.LineColor = lineColor

	interiorColor, err := normaliseColour(raw.InteriorColor, "interiorColor", name, source)
	if err != nil {
		return style.Presentation{}, err
	}
	p.InteriorColor = interiorColor

	if raw.Fill != nil {
		value := *raw.Fill
		p.Fill = &value
	}
	if raw.Outline != nil {
		value := *raw.Outline
		p.Outline = &value
	}

	return p, nil
}

func normaliseColour(raw, field, name, source string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	if value == "" {
		return "", nil
	}
	if _, _, ok := style.HexRGB(value); !ok {
		return "", fmt.Errorf("preset: preset %q (file %s) has malformed %s %q", name, source, field, raw)
	}
	return value, nil
}

func isPresetFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
