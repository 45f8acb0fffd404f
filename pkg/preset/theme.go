package preset

import (
	"fmt"
	"strconv"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-kmlscene/pkg/style"
)

const (
	tokenLineColor     = "lineColor"
	tokenLineWidth     = "lineWidth"
	tokenInteriorColor = "interiorColor"
	tokenFill          = "fill"
	tokenOutline       = "outline"

	highlightVariant = "highlight"

	manifestVersion = "1.0.0"
)

// Manifest exposes the preset as a go-theme manifest. Visual fields travel
// as string tokens; a non-zero highlight presentation becomes the
// "highlight" variant.
func (p Preset) Manifest() *theme.Manifest {
	manifest := &theme.Manifest{
		Name:    p.Name,
		Version: manifestVersion,
		Tokens:  presentationTokens(p.Normal),
	}
	if highlight := presentationTokens(p.Highlight); len(highlight) > 0 {
		manifest.Variants = map[string]theme.Variant{
			highlightVariant: {Tokens: highlight},
		}
	}
	return manifest
}

// Provider registers every preset in the store on a fresh go-theme registry
// so theme-aware hosts can resolve presets through their selection flow.
func (s *Store) Provider() (theme.ThemeProvider, error) {
	registry := theme.NewRegistry()
	if s == nil {
		return registry, nil
	}
	for _, name := range s.Names() {
		p, _ := s.Preset(name)
		if err := registry.Register(p.Manifest()); err != nil {
			return nil, fmt.Errorf("preset: register theme %q: %w", name, err)
		}
	}
	return registry, nil
}

// FromSelection rebuilds a preset from a resolved theme selection. Tokens
// from the selected variant overlay the manifest's base tokens; a
// "highlight" variant on the manifest populates the preset's highlight
// presentation. The boolean reports whether the selection carried any
// preset tokens at all.
func FromSelection(selection *theme.Selection) (Preset, bool) {
	if selection == nil || selection.Manifest == nil {
		return Preset{}, false
	}

	tokens := map[string]string{}
	for key, value := range selection.Manifest.Tokens {
		tokens[key] = value
	}

	variantName := strings.TrimSpace(selection.Variant)
	if variantName != "" {
		if variant, ok := selection.Manifest.Variants[variantName]; ok {
			for key, value := range variant.Tokens {
				tokens[key] = value
			}
		}
	}

	var highlightTokens map[string]string
	if variant, ok := selection.Manifest.Variants[highlightVariant]; ok {
		highlightTokens = variant.Tokens
	}

	if len(tokens) == 0 && len(highlightTokens) == 0 {
		return Preset{}, false
	}

	return Preset{
		Name:      selection.Theme,
		Normal:    presentationFromTokens(tokens),
		Highlight: presentationFromTokens(highlightTokens),
	}, true
}

// SelectorPreset resolves a theme/variant pair through the supplied
// selector and converts the selection into a preset.
func SelectorPreset(selector theme.ThemeSelector, name, variant string) (Preset, error) {
	if selector == nil {
		return Preset{}, fmt.Errorf("preset: theme selector is required")
	}

	selection, err := selector.Select(name, variant)
	if err != nil {
		return Preset{}, fmt.Errorf("preset: select theme %q: %w", name, err)
	}

	p, ok := FromSelection(selection)
	if !ok {
		return Preset{}, fmt.Errorf("preset: theme %q carries no preset tokens", name)
	}
	return p, nil
}

func presentationTokens(p style.Presentation) map[string]string {
	tokens := map[string]string{}
	if p.LineColor != "" {
		tokens[tokenLineColor] = p.LineColor
	}
	if p.LineWidth > 0 {
		tokens[tokenLineWidth] = strconv.FormatFloat(p.LineWidth, 'f', -1, 64)
	}
	if p.InteriorColor != "" {
		tokens[tokenInteriorColor] = p.InteriorColor
	}
	if p.Fill != nil {
		tokens[tokenFill] = strconv.FormatBool(*p.Fill)
	}
	if p.Outline != nil {
		tokens[tokenOutline] = strconv.FormatBool(*p.Outline)
	}
	if len(tokens) == 0 {
		return nil
	}
	return tokens
}

func presentationFromTokens(tokens map[string]string) style.Presentation {
	var p style.Presentation
	if value, ok := tokens[tokenLineColor]; ok {
		p.LineColor = strings.ToLower(strings.TrimSpace(value))
	}
	if value, ok := tokens[tokenLineWidth]; ok {
		if width, err := strconv.ParseFloat(value, 64); err == nil && width > 0 {
			p.LineWidth = width
		}
	}
	if value, ok := tokens[tokenInteriorColor]; ok {
		p.InteriorColor = strings.ToLower(strings.TrimSpace(value))
	}
	if value, ok := tokens[tokenFill]; ok {
		if fill, err := strconv.ParseBool(value); err == nil {
			p.Fill = &fill
		}
	}
	if value, ok := tokens[tokenOutline]; ok {
		if outline, err := strconv.ParseBool(value); err == nil {
			p.Outline = &outline
		}
	}
	return p
}
