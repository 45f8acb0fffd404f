package main

import (
	"context"
	"fmt"

	"github.com/goliatone/go-kmlscene/pkg/orchestrator"
	"github.com/goliatone/go-kmlscene/pkg/preset"
)

const noPresetOption = "(none)"

// interactiveRequest fills the request through prompts: renderer, preset
// (when the store carries any), then the features to include. Selections
// default to the request's current values so Enter keeps the flag-provided
// configuration.
func interactiveRequest(ctx context.Context, gen *orchestrator.Orchestrator, driver PromptDriver, req orchestrator.Request, store *preset.Store) (orchestrator.Request, error) {
	renderer, err := pickRenderer(ctx, gen, driver, req.Renderer)
	if err != nil {
		return req, err
	}
	req.Renderer = renderer

	presetName, err := pickPreset(ctx, driver, store, req.Preset)
	if err != nil {
		return req, err
	}
	req.Preset = presetName

	featureIDs, err := pickFeatures(ctx, gen, driver, req)
	if err != nil {
		return req, err
	}
	req.FeatureIDs = featureIDs

	return req, nil
}

func pickRenderer(ctx context.Context, gen *orchestrator.Orchestrator, driver PromptDriver, current string) (string, error) {
	renderers := gen.Renderers()
	if len(renderers) == 0 {
		return current, nil
	}

	idx, err := driver.Select(ctx, SelectConfig{
		Message:      "Renderer",
		Options:      renderers,
		DefaultIndex: indexOf(renderers, current),
		Help:         "Output format for the rendered scene",
	})
	if err != nil {
		return current, err
	}
	if idx < 0 || idx >= len(renderers) {
		return current, nil
	}
	return renderers[idx], nil
}

func pickPreset(ctx context.Context, driver PromptDriver, store *preset.Store, current string) (string, error) {
	if store == nil || store.Empty() {
		return current, nil
	}

	options := append([]string{noPresetOption}, store.Names()...)
	defaultIndex := 0
	if i := indexOf(options, current); i > 0 {
		defaultIndex = i
	}

	idx, err := driver.Select(ctx, SelectConfig{
		Message:      "Preset",
		Options:      options,
		DefaultIndex: defaultIndex,
		Help:         "Style preset applied to unstyled features",
	})
	if err != nil {
		return current, err
	}
	if idx <= 0 || idx >= len(options) {
		return "", nil
	}
	return options[idx], nil
}

func pickFeatures(ctx context.Context, gen *orchestrator.Orchestrator, driver PromptDriver, req orchestrator.Request) ([]string, error) {
	sc, err := gen.Scene(ctx, orchestrator.Request{Source: req.Source, Document: req.Document})
	if err != nil {
		return nil, fmt.Errorf("list features: %w", err)
	}

	bindings := sc.Bindings()
	if len(bindings) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(bindings))
	labels := make([]string, 0, len(bindings))
	for _, b := range bindings {
		ids = append(ids, b.ID)
		label := b.ID
		if b.Name != "" {
			label = fmt.Sprintf("%s (%s)", b.ID, b.Name)
		}
		labels = append(labels, label)
	}

	defaults := make([]int, len(labels))
	for i := range defaults {
		defaults[i] = i
	}

	picked, err := driver.MultiSelect(ctx, SelectConfig{
		Message:  "Features",
		Options:  labels,
		Defaults: defaults,
		Help:     "Features included in the output",
	})
	if err != nil {
		return nil, err
	}

	// Everything (or nothing) selected means no filter.
	if len(picked) == 0 || len(picked) == len(labels) {
		return nil, nil
	}

	selected := make([]string, 0, len(picked))
	for _, idx := range picked {
		if idx >= 0 && idx < len(ids) {
			selected = append(selected, ids[idx])
		}
	}
	return selected, nil
}
