package main

import (
	"context"
	"errors"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// ErrAborted signals the user interrupted a prompt (Ctrl+C).
var ErrAborted = errors.New("kmlscene: aborted")

// SelectConfig configures a single- or multi-select prompt.
type SelectConfig struct {
	Message      string
	Options      []string
	DefaultIndex int
	Defaults     []int // multi-select preselection; indices into Options
	Help         string
	PageSize     int
}

// PromptDriver abstracts the terminal prompts so the interactive flow can
// run against a stub in tests.
type PromptDriver interface {
	Select(ctx context.Context, cfg SelectConfig) (int, error)
	MultiSelect(ctx context.Context, cfg SelectConfig) ([]int, error)
}

// surveyDriver asks through survey/v2 on a real terminal.
type surveyDriver struct{}

func newSurveyDriver() PromptDriver {
	return surveyDriver{}
}

func (surveyDriver) Select(ctx context.Context, cfg SelectConfig) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	prompt := &survey.Select{
		Message: cfg.Message,
		Options: cfg.Options,
		Help:    cfg.Help,
	}
	if cfg.PageSize > 0 {
		prompt.PageSize = cfg.PageSize
	}
	if cfg.DefaultIndex >= 0 && cfg.DefaultIndex < len(cfg.Options) {
		prompt.Default = cfg.Options[cfg.DefaultIndex]
	}

	var answer string
	if err := ask(prompt, &answer); err != nil {
		return 0, err
	}
	return indexOf(cfg.Options, answer), nil
}

func (surveyDriver) MultiSelect(ctx context.Context, cfg SelectConfig) ([]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	prompt := &survey.MultiSelect{
		Message: cfg.Message,
		Options: cfg.Options,
		Help:    cfg.Help,
	}
	if cfg.PageSize > 0 {
		prompt.PageSize = cfg.PageSize
	}
	if len(cfg.Defaults) > 0 {
		preselected := make([]string, 0, len(cfg.Defaults))
		for _, idx := range cfg.Defaults {
			if idx >= 0 && idx < len(cfg.Options) {
				preselected = append(preselected, cfg.Options[idx])
			}
		}
		prompt.Default = preselected
	}

	var answers []string
	if err := ask(prompt, &answers); err != nil {
		return nil, err
	}

	picked := make(map[string]struct{}, len(answers))
	for _, answer := range answers {
		picked[answer] = struct{}{}
	}
	var indices []int
	for i, option := range cfg.Options {
		if _, ok := picked[option]; ok {
			indices = append(indices, i)
		}
	}
	return indices, nil
}

// ask funnels every prompt through one survey call so terminal interrupts
// translate to ErrAborted in a single place.
func ask(prompt survey.Prompt, answer any) error {
	err := survey.AskOne(prompt, answer)
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}
	return err
}

func indexOf(options []string, value string) int {
	for i, option := range options {
		if option == value {
			return i
		}
	}
	return -1
}
