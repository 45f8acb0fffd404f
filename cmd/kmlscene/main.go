package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"

	"github.com/goliatone/go-kmlscene/pkg/kml"
	"github.com/goliatone/go-kmlscene/pkg/orchestrator"
	"github.com/goliatone/go-kmlscene/pkg/preset"
	"github.com/goliatone/go-kmlscene/pkg/preview"
)

func main() {
	_ = godotenv.Load(".env")

	source := flag.String("source", envOr("KMLSCENE_SOURCE", ""), "KML document path or URL")
	rendererName := flag.String("renderer", envOr("KMLSCENE_RENDERER", "scenejson"), "renderer to use (scenejson, geojson, htmlreport)")
	output := flag.String("output", "", "output file (stdout if empty)")
	presetName := flag.String("preset", envOr("KMLSCENE_PRESET", ""), "style preset applied to unstyled features")
	presetsDir := flag.String("presets-dir", envOr("KMLSCENE_PRESETS_DIR", ""), "directory of preset documents (.json/.yaml)")
	interactive := flag.Bool("interactive", false, "pick renderer, preset, and features interactively")
	serve := flag.Bool("serve", false, "serve the preview server instead of writing output")
	addr := flag.String("addr", envOr("KMLSCENE_ADDR", ":8080"), "preview server listen address")
	logFile := flag.String("log-file", envOr("KMLSCENE_LOG_FILE", ""), "rotate preview server logs into this file")
	flag.Parse()

	ctx := context.Background()

	src := parseSource(*source)
	if src == nil {
		log.Fatalf("invalid source: %q", *source)
	}

	store, err := loadPresets(*presetsDir)
	if err != nil {
		log.Fatalf("Failed to load presets: %v", err)
	}

	var options []orchestrator.Option
	if store != nil {
		options = append(options, orchestrator.WithPresets(store))
	}
	gen := orchestrator.New(options...)

	if *serve {
		if err := runServe(gen, src, *presetName, *addr, *logFile); err != nil {
			log.Fatalf("Preview server failed: %v", err)
		}
		return
	}

	req := orchestrator.Request{
		Source:   src,
		Renderer: *rendererName,
		Preset:   *presetName,
	}

	if *interactive {
		req, err = interactiveRequest(ctx, gen, newSurveyDriver(), req, store)
		if errors.Is(err, ErrAborted) {
			fmt.Fprintln(os.Stderr, "aborted")
			os.Exit(1)
		}
		if err != nil {
			log.Fatalf("Interactive selection failed: %v", err)
		}
	}

	payload, err := gen.Generate(ctx, req)
	if err != nil {
		log.Fatalf("Failed to render scene: %v", err)
	}

	if *output != "" {
		if err := os.WriteFile(*output, payload, 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Printf("Scene written to %s\n", *output)
	} else {
		fmt.Println(string(payload))
	}
}

func runServe(gen *orchestrator.Orchestrator, src kml.Source, presetName, addr, logFile string) error {
	logger := log.New(os.Stderr, "kmlscene ", log.LstdFlags)
	if logFile != "" {
		logger = log.New(&lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		}, "kmlscene ", log.LstdFlags)
	}

	server := &preview.Server{
		Router:    chi.NewRouter(),
		Addr:      addr,
		Logger:    logger,
		Generator: gen,
		Request: orchestrator.Request{
			Source: src,
			Preset: presetName,
		},
	}
	return server.Start()
}

func loadPresets(dir string) (*preset.Store, error) {
	if dir == "" {
		return nil, nil
	}
	return preset.LoadFS(os.DirFS(dir))
}

func parseSource(raw string) kml.Source {
	path := strings.TrimSpace(raw)
	if path == "" {
		return nil
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return kml.SourceFromURL(path)
	}
	return kml.SourceFromFile(path)
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
