package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/SathvikHaridasu/SUSTAIN-CITY/internal/config"
	"github.com/SathvikHaridasu/SUSTAIN-CITY/internal/server"
	"github.com/SathvikHaridasu/SUSTAIN-CITY/internal/store"
	"github.com/SathvikHaridasu/SUSTAIN-CITY/pkg/catalog"
	"github.com/SathvikHaridasu/SUSTAIN-CITY/pkg/citygen"
	"github.com/SathvikHaridasu/SUSTAIN-CITY/pkg/grid"
	"github.com/SathvikHaridasu/SUSTAIN-CITY/pkg/season"
	"github.com/SathvikHaridasu/SUSTAIN-CITY/pkg/sim"
	"github.com/SathvikHaridasu/SUSTAIN-CITY/pkg/validation"
)

// loadLayout reads a layout file, validates it, and folds it onto a
// grid. The report covers per-entry findings; a hard error means the
// file is not a layout at all.
func loadLayout(path string) (*grid.Grid, *validation.Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading layout: %w", err)
	}
	cat := catalog.Default()
	placements, report, err := citygen.ParseLayout(string(data), cat)
	if err != nil {
		return nil, nil, err
	}
	return citygen.Fold(placements, cat), report, nil
}

func runScore(path, seasonName string) error {
	s := season.Season(seasonName)
	if !s.Valid() {
		return fmt.Errorf("unknown season %q", seasonName)
	}

	g, report, err := loadLayout(path)
	if err != nil {
		return err
	}
	if !report.Valid {
		printValidationReport(report)
		return fmt.Errorf("layout has validation errors")
	}

	engine := sim.New(nil, nil, sim.WithGrid(g))
	if _, err := engine.SetSeason(s); err != nil {
		return err
	}

	st := engine.Snapshot()
	printMetrics(st)
	return nil
}

func runSimulate(path string, years int, seed int64, speedName string) error {
	if years < 1 {
		return fmt.Errorf("years must be at least 1")
	}
	var pace time.Duration
	if speedName != "" {
		sp := sim.Speed(speedName)
		if !sp.Valid() {
			return fmt.Errorf("unknown speed %q", speedName)
		}
		pace = sp.Interval()
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	g, report, err := loadLayout(path)
	if err != nil {
		return err
	}
	if !report.Valid {
		printValidationReport(report)
		return fmt.Errorf("layout has validation errors")
	}

	engine := sim.New(nil, nil,
		sim.WithGrid(g),
		sim.WithRand(rand.New(rand.NewSource(seed))),
	)

	fmt.Printf("Simulating %d years (seed %d)\n\n", years, seed)
	for i := 0; i < years; i++ {
		if pace > 0 && i > 0 {
			time.Sleep(pace)
		}
		fresh := engine.AdvanceYear()
		st := engine.Snapshot()

		line := fmt.Sprintf("Year %d", st.Year)
		if n := len(st.Disasters.Active); n > 0 && st.Disasters.LastDisasterYear == st.Year {
			line += fmt.Sprintf("  %s %s strikes!", st.Disasters.Active[n-1].Icon, st.Disasters.Active[n-1].Name)
		}
		for _, a := range fresh {
			line += fmt.Sprintf("  %s unlocked: %s", a.Icon, a.Name)
		}
		fmt.Println(line)
	}

	fmt.Println()
	printMetrics(engine.Snapshot())
	return nil
}

func runValidate(path string) error {
	_, report, err := loadLayout(path)
	if err != nil {
		return err
	}
	printValidationReport(report)
	if !report.Valid {
		os.Exit(1)
	}
	return nil
}

func runGenerate(promptArgs []string) error {
	client := citygen.NewClient(os.Getenv("GEMINI_API_KEY"))
	if !client.Enabled() {
		return fmt.Errorf("GEMINI_API_KEY is not set")
	}

	prompt := ""
	for i, a := range promptArgs {
		if i > 0 {
			prompt += " "
		}
		prompt += a
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	text, err := client.Generate(ctx, prompt)
	if err != nil {
		return err
	}

	// Parse to surface problems, but print the raw layout so it can
	// be piped to a file and fed back into score or simulate.
	_, report, err := citygen.ParseLayout(text, catalog.Default())
	if err != nil {
		return err
	}
	if len(report.Errors) > 0 || len(report.Warnings) > 0 {
		printValidationReport(report)
	}
	fmt.Println(text)
	return nil
}

func runServe(addr, dataDir string) error {
	cfg := config.FromEnv()
	if addr != "" {
		cfg.Addr = addr
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(log)

	var repo store.Repo
	if cfg.DataDir != "" {
		fileRepo, err := store.NewFileRepo(cfg.DataDir)
		if err != nil {
			return fmt.Errorf("opening data dir: %w", err)
		}
		repo = fileRepo
	}

	engine := sim.New(nil, nil, sim.WithLogger(log))
	return server.New(cfg, engine, repo, log).Start()
}
