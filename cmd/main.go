package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	service "github.com/askolte/rubricform/internal/app"
	"github.com/askolte/rubricform/internal/config"
	"github.com/askolte/rubricform/internal/domain/model"
	"github.com/askolte/rubricform/internal/domain/rubric"
	"github.com/askolte/rubricform/internal/render/report"
	"github.com/askolte/rubricform/pkg/logger"
	"github.com/askolte/rubricform/pkg/metrics"
)

// File permission constants.
const (
	exportFilePermission = 0o644
)

func main() {
	var (
		recordPath  = flag.String("record", "", "Observation record JSON file to render")
		profileName = flag.String("profile", "", "Apply a named focus/weight preset to the record")
		formatsFlag = flag.String("formats", "docx,pdf,json", "Comma-separated export formats")
		outDir      = flag.String("out", "", "Output directory (overrides config)")
		catalogPath = flag.String("catalog", "", "YAML rubric catalog (overrides config)")
		scoresOnly  = flag.Bool("scores", false, "Print the score summary instead of writing exports")
		initCatalog = flag.String("init-catalog", "", "Write the built-in catalog as YAML to the given path and exit")
	)
	flag.Parse()

	// Initialize logging
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	if *initCatalog != "" {
		if err := writeDefaultCatalog(*initCatalog); err != nil {
			log.Error(ctx, "write catalog failed", logger.Error(err))
			os.Exit(1)
		}
		log.Info(ctx, "catalog written", logger.String("path", *initCatalog))
		return
	}

	if *recordPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	cat, err := loadCatalog(firstNonEmpty(*catalogPath, cfg.CatalogPath))
	if err != nil {
		log.Error(ctx, "load catalog failed", logger.Error(err))
		os.Exit(1)
	}

	rec, err := loadRecord(*recordPath)
	if err != nil {
		log.Error(ctx, "load record failed", logger.String("path", *recordPath), logger.Error(err))
		os.Exit(1)
	}

	if *profileName != "" {
		if err := applyProfile(rec, *profileName, cfg.ProfilesPath); err != nil {
			log.Error(ctx, "apply profile failed", logger.String("profile", *profileName), logger.Error(err))
			os.Exit(1)
		}
	}

	svc := service.New(
		service.WithCatalog(cat),
		service.WithLogger(log),
		service.WithDefaultWeight(cfg.DefaultWeight),
		service.WithFontPath(cfg.FontPath),
		service.WithFilenamePrefix(cfg.FilenamePrefix),
	)

	if *scoresOnly {
		if err := printScores(ctx, svc, rec); err != nil {
			log.Error(ctx, "score computation failed", logger.Error(err))
			os.Exit(1)
		}
		return
	}

	dir := firstNonEmpty(*outDir, cfg.OutputDir)
	if err := writeExports(ctx, svc, rec, dir, *formatsFlag); err != nil {
		log.Error(ctx, "export failed", logger.Error(err))
		os.Exit(1)
	}
}

func loadCatalog(path string) (*rubric.Catalog, error) {
	if path == "" {
		return rubric.Default(), nil
	}
	return rubric.Load(path)
}

func loadRecord(path string) (*model.ObservationRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	rec, err := report.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	metrics.RecordRecordLoaded()
	return rec, nil
}

func applyProfile(rec *model.ObservationRecord, name, profilesPath string) error {
	profiles := model.DefaultProfiles()
	if profilesPath != "" {
		loaded, err := model.LoadProfiles(profilesPath)
		if err != nil {
			return err
		}
		profiles = loaded
	}
	p, ok := profiles[name]
	if !ok {
		return fmt.Errorf("profile %q not defined", name)
	}
	p.Apply(rec)
	return nil
}

func printScores(ctx context.Context, svc *service.Service, rec *model.ObservationRecord) error {
	sum, err := svc.Scores(ctx, rec)
	if err != nil {
		return err
	}
	for _, mk := range svc.Catalog().ModuleIDs() {
		avg, ok := sum.PerModule[mk]
		if !ok {
			continue
		}
		fmt.Printf("%s: %.2f / 4\n", mk, avg)
	}
	fmt.Printf("Overall (weighted): %.2f / 4\n", sum.Overall)
	return nil
}

func writeExports(ctx context.Context, svc *service.Service, rec *model.ObservationRecord, dir, formatsFlag string) error {
	for _, name := range strings.Split(formatsFlag, ",") {
		format := service.Format(strings.TrimSpace(name))
		if format == "" {
			continue
		}
		data, err := svc.Export(ctx, rec, format)
		if err != nil {
			return err
		}
		path := filepath.Join(dir, svc.Filename(rec, format))
		if err := os.WriteFile(path, data, exportFilePermission); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		fmt.Println(path)
	}
	return nil
}

func writeDefaultCatalog(path string) error {
	data, err := rubric.EncodeYAML(rubric.Default())
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, exportFilePermission)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
