package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"fraudreport/adapters/excel"
	"fraudreport/adapters/postgres"
	"fraudreport/app"
	"fraudreport/domain/core"
	"fraudreport/internal"
	"fraudreport/internal/config"
	"fraudreport/internal/ingest"
	"fraudreport/internal/report"
	"fraudreport/ports"
	"fraudreport/ui"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "fraudreport",
		Short: "Credit card fraud analysis pipeline",
	}

	rootCmd.AddCommand(
		newRunCmd(),
		newServeCmd(),
		newExportCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRunCmd() *cobra.Command {
	var seed int64
	var dataPath string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the analysis and write report artifacts",
		Long: `Run the full pipeline: load the transaction file, split it, derive the
resampled training subsets, cross-validate the four model families, tune the
two best, evaluate them on the holdout, and write report.md plus report.xlsx.

Example: fraudreport run --data creditcard.csv --seed 123`,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, cfg, err := execute(cmd.Context(), dataPath, seed)
			if err != nil {
				return err
			}
			return writeArtifacts(result, cfg)
		},
	}

	cmd.Flags().Int64Var(&seed, "seed", 0, "Override the master random seed")
	cmd.Flags().StringVar(&dataPath, "data", "", "Override the dataset path")
	return cmd
}

func newServeCmd() *cobra.Command {
	var seed int64
	var dataPath string
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the analysis and serve the report over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, cfg, err := execute(cmd.Context(), dataPath, seed)
			if err != nil {
				return err
			}
			if err := writeArtifacts(result, cfg); err != nil {
				return err
			}
			if port == 0 {
				port = cfg.Server.Port
			}
			return ui.NewApp(result.Report).Serve(port)
		},
	}

	cmd.Flags().Int64Var(&seed, "seed", 0, "Override the master random seed")
	cmd.Flags().StringVar(&dataPath, "data", "", "Override the dataset path")
	cmd.Flags().IntVar(&port, "port", 0, "Override the viewer port")
	return cmd
}

func newExportCmd() *cobra.Command {
	var reportPath string
	var outDir string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Re-render report artifacts from a saved report.json",
		Long: `Render report.md and report.xlsx from the report.json a previous run
wrote, without recomputing the analysis.

Example: fraudreport export --report out/report.json --out out`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if reportPath == "" {
				reportPath = filepath.Join(cfg.Report.Dir, "report.json")
			}
			if outDir == "" {
				outDir = cfg.Report.Dir
			}
			return exportArtifacts(reportPath, outDir)
		},
	}

	cmd.Flags().StringVar(&reportPath, "report", "", "Path to a saved report.json")
	cmd.Flags().StringVar(&outDir, "out", "", "Directory for the rendered artifacts")
	return cmd
}

func execute(ctx context.Context, dataPath string, seed int64) (*app.AnalysisResult, *config.Config, error) {
	log := internal.DefaultLogger

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if dataPath != "" {
		cfg.Data.Path = dataPath
	}
	if seed != 0 {
		cfg.Pipeline.Seed = seed
	}

	ds, err := ingest.NewDataReader(cfg.Data.Path).ReadDataset()
	if err != nil {
		return nil, nil, err
	}

	var ledger ports.ResultLedger
	if cfg.Database.URL != "" {
		db, err := sqlx.Connect("postgres", cfg.Database.URL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to result ledger: %w", err)
		}
		defer db.Close()
		if err := postgres.EnsureSchema(ctx, db); err != nil {
			return nil, nil, err
		}
		ledger = postgres.NewResultLedger(db)
		log.Info("result ledger enabled")
	}

	service := app.NewAnalysisService(ledger)
	result, err := service.Run(ctx, app.AnalysisRequest{
		Dataset:       ds,
		Seed:          core.Seed(cfg.Pipeline.Seed),
		TrainFraction: cfg.Pipeline.TrainFraction,
		Folds:         cfg.Pipeline.Folds,
		MinorityRatio: cfg.Pipeline.MinorityRatio,
		KeepFraction:  cfg.Pipeline.KeepFraction,
	})
	if err != nil {
		return nil, nil, err
	}
	log.Info("run %s finished in %dms", result.Manifest.RunID, result.Manifest.RuntimeMs)
	return result, cfg, nil
}

func writeArtifacts(result *app.AnalysisResult, cfg *config.Config) error {
	if err := os.MkdirAll(cfg.Report.Dir, 0o755); err != nil {
		return err
	}

	// report.json is the source of truth the export command re-renders from.
	raw, err := json.MarshalIndent(result.Report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	jsonPath := filepath.Join(cfg.Report.Dir, "report.json")
	if err := os.WriteFile(jsonPath, raw, 0o644); err != nil {
		return err
	}

	return renderArtifacts(result.Report, cfg.Report.Dir)
}

func exportArtifacts(reportPath, dir string) error {
	raw, err := os.ReadFile(reportPath)
	if err != nil {
		return err
	}
	var rep report.Report
	if err := json.Unmarshal(raw, &rep); err != nil {
		return fmt.Errorf("failed to parse %s: %w", reportPath, err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	return renderArtifacts(&rep, dir)
}

func renderArtifacts(rep *report.Report, dir string) error {
	mdPath := filepath.Join(dir, "report.md")
	if err := os.WriteFile(mdPath, []byte(rep.Markdown()), 0o644); err != nil {
		return err
	}

	xlsxPath := filepath.Join(dir, "report.xlsx")
	if err := excel.WriteWorkbook(rep, xlsxPath); err != nil {
		return err
	}

	internal.DefaultLogger.Info("wrote %s and %s", mdPath, xlsxPath)
	return nil
}
