package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/genoinsight/genoinsight/internal/clinical"
	"github.com/genoinsight/genoinsight/internal/duckdb"
	"github.com/genoinsight/genoinsight/internal/features"
	"github.com/genoinsight/genoinsight/internal/pipeline"
	"github.com/genoinsight/genoinsight/internal/predict"
	"github.com/genoinsight/genoinsight/internal/server"
)

func newServeCmd() *cobra.Command {
	var (
		addr          string
		ensemble      bool
		duckdbPath    string
		modelsFile    string
		knowledgeFile string
		verbose       bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the annotation HTTP API",
		Example: `  genoinsight serve
  genoinsight serve --addr :8080 --ensemble
  genoinsight serve --duckdb annotations.duckdb`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			configString(cmd, "addr", "server.addr", &addr)

			logger, err := newLogger(verbose)
			if err != nil {
				return fmt.Errorf("creating logger: %w", err)
			}
			defer logger.Sync()

			tables, err := loadTables(knowledgeFile)
			if err != nil {
				return err
			}

			primary, extra, err := loadPredictors(modelsFile)
			if err != nil {
				return err
			}

			scorer := predict.NewScorer(primary, extra...)
			scorer.SetLogger(logger)

			annotator := clinical.NewAnnotator(tables)
			annotator.SetLogger(logger)

			p := pipeline.New(features.NewExtractor(tables), scorer, annotator)
			p.SetLogger(logger)
			if ensemble {
				p.SetMode(predict.ModeEnsemble)
			}

			srvOpts := []server.Option{server.WithLogger(logger)}
			if duckdbPath != "" {
				store, err := duckdb.Open(duckdbPath)
				if err != nil {
					return fmt.Errorf("opening annotation store: %w", err)
				}
				defer store.Close()
				srvOpts = append(srvOpts, server.WithStore(store))
			}

			srv, err := server.New(p, tables, srvOpts...)
			if err != nil {
				return err
			}
			return srv.Run(addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":5000", "Listen address")
	cmd.Flags().BoolVar(&ensemble, "ensemble", false, "Score with the full model ensemble")
	cmd.Flags().StringVar(&duckdbPath, "duckdb", "", "Persist annotations to a DuckDB database at this path")
	cmd.Flags().StringVar(&modelsFile, "models", "", "Load model coefficients from a JSON file")
	cmd.Flags().StringVar(&knowledgeFile, "knowledge", "", "Overlay knowledge tables from a JSON file")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Verbose logging")

	return cmd
}
