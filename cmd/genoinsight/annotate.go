package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/genoinsight/genoinsight/internal/clinical"
	"github.com/genoinsight/genoinsight/internal/duckdb"
	"github.com/genoinsight/genoinsight/internal/features"
	"github.com/genoinsight/genoinsight/internal/knowledge"
	"github.com/genoinsight/genoinsight/internal/output"
	"github.com/genoinsight/genoinsight/internal/pipeline"
	"github.com/genoinsight/genoinsight/internal/predict"
	"github.com/genoinsight/genoinsight/internal/vcf"
)

type annotateOptions struct {
	ancestry      string
	ensemble      bool
	minQuality    float64
	maxAF         float64
	passOnly      bool
	outputFormat  string
	outputFile    string
	workers       int
	duckdbPath    string
	duckdbReplace bool
	modelsFile    string
	knowledgeFile string
	verbose       bool
}

func newAnnotateCmd() *cobra.Command {
	var opts annotateOptions

	cmd := &cobra.Command{
		Use:   "annotate [flags] <input-file>",
		Short: "Score and clinically annotate variants from a VCF file",
		Long: `Parse a VCF file, filter low-confidence calls, score pathogenicity with
the reference models, and write clinical annotations plus a summary report.
Use '-' to read from stdin. Gzipped input is detected automatically.`,
		Example: `  genoinsight annotate input.vcf
  genoinsight annotate --ensemble --ancestry "East Asian" input.vcf.gz
  genoinsight annotate -f json -o report.json input.vcf
  cat input.vcf | genoinsight annotate -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			configString(cmd, "ancestry", "ancestry", &opts.ancestry)
			configFloat64(cmd, "min-qual", "filter.min_quality", &opts.minQuality)
			configFloat64(cmd, "max-af", "filter.max_allele_frequency", &opts.maxAF)
			configBool(cmd, "pass-only", "filter.pass_only", &opts.passOnly)
			configString(cmd, "output-format", "output.format", &opts.outputFormat)
			return runAnnotate(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVar(&opts.ancestry, "ancestry", "European", "Patient ancestry for population frequency lookup")
	cmd.Flags().BoolVar(&opts.ensemble, "ensemble", false, "Score with the full model ensemble instead of the primary model")
	cmd.Flags().Float64Var(&opts.minQuality, "min-qual", 20.0, "Minimum variant quality")
	cmd.Flags().Float64Var(&opts.maxAF, "max-af", 0.5, "Maximum cohort allele frequency")
	cmd.Flags().BoolVar(&opts.passOnly, "pass-only", true, "Keep only PASS or unfiltered variants")
	cmd.Flags().StringVarP(&opts.outputFormat, "output-format", "f", "tab", "Output format: tab, json")
	cmd.Flags().StringVarP(&opts.outputFile, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "Parallel annotation workers (default: number of CPUs)")
	cmd.Flags().StringVar(&opts.duckdbPath, "duckdb", "", "Persist annotations to a DuckDB database at this path")
	cmd.Flags().BoolVar(&opts.duckdbReplace, "replace", false, "Clear previously stored annotations before persisting")
	cmd.Flags().StringVar(&opts.modelsFile, "models", "", "Load model coefficients from a JSON file")
	cmd.Flags().StringVar(&opts.knowledgeFile, "knowledge", "", "Overlay knowledge tables from a JSON file")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Verbose logging")

	return cmd
}

func runAnnotate(ctx context.Context, inputPath string, opts *annotateOptions) error {
	logger, err := newLogger(opts.verbose)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer logger.Sync()

	tables, err := loadTables(opts.knowledgeFile)
	if err != nil {
		return err
	}

	primary, extra, err := loadPredictors(opts.modelsFile)
	if err != nil {
		return err
	}

	scorer := predict.NewScorer(primary, extra...)
	scorer.SetLogger(logger)

	annotator := clinical.NewAnnotator(tables)
	annotator.SetLogger(logger)

	p := pipeline.New(features.NewExtractor(tables), scorer, annotator)
	p.SetLogger(logger)
	p.SetWorkers(opts.workers)
	if opts.ensemble {
		p.SetMode(predict.ModeEnsemble)
	}

	parser, err := vcf.NewParser(inputPath)
	if err != nil {
		return fmt.Errorf("opening input: %w", err)
	}
	defer parser.Close()

	var variants []*vcf.Variant
	for {
		v, err := parser.Next()
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}
		if v == nil {
			break
		}
		variants = append(variants, v)
	}

	filtered := vcf.Filter(variants, vcf.FilterOptions{
		MinQuality:  opts.minQuality,
		MaxCohortAF: opts.maxAF,
		PassOnly:    opts.passOnly,
	})
	var snvs, indels int
	for _, v := range filtered {
		switch {
		case v.IsSNV():
			snvs++
		case v.IsIndel():
			indels++
		}
	}
	fmt.Fprintf(os.Stderr, "Parsed %d variants (%d skipped lines), %d passed filters (%d SNVs, %d indels)\n",
		len(variants), parser.SkippedLines(), len(filtered), snvs, indels)

	res, err := p.Run(ctx, vcf.NewSliceSource(filtered), opts.ancestry)
	if err != nil {
		return err
	}
	if res.Failed > 0 {
		fmt.Fprintf(os.Stderr, "Warning: %d variants failed annotation\n", res.Failed)
	}
	if res.Truncated {
		fmt.Fprintf(os.Stderr, "Warning: run cancelled before all variants were processed\n")
	}

	report := clinical.Summarize(res.Annotations)

	if opts.duckdbPath != "" {
		store, err := duckdb.Open(opts.duckdbPath)
		if err != nil {
			return fmt.Errorf("opening annotation store: %w", err)
		}
		defer store.Close()
		if opts.duckdbReplace {
			if err := store.ClearAnnotations(); err != nil {
				return fmt.Errorf("clearing annotation store: %w", err)
			}
		}
		if err := store.WriteAnnotations(res.Annotations); err != nil {
			return fmt.Errorf("persisting annotations: %w", err)
		}
	}

	out := os.Stdout
	if opts.outputFile != "" {
		out, err = os.Create(opts.outputFile)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer out.Close()
	}

	var writer output.Writer
	switch opts.outputFormat {
	case "tab":
		writer = output.NewTabWriter(out)
	case "json":
		writer = output.NewJSONWriter(out)
	default:
		return fmt.Errorf("unknown output format %q", opts.outputFormat)
	}

	if err := writer.WriteHeader(); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, ann := range res.Annotations {
		if err := writer.Write(ann); err != nil {
			return fmt.Errorf("writing annotation: %w", err)
		}
	}
	if err := writer.WriteReport(report); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return writer.Flush()
}

func loadTables(path string) (*knowledge.Tables, error) {
	if path == "" {
		return knowledge.Default(), nil
	}
	tables, err := knowledge.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading knowledge tables: %w", err)
	}
	return tables, nil
}

func loadPredictors(path string) (predict.Predictor, []predict.Predictor, error) {
	if path == "" {
		primary, extra := predict.DefaultPredictors()
		return primary, extra, nil
	}
	primary, extra, err := predict.LoadModels(path)
	if err != nil {
		return nil, nil, fmt.Errorf("loading models: %w", err)
	}
	return primary, extra, nil
}
