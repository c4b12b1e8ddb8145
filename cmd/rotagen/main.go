package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"rotagen/config"
	"rotagen/core"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"

	// Database drivers
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
)

func main() {
	if err := run(os.Stdout, os.Args[1:]); err != nil {
		slog.Error("Generation failed", "error", err)
		os.Exit(1)
	}
}

func run(output io.Writer, args []string) error {
	flags := flag.NewFlagSet("rotagen", flag.ContinueOnError)
	flags.SetOutput(output)

	configFile := flags.String("config", "", "Path to configuration bundle (defaults apply when empty)")
	dataSourceFile := flags.String("datasource", "", "Path to an extra data source config (optional)")
	templatePath := flags.String("template", "", "Template workbook")
	inputPath := flags.String("input", "", "Input file for xlsx, xls and csv readers")
	readerKind := flags.String("reader", "", "Input reader: xlsx, xls, csv, mysql, postgres, dynamodb")
	reference := flags.String("reference", "", "Freight-return reference workbook")
	outputDir := flags.String("output", "", "Directory for output files")
	dbDSN := flags.String("db-dsn", "", "Database connection string (DSN) for mysql/postgres")
	table := flags.String("table", "", "Table name for mysql, postgres and dynamodb readers")
	workers := flags.Int("workers", 0, "Documents generated in parallel")
	archive := flags.String("archive", "", "Zip file packaging every document")
	s3Bucket := flags.String("s3-bucket", "", "S3 bucket name for uploading output")
	s3Prefix := flags.String("s3-prefix", "", "S3 prefix (folder) for uploaded files")
	logLevel := flags.String("log-level", "info", "Log level: debug, info, warn, error")

	if err := flags.Parse(args); err != nil {
		return err
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", *logLevel, err)
	}
	logger := slog.New(slog.NewTextHandler(output, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	// 1. Load Config Bundle
	slog.Info("Loading configuration bundle", "file", *configFile)
	cfg, _, err := config.LoadConfigBundle(*configFile)
	if err != nil {
		return err
	}
	if *dataSourceFile != "" {
		slog.Info("Loading data source", "file", *dataSourceFile)
		ds, err := config.LoadDataSourceConfig(*dataSourceFile)
		if err != nil {
			return err
		}
		cfg.DataSources = append(cfg.DataSources, *ds)
	}

	// 2. Flags override the bundle
	set := map[string]bool{}
	flags.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if set["template"] {
		cfg.Template.Path = *templatePath
	}
	if set["input"] {
		cfg.Input.Path = *inputPath
	}
	if set["reader"] {
		cfg.Input.Reader = config.ReaderKind(strings.ToLower(*readerKind))
	}
	if set["reference"] {
		cfg.FreightReturn.Reference = *reference
	}
	if set["output"] {
		cfg.Output.Dir = *outputDir
	}
	if set["table"] {
		cfg.Input.Table = *table
	}
	if set["workers"] {
		cfg.Output.Workers = *workers
	}
	if set["archive"] {
		cfg.Output.Archive = *archive
	}
	if set["s3-bucket"] {
		cfg.Output.S3Bucket = *s3Bucket
	}
	if set["s3-prefix"] {
		cfg.Output.S3Prefix = *s3Prefix
	}

	registry := config.NewMemoryConfigRegistry(cfg.DataSources)
	if err := config.NewValidator(registry).ValidateReport(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	ctx := context.Background()

	// 3. Prepare Table Reader
	reader, closeReader, err := newTableReader(ctx, cfg, registry, *dbDSN)
	if err != nil {
		return err
	}
	defer closeReader()

	// 4. Generate Documents
	genCtx := core.NewGenerationContext(cfg, reader, nil)
	assembler := core.NewAssembler(genCtx)
	summary, err := assembler.Generate(ctx)
	if err != nil {
		return fmt.Errorf("generate documents: %w", err)
	}

	if len(summary.Advisories) > 0 {
		fmt.Fprintln(output, "FREIGHT RETURN IDENTIFIED: check the supplier / distribution center of these rows")
		if err := core.RenderAdvisories(output, summary.Advisories); err != nil {
			slog.Error("Failed to render advisories", "error", err)
		}
	}

	failed := summary.Failed()
	slog.Info("Generation finished", "documents", len(summary.Results)-len(failed), "failed", len(failed), "dir", summary.OutputDir)
	if summary.Archive != "" {
		slog.Info("Documents packaged", "archive", summary.Archive)
	}

	// 5. Upload to S3 if configured
	if cfg.Output.S3Bucket != "" {
		slog.Info("Starting S3 upload", "bucket", cfg.Output.S3Bucket, "prefix", cfg.Output.S3Prefix)

		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return fmt.Errorf("unable to load AWS SDK config for S3: %w", err)
		}

		uploader := core.NewS3Uploader(awsCfg, cfg.Output.S3Bucket, cfg.Output.S3Prefix)
		if err := uploader.UploadDirectory(ctx, summary.OutputDir); err != nil {
			return fmt.Errorf("failed to upload output to s3: %w", err)
		}
		slog.Info("Successfully uploaded to S3")
	}

	if len(failed) > 0 {
		return fmt.Errorf("%d of %d documents failed, first: %w", len(failed), len(summary.Results), failed[0].Err)
	}
	return nil
}

func newTableReader(ctx context.Context, cfg *config.ReportConfig, provider config.Provider, dsn string) (core.TableReader, func(), error) {
	noop := func() {}
	in := cfg.Input

	switch in.Reader {
	case config.ReaderDynamoDB:
		slog.Info("Initializing DynamoDB Table Reader", "table", in.Table)
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, noop, fmt.Errorf("unable to load AWS SDK config: %w", err)
		}
		return core.NewDynamoDBTableReader(awsCfg, in.Table), noop, nil
	case config.ReaderMySQL, config.ReaderPostgres:
		driver := string(in.Reader)
		if in.DataSource != "" {
			ds, err := provider.GetDataSourceConfig(in.DataSource)
			if err != nil {
				return nil, noop, err
			}
			driver, dsn = ds.Driver, ds.DSN
		}
		if dsn == "" {
			return nil, noop, fmt.Errorf("db-dsn is required for %s reader", in.Reader)
		}
		slog.Info("Initializing SQL Table Reader", "driver", driver, "table", in.Table)
		db, err := sql.Open(driver, dsn)
		if err != nil {
			return nil, noop, fmt.Errorf("failed to open db connection: %w", err)
		}
		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return nil, noop, fmt.Errorf("failed to ping db: %w", err)
		}
		return core.NewSQLTableReader(db, in.Table), func() { db.Close() }, nil
	case config.ReaderCsv:
		slog.Info("Initializing CSV Table Reader", "file", in.Path)
		return core.NewCsvTableReader(in.Path, in.Comma, in.Encoding), noop, nil
	case config.ReaderXls:
		slog.Info("Initializing XLS Table Reader", "file", in.Path)
		return core.NewXlsTableReader(in.Path), noop, nil
	default:
		slog.Info("Initializing XLSX Table Reader", "file", in.Path, "sheet", in.Sheet)
		return core.NewXlsxTableReader(in.Path, in.Sheet), noop, nil
	}
}
