package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"StockScope/internal/analysis"
	"StockScope/internal/config"
	"StockScope/internal/marketdata"
	"StockScope/internal/recorder"
	"StockScope/internal/report"
	"StockScope/internal/scheduler"
)

const version = "1.0.0"

var (
	cfgPath   string
	ticker    string
	startDate string
	endDate   string
	capital   float64
	tailRows  int
)

func main() {
	_ = godotenv.Load()
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	rootCmd := &cobra.Command{
		Use:   "stockscope",
		Short: "Golden Cross stock analysis and backtesting",
		Long: `stockscope downloads daily OHLCV data, derives SMA/RSI/MACD
indicators and backtests the Golden Cross strategy (long while the fast
SMA is above the slow SMA).`,
		RunE: runAnalyze,
	}

	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "config file (default configs/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&ticker, "ticker", "t", "", "ticker symbol override")
	rootCmd.PersistentFlags().StringVar(&startDate, "start", "", "start date override (2006-01-02)")
	rootCmd.PersistentFlags().StringVar(&endDate, "end", "", "end date override (2006-01-02)")
	rootCmd.PersistentFlags().Float64Var(&capital, "capital", 0, "initial capital override")
	rootCmd.PersistentFlags().IntVar(&tailRows, "rows", 0, "indicator rows to print")

	rootCmd.AddCommand(analyzeCmd(), compareCmd(), watchCmd(), versionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func analyzeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze",
		Short: "Run the analysis and backtest once",
		RunE:  runAnalyze,
	}
}

func runAnalyze(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	params, err := paramsFromConfig(cfg)
	if err != nil {
		return err
	}

	pipeline := analysis.New(buildFetcher(cfg), analysis.NewCache())
	rec := buildRecorder(cfg)
	defer rec.Close()

	rep, err := pipeline.Run(params)
	if err != nil {
		return err
	}
	fmt.Print(report.FormatReport(rep, optionsFromConfig(cfg)))

	if err := rec.RecordRun(recorder.NewRunRecord(rep)); err != nil {
		log.Printf("[ERROR] record run: %v", err)
	}
	return nil
}

func compareCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compare [tickers...]",
		Short: "Compare tickers on a normalized base of 100",
		RunE: func(_ *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			tickers := args
			if len(tickers) == 0 {
				tickers = cfg.Compare.Tickers
			}

			start, end, err := cfg.DateRange()
			if err != nil {
				return err
			}

			pipeline := analysis.New(buildFetcher(cfg), nil)
			perf, err := pipeline.Compare(tickers, start, end)
			if err != nil {
				return err
			}
			fmt.Print(report.FormatCompare(perf))
			return nil
		},
	}
}

func watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Re-run the analysis on a cron schedule and record history",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			params, err := paramsFromConfig(cfg)
			if err != nil {
				return err
			}

			pipeline := analysis.New(buildFetcher(cfg), analysis.NewCache())
			rec := buildRecorder(cfg)
			defer rec.Close()

			sched := scheduler.NewScheduler(pipeline, rec, params, optionsFromConfig(cfg))
			if err := sched.Register(cfg.Schedule.WatchCron); err != nil {
				return err
			}
			sched.Start()
			defer sched.Stop()

			if os.Getenv("RUN_ON_START") == "true" {
				go sched.RunNow()
			}

			log.Printf("[INFO] watching %s (cron %q), press Ctrl+C to stop", cfg.Ticker, cfg.Schedule.WatchCron)
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			<-sigCh
			log.Println("[INFO] shutdown signal received, stopping")
			return nil
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Println("stockscope", version)
		},
	}
}

func loadConfig() (*config.Config, error) {
	path := cfgPath
	if path == "" {
		path = "configs/config.yaml"
		if v := os.Getenv("CONFIG_PATH"); v != "" {
			path = v
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	// Flag overrides beat both file and environment.
	if ticker != "" {
		cfg.Ticker = ticker
	}
	if startDate != "" {
		cfg.StartDate = startDate
	}
	if endDate != "" {
		cfg.EndDate = endDate
	}
	if capital > 0 {
		cfg.InitialCapital = capital
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

func paramsFromConfig(cfg *config.Config) (analysis.Params, error) {
	start, end, err := cfg.DateRange()
	if err != nil {
		return analysis.Params{}, err
	}
	return analysis.Params{
		Ticker:         cfg.Ticker,
		Start:          start,
		End:            end,
		InitialCapital: cfg.InitialCapital,
		Windows:        cfg.Windows,
	}, nil
}

func optionsFromConfig(cfg *config.Config) report.Options {
	return report.Options{
		ShowSMAFast: cfg.Display.SMAFast,
		ShowSMASlow: cfg.Display.SMASlow,
		ShowRSI:     cfg.Display.RSI,
		ShowMACD:    cfg.Display.MACD,
		TailRows:    tailRows,
	}
}

func buildFetcher(cfg *config.Config) marketdata.Fetcher {
	var fetcher marketdata.Fetcher
	if cfg.DataSource.Provider == "csv" {
		fetcher = marketdata.NewCSVFetcher(cfg.DataSource.CSVDir)
	} else {
		fetcher = marketdata.NewYahooFetcher(cfg.Proxy)
	}
	log.Printf("[INFO] data source: %s", fetcher.Name())
	return fetcher
}

func buildRecorder(cfg *config.Config) recorder.Recorder {
	if cfg.Database.SQLitePath == "" {
		return recorder.NewNoopRecorder()
	}
	sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
	if err != nil {
		log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
		return recorder.NewNoopRecorder()
	}
	return sr
}
