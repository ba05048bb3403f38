package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/goccy/go-json"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/poolforge/repool/internal/demo"
	"github.com/poolforge/repool/pkg/catalog"
	"github.com/poolforge/repool/pkg/config"
	"github.com/poolforge/repool/pkg/logger"
	"github.com/poolforge/repool/pkg/metrics"
	"github.com/poolforge/repool/pkg/respool"
)

var version = "0.1.0"

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:   "repool",
		Short: "repool - in-process object reuse toolkit",
		Long: `repool hands out previously-constructed instances of expensive resources
instead of building new ones on every request. This CLI drives the engine
against a prototype catalog for inspection and benchmarking.`,
	}

	// Version command
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("repool v%s\n", version)
			fmt.Printf("Go version: %s\n", runtime.Version())
			fmt.Printf("OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	})

	// Inspect command lists the prototypes a catalog directory holds
	var inspectCatalog string
	inspectCmd := &cobra.Command{
		Use:   "inspect",
		Short: "List the prototypes in a catalog directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat := catalog.NewDir(func() *demo.Widget { return &demo.Widget{} })
			protos, err := cat.LoadAll(inspectCatalog)
			if err != nil {
				return err
			}
			fmt.Printf("Prototypes in %s:\n", inspectCatalog)
			for _, proto := range protos {
				fmt.Printf("  - %s (payload %d)\n", proto.Name, proto.Payload)
			}
			return nil
		},
	}
	inspectCmd.Flags().StringVarP(&inspectCatalog, "catalog", "c", "", "Path to prototype catalog directory (required)")
	_ = inspectCmd.MarkFlagRequired("catalog")
	root.AddCommand(inspectCmd)

	// Bench command
	var benchCatalog, configFile, logLevel string
	var cycles, prewarm, burst int
	var track, enableMetrics bool

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "Drive obtain/free cycles over a catalog-backed registry",
		Long: `Preload a pool registry from the catalog, then repeatedly check out a
burst of instances and drain them back. A burst larger than the pre-warm
count forces on-demand manufacturing and idle-buffer growth, which is the
diagnostic path worth watching in a real host.

Example:
  repool bench --catalog assets/prototypes --cycles 10000 --prewarm 2 --burst 8`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench(benchCatalog, configFile, logLevel, cycles, prewarm, burst, track, enableMetrics)
		},
	}

	benchCmd.Flags().StringVarP(&benchCatalog, "catalog", "c", "", "Path to prototype catalog directory (required)")
	_ = benchCmd.MarkFlagRequired("catalog")
	benchCmd.Flags().StringVar(&configFile, "config", "", "Path to a repool YAML config file (optional)")
	benchCmd.Flags().IntVar(&cycles, "cycles", 10000, "Number of obtain/free cycles to run")
	benchCmd.Flags().IntVar(&prewarm, "prewarm", 2, "Instances manufactured per pool at preload")
	benchCmd.Flags().IntVar(&burst, "burst", 8, "Instances checked out per cycle before draining")
	benchCmd.Flags().BoolVar(&track, "track", true, "Track active instances per pool")
	benchCmd.Flags().BoolVar(&enableMetrics, "enable-metrics", false, "Attach prometheus collectors to every pool")
	benchCmd.Flags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	root.AddCommand(benchCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// runBench preloads a registry and drives burst-shaped checkout cycles
// through it, reporting per-pool statistics at the end.
func runBench(catalogPath, configFile, logLevel string, cycles, prewarm, burst int, track, enableMetrics bool) error {
	cfg := config.New()
	if configFile != "" {
		if err := config.Load(configFile, cfg); err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}
	}
	cfg.CatalogPath = catalogPath
	if enableMetrics {
		cfg.Metrics = true
	}

	if err := logger.Init(logger.Config{
		Level:       logLevel,
		Encoding:    cfg.Logging.Encoding,
		Development: cfg.Logging.Development,
	}); err != nil {
		return err
	}
	log := logger.With(zap.String("component", "repool-cli"))

	cat := catalog.NewDir(func() *demo.Widget { return &demo.Widget{} })
	reg := respool.NewRegistry[*demo.Widget](cat, demo.Factory{}, demo.Lifecycle{}, respool.RegistryConfig{
		CatalogPath:    cfg.CatalogPath,
		DefaultPrewarm: cfg.DefaultPrewarm,
		TrackActive:    track,
		Metrics:        cfg.Metrics,
		Name:           "bench",
	})

	if err := reg.Preload(prewarm, track); err != nil {
		return err
	}
	keys := reg.Keys()
	if len(keys) == 0 {
		return fmt.Errorf("catalog %s holds no prototypes", cfg.CatalogPath)
	}

	log.Info("starting bench",
		zap.Strings("pools", keys),
		zap.Int("cycles", cycles),
		zap.Int("prewarm", prewarm),
		zap.Int("burst", burst))

	timer := metrics.NewTimer("bench")
	checkedOut := make([]*demo.Widget, 0, burst)
	for i := 0; i < cycles; i++ {
		key := keys[i%len(keys)]
		checkedOut = checkedOut[:0]
		for j := 0; j < burst; j++ {
			w, err := reg.Obtain(key)
			if err != nil {
				return err
			}
			w.Visible = true
			w.Attached = true
			checkedOut = append(checkedOut, w)
		}
		if track {
			reg.FreeAll()
		} else {
			for _, w := range checkedOut {
				w.Recycle()
			}
		}
	}
	elapsed := timer.Stop()

	log.Info("bench completed",
		zap.Int("cycles", cycles),
		zap.Duration("elapsed", elapsed),
		zap.Float64("cycles_per_second", float64(cycles)/elapsed.Seconds()))

	report := make(map[string]respool.Stats, reg.Len())
	reg.Range(func(key string, p *respool.Pool[*demo.Widget]) bool {
		report[key] = p.Stats()
		return true
	})

	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))

	_ = logger.Sync()
	return nil
}
