package main

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/fyerfyer/illogical/pkg/circuit"
	"github.com/fyerfyer/illogical/pkg/engine"
	"github.com/fyerfyer/illogical/pkg/utils"
)

// options holds the persistent flags shared by every subcommand
type options struct {
	configFile string
	verbose    bool
	logFile    string
	maxDepth   int
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "illogical",
		Short:         "Evaluate combinational logic circuits built from session scripts",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&opts.configFile, "config", "", "YAML configuration file")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Verbose output")
	root.PersistentFlags().StringVar(&opts.logFile, "log", "", "Log file (default: stderr)")
	root.PersistentFlags().IntVar(&opts.maxDepth, "max-depth", 0, "Recursion limit for one evaluation (overrides config)")

	root.AddCommand(newRunCommand(opts))
	root.AddCommand(newTableCommand(opts))
	root.AddCommand(newInspectCommand(opts))

	return root
}

// setup loads configuration, applies flag overrides and builds the logger
func (o *options) setup() (utils.Config, *utils.Logger, error) {
	cfg := utils.DefaultConfig()
	if o.configFile != "" {
		loaded, err := utils.LoadConfig(o.configFile)
		if err != nil {
			return cfg, nil, err
		}
		cfg = loaded
	}

	if o.verbose {
		cfg.LogLevel = utils.DebugLevel.String()
	}
	if o.logFile != "" {
		cfg.LogFile = o.logFile
	}
	if o.maxDepth > 0 {
		cfg.MaxDepth = o.maxDepth
	}
	if err := cfg.Validate(); err != nil {
		return cfg, nil, err
	}

	if cfg.LogFile != "" {
		logger, err := utils.NewFileLogger(cfg.Level(), cfg.LogFile)
		if err != nil {
			return cfg, nil, err
		}
		return cfg, logger, nil
	}
	return cfg, utils.NewLogger(cfg.Level()), nil
}

// load parses the script and builds a session for it
func (o *options) load(path string) (utils.Config, *utils.Script, *engine.Session, error) {
	cfg, logger, err := o.setup()
	if err != nil {
		return cfg, nil, nil, err
	}

	logger.Info("Parsing session script from %s", path)
	script, err := utils.ParseScriptFile(path)
	if err != nil {
		return cfg, nil, nil, err
	}

	if o.configFile == "" {
		cfg.Name = script.Name
	}

	return cfg, script, engine.NewSession(engine.NewFromConfig(cfg, logger)), nil
}

func newRunCommand(opts *options) *cobra.Command {
	var metricsAddr string

	cmd := &cobra.Command{
		Use:   "run <script>",
		Short: "Replay a session script and print the result of every tick and eval",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, script, session, err := opts.load(args[0])
			if err != nil {
				return err
			}
			if metricsAddr != "" {
				cfg.MetricsAddr = metricsAddr
			}

			out := cmd.OutOrStdout()
			var writeErr error
			err = session.Run(script, func(c utils.Command, results []engine.Result) {
				title := fmt.Sprintf("line %d: %s", c.Line, c.Type)
				if c.Type == utils.CmdEval {
					title = fmt.Sprintf("line %d: eval %s", c.Line, c.Name)
				}
				if err := utils.WriteValues(out, title, session.Named(results)); err != nil && writeErr == nil {
					writeErr = err
				}
			})
			if err != nil {
				return err
			}
			if writeErr != nil {
				return writeErr
			}

			// Scripts may end with pending changes
			if session.Engine.Trigger.IsDirty() {
				if err := utils.WriteValues(out, "final tick", session.Named(session.Engine.Tick())); err != nil {
					return err
				}
			}

			stats := session.Engine.Stats
			session.Engine.Logger.Info("Circuit: %s", session.Engine.Circuit.Name)
			session.Engine.Logger.Info("Nodes: %d", session.Engine.Circuit.NodeCount())
			session.Engine.Logger.Info("Edges: %d", len(session.Engine.Circuit.Edges()))
			session.Engine.Logger.Info("Ticks: %d, sweeps: %d, rebuilds: %d", stats.Ticks, stats.Sweeps, stats.Rebuilds)

			if cfg.MetricsAddr != "" {
				return serveMetrics(cfg.MetricsAddr, session.Engine.Logger)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address after the replay")
	return cmd
}

// serveMetrics exposes the default registry until interrupted
func serveMetrics(addr string, logger *utils.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	server := &http.Server{Addr: addr, Handler: mux}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	go func() {
		<-stop
		server.Close()
	}()

	logger.Info("Serving metrics on %s/metrics", addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("metrics server: %w", err)
	}
	return nil
}

func newTableCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "table <script>",
		Short: "Print the truth table of the circuit a session script builds",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, script, session, err := opts.load(args[0])
			if err != nil {
				return err
			}
			if err := session.Run(script, nil); err != nil {
				return err
			}

			tt, err := session.Engine.TruthTable(cfg.TruthTableLimit)
			if err != nil {
				return err
			}

			rows := make([][]bool, 0, len(tt.Rows))
			results := make([][]circuit.LogicValue, 0, len(tt.Rows))
			for _, row := range tt.Rows {
				rows = append(rows, row.Inputs)
				results = append(results, row.Outputs)
			}

			return utils.WriteTruthTable(cmd.OutOrStdout(), session.Engine.Circuit.Name,
				session.Labels(tt.Inputs), session.Labels(tt.Outputs), rows, results)
		},
	}
}

func newInspectCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <script>",
		Short: "Print levels, fanout points and cycles of the circuit a session script builds",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, script, session, err := opts.load(args[0])
			if err != nil {
				return err
			}
			if err := session.Run(script, nil); err != nil {
				return err
			}

			c := session.Engine.Circuit
			topo := c.Analyze()
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "%s\n", c)
			fmt.Fprintf(out, "Max level: %d\n", topo.MaxLevel)
			for _, n := range c.Nodes() {
				level := "-"
				if l, ok := topo.Levels[n.ID]; ok {
					level = fmt.Sprint(l)
				}
				fmt.Fprintf(out, "  %-12s %-8s level %s\n", session.Label(n.ID), n.Kind, level)
			}

			fanout := make([]string, 0, len(topo.FanoutPoints))
			for _, ref := range topo.FanoutPoints {
				fanout = append(fanout, session.Label(ref.Node))
			}
			fmt.Fprintf(out, "Fanout points: %s\n", orNone(fanout))
			fmt.Fprintf(out, "Cycles: %s\n", orNone(session.Labels(topo.CyclicNodes())))
			return nil
		},
	}
}

func orNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}
