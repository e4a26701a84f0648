package main

import (
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/katalvlaran/beliefprop/factorgraph"
	"github.com/katalvlaran/beliefprop/internal/logging"
	"github.com/katalvlaran/beliefprop/metrics"
	"github.com/katalvlaran/beliefprop/model"
	"github.com/katalvlaran/beliefprop/sumproduct"
	"github.com/katalvlaran/beliefprop/tensor"
)

const envPrefix = "BPINFER"

// Config keys, shared by flags, env (BPINFER_<KEY>) and the config file.
const (
	keyModel    = "model"
	keyLogLevel = "log-level"
	keyEpsilon  = "epsilon"
	keyMetrics  = "metrics"
	keyFormat   = "format"
)

// newRootCmd builds the command tree with its own viper instance.
func newRootCmd() *cobra.Command {
	v := viper.New()
	var cfgFile string

	root := &cobra.Command{
		Use:           "bpinfer",
		Short:         "Exact marginals on tree factor graphs",
		Long:          `bpinfer reads a YAML/JSON factor graph and runs sum-product belief propagation on it.`,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(v, cfgFile)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (yaml)")
	pf.StringP(keyModel, "m", "", "model file (yaml or json)")
	pf.String(keyLogLevel, "info", "log level: debug|info|warn|error")
	pf.Float64(keyEpsilon, tensor.DefaultEpsilon, "tolerance for probability checks")
	pf.Bool(keyMetrics, false, "print engine counters to stderr when done")
	for _, k := range []string{keyModel, keyLogLevel, keyEpsilon, keyMetrics} {
		_ = v.BindPFlag(k, pf.Lookup(k))
	}

	root.AddCommand(newValidateCmd(v), newMarginalCmd(v), newMessagesCmd(v))

	return root
}

// initConfig wires env variables and the optional config file into v.
func initConfig(v *viper.Viper, cfgFile string) error {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if cfgFile == "" {
		return nil
	}
	v.SetConfigFile(cfgFile)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	return nil
}

// session is one loaded model plus the engine evaluating it.
type session struct {
	doc       *model.Document
	graph     *factorgraph.Graph
	engine    *sumproduct.Engine
	logger    *slog.Logger
	registry  *prometheus.Registry
	epsilon   float64
	printMetr bool
}

// openSession loads the configured model and prepares an engine.
func openSession(cmd *cobra.Command, v *viper.Viper) (*session, error) {
	logger := logging.NewWithWriter(cmd.ErrOrStderr(), logging.ParseLevel(v.GetString(keyLogLevel)))

	path := v.GetString(keyModel)
	if path == "" {
		return nil, fmt.Errorf("no model file: pass --%s or set %s_MODEL", keyModel, envPrefix)
	}
	eps := v.GetFloat64(keyEpsilon)
	if eps < 0 || math.IsNaN(eps) || math.IsInf(eps, 0) {
		return nil, fmt.Errorf("--%s must be a finite non-negative number, got %g", keyEpsilon, eps)
	}

	doc, err := model.Load(path)
	if err != nil {
		logger.Error("load model", "path", path, "error", err)
		return nil, err
	}
	g, err := doc.Graph()
	if err != nil {
		logger.Error("build graph", "path", path, "error", err)
		return nil, err
	}

	s := &session{
		doc:       doc,
		graph:     g,
		logger:    logger,
		registry:  prometheus.NewRegistry(),
		epsilon:   eps,
		printMetr: v.GetBool(keyMetrics),
	}
	collector, err := metrics.NewCollector(s.registry)
	if err != nil {
		return nil, err
	}
	s.engine = sumproduct.New(g,
		sumproduct.WithLogger(logger),
		sumproduct.WithHooks(collector.Hooks()),
	)
	logger.Debug("model loaded",
		"path", path,
		"session", s.engine.SessionID(),
		"variables", len(g.Variables()),
		"factors", len(g.Factors()),
	)

	return s, nil
}

// close prints gathered counters when --metrics is set.
func (s *session) close(cmd *cobra.Command) error {
	if !s.printMetr {
		return nil
	}
	families, err := s.registry.Gather()
	if err != nil {
		return err
	}
	w := cmd.ErrOrStderr()
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			labels := make([]string, 0, len(m.GetLabel()))
			for _, lp := range m.GetLabel() {
				labels = append(labels, fmt.Sprintf("%s=%q", lp.GetName(), lp.GetValue()))
			}
			sort.Strings(labels)
			fmt.Fprintf(w, "%s{%s} %g\n", mf.GetName(), strings.Join(labels, ","), m.GetCounter().GetValue())
		}
	}

	return nil
}
