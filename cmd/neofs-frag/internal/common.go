package common

import (
	"fmt"
	"os"

	"github.com/cheggaaa/pb"
	"github.com/mitchellh/go-homedir"
	"github.com/nspcc-dev/neofs-frag/cmd/internal/cmderr"
	"github.com/nspcc-dev/neofs-frag/cmd/neofs-frag/config"
	fragmentconfig "github.com/nspcc-dev/neofs-frag/cmd/neofs-frag/config/fragment"
	loggerconfig "github.com/nspcc-dev/neofs-frag/cmd/neofs-frag/config/logger"
	metricsconfig "github.com/nspcc-dev/neofs-frag/cmd/neofs-frag/config/metrics"
	"github.com/nspcc-dev/neofs-frag/pkg/fragment"
	"github.com/nspcc-dev/neofs-frag/pkg/metrics"
	"github.com/nspcc-dev/neofs-frag/pkg/util/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"
)

// Flag names shared by commands.
const (
	ConfigFlag          = "config"
	NoProgressFlag      = "no-progress"
	NoSyncFlag          = "no-sync"
	MetricsTextfileFlag = "metrics-textfile"
)

// Exit codes by failure category.
const (
	ExitCodeGeneric    = 1
	ExitCodeValidation = 2
	ExitCodePath       = 3
	ExitCodeIO         = 4
	ExitCodeFormat     = 5
)

// ExitErr attaches the exit code matching the failure category of err.
// Returns nil if err is nil.
func ExitErr(err error) error {
	if err == nil {
		return nil
	}

	code := ExitCodeGeneric
	switch fragment.KindOf(err).Category() {
	case fragment.CategoryValidation:
		code = ExitCodeValidation
	case fragment.CategoryPath:
		code = ExitCodePath
	case fragment.CategoryIO:
		code = ExitCodeIO
	case fragment.CategoryFormat:
		code = ExitCodeFormat
	}

	return cmderr.ExitErr{Code: code, Cause: err}
}

// AddComponentFlags adds flags that configure the fragment writer and
// the command output.
func AddComponentFlags(cmd *cobra.Command) {
	ff := cmd.Flags()
	ff.Bool(NoProgressFlag, false, "Do not show the progress bar")
	ff.Bool(NoSyncFlag, false, "Do not open created files with O_SYNC (overrides fragment.no_sync)")
	ff.String(MetricsTextfileFlag, "", "Write Prometheus metrics to the file after the run (overrides metrics.textfile)")
}

// Env is a set of components configured for a single command run.
type Env struct {
	Config  *config.Config
	Log     *zap.Logger
	Metrics *metrics.FragmentMetrics

	metricsPath string
	bar         *pb.ProgressBar
}

// ReadConfig reads the configuration file passed via the persistent
// --config flag. ENV variables are applied in any case.
func ReadConfig(cmd *cobra.Command) (*config.Config, error) {
	var (
		prm  config.Prm
		opts []config.Option
	)

	if path, _ := cmd.Flags().GetString(ConfigFlag); path != "" {
		p, err := homedir.Expand(path)
		if err != nil {
			return nil, fmt.Errorf("expand config path: %w", err)
		}
		opts = append(opts, config.WithConfigFile(p))
	}

	return config.New(prm, opts...)
}

// NewEnv reads configuration and builds the logger and, if requested,
// the metrics of a command run.
func NewEnv(cmd *cobra.Command) (*Env, error) {
	cfg, err := ReadConfig(cmd)
	if err != nil {
		return nil, err
	}

	log, err := newLogger(cfg)
	if err != nil {
		return nil, err
	}

	env := &Env{
		Config: cfg,
		Log:    log,
	}

	env.metricsPath = metricsconfig.Textfile(cfg)
	if cmd.Flags().Changed(MetricsTextfileFlag) {
		env.metricsPath, _ = cmd.Flags().GetString(MetricsTextfileFlag)
	}
	if env.metricsPath != "" {
		if env.metricsPath, err = homedir.Expand(env.metricsPath); err != nil {
			return nil, fmt.Errorf("expand metrics path: %w", err)
		}
		env.Metrics = metrics.NewFragmentMetrics()
	}

	return env, nil
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	var prm logger.Prm

	if err := prm.SetLevelString(loggerconfig.Level(cfg)); err != nil {
		return nil, fmt.Errorf("invalid logger level: %w", err)
	}
	if err := prm.SetEncoding(loggerconfig.Encoding(cfg)); err != nil {
		return nil, fmt.Errorf("invalid logger encoding: %w", err)
	}

	ts, set := loggerconfig.Timestamp(cfg)
	prm.SetTimestamp(ts || (!set && term.IsTerminal(int(os.Stdout.Fd()))))

	return logger.NewLogger(&prm)
}

// FragmentOptions returns options for the splitter and the reassembler
// derived from configuration and command flags.
func (e *Env) FragmentOptions(cmd *cobra.Command) ([]fragment.Option, error) {
	perm, err := fragmentconfig.Permissions(e.Config)
	if err != nil {
		return nil, err
	}

	noSync := fragmentconfig.NoSync(e.Config)
	if cmd.Flags().Changed(NoSyncFlag) {
		noSync, _ = cmd.Flags().GetBool(NoSyncFlag)
	}

	opts := []fragment.Option{
		fragment.WithLogger(e.Log),
		fragment.WithPermissions(perm),
		fragment.WithNoSync(noSync),
		fragment.WithMaxBufferSize(fragmentconfig.MaxBufferSize(e.Config)),
	}
	if e.Metrics != nil {
		opts = append(opts, fragment.WithMetrics(e.Metrics))
	}
	return opts, nil
}

// ShowProgress reports whether cmd displays a progress bar: stderr must be
// a terminal and the bar must not be disabled by flag.
func ShowProgress(cmd *cobra.Command) bool {
	if noProgress, _ := cmd.Flags().GetBool(NoProgressFlag); noProgress {
		return false
	}
	f, ok := cmd.ErrOrStderr().(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// StartProgress starts a progress bar over total bytes and returns the
// option feeding it. Nothing is shown unless ShowProgress allows it.
func (e *Env) StartProgress(cmd *cobra.Command, total int64) fragment.Option {
	if !ShowProgress(cmd) {
		return fragment.WithProgress(nil)
	}

	e.bar = pb.New64(total)
	e.bar.Output = cmd.ErrOrStderr()
	e.bar.SetUnits(pb.U_BYTES)
	e.bar.Start()

	return fragment.WithProgress(func(n int64) {
		e.bar.Add64(n)
	})
}

// Close finishes the progress bar, writes metrics and flushes the logger.
func (e *Env) Close() {
	if e.bar != nil {
		e.bar.Finish()
	}

	if e.Metrics != nil {
		if err := e.Metrics.WriteToTextfile(e.metricsPath); err != nil {
			e.Log.Warn("could not write metrics", zap.String("path", e.metricsPath), zap.Error(err))
		}
	}

	_ = e.Log.Sync()
}

// ExpandPath expands the leading tilde of a path argument.
func ExpandPath(p string) (string, error) {
	if p == "" {
		return "", &fragment.Error{Kind: fragment.KindNullPath}
	}

	res, err := homedir.Expand(p)
	if err != nil {
		return "", fmt.Errorf("expand path %q: %w", p, err)
	}
	return res, nil
}
