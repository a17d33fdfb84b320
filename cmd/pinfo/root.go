package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/pranshuparmar/pinfo/internal/config"
	"github.com/pranshuparmar/pinfo/internal/logging"
	"github.com/pranshuparmar/pinfo/internal/output"
	"github.com/pranshuparmar/pinfo/internal/proc"
	"github.com/pranshuparmar/pinfo/internal/process"
	"github.com/pranshuparmar/pinfo/internal/ssh"
	"github.com/pranshuparmar/pinfo/internal/target"
	"github.com/pranshuparmar/pinfo/pkg/model"
)

// global flags
var (
	configPath string
	logLevel   string
	noColor    bool
	noEnv      bool
	pidFlag    int
)

// root command flags
var (
	envOnly     bool
	jsonOutput  bool
	shortOutput bool
	titleFormat string
)

var rootCmd = &cobra.Command{
	Use:   "pinfo [--pid N | NAME]",
	Short: "Show what a running process is and where it is working",
	Long: `pinfo reads a process's name, parent, foreground process group, owner,
working directory, arguments and environment from the operating system and
formats them into a short title, a full report or JSON.`,
	Args:              cobra.MaximumNArgs(1),
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE:              runRoot,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "config file (default is $XDG_CONFIG_HOME/pinfo/config.toml)")
	pf.StringVar(&logLevel, "log-level", "", "log level: trace, debug, info, warn, error")
	pf.BoolVar(&noColor, "no-color", false, "disable colorized output")
	pf.BoolVar(&noEnv, "no-env", false, "never read environment variables")
	pf.IntVar(&pidFlag, "pid", 0, "process id to inspect")

	f := rootCmd.Flags()
	f.BoolVar(&envOnly, "env", false, "show only the command and environment variables")
	f.BoolVar(&jsonOutput, "json", false, "output as JSON")
	f.BoolVar(&shortOutput, "short", false, "print only the formatted title")
	f.StringVar(&titleFormat, "format", "", "title template (%u user, %n name, %d short dir, %D dir)")
}

// setup loads the configuration and applies logging settings before any
// command runs.
func setup(cmd *cobra.Command, _ []string) error {
	cfg := config.Current()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		config.Use(loaded)
		cfg = loaded
	}

	logCfg := cfg.Logging
	if logLevel != "" {
		logCfg.Level = logLevel
	}
	if noColor {
		logCfg.Color = false
	}
	if err := logging.Configure(logCfg); err != nil {
		return fmt.Errorf("configure logging: %w", err)
	}

	logging.New("cli").Debug().Str("command", cmd.Name()).Str("config", configPath).Msg("starting")
	return nil
}

func runRoot(cmd *cobra.Command, args []string) error {
	if envOnly && noEnv {
		return fmt.Errorf("--env and --no-env cannot be combined")
	}

	t, err := targetFromArgs(args)
	if err != nil {
		return err
	}
	pid, err := resolveOne(cmd.OutOrStdout(), t)
	if err != nil {
		return err
	}

	cfg := config.Current()
	readEnv := envOnly || (cfg.ProcessInfo.ReadEnvironment && !noEnv)
	format := titleFormat
	if format == "" {
		format = cfg.ProcessInfo.TitleFormat
	}

	r, err := inspect(t, pid, readEnv, format, cfg.ProcessInfo.RemoteTitleFormat)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	switch {
	case jsonOutput && envOnly:
		return printJSON(w, struct {
			PID     int               `json:"pid"`
			Command []string          `json:"command"`
			Env     map[string]string `json:"env"`
		}{r.Process.PID, r.Process.Args, r.Process.Env})
	case jsonOutput:
		return printJSON(w, r)
	case envOnly:
		output.RenderEnvOnly(w, r.Process, colorFor(w))
	case shortOutput:
		output.RenderShort(w, r, colorFor(w))
	default:
		output.RenderStandard(w, r, colorFor(w))
	}
	return nil
}

// inspect reads pid and everything derived from it.
func inspect(t model.Target, pid int, readEnv bool, format, remoteFormat string) (model.Result, error) {
	info := proc.New(pid, readEnv)
	info.Update()
	if !info.IsValid() {
		return model.Result{}, fmt.Errorf("read process %d: %s", pid, describeError(info.Error()))
	}

	r := model.Result{
		Target:  t,
		Process: info.Snapshot(),
		Title:   info.Format(format),
	}
	r.Ancestry, _ = process.BuildAncestry(pid, process.Live(false))

	if name, ok := info.Name(); ok && name == "ssh" {
		s := ssh.New(info)
		remote := s.Snapshot()
		r.Remote = &remote
		if remoteFormat != "" {
			r.Title = s.Format(remoteFormat)
		}
	}
	return r, nil
}

func describeError(kind proc.ErrorKind) string {
	if kind == proc.NoError {
		return "process information is not available on this platform"
	}
	return kind.String()
}

func targetFromArgs(args []string) (model.Target, error) {
	switch {
	case pidFlag != 0 && len(args) > 0:
		return model.Target{}, fmt.Errorf("give either --pid or a process name, not both")
	case pidFlag != 0:
		return model.Target{Type: model.TargetPID, Value: strconv.Itoa(pidFlag)}, nil
	case len(args) > 0:
		return model.Target{Type: model.TargetName, Value: args[0]}, nil
	default:
		return model.Target{}, fmt.Errorf("no process given: use --pid N or a process name")
	}
}

// resolveOne resolves t and insists on a single match, listing the
// candidates otherwise.
func resolveOne(w io.Writer, t model.Target) (int, error) {
	pids, err := target.Resolve(t)
	if err != nil {
		return 0, err
	}
	if len(pids) == 1 {
		return pids[0], nil
	}

	p := output.NewPrinter(w, false)
	p.Printf("Multiple matching processes found:\n\n")
	for i, pid := range pids {
		info := proc.New(pid, false)
		info.Update()
		args, _ := info.Arguments()
		name, _ := info.Name()
		p.Printf("[%d] PID %d   %s\n", i+1, pid, output.SanitizeLine(proc.FormatCommand(name, args)))
	}
	p.Println()
	return 0, fmt.Errorf("%d processes match %q, re-run with --pid", len(pids), t.Value)
}

func printJSON(w io.Writer, v any) error {
	out, err := output.ToJSON(v)
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	_, err = fmt.Fprintln(w, out)
	return err
}

// colorFor enables colour only for terminals and only without --no-color.
func colorFor(w io.Writer) bool {
	if noColor {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
