package main

import (
	"context"
	"fmt"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/dshills/mindchord/internal/app"
	"github.com/dshills/mindchord/internal/command"
	"github.com/dshills/mindchord/internal/config"
	"github.com/dshills/mindchord/internal/input/gesture"
	"github.com/dshills/mindchord/internal/logging"
	"github.com/dshills/mindchord/internal/storage"
)

type cli struct {
	configPath string
	debug      bool
	logFile    string
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	cmd := &cobra.Command{
		Use:           "mindchord",
		Short:         "Gesture and keyboard driven outliner",
		SilenceUsage:  true,
		SilenceErrors: true,
		Example: strings.TrimSpace(`
  # Start the interactive outliner
  mindchord

  # List every command with its gesture and keys
  mindchord commands

  # Find what a gesture would run
  mindchord resolve rdr
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runInteractive(cmd.Context())
		},
	}

	cmd.PersistentFlags().StringVarP(&c.configPath, "config", "c", config.DefaultPath(), "Path to configuration file")
	cmd.PersistentFlags().BoolVarP(&c.debug, "debug", "d", false, "Log at debug level")
	cmd.PersistentFlags().StringVar(&c.logFile, "log-file", "", "Write logs to this file")

	cmd.AddCommand(newCommandsCmd(c))
	cmd.AddCommand(newResolveCmd(c))
	cmd.AddCommand(newConflictsCmd(c))
	cmd.AddCommand(newVersionCmd())
	return cmd
}

// loadConfig reads the config file and applies flag overrides.
func (c *cli) loadConfig() (config.Config, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return cfg, err
	}
	if c.debug {
		cfg.Log.Level = logging.LevelDebug
	}
	if c.logFile != "" {
		cfg.Log.File = c.logFile
	}
	return cfg, nil
}

// offline builds an application for one-shot commands. Nothing is written
// to the data directory.
func (c *cli) offline(cmd *cobra.Command) (*app.Application, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	level := logging.LevelWarn
	if c.debug {
		level = logging.LevelDebug
	}
	return app.New(app.Options{
		Config:  &cfg,
		Storage: storage.NewMemory(),
		Logger:  logging.New(logging.Config{Level: level, Output: cmd.ErrOrStderr(), Prefix: config.AppName}),
	})
}

func (c *cli) runInteractive(ctx context.Context) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	application, err := app.New(app.Options{ConfigPath: c.configPath, Config: &cfg})
	if err != nil {
		return err
	}
	defer application.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create terminal: %w", err)
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return application.Run(ctx, screen)
}

func newCommandsCmd(c *cli) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "commands",
		Short: "List commands with their gestures and keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := c.offline(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			cmds := a.Registry().Commands()
			sort.SliceStable(cmds, func(i, j int) bool { return cmds[i].ID < cmds[j].ID })

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tGESTURE\tKEYS\tLABEL")
			for _, cm := range cmds {
				if cm.HideFromHelp && !all {
					continue
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", cm.ID, gestureList(cm), chordList(cm), cm.Label)
			}
			return w.Flush()
		},
	}
	cmd.Flags().BoolVarP(&all, "all", "a", false, "Include commands hidden from help")
	return cmd
}

func newResolveCmd(c *cli) *cobra.Command {
	var candidates bool
	cmd := &cobra.Command{
		Use:   "resolve <gesture>",
		Short: "Show the command a gesture runs",
		Long:  "Resolve a gesture written with the letters l, r, u, d (for example \"rdr\").",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seq, err := gesture.ParseSequence(args[0])
			if err != nil {
				return err
			}
			a, err := c.offline(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			out := cmd.OutOrStdout()
			if candidates {
				for _, cm := range a.Resolver().Candidates(seq) {
					fmt.Fprintf(out, "%s\t%s\n", cm.Gesture().Arrows(), cm.Label)
				}
				return nil
			}

			cm := a.Resolver().ResolveGesture(seq)
			if cm == nil {
				return fmt.Errorf("no command for %s", seq.Arrows())
			}
			fmt.Fprintf(out, "%s\t%s\n", cm.ID, cm.Label)
			if cm.Source != nil {
				fmt.Fprintf(out, "chained after %s\n", cm.Source.ID)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&candidates, "candidates", false, "List every command the gesture could still complete to")
	return cmd
}

func newConflictsCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "conflicts",
		Short: "Report commands that share a gesture or key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := c.offline(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			conflicts := a.Registry().AllConflicts()
			out := cmd.OutOrStdout()
			if len(conflicts) == 0 {
				fmt.Fprintln(out, "no conflicts")
				return nil
			}
			ids := make([]string, 0, len(conflicts))
			for id := range conflicts {
				ids = append(ids, id)
			}
			sort.Strings(ids)
			for _, id := range ids {
				fmt.Fprintf(out, "%s: %s\n", id, strings.Join(conflicts[id], ", "))
			}
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "mindchord %s\n", version)
			fmt.Fprintf(out, "Commit: %s\n", commit)
			fmt.Fprintf(out, "Built: %s\n", date)
		},
	}
}

func gestureList(c *command.Command) string {
	parts := make([]string, len(c.Gestures))
	for i, g := range c.Gestures {
		parts[i] = g.Arrows()
	}
	return strings.Join(parts, " ")
}

func chordList(c *command.Command) string {
	parts := make([]string, len(c.Keyboard))
	for i, k := range c.Keyboard {
		parts[i] = k.String()
	}
	return strings.Join(parts, " ")
}
