package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/ahkohd/oyo/internal/config"
	"github.com/ahkohd/oyo/internal/format"
	"github.com/ahkohd/oyo/internal/logging"
	"github.com/ahkohd/oyo/internal/theme"
)

// rootOptions is the state shared by every subcommand. It is filled in by
// the root PersistentPreRunE.
type rootOptions struct {
	configFile string
	output     string
	color      string

	cfg    *config.Config
	logger *slog.Logger
	engine *theme.Engine
}

// NewRootCmd builds a fresh command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "oyo",
		Short: "Resolve and preview terminal UI and syntax themes",
		Long: `oyo resolves the configured UI theme and syntax highlighting theme.

A UI theme supplies the palette for backgrounds, borders and diff markers.
The syntax theme comes from the ui.syntax.theme setting, a light variant
of the UI theme, the UI theme's own syntax theme, or the built-in ansi
theme, in that order. Custom themes live in the themes directory next to
the config file.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "Config file (default $XDG_CONFIG_HOME/oyo/config.toml)")
	flags.BoolP("debug", "d", false, "Debug logging")
	flags.String("theme", "", "UI theme name")
	flags.String("theme-mode", "", "UI theme mode (dark, light)")
	flags.String("syntax-theme", "", "Syntax theme: built-in name, .tmTheme file name or path")
	flags.String("syntax", "", "Syntax highlighting (on, off)")
	flags.StringVarP(&opts.output, "output", "o", string(format.TextFormat), "Output format (text, json, toml)")
	flags.StringVar(&opts.color, "color", "auto", "Color output (auto, always, never)")

	root.AddCommand(
		newThemesCmd(opts),
		newSyntaxThemesCmd(opts),
		newResolveCmd(opts),
		newPreviewCmd(opts),
		newConfigCmd(opts),
	)
	return root
}

// load reads the configuration and builds the logger and theme engine.
func (o *rootOptions) load(cmd *cobra.Command) error {
	cfg, err := config.Load(config.Options{File: o.configFile, Flags: cmd.Flags()})
	if err != nil {
		return err
	}

	logger, err := logging.Setup(cmd.ErrOrStderr(), logging.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
	if err != nil {
		return err
	}

	themesDir, err := cfg.ResolveThemesDir()
	if err != nil {
		return err
	}
	logger.Debug("Configuration loaded", "file", cfg.File, "themes", themesDir)

	o.cfg = cfg
	o.logger = logger
	o.engine = theme.New(themesDir, theme.WithLogger(logger))
	return nil
}

// themeConfig converts the loaded settings into resolver input.
func (o *rootOptions) themeConfig() (theme.UIConfig, theme.SyntaxConfig, error) {
	mode, err := theme.ParseMode(o.cfg.UI.Theme.Mode)
	if err != nil {
		return theme.UIConfig{}, theme.SyntaxConfig{}, err
	}
	syntaxMode, err := theme.ParseSyntaxMode(o.cfg.UI.Syntax.Mode)
	if err != nil {
		return theme.UIConfig{}, theme.SyntaxConfig{}, err
	}
	return theme.UIConfig{Name: o.cfg.UI.Theme.Name, Mode: mode},
		theme.SyntaxConfig{Mode: syntaxMode, Theme: o.cfg.UI.Syntax.Theme},
		nil
}

// profile picks the color profile for w from the --color flag.
func (o *rootOptions) profile(w io.Writer) (termenv.Profile, error) {
	switch o.color {
	case "", "auto":
		return termenv.NewOutput(w).EnvColorProfile(), nil
	case "always":
		return termenv.TrueColor, nil
	case "never":
		return termenv.Ascii, nil
	default:
		return termenv.Ascii, fmt.Errorf("invalid --color value %q (want auto, always or never)", o.color)
	}
}

// write prints v in the selected output format.
func (o *rootOptions) write(cmd *cobra.Command, v any) error {
	f, err := format.Parse(o.output)
	if err != nil {
		return err
	}
	out, err := format.FormatOutput(v, f)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
	return err
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
