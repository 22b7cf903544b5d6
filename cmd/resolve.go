package cmd

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ahkohd/oyo/internal/logging"
	"github.com/ahkohd/oyo/internal/theme"
)

type syntaxReport struct {
	Theme  string `json:"theme" toml:"theme"`
	Family string `json:"family,omitempty" toml:"family,omitempty"`
	Kind   string `json:"kind" toml:"kind"`
	Step   string `json:"step" toml:"step"`
}

type resolveReport struct {
	Mode    string            `json:"mode" toml:"mode"`
	Theme   string            `json:"theme" toml:"theme"`
	Syntax  *syntaxReport     `json:"syntax,omitempty" toml:"syntax,omitempty"`
	Palette map[string]string `json:"palette" toml:"palette"`
	Events  []logging.Record  `json:"events,omitempty" toml:"events,omitempty"`
}

func (r resolveReport) Text() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "theme:  %s (%s)\n", r.Theme, r.Mode)
	if r.Syntax == nil {
		sb.WriteString("syntax: off\n")
	} else {
		fmt.Fprintf(&sb, "syntax: %s (%s, %s)\n", r.Syntax.Theme, r.Syntax.Kind, r.Syntax.Step)
	}
	for _, e := range r.Events {
		fmt.Fprintf(&sb, "%s: %s", e.Level, e.Message)
		for _, k := range slices.Sorted(maps.Keys(e.Attributes)) {
			fmt.Fprintf(&sb, " %s=%s", k, e.Attributes[k])
		}
		sb.WriteString("\n")
	}
	sb.WriteString("palette:\n")
	for _, t := range theme.RequiredTokens {
		fmt.Fprintf(&sb, "  %-16s %s\n", t, r.Palette[string(t)])
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

func newResolveCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve",
		Short: "Show the effective palette and syntax theme",
		Long: `Resolve the configured themes and print the effective mode, the UI
palette and which syntax theme was chosen. Absorbed syntax theme failures
are listed as events.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ui, syntax, err := o.themeConfig()
			if err != nil {
				return err
			}

			rec, logger := logging.NewRecorder()
			engine := theme.New(o.engine.Catalog().Dir(), theme.WithLogger(logger))
			res, err := engine.Resolve(ui, syntax)
			if err != nil {
				return err
			}

			report := resolveReport{
				Mode:    string(res.Mode),
				Theme:   res.UI.Name,
				Palette: make(map[string]string, len(theme.RequiredTokens)),
				Events:  rec.Records(),
			}
			for t, v := range res.UI.Colors() {
				report.Palette[string(t)] = v
			}
			if res.Syntax != nil {
				report.Syntax = &syntaxReport{
					Theme:  res.Syntax.ID.Raw,
					Family: res.Syntax.ID.Base,
					Kind:   res.Syntax.ID.Kind.String(),
					Step:   string(res.Syntax.Step),
				}
			}
			return o.write(cmd, report)
		},
	}
}
