package cmd

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

type uiThemeRow struct {
	Name   string `json:"name" toml:"name"`
	Source string `json:"source" toml:"source"`
	Dark   bool   `json:"dark" toml:"dark"`
	Light  bool   `json:"light" toml:"light"`
}

type uiThemeList struct {
	Themes []uiThemeRow `json:"themes" toml:"themes"`
}

func (l uiThemeList) Text() string {
	rows := make([][]string, 0, len(l.Themes))
	for _, t := range l.Themes {
		rows = append(rows, []string{t.Name, t.Source, check(t.Dark), check(t.Light)})
	}
	return renderTable([]string{"NAME", "SOURCE", "DARK", "LIGHT"}, rows)
}

type syntaxThemeRow struct {
	Name   string `json:"name" toml:"name"`
	Source string `json:"source" toml:"source"`
	Path   string `json:"path,omitempty" toml:"path,omitempty"`
}

type syntaxThemeList struct {
	Themes []syntaxThemeRow `json:"themes" toml:"themes"`
}

func (l syntaxThemeList) Text() string {
	rows := make([][]string, 0, len(l.Themes))
	for _, t := range l.Themes {
		rows = append(rows, []string{t.Name, t.Source, t.Path})
	}
	return renderTable([]string{"NAME", "SOURCE", "PATH"}, rows)
}

func check(ok bool) string {
	if ok {
		return "✓"
	}
	return ""
}

func renderTable(headers []string, rows [][]string) string {
	cell := lipgloss.NewStyle().Padding(0, 1)
	header := cell.Bold(true)
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderColumn(false).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		}).
		Headers(headers...).
		Rows(rows...).
		String()
}

func newThemesCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "List UI themes and the modes they support",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			infos, err := o.engine.UIThemes()
			if err != nil {
				return err
			}
			list := uiThemeList{Themes: make([]uiThemeRow, 0, len(infos))}
			for _, info := range infos {
				list.Themes = append(list.Themes, uiThemeRow{
					Name:   info.Name,
					Source: string(info.Source),
					Dark:   info.Dark,
					Light:  info.Light,
				})
			}
			return o.write(cmd, list)
		},
	}
}

func newSyntaxThemesCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "syntax-themes",
		Short: "List syntax themes",
		Long: `List syntax themes. Built-in themes are addressed by name; user themes
by file name, which can be used as ui.syntax.theme directly.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := o.engine.SyntaxThemes()
			if err != nil {
				return err
			}
			list := syntaxThemeList{Themes: make([]syntaxThemeRow, 0, len(entries))}
			for _, e := range entries {
				list.Themes = append(list.Themes, syntaxThemeRow{
					Name:   e.Name,
					Source: string(e.Source),
					Path:   e.Path,
				})
			}
			return o.write(cmd, list)
		},
	}
}
