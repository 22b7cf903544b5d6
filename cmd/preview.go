package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ahkohd/oyo/internal/highlight"
	"github.com/ahkohd/oyo/internal/preview"
	"github.com/ahkohd/oyo/internal/tmtheme"
)

func newPreviewCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "preview [old new]",
		Short: "Render a diff with the resolved themes",
		Long: `Render a unified diff between two files using the resolved UI palette
and syntax theme. Without arguments a built-in sample is shown.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 && len(args) != 2 {
				return fmt.Errorf("preview takes no arguments or two files, got %d", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			filename, oldText, newText := preview.SampleFile, preview.SampleOld, preview.SampleNew
			if len(args) == 2 {
				oldData, err := os.ReadFile(args[0])
				if err != nil {
					return fmt.Errorf("failed to read %s: %w", args[0], err)
				}
				newData, err := os.ReadFile(args[1])
				if err != nil {
					return fmt.Errorf("failed to read %s: %w", args[1], err)
				}
				filename, oldText, newText = filepath.Base(args[1]), string(oldData), string(newData)
			}

			ui, syntax, err := o.themeConfig()
			if err != nil {
				return err
			}
			res, err := o.engine.Resolve(ui, syntax)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			profile, err := o.profile(out)
			if err != nil {
				return err
			}

			var doc *tmtheme.Document
			if res.Syntax != nil {
				doc = res.Syntax.Document
				o.logger.Debug("Previewing", "theme", res.UI.Name, "mode", res.Mode, "syntax", res.Syntax.ID.Raw, "step", res.Syntax.Step)
			}
			hl, err := highlight.New(doc, profile)
			if err != nil {
				return err
			}

			rendered, err := preview.NewRenderer(out, res.UI, hl, profile).Render(filename, oldText, newText)
			if err != nil {
				return err
			}
			if rendered == "" {
				_, err = fmt.Fprintln(out, "no differences")
				return err
			}
			_, err = fmt.Fprint(out, rendered)
			return err
		},
	}
}
