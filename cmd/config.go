package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/ahkohd/oyo/internal/config"
)

func newConfigCmd(o *rootOptions) *cobra.Command {
	c := &cobra.Command{
		Use:   "config",
		Short: "Manage the config file",
		// config init must work even when the existing file is invalid
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
	}
	c.AddCommand(newConfigInitCmd(o), newConfigShowCmd(o))
	return c
}

func newConfigInitCmd(o *rootOptions) *cobra.Command {
	var force bool

	c := &cobra.Command{
		Use:   "init",
		Short: "Write a starter config file",
		Long: `Write a config file with the default settings. Theme flags given on the
command line are written into it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := o.configFile
			if path == "" {
				p, err := config.DefaultFile()
				if err != nil {
					return err
				}
				path = p
			}

			if !force {
				_, err := os.Stat(path)
				if err == nil {
					return fmt.Errorf("config file %s already exists (use --force to overwrite)", path)
				}
				if !errors.Is(err, fs.ErrNotExist) {
					return err
				}
			}

			cfg := config.Default()
			flags := cmd.Flags()
			for flag, field := range map[string]*string{
				"theme":        &cfg.UI.Theme.Name,
				"theme-mode":   &cfg.UI.Theme.Mode,
				"syntax":       &cfg.UI.Syntax.Mode,
				"syntax-theme": &cfg.UI.Syntax.Theme,
			} {
				if flags.Changed(flag) {
					*field, _ = flags.GetString(flag)
				}
			}
			cfg.Normalize()
			if err := config.Validate(cfg); err != nil {
				return err
			}

			if err := config.Save(path, cfg); err != nil {
				return err
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return err
		},
	}
	c.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")
	return c
}

func newConfigShowCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.load(cmd); err != nil {
				return err
			}
			if o.output == "" || o.output == "text" {
				o.output = "toml"
			}
			return o.write(cmd, o.cfg)
		},
	}
}
