package commands

import (
	"io"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"opkit/internal/layout"
	"opkit/internal/settings"
)

// layout <project-dir>: print the resolved layout without touching disk.
func layoutCmd(opts *options, stdout, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "layout <project-dir>",
		Short: "Print the bundle layout a build would produce, as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := opts.wire(stderr)
			if err != nil {
				return err
			}

			s, err := settings.Load(filepath.Join(args[0], settings.FileName), w.Platform)
			if err != nil {
				return err
			}
			if err := s.Validate(); err != nil {
				return err
			}
			if !opts.noDebug {
				if err := s.ApplyDebug(); err != nil {
					return err
				}
			}
			plan, err := layout.Resolve(s, w.Platform, args[0])
			if err != nil {
				return err
			}

			enc := yaml.NewEncoder(stdout)
			enc.SetIndent(2)
			if err := enc.Encode(plan); err != nil {
				return err
			}
			return enc.Close()
		},
	}
}
