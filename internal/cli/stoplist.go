package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStoplistCommand() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "stoplist",
		Short: "Print the stop phrases in use",
		RunE: func(cmd *cobra.Command, args []string) error {
			if path == "" {
				cfg, err := loadConfig()
				if err != nil {
					return err
				}
				path = cfg.Rake.StoplistPath
			}

			stops, err := loadStoplist(path)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, word := range stops.Words() {
				fmt.Fprintln(out, word)
			}
			fmt.Fprintln(cmd.ErrOrStderr(), infoColor(fmt.Sprintf("%d stop phrases", stops.Len())))
			return nil
		},
	}

	cmd.Flags().StringVarP(&path, "stoplist", "s", "", "Stoplist file (default: embedded SMART list)")

	return cmd
}
