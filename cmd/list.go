package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"prefixlint.dev/pkg/prefixlint/internal/controller"
	"prefixlint.dev/pkg/prefixlint/internal/domain"
	m "prefixlint.dev/pkg/prefixlint/internal/model"
)

var listFormatFlag string

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the selected packages and their target files",
		Long: `List the packages the current selection flags would check, together with
their target source paths, without reading any of the files.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireFlag(manifestPathFlagName, manifestPathFlag); err != nil {
				return err
			}

			format := controller.ListFormat(listFormatFlag)
			if !format.Valid() {
				return fmt.Errorf("unknown format %q (want %s or %s)", listFormatFlag, controller.FormatTable, controller.FormatYAML)
			}

			filter, err := m.NewFilter(allFlag, packagesFlag, viper.GetStringSlice(excludeConfigKey))
			if err != nil {
				return err
			}

			return workflow.List(cmd.Context(), domain.ListArgs{
				ManifestPath: m.Path(manifestPathFlag),
				Filter:       filter,
				Format:       format,
			})
		},
	}

	cmd.Flags().StringVarP(&listFormatFlag, formatFlagName, "f", string(controller.FormatTable), "output format: table or yaml")

	return cmd
}

func init() {
	rootCmd.AddCommand(listCmd)
}
