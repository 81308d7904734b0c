// Package cmd provides the root command and CLI setup for prefixlint.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"prefixlint.dev/pkg/prefixlint/internal/adapter"
	"prefixlint.dev/pkg/prefixlint/internal/controller"
	"prefixlint.dev/pkg/prefixlint/internal/domain"
	m "prefixlint.dev/pkg/prefixlint/internal/model"
)

var workspaceResolver adapter.WorkspaceResolver
var fsAdapter adapter.SourceFSAdapter
var ui controller.UI
var workflow domain.Workflow

// manifestPathFlag locates the workspace manifest; shared by check and list.
var manifestPathFlag string

// prefixPathFlag names the file whose bytes form the required prefix.
var prefixPathFlag string

// packagesFlag restricts selection to the named packages.
var packagesFlag []string

// allFlag selects every workspace member.
var allFlag bool

// excludeFlag removes the named packages from the selection.
var excludeFlag []string

// parallelFlag caps the number of concurrent file checks.
var parallelFlag int

// verboseFlag switches logging to debug level.
var verboseFlag bool

const rootLongDescription = `Prefixlint verifies that every source file belonging to the selected
workspace packages starts with a required byte prefix, typically a license
header. Violating paths are printed to stdout, one per line, sorted.

The prefix file may contain the byte 0x1A (SUB) as a wildcard matching any
byte at that position.

Package selection:
  (no flags)       check the workspace's default members
  --all            check every member
  -p, --package    check only the named packages (repeatable)
  -x, --exclude    drop the named packages from the selection (repeatable)`

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	workspaceResolver = adapter.NewTOMLWorkspaceResolver()
	fsAdapter = adapter.NewLocalSourceFSAdapter()
	workflow = domain.NewWorkflow(workspaceResolver, fsAdapter, ui)
}

// rootCmd represents the base command; it runs the check itself.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "prefixlint",
		Short:         "Verify source files start with a required prefix",
		Long:          rootLongDescription,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(verboseFlag)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireFlag(manifestPathFlagName, manifestPathFlag); err != nil {
				return err
			}

			if err := requireFlag(prefixPathFlagName, prefixPathFlag); err != nil {
				return err
			}

			filter, err := m.NewFilter(allFlag, packagesFlag, viper.GetStringSlice(excludeConfigKey))
			if err != nil {
				return err
			}

			return workflow.Check(cmd.Context(), domain.CheckArgs{
				ManifestPath: m.Path(manifestPathFlag),
				PrefixPath:   m.Path(prefixPathFlag),
				Filter:       filter,
				Workers:      viper.GetInt(parallelConfigKey),
			})
		},
	}

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&manifestPathFlag, manifestPathFlagName, "", "path of the workspace manifest to resolve")
	cmd.PersistentFlags().StringArrayVarP(&packagesFlag, packageFlagName, "p", nil, "restrict the check to the named package (can be repeated)")
	cmd.PersistentFlags().BoolVar(&allFlag, allFlagName, false, "select every workspace member")
	cmd.PersistentFlags().StringArrayVarP(&excludeFlag, excludeFlagName, "x", viper.GetStringSlice(excludeConfigKey), "exclude the named package from the selection (can be repeated)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(excludeFlagName), excludeConfigKey)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", false, "enable debug logging")

	cmd.Flags().StringVar(&prefixPathFlag, prefixPathFlagName, "", "file whose bytes form the required prefix pattern")
	cmd.Flags().IntVar(&parallelFlag, parallelFlagName, viper.GetInt(parallelConfigKey), "number of concurrent file checks")
	bindFlagToConfig(cmd.Flags().Lookup(parallelFlagName), parallelConfigKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// requireFlag replaces cobra's required-flag marking: marking the shared
// persistent flags required would break flag-less subcommands like version.
func requireFlag(name, value string) error {
	if value == "" {
		return fmt.Errorf("required flag %q not set", name)
	}

	return nil
}

// Execute runs the root command and centralizes the exit-code decision:
// 0 = all files compliant, 1 = violations found (already printed to
// stdout), 2 = usage or resolution error (message on stderr).
func Execute() {
	os.Exit(run(rootCmd))
}

func run(cmd *cobra.Command) int {
	err := cmd.Execute()

	switch {
	case err == nil:
		return 0
	case errors.Is(err, m.ErrViolationsFound):
		return 1
	default:
		cmd.PrintErrln(err)
		return 2
	}
}
