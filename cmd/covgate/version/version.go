package version

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/meza/coverage-gate/internal/constants"
	"github.com/meza/coverage-gate/internal/environment"
	"github.com/meza/coverage-gate/internal/i18n"
)

func Command() *cobra.Command {
	versionCmd := &cobra.Command{
		Use: "version",
		Short: i18n.T("cmd.version.short", i18n.Tvars{
			Data: &i18n.TData{"appName": constants.AppName},
		}),
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), environment.AppVersion())
		},
	}

	return versionCmd
}
