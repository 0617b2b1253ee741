package cmd

import (
	"fmt"

	"github.com/haierkeys/keepsake-service/internal/app"

	"github.com/spf13/cobra"
)

func init() {
	var short bool

	versionCmd := &cobra.Command{
		Use:   "version [--short]",
		Short: "打印版本信息并退出",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), versionLine(short))
		},
	}
	versionCmd.Flags().BoolVarP(&short, "short", "s", false, "only print the version number")

	rootCmd.AddCommand(versionCmd)
}

func versionLine(short bool) string {
	if short {
		return app.Version
	}
	return fmt.Sprintf("%s v%s (git: %s, built: %s)", app.Name, app.Version, app.GitTag, app.BuildTime)
}
