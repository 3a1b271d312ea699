package cmd

import (
	"fmt"
	"strings"

	"github.com/getlawrence/autodoc/internal/languages"
	"github.com/spf13/cobra"
)

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List supported programming languages",
	Long:  `List the languages autodoc can document, their file extensions and where documentation is placed.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "🗣️  Supported Programming Languages:\n")
		fmt.Fprintf(out, "===================================\n\n")

		for _, id := range languages.DefaultRegistry.IDs() {
			plugin, _ := languages.DefaultRegistry.Get(id)
			fmt.Fprintf(out, "📦 %s (%s)\n", plugin.DisplayName(), id)
			fmt.Fprintf(out, "   Extensions: %s\n", strings.Join(plugin.FileExtensions(), ", "))
			fmt.Fprintf(out, "   Doc placement: %s\n", plugin.DocStyle())
			if plugin.SupportsTypeHints() {
				fmt.Fprintf(out, "   Type hints: yes\n")
			}
			fmt.Fprintln(out)
		}
	},
}

func init() {
	rootCmd.AddCommand(languagesCmd)
}
