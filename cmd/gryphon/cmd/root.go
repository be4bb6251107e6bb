package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "gryphon",
	Short: "Swift to Kotlin source-to-source translator",
	Long: `go-gryphon translates Swift source code to Kotlin.

The translator reads AST dumps produced by the Swift compiler, lowers them
into a language-independent intermediate tree, runs an ordered pipeline of
transpilation passes, and pretty-prints Kotlin source together with an
error map that relocates Kotlin compiler errors back to Swift coordinates.

Library calls are translated through a user-supplied template file mapping
Swift standard-library idioms to their Kotlin spellings.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	if err := viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose")); err != nil {
		exitWithError("binding flags: %v", err)
	}

	viper.SetEnvPrefix("GRYPHON")
	viper.AutomaticEnv()

	viper.SetConfigName("gryphon")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	// A missing configuration file is fine; flags and defaults apply.
	_ = viper.ReadInConfig()
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
