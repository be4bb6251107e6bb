package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var watchCmd = &cobra.Command{
	Use:   "watch [dump files...]",
	Short: "Re-translate files whenever their AST dumps change",
	Long: `Watch AST dump files and re-run the translation when they change.

The watch loop observes the directories containing the given dumps and
re-translates the whole file set on every write, so cross-file tables stay
consistent. Press Ctrl-C to stop.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().AddFlagSet(translateCmd.Flags())
}

func runWatch(command *cobra.Command, args []string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	watched := map[string]bool{}
	for _, argument := range args {
		watched[filepath.Clean(argument)] = true
		if err := watcher.Add(filepath.Dir(argument)); err != nil {
			return fmt.Errorf("watching %s: %w", argument, err)
		}
	}

	translateOnce := func() {
		if err := runTranslate(command, args); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}
	translateOnce()

	verbose := viper.GetBool("verbose")
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if !watched[filepath.Clean(event.Name)] {
				continue
			}
			if verbose {
				fmt.Fprintf(os.Stderr, "%s changed, re-translating\n", event.Name)
			}
			translateOnce()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "watch error: %v\n", err)
		}
	}
}
