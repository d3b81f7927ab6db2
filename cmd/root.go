package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/flashfs/nffsrestore/pkg/app"
)

var (
	verbose      bool
	quiet        bool
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "nffsrestore",
	Short: "Log-structured flash filesystem restore and mount inspector",
	Long: `nffsrestore scans a raw flash image area by area, reconstructs the
inode and block graph the log describes, and resolves the crash and
corruption cases a log-structured filesystem's own mount path has to
handle — stale overwrites, forward references, and a GC crash that
leaves two copies of the same area on disk.

Commands:
  mount    restore a flash image and report whether it mounts cleanly
  fsck     restore with strict scanning and report the first anomaly found
  list     restore a flash image and print its directory tree`,
	Version: "0.1.0-dev",
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress output except errors")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "table", "output format (only table output is produced)")
}

// GetVerbose returns the verbose flag value
func GetVerbose() bool {
	return verbose
}

// GetQuiet returns the quiet flag value
func GetQuiet() bool {
	return quiet
}

// GetOutputFormat returns the output format
func GetOutputFormat() string {
	return outputFormat
}

// appContext builds the app.Context every subcommand logs and reports
// errors through, carrying the persistent flags parsed at the root.
func appContext() *app.Context {
	ctx := app.NewContext()
	ctx.Verbose = verbose
	ctx.Quiet = quiet
	ctx.OutputFormat = outputFormat
	return ctx
}
