// setdesc bulk-configures switch interface descriptions from a CSV
// file over SSH, in parallel, and prints a per-host report.
package main

import (
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Notherbood/set-port-descriptions-from-csv/internal/config"
	"github.com/Notherbood/set-port-descriptions-from-csv/internal/configure"
	"github.com/Notherbood/set-port-descriptions-from-csv/internal/device"
	"github.com/Notherbood/set-port-descriptions-from-csv/internal/dispatch"
	"github.com/Notherbood/set-port-descriptions-from-csv/internal/plan"
	"github.com/Notherbood/set-port-descriptions-from-csv/internal/report"
)

// Build-time variables (set via -ldflags)
var (
	version   = "dev"
	buildTime = "unknown"
)

var (
	csvFile string
	workers int
	verify  bool
	dryRun  bool
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "setdesc",
	Short: "Set switch interface descriptions from a CSV file",
	Long: `setdesc reads a CSV with header host,interface,description, groups the
rows by switch, and pushes the description changes to every switch in
parallel over SSH. A description of "blank" (case-insensitive) removes
the description instead of setting that text.

Credentials come from NET_USER, NET_PASS, and optional NET_SECRET, set
in the environment or a .env file in the working directory or its
parent.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if debug {
			log.SetLevel(log.DebugLevel)
		}
	},
	RunE: runConfigure,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.Flags().StringVar(&csvFile, "csv", "set_port_descriptions_from_csv.csv", "CSV file with host,interface,description rows")
	rootCmd.Flags().IntVar(&workers, "workers", dispatch.DefaultWorkers, "How many switches to configure in parallel")
	rootCmd.Flags().BoolVar(&verify, "verify", true, "Re-read each interface's description after saving")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print per-host configuration batches without connecting")

	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(versionCmd)
}

func runConfigure(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return &SetupError{Message: err.Error()}
	}

	hostPlan, err := plan.Load(csvFile)
	if err != nil {
		return &SetupError{Message: err.Error()}
	}

	if dryRun {
		printDryRun(hostPlan)
		return nil
	}

	creds := device.Credentials{
		Username:     cfg.Username,
		Password:     cfg.Password,
		EnableSecret: cfg.Secret,
	}

	log.Infof("configuring %d switches with %d workers", hostPlan.Len(), workers)

	task := dispatch.ConfigureTask(device.Dial, creds, configure.Options{Verify: verify})
	results := dispatch.Run(hostPlan, workers, task)

	failed := report.Write(os.Stdout, results)
	fmt.Println("\nDone.")

	if failed > 0 {
		return &ExecutionError{Message: fmt.Sprintf("%d of %d switches failed", failed, hostPlan.Len())}
	}
	return nil
}

func printDryRun(hostPlan *plan.HostPlan) {
	for _, host := range hostPlan.Hosts() {
		fmt.Printf("=== %s ===\n", host)
		for _, line := range configure.BuildBatch(hostPlan.Entries(host)) {
			fmt.Println(line)
		}
		fmt.Println()
	}
	fmt.Printf("Dry run: %d switches, nothing was sent.\n", hostPlan.Len())
}

var statusCmd = &cobra.Command{
	Use:   "status <host>",
	Short: "Show the current interface status table of one switch",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return &SetupError{Message: err.Error()}
		}

		host := strings.TrimSpace(args[0])
		sess, err := device.Dial(host, device.Credentials{
			Username:     cfg.Username,
			Password:     cfg.Password,
			EnableSecret: cfg.Secret,
		})
		if err != nil {
			return &ExecutionError{Message: err.Error()}
		}
		defer sess.Close()

		statuses, err := device.ShowInterfaceStatus(sess)
		if err != nil {
			return &ExecutionError{Message: err.Error()}
		}

		fmt.Printf("%-12s %-24s %-12s %-8s %-8s %-8s %s\n",
			"PORT", "DESCRIPTION", "STATUS", "VLAN", "DUPLEX", "SPEED", "TYPE")
		for _, s := range statuses {
			fmt.Printf("%-12s %-24s %-12s %-8s %-8s %-8s %s\n",
				s.Interface, s.Description, s.Status, s.VlanID, s.Duplex, s.Speed, s.Type)
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("setdesc %s\n", version)
		fmt.Printf("Built: %s\n", buildTime)
	},
}

// ExecutionError means the run happened but at least one switch failed
// (exit code 1).
type ExecutionError struct {
	Message string
}

func (e *ExecutionError) Error() string {
	return e.Message
}

// SetupError means the run never started: bad flags, credentials, or
// CSV (exit code 2).
type SetupError struct {
	Message string
}

func (e *SetupError) Error() string {
	return e.Message
}

// getExitCode maps error types to exit codes:
//   - 0: all switches succeeded
//   - 1: run completed, one or more switches failed
//   - 2: setup error before any switch was touched
func getExitCode(err error) int {
	if err == nil {
		return 0
	}
	switch err.(type) {
	case *ExecutionError:
		return 1
	default:
		return 2
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(getExitCode(err))
	}
}
