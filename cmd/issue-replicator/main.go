package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"issue-replicator/internal/config"
	"issue-replicator/internal/helpers"
	"issue-replicator/internal/services"

	"github.com/spf13/cobra"
)

const (
	exitOK    = 0
	exitFatal = 1
)

type replicateFlags struct {
	configFile    string
	sourceURL     string
	createURL     string
	username      string
	token         string
	successPolicy string
	payloadDir    string
	dryRun        bool
	noColor       bool
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, promptMissing))
}

// prompter fills in missing tracker settings, usually interactively
type prompter func(c *config.TrackerConfig) error

func run(ctx context.Context, args []string, stdout io.Writer, prompt prompter) int {
	out := helpers.NewPrinter(stdout)
	rootCmd := newRootCmd(out, prompt)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stdout)

	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return exitOK
	}
	return reportError(out, err)
}

func newRootCmd(out *helpers.Printer, prompt prompter) *cobra.Command {
	var flags replicateFlags

	var rootCmd = &cobra.Command{
		Use:   "issue-replicator",
		Short: "Issue Replicator - copy an existing tracker issue into a new one",
		Long: `Issue Replicator authenticates against an issue tracker REST API, reads
the fields of an existing issue and creates a new issue with the same project,
summary, description, type, priority, labels and components.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&flags.configFile, "config", "c", "config.yaml", "Configuration file path")
	rootCmd.PersistentFlags().BoolVar(&flags.noColor, "no-color", false, "Disable colored output")

	// Replicate command
	var replicateCmd = &cobra.Command{
		Use:   "replicate",
		Short: "Replicate a source issue into a new issue",
		Long:  "Fetch the issue at --url, print its fields and create a copy at --create-url",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplicate(cmd.Context(), out, &flags, prompt)
		},
	}
	replicateCmd.Flags().StringVarP(&flags.sourceURL, "url", "u", "", "API URL of the source issue")
	replicateCmd.Flags().StringVar(&flags.createURL, "create-url", "", "Issue creation endpoint (defaults to the source host's /rest/api/2/issue)")
	replicateCmd.Flags().StringVar(&flags.username, "username", "", "Tracker username")
	replicateCmd.Flags().StringVar(&flags.token, "token", "", "Tracker API token or password")
	replicateCmd.Flags().StringVar(&flags.successPolicy, "success-policy", "", "Creation statuses treated as success: 2xx or 200")
	replicateCmd.Flags().StringVarP(&flags.payloadDir, "save-payload", "o", "", "Directory to save the creation payload to")
	replicateCmd.Flags().BoolVarP(&flags.dryRun, "dry-run", "d", false, "Show the creation payload without creating the issue")
	rootCmd.AddCommand(replicateCmd)

	// Init command
	var initCmd = &cobra.Command{
		Use:   "init",
		Short: "Write a starter configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.WriteTemplate(flags.configFile); err != nil {
				return err
			}
			out.Success("Configuration template written to %s", flags.configFile)
			return nil
		},
	}
	rootCmd.AddCommand(initCmd)

	return rootCmd
}

func runReplicate(ctx context.Context, out *helpers.Printer, flags *replicateFlags, prompt prompter) error {
	if flags.noColor {
		helpers.DisableColor()
	}

	cfg, err := config.LoadOrDefault(flags.configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	tracker := &cfg.Tracker
	applyFlags(tracker, flags)

	if tracker.SourceURL == "" || tracker.Username == "" || tracker.APIToken == "" {
		if err := prompt(tracker); err != nil {
			return fmt.Errorf("failed to read credentials: %w", err)
		}
	}

	if err := tracker.ApplyDefaults(); err != nil {
		return err
	}
	if err := tracker.Validate(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	out.Title("Replicating Issue")
	out.Info("Source: %s", tracker.SourceURL)
	out.Info("Create at: %s", tracker.CreateURL)
	out.Separator()

	jiraService := services.NewJiraService(tracker, out, services.Options{
		DryRun:     flags.dryRun,
		PayloadDir: flags.payloadDir,
	})
	_, err = jiraService.Run(ctx)
	return err
}

func applyFlags(c *config.TrackerConfig, flags *replicateFlags) {
	if flags.sourceURL != "" {
		c.SourceURL = flags.sourceURL
	}
	if flags.createURL != "" {
		c.CreateURL = flags.createURL
	}
	if flags.username != "" {
		c.Username = flags.username
	}
	if flags.token != "" {
		c.APIToken = flags.token
	}
	if flags.successPolicy != "" {
		c.SuccessPolicy = config.SuccessPolicy(flags.successPolicy)
	}
}

// reportError prints err for the operator and picks the exit code
func reportError(out *helpers.Printer, err error) int {
	var authErr *services.AuthenticationError
	var apiErr *services.TrackerAPIError
	var createErr *services.CreationFailure

	switch {
	case errors.As(err, &authErr):
		out.Error("Authentication failed with status code: %d", authErr.StatusCode)
		out.Warning("Please enter valid credentials and run again.")
	case errors.As(err, &apiErr):
		out.Error("%v", apiErr)
	case errors.As(err, &createErr):
		out.Error("Failed to create issue. Status Code: %d, please try again.", createErr.StatusCode)
		if createErr.Body != "" {
			out.Info("Response: %s", createErr.Body)
		}
	default:
		out.Error("Error: %v", err)
	}

	if services.IsFatal(err) {
		return exitFatal
	}
	return exitOK
}
