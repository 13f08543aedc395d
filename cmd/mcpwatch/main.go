package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/mcp-tools/mcpwatch/internal/ghcli"
	"github.com/mcp-tools/mcpwatch/pkg/github"
	"github.com/mcp-tools/mcpwatch/pkg/log"
	"github.com/mcp-tools/mcpwatch/pkg/status"
	"github.com/mcp-tools/mcpwatch/pkg/watch"
)

const defaultDescription = "manually added MCP server"

var (
	rootCmd = &cobra.Command{
		Use:     "mcpwatch",
		Short:   "Watch MCP server repositories on GitHub",
		Long:    `mcpwatch subscribes to notifications for a curated list of Model Context Protocol server repositories, so upstream changes don't go unnoticed.`,
		Version: buildInfo.String(),
		RunE:    runBatch,
	}

	// "main" is the legacy spelling of the default batch mode.
	mainCmd = &cobra.Command{
		Use:    "main",
		Short:  "Watch the default MCP server repositories",
		Hidden: true,
		RunE:   runBatch,
	}

	addCmd = &cobra.Command{
		Use:   "add <owner/repo> [description]",
		Short: "Watch one additional repository",
		Long:  `Subscribes to a single repository and records it in the markdown status file when that file exists.`,
		Args:  cobra.RangeArgs(1, 2),
		RunE:  runAdd,
	}

	removeCmd = &cobra.Command{
		Use:   "remove <owner/repo>",
		Short: "Stop watching a repository",
		Args:  cobra.ExactArgs(1),
		RunE:  runRemove,
	}

	listCmd = &cobra.Command{
		Use:   "list",
		Short: "Show subscription state for the default repositories",
		RunE:  runList,
	}
)

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.SetGlobalNormalizationFunc(wordSepNormalizeFunc)

	rootCmd.SetVersionTemplate("{{.Short}}\n{{.Version}}\n")

	rootCmd.PersistentFlags().String("status-file", defaultStatusFile(), "Markdown checklist updated by 'add' when the file exists")
	rootCmd.PersistentFlags().String("gh-bin", "gh", "Name or path of the GitHub CLI binary")
	rootCmd.PersistentFlags().String("log-file", "", "Path to log file")
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable debug logging")

	_ = viper.BindPFlag("status_file", rootCmd.PersistentFlags().Lookup("status-file"))
	_ = viper.BindPFlag("gh_bin", rootCmd.PersistentFlags().Lookup("gh-bin"))
	_ = viper.BindPFlag("log_file", rootCmd.PersistentFlags().Lookup("log-file"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(mainCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(listCmd)
}

func initConfig() {
	viper.SetEnvPrefix("mcpwatch")
	viper.AutomaticEnv()

	// The token keeps the name the wider GitHub tooling ecosystem uses.
	_ = viper.BindEnv("personal_access_token", "GITHUB_PERSONAL_ACCESS_TOKEN")
}

func defaultStatusFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, "notes", "mcp-servers.md")
}

// newService picks the transport: the REST client when a token is set, the
// gh CLI gateway otherwise. Package variable so tests can swap in a fake
// subscriber.
var newService = func() (*watch.Service, *watch.Printer, error) {
	logger, err := log.NewLogger(viper.GetString("log_file"), viper.GetBool("verbose"))
	if err != nil {
		return nil, nil, err
	}

	printer := watch.NewPrinter(os.Stdout)

	var sub watch.Subscriber
	if token := viper.GetString("personal_access_token"); token != "" {
		logger.Debug("using GitHub REST client")
		sub = github.NewClient(token, logger)
	} else {
		logger.Debug("using gh CLI gateway")
		sub = ghcli.NewGateway(viper.GetString("gh_bin"), logger)
	}

	return watch.NewService(sub, printer, logger), printer, nil
}

func runBatch(cmd *cobra.Command, _ []string) error {
	svc, _, err := newService()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if err := svc.CheckAuth(ctx); err != nil {
		return err
	}

	// Partial failures are reported in the summary but deliberately do not
	// change the exit code; automation watching this tool relies on that.
	svc.WatchAll(ctx, watch.DefaultTargets())
	return nil
}

func runAdd(cmd *cobra.Command, args []string) error {
	repo := args[0]
	description := defaultDescription
	if len(args) == 2 {
		description = args[1]
	}

	svc, printer, err := newService()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if err := svc.CheckAuth(ctx); err != nil {
		return err
	}

	if err := svc.Watch(ctx, watch.Target{Repo: repo, Description: description}); err != nil {
		return err
	}

	statusFile := status.NewFile(viper.GetString("status_file"))
	appended, err := statusFile.Append(repo)
	if err != nil {
		printer.Warnf("Could not update %s: %v", statusFile.Path(), err)
		return nil
	}
	if appended {
		printer.Infof("Recorded %s in %s", repo, statusFile.Path())
	}
	return nil
}

func runRemove(cmd *cobra.Command, args []string) error {
	svc, _, err := newService()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if err := svc.CheckAuth(ctx); err != nil {
		return err
	}

	return svc.Unwatch(ctx, args[0])
}

func runList(cmd *cobra.Command, _ []string) error {
	svc, _, err := newService()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if err := svc.CheckAuth(ctx); err != nil {
		return err
	}

	svc.ListStates(ctx, watch.DefaultTargets())
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func wordSepNormalizeFunc(f *pflag.FlagSet, name string) pflag.NormalizedName {
	from := []string{"_"}
	to := "-"
	for _, sep := range from {
		name = strings.ReplaceAll(name, sep, to)
	}
	return pflag.NormalizedName(name)
}
