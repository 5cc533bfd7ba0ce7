package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go4.org/netipx"

	"srx-config-model/internal/model"
	"srx-config-model/internal/parser"
	"srx-config-model/pkg/wellknown"
)

var (
	policiesFile string
	routesFile   string
	zonesFile    string
	manifestFile string
	provider     string
	dbDSN        string
	device       string
	logLevel     string
	logFile      string
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "srxmodel",
		Short: "Build a normalized model from SRX configuration exports",
		Long: `srxmodel parses the three XML documents exported for an SRX firewall
	(security policies, routing table, security zones) into one normalized
	model and prints a summary of it.`,
		RunE: run,
	}

	rootCmd.Flags().StringVar(&policiesFile, "policies", "", "Security-policy export XML file")
	rootCmd.Flags().StringVar(&routesFile, "routes", "", "Routing-table export XML file")
	rootCmd.Flags().StringVar(&zonesFile, "zones", "", "Zone-configuration export XML file")
	rootCmd.Flags().StringVar(&manifestFile, "manifest", "", "YAML manifest naming the exports for several firewalls")
	rootCmd.Flags().StringVar(&provider, "provider", "files", "Export provider: 'files' or 'mariadb'")
	rootCmd.Flags().StringVar(&dbDSN, "db", "", "Database connection string (for 'mariadb' provider)")
	rootCmd.Flags().StringVar(&device, "device", "", "Device hostname to load (for 'mariadb' provider)")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "INFO", "Log level (DEBUG, INFO, WARN, ERROR)")
	rootCmd.Flags().StringVar(&logFile, "log-file", "", "Log file path (default: stderr)")

	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	logger := setupLogger(logLevel, logFile)
	slog.SetDefault(logger)

	startTime := time.Now()

	switch provider {
	case "files":
		if manifestFile != "" {
			manifest, err := parser.LoadManifest(manifestFile)
			if err != nil {
				slog.Error("Failed to load manifest", "path", manifestFile, "error", err)
				return err
			}
			for _, exports := range manifest.Firewalls {
				slog.Info("Building model", "firewall", exports.Name)
				fw, err := exports.Load()
				if err != nil {
					slog.Error("Failed to build model", "firewall", exports.Name, "error", err)
					return err
				}
				printFirewall(cmd.OutOrStdout(), exports.Name, fw)
			}
			slog.Info("Model construction complete", "firewalls", len(manifest.Firewalls), "duration", time.Since(startTime))
			return nil
		}

		if policiesFile == "" || routesFile == "" || zonesFile == "" {
			return fmt.Errorf("either --manifest or all of --policies, --routes and --zones must be provided")
		}
		fw, err := parser.ParseFirewallFiles(policiesFile, routesFile, zonesFile)
		if err != nil {
			slog.Error("Failed to build model", "error", err)
			return err
		}
		printFirewall(cmd.OutOrStdout(), "", fw)
		slog.Info("Model construction complete", "duration", time.Since(startTime))
		return nil

	case "mariadb":
		if dbDSN == "" || device == "" {
			return fmt.Errorf("--db and --device must be provided for the mariadb provider")
		}
		source, err := parser.NewMariaDBSource(dbDSN)
		if err != nil {
			slog.Error("Failed to connect to export database", "error", err)
			return err
		}
		defer source.Close()

		fw, err := source.LoadFirewall(device)
		if err != nil {
			slog.Error("Failed to build model", "device", device, "error", err)
			return err
		}
		printFirewall(cmd.OutOrStdout(), device, fw)
		slog.Info("Model construction complete", "duration", time.Since(startTime))
		return nil

	default:
		return fmt.Errorf("unknown export provider: %s", provider)
	}
}

func printFirewall(w io.Writer, name string, fw *model.Firewall) {
	header := "firewall"
	if name != "" {
		header = "firewall " + name
	}
	fmt.Fprintf(w, "%s: %d policies, %d routes, %d zones\n",
		header, len(fw.Policies), len(fw.Routes), len(fw.Zones))

	fmt.Fprintln(w, "zones:")
	for _, zone := range fw.Zones {
		fmt.Fprintf(w, "  %s\n", zone)
		names := make([]string, 0, len(zone.Addresses))
		for addr := range zone.Addresses {
			names = append(names, addr)
		}
		sort.Strings(names)
		for _, addr := range names {
			fmt.Fprintf(w, "    %s = %s\n", addr, formatIPSet(zone.Addresses[addr]))
		}
	}

	fmt.Fprintln(w, "routes:")
	for _, route := range fw.Routes {
		suffix := ""
		if route.IsLocal {
			suffix = " (local)"
		}
		fmt.Fprintf(w, "  %s%s\n", route, suffix)
	}

	fmt.Fprintln(w, "policies:")
	for _, policy := range fw.Policies {
		fmt.Fprintf(w, "  %s\n", formatPolicy(policy))
	}
}

func formatPolicy(p model.Policy) string {
	apps := make([]string, 0, len(p.Applications))
	for _, appName := range p.Applications {
		if app, ok := wellknown.GetApplication(appName); ok {
			apps = append(apps, app.String())
		} else {
			apps = append(apps, appName)
		}
	}
	s := fmt.Sprintf("[%d] %s %s:%v -> %s:%v : [%s]",
		p.Sequence, p.Action, p.FromZone, p.SourceAddresses,
		p.ToZone, p.DestinationAddresses, strings.Join(apps, " "))
	if !p.Enabled {
		s += " (disabled)"
	}
	return s
}

func formatIPSet(set *netipx.IPSet) string {
	prefixes := set.Prefixes()
	parts := make([]string, len(prefixes))
	for i, p := range prefixes {
		parts[i] = p.String()
	}
	return strings.Join(parts, ", ")
}

func setupLogger(level, logFilePath string) *slog.Logger {
	var logWriter io.Writer = os.Stderr
	if logFilePath != "" {
		f, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err == nil {
			logWriter = f
		}
		// The logger isn't set up yet, so a bad path just falls back
		// to stderr.
	}

	var lvl slog.Level
	switch strings.ToUpper(level) {
	case "DEBUG":
		lvl = slog.LevelDebug
	case "INFO":
		lvl = slog.LevelInfo
	case "WARN":
		lvl = slog.LevelWarn
	case "ERROR":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	return slog.New(slog.NewJSONHandler(logWriter, &slog.HandlerOptions{Level: lvl}))
}
