// Package cli implements the raptorboostd command-line interface.
package cli

import (
	"fmt"
	"log/slog"
	"net"
	"os"
	"strings"

	"github.com/felixge/fgprof"
	"github.com/grafana/pyroscope-go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"net/http"
	"net/http/pprof"

	"github.com/meigma/raptorboost/internal/lockregistry"
	"github.com/meigma/raptorboost/internal/namegraft"
	"github.com/meigma/raptorboost/internal/pathstore"
	"github.com/meigma/raptorboost/internal/rpcserver"
	"github.com/meigma/raptorboost/internal/transfer"
)

// Build information set via ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "raptorboostd",
	Short: "Resumable, deduplicating bulk file-transfer daemon",
	Long: `raptorboostd receives files from raptorboost clients, storing each by the
SHA-256 digest of its full contents so identical content is never uploaded
twice, and resuming any transfer that was interrupted partway through.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().String("host", "127.0.0.1", "address to bind")
	rootCmd.Flags().String("interface", "", "network interface to bind to (overrides --host)")
	rootCmd.Flags().Int("port", 7272, "port to listen on")
	rootCmd.Flags().String("out-dir", mustGetwd(), "base directory for stored content")
	rootCmd.Flags().BoolP("verbose", "v", false, "enable debug logging")
	rootCmd.Flags().String("metrics-addr", "", "if set, serve pprof/fgprof diagnostics on this address")
	rootCmd.Flags().String("pyroscope-url", "", "if set, send continuous profiles to this Pyroscope server")

	//nolint:errcheck // flags are defined above, Lookup never returns nil
	viper.BindPFlag("host", rootCmd.Flags().Lookup("host"))
	//nolint:errcheck
	viper.BindPFlag("interface", rootCmd.Flags().Lookup("interface"))
	//nolint:errcheck
	viper.BindPFlag("port", rootCmd.Flags().Lookup("port"))
	//nolint:errcheck
	viper.BindPFlag("out-dir", rootCmd.Flags().Lookup("out-dir"))
	//nolint:errcheck
	viper.BindPFlag("verbose", rootCmd.Flags().Lookup("verbose"))
	//nolint:errcheck
	viper.BindPFlag("metrics-addr", rootCmd.Flags().Lookup("metrics-addr"))
	//nolint:errcheck
	viper.BindPFlag("pyroscope-url", rootCmd.Flags().Lookup("pyroscope-url"))

	viper.SetEnvPrefix("RAPTORBOOST")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	rootCmd.Version = fmt.Sprintf("%s (%s, built %s)", version, commit, date)
}

func mustGetwd() string {
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return err
}

func run(cmd *cobra.Command, args []string) error {
	logger := newLogger(viper.GetBool("verbose"))

	host, err := resolveHost(viper.GetString("host"), viper.GetString("interface"))
	if err != nil {
		return err
	}

	if url := viper.GetString("pyroscope-url"); url != "" {
		profiler, err := pyroscope.Start(pyroscope.Config{
			ApplicationName: "raptorboostd",
			ServerAddress:   url,
		})
		if err != nil {
			logger.Warn("failed to start pyroscope profiling", "error", err)
		} else {
			defer func() { _ = profiler.Stop() }()
		}
	}

	if addr := viper.GetString("metrics-addr"); addr != "" {
		go serveDiagnostics(addr, logger)
	}

	store, err := pathstore.New(viper.GetString("out-dir"))
	if err != nil {
		return fmt.Errorf("set up path store: %w", err)
	}
	locks, err := lockregistry.New(store, logger)
	if err != nil {
		return fmt.Errorf("set up lock registry: %w", err)
	}
	controller := transfer.New(store, locks, logger)
	grafter := namegraft.New(store, logger)

	rpcserver.Version = version
	server := rpcserver.New(controller, grafter, logger)

	addr := fmt.Sprintf("%s:%d", host, viper.GetInt("port"))
	return server.Serve(addr)
}

// resolveHost returns host unchanged unless iface is set, in which case it
// resolves iface to the first IPv4/IPv6 address bound to that network
// interface, matching the original service's --interface flag.
func resolveHost(host, iface string) (string, error) {
	if iface == "" {
		return host, nil
	}

	ifi, err := net.InterfaceByName(iface)
	if err != nil {
		return "", fmt.Errorf("couldn't find interface %q: %w", iface, err)
	}
	addrs, err := ifi.Addrs()
	if err != nil {
		return "", fmt.Errorf("couldn't get addresses for interface %q: %w", iface, err)
	}
	for _, a := range addrs {
		ipNet, ok := a.(*net.IPNet)
		if !ok {
			continue
		}
		return ipNet.IP.String(), nil
	}
	return "", fmt.Errorf("interface %q has no addresses", iface)
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// serveDiagnostics exposes pprof and fgprof wall-clock profiling endpoints,
// generalizing the teacher's standalone cmd/profile tool into an
// always-available production diagnostics surface.
func serveDiagnostics(addr string, logger *slog.Logger) {
	mux := http.NewServeMux()
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	mux.Handle("/debug/fgprof", fgprof.Handler())

	logger.Info("serving diagnostics", "addr", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Warn("diagnostics server exited", "error", err)
	}
}
