package main

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/httpmethods/internal/cliconfig"
)

const longHelp = `Send HTTP requests from the command line, one subcommand per method.

Defaults come from $HOME/.httpmethods/config.toml, then HTTPMETHODS_* environment
variables, then flags. Headers from all three are merged; -H wins.`

var exampleUsage = strings.TrimSpace(`
  httpmethods get https://api.example.com/users/42 -H "Accept: application/json"
  httpmethods --base-url https://api.example.com/v1 post items -d '{"name":"x"}' -H "Content-Type: application/json"
  httpmethods put items/7 --data-file item.json --watch
  httpmethods send PROPFIND https://dav.example.com/files/
  httpmethods get users/42 --select user.name
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

// verbs lists the methods that get their own subcommand.
var verbs = []string{
	http.MethodGet,
	http.MethodHead,
	http.MethodTrace,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
	http.MethodOptions,
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{
		cfg:    cliconfig.DefaultConfig(),
		stdout: stdout,
		stderr: stderr,
	}

	root := &cobra.Command{
		Use:           "httpmethods",
		Short:         "Send HTTP requests by method",
		Long:          longHelp,
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })
			return a.loadConfig(changed)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgPath, "config", "", "path to config file (default: $HOME/.httpmethods/config.toml)")
	pf.StringVar(&a.cfg.BaseURL, "base-url", a.cfg.BaseURL, "base URL that relative targets resolve against")
	pf.DurationVar(&a.cfg.Timeout, "timeout", a.cfg.Timeout, "timeout for the whole exchange")
	pf.StringArrayVarP(&a.headers, "header", "H", nil, `request header as "Name: value" (repeatable)`)
	pf.StringVarP(&a.data, "data", "d", "", "request body")
	pf.StringVar(&a.dataFile, "data-file", "", `read the request body from a file ("-" for stdin)`)
	pf.BoolVarP(&a.cfg.Include, "include", "i", a.cfg.Include, "print the status line and response headers")
	pf.StringVar(&a.selectPath, "select", "", "print only this JSON path of the response body")
	pf.BoolVar(&a.fail, "fail", false, "exit non-zero on 4xx and 5xx responses")
	pf.BoolVar(&a.requestID, "request-id", false, "send an X-Request-Id header with a fresh ULID")
	pf.BoolVar(&a.watch, "watch", false, "re-send whenever --data-file changes")
	pf.StringVar(&a.cfg.LogLevel, "log-level", a.cfg.LogLevel, "log level (debug, info, warn, error, disabled)")
	pf.BoolVar(&a.cfg.NoColor, "no-color", a.cfg.NoColor, "disable colored output")

	pf.StringVar(&a.cfg.OTLPEndpoint, "otlp-endpoint", a.cfg.OTLPEndpoint, "OTLP collector endpoint; enables tracing")
	pf.StringVar(&a.cfg.OTLPProtocol, "otlp-protocol", a.cfg.OTLPProtocol, "OTLP protocol (grpc or http)")
	pf.BoolVar(&a.cfg.OTLPInsecure, "otlp-insecure", a.cfg.OTLPInsecure, "disable TLS to the collector")
	pf.StringVar(&a.cfg.ServiceName, "service-name", a.cfg.ServiceName, "service name reported in spans")
	pf.Float64Var(&a.cfg.SampleRate, "sample-rate", a.cfg.SampleRate, "trace sampling ratio between 0 and 1")
	for _, name := range []string{"otlp-protocol", "otlp-insecure", "service-name", "sample-rate"} {
		if err := pf.MarkHidden(name); err != nil {
			fmt.Fprintf(stderr, "hide %s flag: %v\n", name, err)
		}
	}

	for _, verb := range verbs {
		verb := verb
		root.AddCommand(&cobra.Command{
			Use:   strings.ToLower(verb) + " <target>",
			Short: "Send a " + verb + " request",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.run(cmd.Context(), verb, args[0])
			},
		})
	}

	root.AddCommand(&cobra.Command{
		Use:   "send <method> <target>",
		Short: "Send a request with any method",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd.Context(), args[0], args[1])
		},
	})

	return root
}

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "httpmethods:", err)
		os.Exit(1)
	}
}
