package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/bft-labs/httpmethods/internal/cliconfig"
	"github.com/bft-labs/httpmethods/internal/render"
	"github.com/bft-labs/httpmethods/internal/tracing"
	"github.com/bft-labs/httpmethods/internal/watch"
	"github.com/bft-labs/httpmethods/pkg/log"
	"github.com/bft-labs/httpmethods/pkg/methods"
	"github.com/bft-labs/httpmethods/pkg/request"
	"github.com/bft-labs/httpmethods/pkg/transport"
)

// RequestIDHeader carries the ULID added by --request-id.
const RequestIDHeader = "X-Request-Id"

// app holds the parsed flags shared by every subcommand.
type app struct {
	cfg     cliconfig.Config
	cfgPath string

	headers    []string
	data       string
	dataFile   string
	selectPath string
	fail       bool
	requestID  bool
	watch      bool

	stdout io.Writer
	stderr io.Writer
}

// loadConfig layers the config file and environment under explicitly set flags.
func (a *app) loadConfig(changed map[string]bool) error {
	path := a.cfgPath
	if path == "" {
		path = cliconfig.DefaultConfigPath()
	}
	if path != "" && cliconfig.FileExists(path) {
		fc, err := cliconfig.LoadFileConfig(path)
		if err != nil {
			return err
		}
		if err := cliconfig.ApplyFileConfig(&a.cfg, fc, changed); err != nil {
			return err
		}
	} else if a.cfgPath != "" {
		return fmt.Errorf("config file %s not found", a.cfgPath)
	}

	if err := cliconfig.ApplyEnvConfig(&a.cfg, changed); err != nil {
		return err
	}
	return a.cfg.Validate()
}

func (a *app) run(ctx context.Context, method, target string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if a.data != "" && a.dataFile != "" {
		return errors.New("--data and --data-file are mutually exclusive")
	}
	if a.watch && (a.dataFile == "" || a.dataFile == "-") {
		return errors.New("--watch needs --data-file naming a regular file")
	}
	if !takesBody(method) && (a.data != "" || a.dataFile != "") {
		return fmt.Errorf("%s does not send a body", method)
	}

	level, err := log.ParseLevel(a.cfg.LogLevel)
	if err != nil {
		return err
	}
	logger := log.NewConsoleLogger(a.stderr, level, a.cfg.NoColor)

	header, err := a.header()
	if err != nil {
		return err
	}
	if id := header.Get(RequestIDHeader); id != "" {
		logger = logger.With(log.String("request_id", id))
	}

	provider, err := tracing.Init(ctx, a.cfg.Tracing())
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := provider.Shutdown(shutdownCtx); err != nil {
			logger.Warn("tracing shutdown failed", log.Err(err))
		}
	}()

	client, err := a.client(logger, provider)
	if err != nil {
		return err
	}
	out := render.New(a.stdout, render.Options{
		Include: a.cfg.Include,
		Select:  a.selectPath,
		NoColor: a.cfg.NoColor,
	})

	once := func(ctx context.Context) error {
		body, closeBody, err := a.body()
		if err != nil {
			return err
		}
		defer closeBody()

		start := time.Now()
		resp, err := dispatch(ctx, client, method, target, header, body)
		if err != nil {
			if resp != nil && resp.Body != nil {
				resp.Body.Close()
			}
			return err
		}
		status := resp.StatusCode
		logger.Info("response",
			log.String("method", method),
			log.String("target", target),
			log.Int("status", status),
			log.Duration("took", time.Since(start)),
		)
		if err := out.Response(resp); err != nil {
			return err
		}
		if a.fail && status >= http.StatusBadRequest {
			return fmt.Errorf("server responded %d %s", status, http.StatusText(status))
		}
		return nil
	}

	if err := once(ctx); err != nil {
		if !a.watch {
			return err
		}
		logger.Error("request failed", log.Err(err))
	}
	if !a.watch {
		return nil
	}

	return watch.File(ctx, a.dataFile, watch.DefaultDelay, logger, func(ctx context.Context) {
		if err := once(ctx); err != nil {
			logger.Error("request failed", log.Err(err))
		}
	})
}

// client assembles the request factory and the transport behind a methods.Client.
func (a *app) client(logger log.Logger, provider *tracing.Provider) (*methods.Client, error) {
	var factoryOpts []request.Option
	if a.cfg.BaseURL != "" {
		factoryOpts = append(factoryOpts, request.WithBaseURL(a.cfg.BaseURL))
	}
	factory, err := request.NewFactory(factoryOpts...)
	if err != nil {
		return nil, err
	}

	senderOpts := []transport.Option{
		transport.WithLogger(logger),
		transport.WithTimeout(a.cfg.Timeout),
	}
	if provider.Enabled() {
		senderOpts = append(senderOpts,
			transport.WithTracer(provider.Tracer()),
			transport.WithPropagation(true),
		)
	}
	return methods.New(transport.New(nil, senderOpts...), factory), nil
}

// header merges configured headers with -H flags; flags win.
func (a *app) header() (http.Header, error) {
	header := make(http.Header, len(a.cfg.Headers)+len(a.headers))
	for name, value := range a.cfg.Headers {
		header.Set(name, value)
	}

	fromFlags := make(http.Header, len(a.headers))
	for _, line := range a.headers {
		name, value, err := cliconfig.ParseHeader(line)
		if err != nil {
			return nil, err
		}
		fromFlags.Add(name, value)
	}
	for name, values := range fromFlags {
		header[name] = values
	}

	if a.requestID && header.Get(RequestIDHeader) == "" {
		header.Set(RequestIDHeader, ulid.Make().String())
	}
	return header, nil
}

// body opens the request body for one exchange. The file is re-read every
// call so that --watch picks up new contents.
func (a *app) body() (io.Reader, func(), error) {
	noop := func() {}
	switch {
	case a.data != "":
		return strings.NewReader(a.data), noop, nil
	case a.dataFile == "-":
		return os.Stdin, noop, nil
	case a.dataFile != "":
		f, err := os.Open(a.dataFile)
		if err != nil {
			return nil, noop, fmt.Errorf("open body: %w", err)
		}
		return f, func() { f.Close() }, nil
	default:
		return nil, noop, nil
	}
}

// takesBody reports whether method has a body argument on methods.Client.
func takesBody(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodTrace:
		return false
	}
	return true
}

// dispatch routes the standard verbs to their Client method and everything
// else through Send.
func dispatch(ctx context.Context, c *methods.Client, method, target string, header http.Header, body io.Reader) (*http.Response, error) {
	switch method {
	case http.MethodGet:
		return c.Get(ctx, target, header)
	case http.MethodHead:
		return c.Head(ctx, target, header)
	case http.MethodTrace:
		return c.Trace(ctx, target, header)
	case http.MethodPost:
		return c.Post(ctx, target, header, body)
	case http.MethodPut:
		return c.Put(ctx, target, header, body)
	case http.MethodPatch:
		return c.Patch(ctx, target, header, body)
	case http.MethodDelete:
		return c.Delete(ctx, target, header, body)
	case http.MethodOptions:
		return c.Options(ctx, target, header, body)
	default:
		return c.Send(ctx, method, target, header, body)
	}
}
