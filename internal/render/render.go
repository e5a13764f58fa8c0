// Package render writes responses to the terminal.
package render

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/tidwall/gjson"
)

// ErrNoMatch is returned when a select path matches nothing in the body.
var ErrNoMatch = errors.New("select path matched nothing")

// Options controls what is written for a response.
type Options struct {
	// Include writes the status line and headers before the body.
	Include bool
	// Select extracts a gjson path ("$.a.b" or "a.b") from a JSON body.
	Select  string
	NoColor bool
}

// Renderer formats responses.
type Renderer struct {
	out  io.Writer
	opts Options

	ok, redirect, clientErr, serverErr, name *color.Color
}

// New creates a renderer writing to out.
func New(out io.Writer, opts Options) *Renderer {
	r := &Renderer{
		out:       out,
		opts:      opts,
		ok:        color.New(color.FgGreen, color.Bold),
		redirect:  color.New(color.FgCyan, color.Bold),
		clientErr: color.New(color.FgYellow, color.Bold),
		serverErr: color.New(color.FgRed, color.Bold),
		name:      color.New(color.FgBlue),
	}
	if opts.NoColor {
		for _, c := range []*color.Color{r.ok, r.redirect, r.clientErr, r.serverErr, r.name} {
			c.DisableColor()
		}
	}
	return r
}

// Response writes resp and closes its body.
func (r *Renderer) Response(resp *http.Response) error {
	defer resp.Body.Close()

	if r.opts.Include {
		r.head(resp)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}

	if r.opts.Select != "" {
		return r.selected(body)
	}

	if _, err := r.out.Write(body); err != nil {
		return err
	}
	if len(body) > 0 && body[len(body)-1] != '\n' {
		fmt.Fprintln(r.out)
	}
	return nil
}

// Status returns the colored "HTTP/1.1 200 OK" line without a newline.
func (r *Renderer) Status(resp *http.Response) string {
	status := resp.Status
	if status == "" {
		status = fmt.Sprintf("%d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}
	proto := resp.Proto
	if proto == "" {
		proto = "HTTP/1.1"
	}
	return r.statusColor(resp.StatusCode).Sprintf("%s %s", proto, status)
}

func (r *Renderer) head(resp *http.Response) {
	fmt.Fprintln(r.out, r.Status(resp))

	names := make([]string, 0, len(resp.Header))
	for name := range resp.Header {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		for _, v := range resp.Header[name] {
			fmt.Fprintf(r.out, "%s: %s\n", r.name.Sprint(name), v)
		}
	}
	fmt.Fprintln(r.out)
}

func (r *Renderer) selected(body []byte) error {
	path := r.opts.Select
	if strings.HasPrefix(path, "$.") {
		path = path[2:]
	} else if path == "$" {
		path = "@this"
	}

	result := gjson.GetBytes(body, path)
	if !result.Exists() {
		return fmt.Errorf("%w: %s", ErrNoMatch, r.opts.Select)
	}
	_, err := fmt.Fprintln(r.out, result.String())
	return err
}

func (r *Renderer) statusColor(code int) *color.Color {
	switch {
	case code >= 500:
		return r.serverErr
	case code >= 400:
		return r.clientErr
	case code >= 300:
		return r.redirect
	default:
		return r.ok
	}
}
