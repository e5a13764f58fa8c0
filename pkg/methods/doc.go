// Package methods provides a convenience HTTP client with one method per verb.
//
// A [Client] composes two collaborators: a [RequestBuilder] that turns
// (method, target, header, body) into an *http.Request, and a [RequestSender]
// that dispatches it. The Client itself adds nothing: no default headers, no
// retries, no timeouts and no error translation.
//
// # Usage
//
//	factory, err := request.NewFactory()
//	if err != nil {
//	    return err
//	}
//	client := methods.New(http.DefaultClient, factory)
//
//	resp, err := client.Get(ctx, "https://example.com/foo", http.Header{
//	    "Accept": {"text/plain"},
//	})
//	if err != nil {
//	    return err
//	}
//	defer resp.Body.Close()
//
// Requests with a body take an io.Reader; nil means no body:
//
//	resp, err := client.Post(ctx, "/items", nil, strings.NewReader(`{"name":"x"}`))
//
// # Errors
//
// Errors from the builder or the sender are returned unchanged. The shipped
// collaborators report [ConstructionError] and [TransportError]; check for
// them with errors.As.
//
// # Composition
//
// Client implements [RequestSender] through [Client.Do], so a Client can be
// used anywhere a plain sender is expected, including as the sender of
// another Client.
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
//
// See version.go for version constants that can be used programmatically.
package methods
