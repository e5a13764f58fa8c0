// Package request provides the default request builder for methods.Client.
//
// A [Factory] validates the method token, resolves the target against an
// optional base URL, validates and copies the header map, and attaches the
// body reader. Anything it rejects is reported as a *methods.ConstructionError
// wrapping one of [ErrInvalidMethod], [ErrInvalidTarget] or [ErrInvalidHeader].
//
//	f, err := request.NewFactory(request.WithBaseURL("https://api.example.com/v1/"))
//	if err != nil {
//	    return err
//	}
//	client := methods.New(http.DefaultClient, f)
//	resp, err := client.Get(ctx, "users/42", nil) // GET https://api.example.com/v1/users/42
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
package request
