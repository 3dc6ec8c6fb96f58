// Package apiclient provides the JSON HTTP transport for the Mini App
// backend: per-attempt timeouts, exponential-backoff retries, and bearer
// token injection via a pluggable TokenSource.
//
// Basic usage:
//
//	client, err := apiclient.New(apiclient.Config{
//		BaseURL: "https://api.example.com/api/v1",
//	}, apiclient.WithTokenSource(authService))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	resp, err := client.Post(ctx, "/auth/telegram", loginBody, apiclient.WithoutAuth())
//	if err != nil {
//		var apiErr *apiclient.APIError
//		switch {
//		case errors.Is(err, apiclient.ErrTimeout):
//			// deadline exceeded, request was aborted
//		case errors.As(err, &apiErr):
//			// non-2xx reply, apiErr.Status and apiErr.Message are set
//		}
//	}
//
// # Retry behavior
//
// Each logical request makes up to RetryAttempts attempts. The delay before
// the first retry is RetryDelay and doubles after every failure. Network
// errors, timeouts, and temporary API errors (5xx, 408, 429) are retried;
// other 4xx responses fail immediately since repeating a bad request cannot
// succeed. The error from the final attempt is returned to the caller.
//
// Every attempt carries Content-Type: application/json and an X-Request-ID
// header shared across retries of the same logical request, so backend logs
// can be correlated with client-side retry diagnostics.
package apiclient
