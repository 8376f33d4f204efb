package ports

import "net/http"

// HTTPClient is the slice of *http.Client the roster loader needs.
// Tests substitute a stub to script responses without a server.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}
