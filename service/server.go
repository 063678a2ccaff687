package service

import (
	"fmt"
	"net/http"
	"time"
)

// NewServer wraps the API routes in an http.Server listening on all
// interfaces. No write timeout is set so long downloads are not cut off.
func NewServer(port int, api *API) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf("0.0.0.0:%d", port),
		Handler:           api.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
}
