package proxy

import (
	"context"
	"io"
	"net/http"
	"regexp"
	"strings"

	"github.com/pkg/errors"
	"github.com/truemediaorg/igfetch/model"
	"golang.org/x/exp/slices"
)

const defaultContentType = "application/octet-stream"

var (
	// Literal, case-sensitive prefixes. Anything else (javascript:, data:,
	// file:, ftp:) never reaches the outbound fetch.
	DefaultAllowedSchemes = []string{"https://", "http://"}

	contentLengthRegexp = regexp.MustCompile(`^\d+$`)
)

// Doer is the outbound HTTP capability. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

type Request struct {
	SourceURL         string
	SuggestedFilename string
}

// Result is a fetched remote payload ready to be forwarded. Body must be
// consumed exactly once, either by Stream or by the caller, and closed.
type Result struct {
	Body          io.ReadCloser
	ContentType   string
	Filename      string
	ContentLength string
}

type Proxy struct {
	allowedSchemes []string

	HTTPClient Doer
}

func NewProxy(allowedSchemes []string) *Proxy {
	if len(allowedSchemes) == 0 {
		allowedSchemes = DefaultAllowedSchemes
	}
	return &Proxy{
		allowedSchemes: slices.Clone(allowedSchemes),
		HTTPClient:     http.DefaultClient,
	}
}

func (p *Proxy) schemeAllowed(sourceURL string) bool {
	return slices.ContainsFunc(p.allowedSchemes, func(prefix string) bool {
		return strings.HasPrefix(sourceURL, prefix)
	})
}

/*
Fetch validates the request, issues one GET for the source URL and returns
the open remote body together with the headers to send back:

  - empty URL: MissingUrl
  - URL not starting with an allowed scheme prefix: InvalidScheme
  - transport error or non-2xx status: UpstreamFailure, never retried
  - response without a body: StreamUnavailable
*/
func (p *Proxy) Fetch(ctx context.Context, request Request) (*Result, error) {
	if request.SourceURL == "" {
		return nil, model.NewError(model.ErrorKindMissingURL, "url is required")
	}
	if !p.schemeAllowed(request.SourceURL) {
		return nil, model.NewError(model.ErrorKindInvalidScheme, "Only http and https URLs are supported.")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, request.SourceURL, nil)
	if err != nil {
		return nil, model.WrapError(model.ErrorKindUpstreamFailure, err, "Failed to fetch video")
	}
	resp, err := p.HTTPClient.Do(req)
	if err != nil {
		return nil, model.WrapError(model.ErrorKindUpstreamFailure, err, "Failed to fetch video")
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if resp.Body != nil {
			resp.Body.Close()
		}
		return nil, model.WrapError(model.ErrorKindUpstreamFailure, errors.New(statusText(resp)), "Failed to fetch video")
	}
	if resp.Body == nil {
		return nil, model.NewError(model.ErrorKindStreamUnavailable, "Video stream is not available")
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = defaultContentType
	}
	suggested := request.SuggestedFilename
	if suggested == "" {
		suggested = DefaultFilename
	}

	result := &Result{
		Body:        resp.Body,
		ContentType: contentType,
		Filename:    FinalFilename(suggested, contentType),
	}
	if length := resp.Header.Get("Content-Length"); contentLengthRegexp.MatchString(length) {
		result.ContentLength = length
	}
	return result, nil
}

// Stream sends the download headers with a 200 status and streams the body
// through a fixed-size buffer. Errors after the headers are sent cannot be
// reported to the client; they are returned for logging only.
func (r *Result) Stream(w http.ResponseWriter) (int64, error) {
	defer r.Body.Close()

	header := w.Header()
	header.Set("Content-Disposition", `attachment; filename="`+r.Filename+`"`)
	header.Set("Content-Type", r.ContentType)
	if r.ContentLength != "" {
		header.Set("Content-Length", r.ContentLength)
	}
	w.WriteHeader(http.StatusOK)

	written, err := io.Copy(w, r.Body)
	if err != nil {
		return written, errors.Wrap(err, "stream body")
	}
	return written, nil
}

func statusText(resp *http.Response) string {
	if resp.Status != "" {
		return resp.Status
	}
	return http.StatusText(resp.StatusCode)
}
