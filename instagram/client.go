package instagram

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"
)

const (
	DefaultGraphURL  = "https://www.instagram.com/graphql/query"
	DefaultDocID     = "8845758582119845"
	DefaultAppID     = "936619743392459"
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36"

	friendlyName = "PolarisPostActionLoadPostQueryQuery"
)

// Doer is the outbound HTTP capability. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

type Client struct {
	graphURL  string
	docID     string
	appID     string
	userAgent string

	HTTPClient Doer
}

type Settings struct {
	GraphURL  url.URL
	DocID     string
	AppID     string
	UserAgent string
}

func NewClient(settings Settings) *Client {
	return &Client{
		graphURL:   settings.GraphURL.String(),
		docID:      settings.DocID,
		appID:      settings.AppID,
		userAgent:  settings.UserAgent,
		HTTPClient: http.DefaultClient,
	}
}

type postVariables struct {
	Shortcode            string  `json:"shortcode"`
	FetchTaggedUserCount *int    `json:"fetch_tagged_user_count"`
	HoistedCommentID     *string `json:"hoisted_comment_id"`
	HoistedReplyID       *string `json:"hoisted_reply_id"`
}

/*
FetchPost issues exactly one request to the graph endpoint for shortcode.

On 200 the body is decoded into an Envelope. Any other status is returned
as-is with a nil envelope and no error; the caller decides what it means.
Transport and decode failures are returned as errors. Nothing is retried.
*/
func (c *Client) FetchPost(ctx context.Context, shortcode string) (int, *Envelope, error) {
	variables, err := json.Marshal(postVariables{Shortcode: shortcode})
	if err != nil {
		return 0, nil, err
	}
	form := url.Values{}
	form.Set("variables", string(variables))
	form.Set("doc_id", c.docID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.graphURL, strings.NewReader(form.Encode()))
	if err != nil {
		return 0, nil, errors.Wrap(err, "build graph request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "*/*")
	req.Header.Set("X-FB-Friendly-Name", friendlyName)
	if c.appID != "" {
		req.Header.Set("X-IG-App-ID", c.appID)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return 0, nil, errors.Wrap(err, "graph request")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// drain so the connection can be reused
		_, _ = io.Copy(io.Discard, resp.Body)
		return resp.StatusCode, nil, nil
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, errors.Wrap(err, "read graph response")
	}

	var envelope Envelope
	if err = json.Unmarshal(respBody, &envelope); err != nil {
		return resp.StatusCode, nil, errors.Wrap(err, "decode graph response")
	}

	return resp.StatusCode, &envelope, nil
}
