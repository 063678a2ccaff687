package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/truemediaorg/igfetch/model"
	"github.com/truemediaorg/igfetch/proxy"

	log "github.com/sirupsen/logrus"
)

type PostResolver interface {
	ResolvePost(ctx context.Context, input string) (model.Media, error)
}

type MediaFetcher interface {
	Fetch(ctx context.Context, request proxy.Request) (*proxy.Result, error)
}

type ResolveResponse struct {
	MediaData model.Media `json:"mediaData"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// API serves the resolve and download proxy endpoints. Handlers share no
// mutable state; every request owns its outbound call.
type API struct {
	resolver        PostResolver
	fetcher         MediaFetcher
	defaultFilename string
}

func NewAPI(resolver PostResolver, fetcher MediaFetcher, defaultFilename string) *API {
	if defaultFilename == "" {
		defaultFilename = proxy.DefaultFilename
	}
	return &API{
		resolver:        resolver,
		fetcher:         fetcher,
		defaultFilename: defaultFilename,
	}
}

// Routes builds the mux for the public API.
func (a *API) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("GET /healthz", handleHealthcheck())
	// The wildcard takes the rest of the path so that "/p/" and "/p/a/b"
	// reach the validator instead of falling through to a 404.
	mux.HandleFunc("GET /api/instagram/p/{shortcode...}", a.handleResolve)
	mux.HandleFunc("GET /api/download-proxy", a.handleDownloadProxy)
	return withRequestLogging(mux)
}

func (a *API) handleResolve(w http.ResponseWriter, r *http.Request) {
	input := r.PathValue("shortcode")
	logger := requestLogger(r).WithField("shortcode", input)

	media, err := a.resolver.ResolvePost(r.Context(), input)
	if err != nil {
		respondError(w, logger, err)
		return
	}
	logger.WithField("type", media.Type()).Info("resolved post")
	respondJSON(w, http.StatusOK, ResolveResponse{MediaData: media})
}

func (a *API) handleDownloadProxy(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	request := proxy.Request{
		SourceURL:         query.Get("url"),
		SuggestedFilename: query.Get("filename"),
	}
	if request.SuggestedFilename == "" {
		request.SuggestedFilename = a.defaultFilename
	}
	logger := requestLogger(r)

	result, err := a.fetcher.Fetch(r.Context(), request)
	if err != nil {
		respondError(w, logger, err)
		return
	}

	logger = logger.WithField("filename", result.Filename).WithField("contentType", result.ContentType)
	written, err := result.Stream(w)
	if err != nil {
		// headers are already out, nothing left to tell the client
		logger.WithField("written", written).Warnf("download proxy stream ended early: %v", err)
		return
	}
	logger.WithField("written", written).Info("proxied download")
}

func respondError(w http.ResponseWriter, logger *log.Entry, err error) {
	kind := model.KindOf(err)
	message := model.MessageOf(err)
	entry := logger.WithField("kind", kind)
	if kind.ClientCaused() {
		entry.Infof("rejected request: %s", message)
	} else {
		entry.Errorf("request failed: %v", err)
	}
	respondJSON(w, kind.HTTPStatus(), ErrorResponse{
		Error:   kind.Tag(),
		Message: message,
	})
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	body, err := json.Marshal(payload)
	if err != nil {
		log.Errorf("encode json failed: %v", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"error":"serverError","message":"failed to encode response"}`)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
