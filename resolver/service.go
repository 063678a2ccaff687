package resolver

import (
	"context"
	"net/http"

	"github.com/truemediaorg/igfetch/instagram"
	"github.com/truemediaorg/igfetch/model"
	"github.com/truemediaorg/igfetch/shortcode"

	log "github.com/sirupsen/logrus"
)

type PostFetcher interface {
	FetchPost(ctx context.Context, shortcode string) (int, *instagram.Envelope, error)
}

// Service runs the full resolution pipeline for one shortcode. It holds no
// state besides the fetcher and is safe for concurrent use.
type Service struct {
	fetcher PostFetcher
}

func NewService(fetcher PostFetcher) *Service {
	return &Service{
		fetcher: fetcher,
	}
}

// ResolvePost validates input, fetches the post exactly once and normalizes
// its media. Invalid input never reaches the fetcher.
func (s *Service) ResolvePost(ctx context.Context, input string) (model.Media, error) {
	code, err := shortcode.Validate(input)
	if err != nil {
		return nil, err
	}

	status, envelope, err := s.fetcher.FetchPost(ctx, code)
	if err != nil {
		return nil, model.WrapError(model.ErrorKindUpstreamFailure, err, "failed to fetch post data")
	}
	log.WithField("shortcode", code).WithField("status", status).Debug("graph response")

	switch status {
	case http.StatusOK:
		if envelope.Media() == nil {
			return nil, model.NewError(model.ErrorKindNotFound, "post not found")
		}
		return Resolve(envelope)
	case http.StatusNotFound:
		return nil, model.NewError(model.ErrorKindNotFound, "post not found")
	default:
		return nil, model.Errorf(model.ErrorKindUpstreamFailure, "failed to fetch post data: %d %s", status, http.StatusText(status))
	}
}
