package resolver

import (
	"github.com/truemediaorg/igfetch/instagram"
	"github.com/truemediaorg/igfetch/model"
)

/*
Resolve turns the provider envelope into one of the three normalized shapes.
The first matching rule wins:

 1. the top-level node is a video: Video
 2. the node has sidecar children: Carousel, children mapped one by one in
    provider order
 3. otherwise: Photo

A video node without a video URL is a malformed upstream answer and fails
with UpstreamFailure rather than degrading to a photo.
*/
func Resolve(envelope *instagram.Envelope) (model.Media, error) {
	node := envelope.Media()
	if node == nil {
		return nil, model.NewError(model.ErrorKindNotFound, "post not found")
	}

	if node.IsVideo {
		video, err := resolveVideo(node)
		if err != nil {
			return nil, err
		}
		return video, nil
	}

	if children := node.SidecarNodes(); len(children) > 0 {
		items := make([]model.CarouselItem, 0, len(children))
		for i, child := range children {
			item, err := resolveItem(child)
			if err != nil {
				return nil, model.Errorf(model.ErrorKindUpstreamFailure, "carousel item %d: %s", i, model.MessageOf(err))
			}
			items = append(items, item)
		}
		return model.Carousel{Items: items}, nil
	}

	return model.Photo{URL: node.DisplayURL}, nil
}

func resolveItem(node *instagram.MediaNode) (model.CarouselItem, error) {
	if node == nil {
		return nil, model.NewError(model.ErrorKindUpstreamFailure, "sidecar edge has no node")
	}
	if node.IsVideo {
		video, err := resolveVideo(node)
		if err != nil {
			return nil, err
		}
		return video, nil
	}
	return model.Photo{URL: node.DisplayURL}, nil
}

func resolveVideo(node *instagram.MediaNode) (model.Video, error) {
	if node.VideoURL == nil || *node.VideoURL == "" {
		return model.Video{}, model.NewError(model.ErrorKindUpstreamFailure, "video node has no video_url")
	}
	return model.Video{URL: *node.VideoURL}, nil
}
