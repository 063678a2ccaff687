package model

import (
	"encoding/json"
	"fmt"
)

type MediaType string

const (
	MediaTypePhoto    MediaType = "photo"
	MediaTypeVideo    MediaType = "video"
	MediaTypeCarousel MediaType = "carousel"
)

// Media is the normalized description of a post's content. It is closed:
// only Photo, Video and Carousel implement it.
type Media interface {
	Type() MediaType
	isMedia()
}

// CarouselItem is a Media that may appear inside a Carousel. Carousels
// never nest, so only Photo and Video implement it.
type CarouselItem interface {
	Media
	ItemURL() string
	isCarouselItem()
}

type Photo struct {
	URL string
}

type Video struct {
	URL string
}

type Carousel struct {
	Items []CarouselItem
}

func (Photo) Type() MediaType    { return MediaTypePhoto }
func (Video) Type() MediaType    { return MediaTypeVideo }
func (Carousel) Type() MediaType { return MediaTypeCarousel }

func (Photo) isMedia()    {}
func (Video) isMedia()    {}
func (Carousel) isMedia() {}

func (Photo) isCarouselItem() {}
func (Video) isCarouselItem() {}

func (p Photo) ItemURL() string { return p.URL }
func (v Video) ItemURL() string { return v.URL }

type urlMediaJSON struct {
	Type MediaType `json:"type"`
	URL  string    `json:"url"`
}

type carouselJSON struct {
	Type  MediaType      `json:"type"`
	Items []CarouselItem `json:"items"`
}

func (p Photo) MarshalJSON() ([]byte, error) {
	return json.Marshal(urlMediaJSON{Type: MediaTypePhoto, URL: p.URL})
}

func (v Video) MarshalJSON() ([]byte, error) {
	return json.Marshal(urlMediaJSON{Type: MediaTypeVideo, URL: v.URL})
}

func (c Carousel) MarshalJSON() ([]byte, error) {
	return json.Marshal(carouselJSON{Type: MediaTypeCarousel, Items: c.Items})
}

// Items flattens any Media into the ordered list of downloadable items.
func Items(m Media) ([]CarouselItem, error) {
	switch v := m.(type) {
	case Photo:
		return []CarouselItem{v}, nil
	case Video:
		return []CarouselItem{v}, nil
	case Carousel:
		return v.Items, nil
	default:
		return nil, fmt.Errorf("unknown media shape: %T", m)
	}
}

// Extension is the file extension a downloaded item is saved under.
func Extension(item CarouselItem) string {
	switch item.(type) {
	case Video:
		return "mp4"
	case Photo:
		return "jpg"
	default:
		return "bin"
	}
}
