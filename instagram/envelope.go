package instagram

/*
Envelope is the provider's answer for one shortcode:

	{"data": {"xdt_shortcode_media": {...}}}

The media node is null when the post does not exist or is not public.
Carousels list their children under edge_sidecar_to_children; children are
never carousels themselves.
*/
type Envelope struct {
	Data *EnvelopeData `json:"data"`
}

type EnvelopeData struct {
	ShortcodeMedia *MediaNode `json:"xdt_shortcode_media"`
}

type MediaNode struct {
	Typename   string  `json:"__typename,omitempty"`
	ID         string  `json:"id,omitempty"`
	Shortcode  string  `json:"shortcode,omitempty"`
	IsVideo    bool    `json:"is_video"`
	VideoURL   *string `json:"video_url,omitempty"`
	DisplayURL string  `json:"display_url"`

	Sidecar *SidecarConnection `json:"edge_sidecar_to_children,omitempty"`
}

type SidecarConnection struct {
	Edges []SidecarEdge `json:"edges"`
}

type SidecarEdge struct {
	Node *MediaNode `json:"node"`
}

// Media returns the top-level media node, or nil if the post was not found.
func (e *Envelope) Media() *MediaNode {
	if e == nil || e.Data == nil {
		return nil
	}
	return e.Data.ShortcodeMedia
}

// SidecarNodes returns the carousel children in provider order. An edge
// without a node yields a nil entry.
func (n *MediaNode) SidecarNodes() []*MediaNode {
	if n == nil || n.Sidecar == nil {
		return nil
	}
	nodes := make([]*MediaNode, 0, len(n.Sidecar.Edges))
	for _, edge := range n.Sidecar.Edges {
		nodes = append(nodes, edge.Node)
	}
	return nodes
}
