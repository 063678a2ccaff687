package config

// InstagramSecretData holds provider query settings that are rotated out of
// band. Empty fields leave the configured value in place.
type InstagramSecretData struct {
	DocID     string `json:"docId"`
	AppID     string `json:"appId"`
	UserAgent string `json:"userAgent"`
}

// Apply overrides the graph settings with any non-empty secret fields.
func (s InstagramSecretData) Apply(cfg *InstagramConfig) {
	if s.DocID != "" {
		cfg.DocID = s.DocID
	}
	if s.AppID != "" {
		cfg.AppID = s.AppID
	}
	if s.UserAgent != "" {
		cfg.UserAgent = s.UserAgent
	}
}
