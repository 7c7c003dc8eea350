package domain

// Media is an uploaded file reference as returned by the CMS.
type Media struct {
	ID              int64                  `json:"id" yaml:"id"`
	Name            string                 `json:"name,omitempty" yaml:"name"`
	AlternativeText string                 `json:"alternativeText,omitempty" yaml:"alternativeText"`
	Caption         string                 `json:"caption,omitempty" yaml:"caption"`
	Width           int                    `json:"width,omitempty" yaml:"width"`
	Height          int                    `json:"height,omitempty" yaml:"height"`
	URL             string                 `json:"url" yaml:"url"`
	Formats         map[string]MediaFormat `json:"formats,omitempty" yaml:"formats"` // thumbnail|small|medium|large
	Provider        string                 `json:"provider,omitempty" yaml:"provider"`
}

type MediaFormat struct {
	URL    string `json:"url" yaml:"url"`
	Width  int    `json:"width" yaml:"width"`
	Height int    `json:"height" yaml:"height"`
}

// Thumb returns the smallest rendition available, or the original URL.
func (m *Media) Thumb() string {
	if m == nil {
		return ""
	}
	for _, k := range []string{"thumbnail", "small", "medium"} {
		if f, ok := m.Formats[k]; ok && f.URL != "" {
			return f.URL
		}
	}
	return m.URL
}
