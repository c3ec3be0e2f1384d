package model

// Content tables, in the order the aggregate document lists them.
const (
	TableSettings     = "settings"
	TableServices     = "services"
	TableGallery      = "gallery"
	TableVideoGallery = "video_gallery"
	TableAppointments = "appointments"
)

// Document sources. Only SourceStore documents are cacheable.
const (
	SourceStore       = "store"
	SourceCache       = "cache"
	SourceTimeout     = "timeout"
	SourceUnavailable = "backend_unavailable"
)

// ContentDocument is the aggregate served to the public page.
type ContentDocument struct {
	Settings     map[string]string `json:"settings"`
	Services     []Service         `json:"services"`
	Gallery      []MediaItem       `json:"gallery"`
	VideoGallery []MediaItem       `json:"video_gallery"`
	Appointments []Appointment     `json:"appointments"`

	Source string `json:"-"`
}

// FallbackDocument is built purely from compiled-in defaults.
func FallbackDocument(source string) ContentDocument {
	doc := ContentDocument{
		Settings: DefaultSettings(),
		Source:   source,
	}
	doc.Normalize()
	return doc
}

// Normalize replaces nil collections with empty ones so they encode as [] and {}.
func (d *ContentDocument) Normalize() {
	if d.Settings == nil {
		d.Settings = map[string]string{}
	}
	if d.Services == nil {
		d.Services = []Service{}
	}
	if d.Gallery == nil {
		d.Gallery = []MediaItem{}
	}
	if d.VideoGallery == nil {
		d.VideoGallery = []MediaItem{}
	}
	if d.Appointments == nil {
		d.Appointments = []Appointment{}
	}
}

// Degraded reports whether the document came from defaults instead of the store.
func (d ContentDocument) Degraded() bool {
	return d.Source == SourceTimeout || d.Source == SourceUnavailable
}

// Clone deep-copies the document so cached values are never shared.
func (d ContentDocument) Clone() ContentDocument {
	out := ContentDocument{Source: d.Source}
	if d.Settings != nil {
		out.Settings = make(map[string]string, len(d.Settings))
		for k, v := range d.Settings {
			out.Settings[k] = v
		}
	}
	out.Services = append([]Service(nil), d.Services...)
	out.Gallery = append([]MediaItem(nil), d.Gallery...)
	out.VideoGallery = append([]MediaItem(nil), d.VideoGallery...)
	out.Appointments = append([]Appointment(nil), d.Appointments...)
	out.Normalize()
	return out
}
