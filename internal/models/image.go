package models

// Meta is the persisted shape of a catalog entry, keyed by id in the
// metadata document.
type Meta struct {
	Filename string `json:"filename"`
	Title    string `json:"title"`
	Prompt   string `json:"prompt,omitempty"`
	Created  string `json:"created,omitempty"`
}

// Image is the API view of a catalog entry. URL and ThumbnailURL are derived
// from the filename at read time and never stored.
type Image struct {
	ID           string `json:"id"`
	Filename     string `json:"filename"`
	Title        string `json:"title"`
	Prompt       string `json:"prompt,omitempty"`
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
	Created      string `json:"created,omitempty"`
}
