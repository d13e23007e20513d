package schema

// Attachement is extra content carried along with a message
type Attachement struct {
	// ImageURLs attached image urls
	ImageURLs []string `json:"image_urls,omitempty"`
}
