package structs

// ImageRef is an image attached to an article
type ImageRef struct {
	URL     string `json:"url"`
	IsMain  bool   `json:"isMain"`
	Caption string `json:"caption,omitempty"`
	AltText string `json:"altText,omitempty"`
	Credit  string `json:"credit,omitempty"`
}

// Empty reports whether no image is attached
func (i *ImageRef) Empty() bool {
	return i == nil || i.URL == ""
}

// NormalizeImages drops images without a URL and makes exactly one image
// the main one: the first flagged IsMain, or the first image otherwise.
func NormalizeImages(images []ImageRef) []ImageRef {
	out := make([]ImageRef, 0, len(images))
	for _, img := range images {
		if img.URL != "" {
			out = append(out, img)
		}
	}
	if len(out) == 0 {
		return nil
	}

	main := 0
	for i := range out {
		if out[i].IsMain {
			main = i
			break
		}
	}
	for i := range out {
		out[i].IsMain = i == main
	}
	return out
}
