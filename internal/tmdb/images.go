// Cinefolio - Movie and TV Discovery and Social Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinefolio

package tmdb

// ImageSize is a TMDB image rendition.
type ImageSize string

const (
	SizeW500     ImageSize = "w500"
	SizeOriginal ImageSize = "original"
)

// PlaceholderImage is served for titles and people without artwork.
const PlaceholderImage = "/placeholder.png"

// ImageURL builds the CDN URL for a poster, backdrop or profile path.
func ImageURL(path string, size ImageSize) string {
	return imageURL(DefaultImageBaseURL, path, size)
}

// ImageURL builds the CDN URL using the client's configured image root.
func (c *Client) ImageURL(path string, size ImageSize) string {
	return imageURL(c.imageBaseURL, path, size)
}

func imageURL(base, path string, size ImageSize) string {
	if path == "" {
		return PlaceholderImage
	}
	if size != SizeOriginal {
		size = SizeW500
	}
	return base + "/" + string(size) + path
}
