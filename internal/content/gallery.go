package content

import "minsu-content-backend/internal/model"

// NextIndex returns the lightbox index after i, wrapping past the last image.
func NextIndex(i, n int) int {
	if n <= 0 {
		return 0
	}
	return (i + 1) % n
}

// PrevIndex returns the lightbox index before i, wrapping past the first image.
func PrevIndex(i, n int) int {
	if n <= 0 {
		return 0
	}
	return (i - 1 + n) % n
}

// CoverImage returns the flagged cover, or the first image when none is
// flagged, or nil for an empty gallery.
func CoverImage(images []model.Image) *model.Image {
	for i := range images {
		if images[i].IsCover {
			return &images[i]
		}
	}
	if len(images) > 0 {
		return &images[0]
	}
	return nil
}

// PrimaryVideo returns the flagged primary clip, or the first video when none
// is flagged, or nil when there are no videos.
func PrimaryVideo(videos []model.Video) *model.Video {
	for i := range videos {
		if videos[i].IsPrimary {
			return &videos[i]
		}
	}
	if len(videos) > 0 {
		return &videos[0]
	}
	return nil
}
