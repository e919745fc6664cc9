package catalog

import "github.com/stwalsh4118/branchpoint/internal/models"

const sampleBucket = "https://storage.googleapis.com/gtv-videos-bucket/sample/"

// DemoVideos returns the videos referenced by the demo markers
func DemoVideos() []*models.Video {
	demo := []struct {
		id, title, file string
		duration        float64
	}{
		{"intro", "Big Buck Bunny", "BigBuckBunny.mp4", 596},
		{"video-a", "Path A: The Adventure Begins", "ElephantsDream.mp4", 653},
		{"video-b", "Path B: The Mystery Unfolds", "ForBiggerBlazes.mp4", 15},
		{"video-1", "Chapter 1", "ForBiggerEscapes.mp4", 15},
		{"video-2", "Chapter 2", "ForBiggerFun.mp4", 60},
		{"video-3", "Chapter 3", "Sintel.mp4", 888},
	}

	videos := make([]*models.Video, 0, len(demo))
	for _, d := range demo {
		v := models.NewVideo(d.id, d.title, sampleBucket+d.file)
		v.Duration = d.duration
		videos = append(videos, v)
	}
	return videos
}
