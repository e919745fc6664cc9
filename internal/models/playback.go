package models

// PlaybackState is the observable state of the media element
type PlaybackState struct {
	CurrentTime  float64 `json:"current_time"`
	Duration     float64 `json:"duration"`
	IsPlaying    bool    `json:"is_playing"`
	Volume       float64 `json:"volume"`
	IsMuted      bool    `json:"is_muted"`
	IsFullscreen bool    `json:"is_fullscreen"`
}

// Remaining returns the seconds left until the end of the video
func (s PlaybackState) Remaining() float64 {
	if s.CurrentTime >= s.Duration {
		return 0
	}
	return s.Duration - s.CurrentTime
}
