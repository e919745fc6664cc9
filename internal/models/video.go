package models

import (
	"time"
)

// Video is a navigable entry of the video catalog
type Video struct {
	ID         string    `json:"id" gorm:"type:text;primaryKey;column:id"`
	Title      string    `json:"title" gorm:"type:text;not null;column:title" validate:"required"`
	URL        string    `json:"url" gorm:"type:text;not null;uniqueIndex;column:url" validate:"required,url"`
	PreviewURL string    `json:"preview_url,omitempty" gorm:"type:text;column:preview_url"`
	Duration   float64   `json:"duration" gorm:"type:real;not null;default:0;column:duration"` // seconds, 0 when unknown
	CreatedAt  time.Time `json:"created_at" gorm:"type:datetime;default:CURRENT_TIMESTAMP;column:created_at"`
}

// NewVideo creates a new Video stamped with the current time
func NewVideo(id, title, url string) *Video {
	return &Video{
		ID:        id,
		Title:     title,
		URL:       url,
		CreatedAt: time.Now().UTC(),
	}
}
