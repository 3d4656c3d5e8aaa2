// Package domain holds DTOs for station http and service contracts
package domain

import "time"

// event types broadcast to websocket listeners
const (
	EventState = "state"
	EventTrack = "track"
)

// Track is one queued song
type Track struct {
	ID        string `json:"id"         example:"1f0c6a52-8a43-4c0e-9a0e-0d4b1f2a9c11"`
	Title     string `json:"title"      example:"Lo-fi for ticket triage"`
	URL       string `json:"url"        example:"https://radio.example.com/t/42.mp3"`
	DurationS int    `json:"duration_s" example:"180"`
}

// NowPlaying is the current track and when it started
type NowPlaying struct {
	Track     Track     `json:"track"`
	StartedAt time.Time `json:"started_at"`
	ElapsedS  int       `json:"elapsed_s" example:"42"`
}

// State is what every console shows
type State struct {
	Name       string      `json:"name"        example:"draftdesk radio"`
	NowPlaying *NowPlaying `json:"now_playing"`
	Queue      []Track     `json:"queue"`
	Listeners  int         `json:"listeners"   example:"3"`
}

// Event is pushed to every websocket listener
type Event struct {
	Type  string `json:"type" example:"state"`
	State State  `json:"state"`
}

// QueueInput adds a track to the end of the queue
type QueueInput struct {
	Title     string `json:"title"      validate:"required,max=200" example:"Lo-fi for ticket triage"`
	URL       string `json:"url"        validate:"required,url,max=2048" example:"https://radio.example.com/t/42.mp3"`
	DurationS int    `json:"duration_s" validate:"min=1,max=21600" example:"180"`
}

// Played is one history entry
type Played struct {
	TrackID   string    `json:"track_id"   example:"1f0c6a52-8a43-4c0e-9a0e-0d4b1f2a9c11"`
	Title     string    `json:"title"      example:"Lo-fi for ticket triage"`
	URL       string    `json:"url"        example:"https://radio.example.com/t/42.mp3"`
	DurationS int       `json:"duration_s" example:"180"`
	StartedAt time.Time `json:"started_at"`
}

// HistoryResult lists recently started tracks, newest first
type HistoryResult struct {
	Source string   `json:"source" example:"pg"` // pg or memory
	Items  []Played `json:"items"`
}
