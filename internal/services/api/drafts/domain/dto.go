// Package domain holds DTOs for drafts http and service contracts
package domain

import (
	perr "draftdesk/internal/platform/errors"
	detectdom "draftdesk/internal/services/api/detect/domain"
)

// Tones accepted by DraftInput
const (
	ToneFriendly = "friendly"
	ToneFormal   = "formal"
	ToneConcise  = "concise"
)

// DraftInput is a set of case notes to turn into a reply
type DraftInput struct {
	Notes       string `json:"notes"                  validate:"notblank,max=20000" example:"customer asks why po_123 payout is late"`
	Tone        string `json:"tone,omitempty"         validate:"omitempty,oneof=friendly formal concise" example:"friendly"`
	ContainerID string `json:"container_id,omitempty" validate:"omitempty,container_id" example:"pane-1"`
}

// Frame is one streamed snapshot of the draft
// HTML is always the render of the whole text so far
type Frame struct {
	Seq         int              `json:"seq"          example:"3"`
	HTML        string           `json:"html"         example:"<p class=\"md-p\">Hi there</p>"`
	Tag         string           `json:"tag"          example:"payouts"`
	Links       []detectdom.Link `json:"links"`
	ContainerID string           `json:"container_id" example:"pane-1"`
	Done        bool             `json:"done"         example:"false"`
}

// StreamFailure is the data of the error event that ends a failed stream
type StreamFailure struct {
	StatusCode int            `json:"status_code" example:"503"`
	Code       perr.ErrorCode `json:"code"        example:"2"`
	Error      string         `json:"error"       example:"llm upstream status 503"`
	Seq        int            `json:"seq"         example:"4"`
}
