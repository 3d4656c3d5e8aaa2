// Package domain holds DTOs for render http and service contracts
package domain

// RenderInput is one snapshot of model output to render
// highlight overrides the configured default when set
type RenderInput struct {
	Text        string `json:"text"                   validate:"max=200000" example:"**Hi** see https://docs.example.com"`
	ContainerID string `json:"container_id,omitempty" validate:"omitempty,container_id" example:"pane-1"`
	Highlight   *bool  `json:"highlight,omitempty"    example:"true"`
}

// RenderOutput is the rendered fragment and the container now holding it
type RenderOutput struct {
	HTML        string `json:"html"         example:"<p class=\"md-p\"><strong class=\"md-bold\">Hi</strong></p>"`
	ContainerID string `json:"container_id" example:"pane-1"`
}

// ActionInput is a click on a copy button of a container
type ActionInput struct {
	ContainerID string `json:"container_id" validate:"required,container_id" example:"pane-1"`
	Action      string `json:"action"       validate:"required,oneof=copy-code copy-url copy-table" example:"copy-code"`
	Index       int    `json:"index"        validate:"min=0" example:"0"`
}

// ActionOutput reports what the click did
type ActionOutput struct {
	Copied bool   `json:"copied" example:"true"`
	Action string `json:"action" example:"copy-code"`
	Index  int    `json:"index"  example:"0"`
	Chars  int    `json:"chars"  example:"42"`
}

// CopiedButton is a button currently shown as copied
type CopiedButton struct {
	Action string `json:"action" example:"copy-url"`
	Index  int    `json:"index"  example:"1"`
}

// CopiedState lists the copied buttons of a container
type CopiedState struct {
	ContainerID string         `json:"container_id" example:"pane-1"`
	Copied      []CopiedButton `json:"copied"`
	ResetMS     int64          `json:"reset_ms"     example:"2000"`
}
