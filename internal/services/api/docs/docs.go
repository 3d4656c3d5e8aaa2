//go:build swag

package docs

import "github.com/swaggo/swag/v2"

const docTemplate = `{
    "openapi": "3.1.0",
    "info": {
        "title": "{{.Title}}",
        "description": "{{escape .Description}}",
        "version": "{{.Version}}"
    },
    "paths": {
        "/detect": {
            "post": {
                "tags": ["detect"],
                "summary": "Classify a support message into a documentation domain",
                "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/detect.DetectInput"}}}},
                "responses": {"200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/detect.DetectResult"}}}}}
            }
        },
        "/detect/domains": {
            "get": {
                "tags": ["detect"],
                "summary": "List the loaded pattern table",
                "responses": {"200": {"description": "ok"}}
            }
        },
        "/render": {
            "post": {
                "tags": ["render"],
                "summary": "Render a markdown snapshot into a container",
                "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/render.RenderInput"}}}},
                "responses": {"200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/render.RenderOutput"}}}}}
            }
        },
        "/render/highlight.css": {
            "get": {
                "tags": ["render"],
                "summary": "Stylesheet for highlighted code blocks",
                "responses": {"200": {"description": "css", "content": {"text/css": {"schema": {"type": "string"}}}}}
            }
        },
        "/render/actions": {
            "post": {
                "tags": ["render"],
                "summary": "Click a copy button in a rendered container",
                "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/render.ActionInput"}}}},
                "responses": {"200": {"description": "ok"}, "404": {"description": "unknown container"}}
            }
        },
        "/render/actions/{id}": {
            "get": {
                "tags": ["render"],
                "summary": "Buttons currently showing the copied state",
                "parameters": [{"name": "id", "in": "path", "required": true, "schema": {"type": "string"}}],
                "responses": {"200": {"description": "ok"}, "404": {"description": "unknown container"}}
            }
        },
        "/drafts": {
            "post": {
                "tags": ["drafts"],
                "summary": "Stream a reply draft as server sent events",
                "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/drafts.DraftInput"}}}},
                "responses": {"200": {"description": "frames", "content": {"text/event-stream": {"schema": {"$ref": "#/components/schemas/drafts.Frame"}}}}}
            }
        },
        "/drafts/sync": {
            "post": {
                "tags": ["drafts"],
                "summary": "Generate a reply draft and return only the final frame",
                "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/drafts.DraftInput"}}}},
                "responses": {"200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/drafts.Frame"}}}}}
            }
        },
        "/station": {
            "get": {"tags": ["station"], "summary": "Current station state", "responses": {"200": {"description": "ok"}}}
        },
        "/station/queue": {
            "post": {
                "tags": ["station"],
                "summary": "Queue a track",
                "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/station.QueueInput"}}}},
                "responses": {"200": {"description": "ok"}}
            }
        },
        "/station/skip": {
            "post": {"tags": ["station"], "summary": "Skip the current track", "responses": {"200": {"description": "ok"}}}
        },
        "/station/history": {
            "get": {
                "tags": ["station"],
                "summary": "Recently started tracks, newest first",
                "parameters": [{"name": "limit", "in": "query", "schema": {"type": "integer", "minimum": 1, "maximum": 200}}],
                "responses": {"200": {"description": "ok"}}
            }
        },
        "/station/ws": {
            "get": {"tags": ["station"], "summary": "Websocket of station events", "responses": {"101": {"description": "switching protocols"}}}
        },
        "/meta/health": {"get": {"tags": ["meta"], "summary": "Health check", "responses": {"200": {"description": "ok"}}}},
        "/meta/ready": {"get": {"tags": ["meta"], "summary": "Readiness probe with dependency checks", "responses": {"200": {"description": "ok"}}}},
        "/meta/version": {"get": {"tags": ["meta"], "summary": "Build and version info", "responses": {"200": {"description": "ok"}}}},
        "/meta/service": {"get": {"tags": ["meta"], "summary": "Service info and uptime", "responses": {"200": {"description": "ok"}}}},
        "/meta/detector": {"get": {"tags": ["meta"], "summary": "Pattern table version, domain count and build", "responses": {"200": {"description": "ok"}}}}
    },
    "components": {
        "schemas": {
            "detect.DetectInput": {
                "type": "object",
                "properties": {"text": {"type": "string", "maxLength": 20000, "example": "my po_123 payout never arrived"}}
            },
            "detect.DetectResult": {
                "type": "object",
                "properties": {
                    "tag": {"type": "string"},
                    "matched": {"type": "boolean"},
                    "reason": {"type": "string"},
                    "links": {"type": "array", "items": {"type": "object", "properties": {"title": {"type": "string"}, "url": {"type": "string"}}}}
                }
            },
            "render.RenderInput": {
                "type": "object",
                "properties": {
                    "text": {"type": "string"},
                    "container_id": {"type": "string", "pattern": "^[A-Za-z0-9][A-Za-z0-9_-]{0,63}$"},
                    "highlight": {"type": "boolean"}
                }
            },
            "render.RenderOutput": {
                "type": "object",
                "properties": {"html": {"type": "string"}, "container_id": {"type": "string"}}
            },
            "render.ActionInput": {
                "type": "object",
                "required": ["container_id", "action"],
                "properties": {
                    "container_id": {"type": "string"},
                    "action": {"type": "string", "enum": ["copy-code", "copy-url", "copy-table"]},
                    "index": {"type": "integer", "minimum": 0}
                }
            },
            "drafts.DraftInput": {
                "type": "object",
                "required": ["notes"],
                "properties": {
                    "notes": {"type": "string", "maxLength": 20000},
                    "tone": {"type": "string", "enum": ["friendly", "formal", "concise"]},
                    "container_id": {"type": "string"}
                }
            },
            "drafts.Frame": {
                "type": "object",
                "properties": {
                    "seq": {"type": "integer"},
                    "html": {"type": "string"},
                    "tag": {"type": "string"},
                    "container_id": {"type": "string"},
                    "done": {"type": "boolean"}
                }
            },
            "station.QueueInput": {
                "type": "object",
                "required": ["title", "url"],
                "properties": {
                    "title": {"type": "string", "maxLength": 200},
                    "url": {"type": "string", "format": "uri"},
                    "duration_s": {"type": "integer", "minimum": 1, "maximum": 21600}
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	BasePath:         "/api/v1",
	Title:            "Draftdesk API",
	Description:      "Context detection, streamed reply drafts, markdown rendering and the station feed",
	InfoInstanceName: "api",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
