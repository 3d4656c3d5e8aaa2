// Package docs holds the OpenAPI document served by swaggerkit in swag builds
//
// docs.go is refreshed from the handler annotations with
//
//	swag init --v3.1 --instanceName api -g cmd/draftdesk-api/main.go -d ./,./internal/services/api -o internal/services/api/docs
package docs
