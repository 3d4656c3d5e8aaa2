//go:build !swag

package swaggerkit

// builds without the swag tag carry no generated document, the UI still loads
var readDoc = func() string {
	return `{"openapi":"3.0.3","info":{"title":"Draftdesk API","version":"dev"},"paths":{}}`
}
