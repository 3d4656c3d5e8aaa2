//go:build swag

package swaggerkit

import docs "draftdesk/internal/services/api/docs"

var readDoc = func() string { return docs.SwaggerInfo.ReadDoc() }
