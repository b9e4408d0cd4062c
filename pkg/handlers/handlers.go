package handlers

import (
	"github.com/chris/contact-unlock/pkg/api"
	"github.com/chris/contact-unlock/pkg/handlers/admin"
	"github.com/chris/contact-unlock/pkg/handlers/payments"
	"github.com/chris/contact-unlock/pkg/handlers/properties"
)

// ApiHandler implements the generated server interface by composing the
// per-resource handlers.
type ApiHandler struct {
	*properties.PropertiesHandler
	*payments.PaymentsHandler
	*admin.AdminHandler
}

// NewApiHandler creates a new ApiHandler.
func NewApiHandler(p *properties.PropertiesHandler, pay *payments.PaymentsHandler, a *admin.AdminHandler) *ApiHandler {
	return &ApiHandler{
		PropertiesHandler: p,
		PaymentsHandler:   pay,
		AdminHandler:      a,
	}
}

// Make sure we conform to the interface
var _ api.ServerInterface = (*ApiHandler)(nil)
