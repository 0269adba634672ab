package http

import (
	"customer-support-agent/internal/support"
	"customer-support-agent/pkg/log"
)

type handler struct {
	l  log.Logger
	uc support.UseCase
}

// New creates the HTTP handler for the support domain.
func New(l log.Logger, uc support.UseCase) *handler {
	return &handler{l: l, uc: uc}
}
