// Package api exposes the storefront over HTTP: catalog, cart, virtual
// try-on, store locator, contact and account routes.
package api

import (
	"github.com/proteuswear/storefront-api/catalog"
	"github.com/proteuswear/storefront-api/store"
	"github.com/proteuswear/storefront-api/tryon"
)

const DatabaseName = "proteus"

// Handler bundles the stores and services the routes operate on. Handlers
// receive everything through this struct; there are no package-level
// stores.
type Handler struct {
	Carts        *store.CartStore
	Sessions     *store.SessionStore
	Catalog      *catalog.Catalog
	Orchestrator *tryon.Orchestrator
}

func New(carts *store.CartStore, sessions *store.SessionStore, cat *catalog.Catalog, orchestrator *tryon.Orchestrator) *Handler {
	return &Handler{
		Carts:        carts,
		Sessions:     sessions,
		Catalog:      cat,
		Orchestrator: orchestrator,
	}
}
