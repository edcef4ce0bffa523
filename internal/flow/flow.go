// Package flow is the booking-flow engine: the linear sequence from
// movie to schedule to seats to checkout to payment. Each step owns
// its own state; the only thing shared between steps is the Session
// written when a hold is acquired.
package flow

import (
	"cinevers-client/internal/api"

	"go.uber.org/zap"
)

// Flow bundles the steps wired over one API client and one session
// store.
type Flow struct {
	Catalog   *Catalog
	Resolver  *Resolver
	Store     *Store
	Committer *Committer
	Checkout  *Checkout
	Submitter *Submitter
}

func New(services *api.Services, log *zap.Logger) *Flow {
	store := NewStore()
	resolver := NewResolver(services.Booking, log)

	return &Flow{
		Catalog:   NewCatalog(services.Booking, log),
		Resolver:  resolver,
		Store:     store,
		Committer: NewCommitter(services.Booking, resolver, store, log),
		Checkout:  NewCheckout(store, log),
		Submitter: NewSubmitter(services.Payment, services.Booking, store, log),
	}
}
