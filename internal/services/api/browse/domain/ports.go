package domain

import "context"

// ServicePort is the interface implemented by the browse service
type ServicePort interface {
	Route(ctx context.Context, in RouteInput) (Outcome, error)
	Browse(ctx context.Context, in BrowseInput) (Outcome, error)
	Session(ctx context.Context, in SessionQuery) (SessionView, error)
	Sections(ctx context.Context, in SectionsQuery) (SectionsView, error)
	Vendors(ctx context.Context) (VendorsView, error)
	Plan(ctx context.Context, in PlanQuery) (PlanView, error)
}

// Navigator replaces the query of the current location, the pathname is kept
type Navigator interface {
	Replace(ctx context.Context, pathname, query string) error
}

// EventSink records browse log events
type EventSink interface {
	Record(ctx context.Context, events ...Event) error
}
