package workspace

import (
	"time"

	"github.com/google/uuid"
)

// Workspace is an isolated customer account addressed via a platform subdomain
// or a customer-owned custom domain.
type Workspace struct {
	id                    uuid.UUID
	name                  string
	subdomain             string
	customDomain          string
	isCustomDomainEnabled bool
	isActive              bool
	createdAt             time.Time
	updatedAt             time.Time
}

type Option func(*Workspace)

func WithID(id uuid.UUID) Option {
	return func(w *Workspace) {
		w.id = id
	}
}

func WithCustomDomain(domain string) Option {
	return func(w *Workspace) {
		w.customDomain = domain
	}
}

func WithCustomDomainEnabled(enabled bool) Option {
	return func(w *Workspace) {
		w.isCustomDomainEnabled = enabled
	}
}

func WithIsActive(isActive bool) Option {
	return func(w *Workspace) {
		w.isActive = isActive
	}
}

func WithCreatedAt(createdAt time.Time) Option {
	return func(w *Workspace) {
		w.createdAt = createdAt
	}
}

func WithUpdatedAt(updatedAt time.Time) Option {
	return func(w *Workspace) {
		w.updatedAt = updatedAt
	}
}

func New(name, subdomain string, opts ...Option) *Workspace {
	w := &Workspace{
		id:        uuid.New(),
		name:      name,
		subdomain: subdomain,
		isActive:  true,
		createdAt: time.Now(),
		updatedAt: time.Now(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *Workspace) ID() uuid.UUID {
	return w.id
}

func (w *Workspace) Name() string {
	return w.name
}

func (w *Workspace) Subdomain() string {
	return w.subdomain
}

func (w *Workspace) CustomDomain() string {
	return w.customDomain
}

func (w *Workspace) IsCustomDomainEnabled() bool {
	return w.isCustomDomainEnabled
}

func (w *Workspace) IsActive() bool {
	return w.isActive
}

func (w *Workspace) CreatedAt() time.Time {
	return w.createdAt
}

func (w *Workspace) UpdatedAt() time.Time {
	return w.updatedAt
}

func (w *Workspace) SetName(name string) {
	w.name = name
	w.updatedAt = time.Now()
}

func (w *Workspace) SetCustomDomain(domain string, enabled bool) {
	w.customDomain = domain
	w.isCustomDomainEnabled = enabled && domain != ""
	w.updatedAt = time.Now()
}

// ClearCustomDomain detaches the custom domain, e.g. when the upstream
// provider no longer recognizes the hostname.
func (w *Workspace) ClearCustomDomain() {
	w.customDomain = ""
	w.isCustomDomainEnabled = false
	w.updatedAt = time.Now()
}
