package services

import (
	"context"
	"net/url"
	"strings"

	gocache "github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/nimbusdesk/nimbusdesk/modules/core/domain/entities/workspace"
	"github.com/nimbusdesk/nimbusdesk/modules/core/infrastructure/persistence"
	"github.com/nimbusdesk/nimbusdesk/pkg/configuration"
)

// WorkspaceKey is the tenant addressing extracted from a request origin.
// At most one of the two fields is set.
type WorkspaceKey struct {
	Subdomain    string
	CustomDomain string
}

func (k WorkspaceKey) IsZero() bool {
	return k.Subdomain == "" && k.CustomDomain == ""
}

// DomainService maps request origins to workspaces and builds
// workspace-scoped URLs. Resolved workspace IDs are kept in the cache store so
// repeated lookups for the same host skip the database.
type DomainService struct {
	cfg    *configuration.Configuration
	repo   workspace.Repository
	cache  *gocache.Cache[string]
	logger *logrus.Logger
}

func NewDomainService(
	cfg *configuration.Configuration,
	repo workspace.Repository,
	cacheStore store.StoreInterface,
	logger *logrus.Logger,
) *DomainService {
	var c *gocache.Cache[string]
	if cacheStore != nil {
		c = gocache.New[string](cacheStore)
	}
	return &DomainService{
		cfg:    cfg,
		repo:   repo,
		cache:  c,
		logger: logger,
	}
}

// BaseFrontURL is the platform's front URL: protocol/domain/port from
// configuration, or the server URL authority when no front domain is set.
func (s *DomainService) BaseFrontURL() (*url.URL, error) {
	return s.cfg.BaseFrontURL()
}

// OriginToWorkspaceKey extracts the workspace addressing from an origin URL.
// Hosts under the front domain address by subdomain (the default subdomain is
// suppressed); any other host is treated as a custom domain. The suffix match
// is a case-sensitive ASCII comparison against the configured front domain.
func (s *DomainService) OriginToWorkspaceKey(origin string) (WorkspaceKey, error) {
	u, err := url.Parse(origin)
	if err != nil {
		return WorkspaceKey{}, err
	}
	hostname := u.Hostname()
	if hostname == "" {
		return WorkspaceKey{}, nil
	}

	front, err := s.cfg.BaseFrontURL()
	if err != nil {
		return WorkspaceKey{}, err
	}
	frontHost := front.Hostname()

	if hostname == frontHost {
		return WorkspaceKey{}, nil
	}
	if strings.HasSuffix(hostname, "."+frontHost) {
		subdomain := strings.TrimSuffix(hostname, "."+frontHost)
		if subdomain == s.cfg.Front.DefaultSubdomain {
			return WorkspaceKey{}, nil
		}
		return WorkspaceKey{Subdomain: subdomain}, nil
	}
	return WorkspaceKey{CustomDomain: hostname}, nil
}

// ResolveWorkspace finds the workspace a request origin addresses. In
// single-workspace deployments the default workspace is always returned
// regardless of origin.
func (s *DomainService) ResolveWorkspace(ctx context.Context, origin string) (*workspace.Workspace, error) {
	if !s.cfg.IsMultiWorkspaceEnabled {
		return s.resolveDefaultWorkspace(ctx)
	}

	key, err := s.OriginToWorkspaceKey(origin)
	if err != nil {
		return nil, err
	}
	if key.IsZero() {
		return nil, persistence.ErrWorkspaceNotFound
	}

	if ws, ok := s.cachedLookup(ctx, key); ok {
		return ws, nil
	}

	var ws *workspace.Workspace
	if key.CustomDomain != "" {
		ws, err = s.repo.GetByCustomDomain(ctx, key.CustomDomain)
	} else {
		ws, err = s.repo.GetBySubdomain(ctx, key.Subdomain)
	}
	if err != nil {
		return nil, err
	}

	s.cacheWorkspaceID(ctx, key, ws.ID())
	return ws, nil
}

// resolveDefaultWorkspace picks the single workspace of a non-multi-workspace
// deployment: the one on the default subdomain when present, otherwise the
// most recently created. More than one workspace is a misconfiguration signal,
// logged but not fatal.
func (s *DomainService) resolveDefaultWorkspace(ctx context.Context) (*workspace.Workspace, error) {
	all, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, persistence.ErrWorkspaceNotFound
	}
	if len(all) > 1 && s.logger != nil {
		s.logger.Warnf("%d workspaces exist but multi-workspace mode is disabled", len(all))
	}
	for _, ws := range all {
		if ws.Subdomain() == s.cfg.Front.DefaultSubdomain {
			return ws, nil
		}
	}
	return all[0], nil
}

// WorkspaceURL builds an outbound URL for the workspace. The custom domain is
// preferred only when it is both set and enabled; a workspace flagged enabled
// with an empty custom domain falls back to its subdomain URL. Query
// parameters with empty values are skipped.
func (s *DomainService) WorkspaceURL(ws *workspace.Workspace, pathname string, query map[string]string) (*url.URL, error) {
	var u *url.URL
	if ws.IsCustomDomainEnabled() && ws.CustomDomain() != "" {
		u = &url.URL{Scheme: s.cfg.Front.Protocol, Host: ws.CustomDomain()}
	} else {
		front, err := s.cfg.BaseFrontURL()
		if err != nil {
			return nil, err
		}
		u = &url.URL{Scheme: front.Scheme, Host: front.Host}
		if ws.Subdomain() != "" {
			u.Host = ws.Subdomain() + "." + front.Host
		}
	}

	if pathname != "" && !strings.HasPrefix(pathname, "/") {
		pathname = "/" + pathname
	}
	u.Path = pathname

	q := u.Query()
	for k, v := range query {
		if v == "" {
			continue
		}
		q.Set(k, v)
	}
	u.RawQuery = q.Encode()
	return u, nil
}

// InvalidateCustomDomain drops the cached lookup for a hostname after its
// validation state changed.
func (s *DomainService) InvalidateCustomDomain(ctx context.Context, hostname string) {
	if s.cache == nil || hostname == "" {
		return
	}
	_ = s.cache.Delete(ctx, cacheKey(WorkspaceKey{CustomDomain: hostname}))
}

func (s *DomainService) cachedLookup(ctx context.Context, key WorkspaceKey) (*workspace.Workspace, bool) {
	if s.cache == nil {
		return nil, false
	}
	raw, err := s.cache.Get(ctx, cacheKey(key))
	if err != nil {
		return nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, false
	}
	ws, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, false
	}
	return ws, true
}

func (s *DomainService) cacheWorkspaceID(ctx context.Context, key WorkspaceKey, id uuid.UUID) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Set(ctx, cacheKey(key), id.String(), store.WithExpiration(s.cfg.Cache.TTL()))
}

func cacheKey(key WorkspaceKey) string {
	if key.CustomDomain != "" {
		return "workspace:domain:" + key.CustomDomain
	}
	return "workspace:subdomain:" + key.Subdomain
}
