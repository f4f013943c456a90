package services_test

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/nimbusdesk/nimbusdesk/modules/core/domain/entities/customdomain"
	"github.com/nimbusdesk/nimbusdesk/modules/core/domain/entities/workspace"
	"github.com/nimbusdesk/nimbusdesk/modules/core/infrastructure/persistence"
)

// fakeWorkspaceRepository is an in-memory workspace.Repository that counts
// writes, so tests can assert idempotence.
type fakeWorkspaceRepository struct {
	mu         sync.Mutex
	workspaces []*workspace.Workspace

	reads   int
	updates int

	getErr    error
	updateErr error
}

func newFakeWorkspaceRepository(workspaces ...*workspace.Workspace) *fakeWorkspaceRepository {
	return &fakeWorkspaceRepository{workspaces: workspaces}
}

func (f *fakeWorkspaceRepository) GetByID(_ context.Context, id uuid.UUID) (*workspace.Workspace, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads++
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, ws := range f.workspaces {
		if ws.ID() == id {
			return ws, nil
		}
	}
	return nil, persistence.ErrWorkspaceNotFound
}

func (f *fakeWorkspaceRepository) GetBySubdomain(_ context.Context, subdomain string) (*workspace.Workspace, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads++
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, ws := range f.workspaces {
		if ws.Subdomain() == subdomain {
			return ws, nil
		}
	}
	return nil, persistence.ErrWorkspaceNotFound
}

func (f *fakeWorkspaceRepository) GetByCustomDomain(_ context.Context, domain string) (*workspace.Workspace, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads++
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, ws := range f.workspaces {
		if ws.CustomDomain() == domain && domain != "" {
			return ws, nil
		}
	}
	return nil, persistence.ErrWorkspaceNotFound
}

func (f *fakeWorkspaceRepository) GetAll(_ context.Context) ([]*workspace.Workspace, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads++
	if f.getErr != nil {
		return nil, f.getErr
	}
	out := make([]*workspace.Workspace, len(f.workspaces))
	copy(out, f.workspaces)
	return out, nil
}

func (f *fakeWorkspaceRepository) Count(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.workspaces)), nil
}

func (f *fakeWorkspaceRepository) Create(_ context.Context, data *workspace.Workspace) (*workspace.Workspace, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.workspaces = append([]*workspace.Workspace{data}, f.workspaces...)
	return data, nil
}

func (f *fakeWorkspaceRepository) Update(_ context.Context, data *workspace.Workspace) (*workspace.Workspace, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates++
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	for i, ws := range f.workspaces {
		if ws.ID() == data.ID() {
			f.workspaces[i] = data
			return data, nil
		}
	}
	return nil, persistence.ErrWorkspaceNotFound
}

func (f *fakeWorkspaceRepository) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, ws := range f.workspaces {
		if ws.ID() == id {
			f.workspaces = append(f.workspaces[:i], f.workspaces[i+1:]...)
			return nil
		}
	}
	return persistence.ErrWorkspaceNotFound
}

// fakeValidator returns canned validation details.
type fakeValidator struct {
	details *customdomain.Details
	err     error
	calls   int
}

func (f *fakeValidator) GetCustomDomainDetails(context.Context, string) (*customdomain.Details, error) {
	f.calls++
	return f.details, f.err
}
