package workspace_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/nimbusdesk/nimbusdesk/modules/core/domain/entities/workspace"
)

func TestNew_Defaults(t *testing.T) {
	ws := workspace.New("Acme", "acme")

	require.NotEqual(t, uuid.Nil, ws.ID())
	require.Equal(t, "Acme", ws.Name())
	require.Equal(t, "acme", ws.Subdomain())
	require.True(t, ws.IsActive())
	require.Empty(t, ws.CustomDomain())
	require.False(t, ws.IsCustomDomainEnabled())
}

func TestSetCustomDomain(t *testing.T) {
	ws := workspace.New("Acme", "acme")

	ws.SetCustomDomain("crm.acme.com", true)
	require.Equal(t, "crm.acme.com", ws.CustomDomain())
	require.True(t, ws.IsCustomDomainEnabled())

	ws.SetCustomDomain("crm.acme.com", false)
	require.False(t, ws.IsCustomDomainEnabled())
}

func TestSetCustomDomain_EmptyDomainNeverEnabled(t *testing.T) {
	ws := workspace.New("Acme", "acme")

	ws.SetCustomDomain("", true)
	require.Empty(t, ws.CustomDomain())
	require.False(t, ws.IsCustomDomainEnabled())
}

func TestClearCustomDomain(t *testing.T) {
	ws := workspace.New("Acme", "acme",
		workspace.WithCustomDomain("crm.acme.com"),
		workspace.WithCustomDomainEnabled(true),
	)

	ws.ClearCustomDomain()
	require.Empty(t, ws.CustomDomain())
	require.False(t, ws.IsCustomDomainEnabled())
}
