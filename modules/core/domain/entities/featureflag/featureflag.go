package featureflag

// Key identifies a feature flag. Keys are configuration data: evaluation
// happens elsewhere, per workspace.
type Key string

const (
	IsSSOEnabled             Key = "IS_SSO_ENABLED"
	IsBillingEnabled         Key = "IS_BILLING_ENABLED"
	IsPublicAPIEnabled       Key = "IS_PUBLIC_API_ENABLED"
	IsWorkspaceExportEnabled Key = "IS_WORKSPACE_EXPORT_ENABLED"
	IsAuditLogEnabled        Key = "IS_AUDIT_LOG_ENABLED"
	IsEmailSyncEnabled       Key = "IS_EMAIL_SYNC_ENABLED"
	IsCalendarSyncEnabled    Key = "IS_CALENDAR_SYNC_ENABLED"
	IsAIAssistEnabled        Key = "IS_AI_ASSIST_ENABLED"
)

func All() []Key {
	return []Key{
		IsSSOEnabled,
		IsBillingEnabled,
		IsPublicAPIEnabled,
		IsWorkspaceExportEnabled,
		IsAuditLogEnabled,
		IsEmailSyncEnabled,
		IsCalendarSyncEnabled,
		IsAIAssistEnabled,
	}
}

func (k Key) String() string {
	return string(k)
}

func (k Key) IsValid() bool {
	for _, known := range All() {
		if k == known {
			return true
		}
	}
	return false
}
