package customdomain

import "context"

// RecordStatusSuccess is the sentinel a validation record must carry for the
// custom domain to be considered working.
const RecordStatusSuccess = "success"

// Record is a single DNS validation outcome reported by the upstream provider.
type Record struct {
	Name   string
	Value  string
	Status string
}

// Details is the validation state of one hostname. Transient: recomputed per
// webhook delivery, never persisted directly.
type Details struct {
	Hostname string
	Records  []Record
}

// Working reports whether every validation record succeeded.
func (d *Details) Working() bool {
	for _, r := range d.Records {
		if r.Status != RecordStatusSuccess {
			return false
		}
	}
	return true
}

// Validator fetches DNS validation details for a hostname from the upstream
// domain provider. A nil Details with nil error means the hostname is no
// longer recognized upstream.
type Validator interface {
	GetCustomDomainDetails(ctx context.Context, hostname string) (*Details, error)
}
