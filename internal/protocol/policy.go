package protocol

import "github.com/privylocker/privy-locker/models"

// AllowListPolicy is a [VerifierPolicy] backed by a fixed set of identity
// keys. An empty allow-list accepts every identity, which keeps local and
// demo deployments usable without configuration.
type AllowListPolicy struct {
	allowed map[models.Identity]struct{}
}

// NewAllowListPolicy constructs an [AllowListPolicy] from the configured
// verifier identities. Empty entries are skipped.
func NewAllowListPolicy(identities []string) *AllowListPolicy {
	allowed := make(map[models.Identity]struct{}, len(identities))
	for _, id := range identities {
		if id == "" {
			continue
		}
		allowed[models.Identity(id)] = struct{}{}
	}

	return &AllowListPolicy{allowed: allowed}
}

// IsAuthorizedVerifier implements [VerifierPolicy].
func (p *AllowListPolicy) IsAuthorizedVerifier(identity models.Identity) bool {
	if identity.IsZero() {
		return false
	}
	if len(p.allowed) == 0 {
		return true
	}

	_, ok := p.allowed[identity]
	return ok
}
