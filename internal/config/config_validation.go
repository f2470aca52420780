package config

import "time"

// Built-in fallbacks applied before validation. The default share TTL of
// one hour matches the reference flow's fixed session lifetime.
const (
	defaultShareTTL          = time.Hour
	defaultTokenDuration     = 24 * time.Hour
	defaultRequestTimeout    = 30 * time.Second
	defaultVaultTimeout      = 10 * time.Second
	defaultReconcileInterval = time.Minute
)

func (c *StructuredConfig) applyDefaults() {
	if c.App.DefaultShareTTL <= 0 {
		c.App.DefaultShareTTL = defaultShareTTL
	}
	if c.App.TokenDuration <= 0 {
		c.App.TokenDuration = defaultTokenDuration
	}
	if c.Server.RequestTimeout <= 0 {
		c.Server.RequestTimeout = defaultRequestTimeout
	}
	if c.Vault.RequestTimeout <= 0 {
		c.Vault.RequestTimeout = defaultVaultTimeout
	}
	if c.Workers.ReconcileInterval <= 0 {
		c.Workers.ReconcileInterval = defaultReconcileInterval
	}
}

// validate checks that every setting the locker service cannot run without
// has been supplied by at least one source.
func (c *StructuredConfig) validate() error {
	if c.Server.HTTPAddress == "" {
		return ErrNoServerAddress
	}
	if c.Storage.DB.DSN == "" {
		return ErrNoDatabaseDSN
	}
	if c.Storage.Blobs.Dir == "" {
		return ErrNoBlobsDir
	}
	if c.Vault.Address == "" {
		return ErrNoVaultAddress
	}
	if c.App.TokenSignKey == "" {
		return ErrNoTokenSignKey
	}
	if c.App.TokenIssuer == "" {
		return ErrNoTokenIssuer
	}

	return nil
}
