package config

import "errors"

// Sentinel errors returned by config validation when a required setting is
// missing from every source (env, flags, JSON file).
var (
	ErrNoServerAddress = errors.New("no http server address provided")
	ErrNoDatabaseDSN   = errors.New("no ledger database DSN provided")
	ErrNoBlobsDir      = errors.New("no blob store directory provided")
	ErrNoVaultAddress  = errors.New("no vault address provided")
	ErrNoTokenSignKey  = errors.New("no token sign key provided")
	ErrNoTokenIssuer   = errors.New("no token issuer provided")
)
