package config

import (
	"flag"
	"strings"
	"time"
)

// ParseFlags parses all locker-service configuration flags.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d ledger database DSN
//	-blobs-dir content store directory
//	-vault-address vault API base URL
//	-vault-timeout vault request timeout (e.g., "10s")
//	-c/-config json file path with configs
//	-token-sign-key token signing key
//	-token-issuer token issuer name
//	-token-duration token duration (e.g., "1h", "30m")
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-share-ttl default share session lifetime (e.g., "1h")
//	-verifiers comma-separated authorized verifier identities
//	-reconcile-interval grant reconciler tick interval
func ParseFlags() *StructuredConfig {
	var serverAddress string
	var databaseDSN string
	var blobsDir string
	var vaultAddress string
	var vaultTimeout time.Duration
	var jsonConfigPath string
	var tokenSignKey string
	var tokenIssuer string
	var tokenDuration time.Duration
	var requestTimeout time.Duration
	var shareTTL time.Duration
	var verifiers string
	var reconcileInterval time.Duration

	flag.StringVar(&serverAddress, "a", "", "Net address host:port")
	flag.StringVar(&databaseDSN, "d", "", "Ledger database DSN")
	flag.StringVar(&blobsDir, "blobs-dir", "", "Blob content store directory")
	flag.StringVar(&vaultAddress, "vault-address", "", "Vault API base URL")
	flag.DurationVar(&vaultTimeout, "vault-timeout", 0, "Vault request timeout (e.g., 10s)")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&tokenSignKey, "token-sign-key", "", "Token signing key")
	flag.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	flag.DurationVar(&tokenDuration, "token-duration", 0, "Token duration (e.g., 1h, 30m)")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	flag.DurationVar(&shareTTL, "share-ttl", 0, "Default share session lifetime (e.g., 1h)")
	flag.StringVar(&verifiers, "verifiers", "", "Comma-separated authorized verifier identities")
	flag.DurationVar(&reconcileInterval, "reconcile-interval", 0, "Grant reconciler tick interval")

	flag.Parse()

	var verifierList []string
	if verifiers != "" {
		for _, v := range strings.Split(verifiers, ",") {
			if v = strings.TrimSpace(v); v != "" {
				verifierList = append(verifierList, v)
			}
		}
	}

	return &StructuredConfig{
		App: App{
			TokenSignKey:    tokenSignKey,
			TokenIssuer:     tokenIssuer,
			TokenDuration:   tokenDuration,
			DefaultShareTTL: shareTTL,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
			Blobs: Blobs{
				Dir: blobsDir,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress,
			RequestTimeout: requestTimeout,
		},
		Vault: Vault{
			Address:        vaultAddress,
			RequestTimeout: vaultTimeout,
		},
		Policy: Policy{
			AuthorizedVerifiers: verifierList,
		},
		Workers: Workers{
			ReconcileInterval: reconcileInterval,
		},
		JSONFilePath: jsonConfigPath,
	}
}
