package config

import (
	"flag"
	"os"
	"path/filepath"
	"time"
)

// ClientConfig holds the settings of the privy-locker CLI client.
type ClientConfig struct {
	// Adapter holds the locker API endpoint settings.
	Adapter ClientAdapter `envPrefix:"ADAPTER_"`

	// App holds client-side identity and local state settings.
	App ClientApp `envPrefix:"APP_"`
}

// ClientAdapter holds the locker service endpoint used by the client
// orchestrator.
type ClientAdapter struct {
	// HTTPAddress is the base URL of the locker API.
	// Env: CLIENT_ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds every outbound API call.
	// Env: CLIENT_ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// ClientApp holds the wallet identity the client acts as and the location
// of its local preference database.
type ClientApp struct {
	// Identity is the wallet identity key used for all operations.
	// Env: CLIENT_APP_IDENTITY
	Identity string `env:"IDENTITY"`

	// StatePath is the sqlite database file holding client-local state
	// (hidden documents, cached session token). Defaults to
	// "privy-locker.db" next to the executable.
	// Env: CLIENT_APP_STATE_PATH
	StatePath string `env:"STATE_PATH"`
}

// GetClientConfig loads the CLI client configuration from environment
// variables (CLIENT_ prefix) and command-line flags. Flags win over env
// for non-empty values; args holds the raw command-line arguments after
// the subcommand name.
//
// The returned flag set has already been parsed; remaining positional
// arguments are available via its Args method.
func GetClientConfig(name string, args []string) (*ClientConfig, *flag.FlagSet, error) {
	cfg := &ClientConfig{}
	if err := parseEnvPrefixed(cfg, "CLIENT_"); err != nil {
		return nil, nil, err
	}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	addr := fs.String("a", "", "Locker API base URL")
	timeout := fs.Duration("request-timeout", 0, "API request timeout (e.g., 30s)")
	identity := fs.String("identity", "", "Wallet identity key")
	statePath := fs.String("state", "", "Local state database path")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	if *addr != "" {
		cfg.Adapter.HTTPAddress = *addr
	}
	if *timeout > 0 {
		cfg.Adapter.RequestTimeout = *timeout
	}
	if *identity != "" {
		cfg.App.Identity = *identity
	}
	if *statePath != "" {
		cfg.App.StatePath = *statePath
	}

	if cfg.Adapter.RequestTimeout <= 0 {
		cfg.Adapter.RequestTimeout = defaultRequestTimeout
	}
	if cfg.App.StatePath == "" {
		cfg.App.StatePath = defaultClientStatePath()
	}

	return cfg, fs, nil
}

func defaultClientStatePath() string {
	execPath, err := os.Executable()
	if err != nil {
		return "privy-locker.db"
	}
	return filepath.Join(filepath.Dir(execPath), "privy-locker.db")
}
