package chain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"storefront-be/internal/logger"
)

var (
	ErrMissingAccountID  = errors.New("contract account id not set")
	ErrMissingPrivateKey = errors.New("contract private key not set")
)

// Artifact is one contract to deploy: its wasm, the account it lives
// under, and the args for the one-time `new` init call.
type Artifact struct {
	Name       string
	AccountID  string
	PrivateKey string
	WasmPath   string
	InitArgs   map[string]any
}

// Result maps artifact names to the account ids they were deployed to.
type Result map[string]string

// AppConfig is the app.config.json layout the storefront UI reads
// contract ids from, keyed by network.
type AppConfig struct {
	App struct {
		Contracts map[string]map[string]string `json:"contracts"`
	} `json:"app"`
}

// Deployer pushes contract artifacts through a Client and records the
// deployed ids in the app config file.
type Deployer struct {
	client     Client
	network    string
	configPath string
}

func NewDeployer(client Client, network, configPath string) *Deployer {
	return &Deployer{client: client, network: network, configPath: configPath}
}

// Deploy validates every artifact up front, then deploys and
// initializes each in order. Nothing is sent if any artifact is
// misconfigured.
func (d *Deployer) Deploy(ctx context.Context, artifacts []Artifact) (Result, error) {
	for _, a := range artifacts {
		if a.AccountID == "" {
			return nil, fmt.Errorf("%s: %w", a.Name, ErrMissingAccountID)
		}
		if a.PrivateKey == "" {
			return nil, fmt.Errorf("%s: %w", a.Name, ErrMissingPrivateKey)
		}
	}

	result := make(Result, len(artifacts))
	for _, a := range artifacts {
		wasm, err := os.ReadFile(a.WasmPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s artifact: %w", a.Name, err)
		}

		logger.L().Info("deploying contract",
			zap.String("contract", a.Name),
			zap.String("account_id", a.AccountID),
			zap.String("network", d.network),
		)

		if err := d.client.DeployContract(ctx, a.AccountID, wasm); err != nil {
			return nil, fmt.Errorf("failed to deploy %s: %w", a.Name, err)
		}
		if err := d.client.Call(ctx, a.AccountID, "new", a.InitArgs); err != nil {
			return nil, fmt.Errorf("failed to initialize %s: %w", a.Name, err)
		}

		result[a.Name] = a.AccountID
	}

	if err := d.recordResult(result); err != nil {
		return nil, err
	}
	return result, nil
}

// recordResult merges the deployed ids into the app config file,
// preserving entries for other networks.
func (d *Deployer) recordResult(result Result) error {
	var cfg AppConfig
	if raw, err := os.ReadFile(d.configPath); err == nil {
		if err := json.Unmarshal(raw, &cfg); err != nil {
			return fmt.Errorf("failed to parse app config: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to read app config: %w", err)
	}

	if cfg.App.Contracts == nil {
		cfg.App.Contracts = make(map[string]map[string]string)
	}
	if cfg.App.Contracts[d.network] == nil {
		cfg.App.Contracts[d.network] = make(map[string]string)
	}
	for name, accountID := range result {
		cfg.App.Contracts[d.network][name] = accountID
	}

	raw, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode app config: %w", err)
	}
	if err := os.WriteFile(d.configPath, raw, 0o644); err != nil {
		return fmt.Errorf("failed to write app config: %w", err)
	}
	return nil
}

// LoadAppConfig reads the recorded contract ids; a missing file yields
// an empty config.
func LoadAppConfig(path string) (*AppConfig, error) {
	var cfg AppConfig
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read app config: %w", err)
	}
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse app config: %w", err)
	}
	return &cfg, nil
}
