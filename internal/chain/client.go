package chain

import (
	"context"

	"go.uber.org/zap"

	"storefront-be/internal/logger"
)

// Client is the boundary to the blockchain RPC layer. The real client
// lives outside this repository; deployments run against whatever
// implementation the binary is wired with.
type Client interface {
	DeployContract(ctx context.Context, accountID string, wasm []byte) error
	Call(ctx context.Context, accountID, method string, args map[string]any) error
	View(ctx context.Context, accountID, method string, args map[string]any) ([]byte, error)
}

// DryRunClient logs every action instead of sending it. It is the
// default when no RPC endpoint is configured, and mirrors what a
// deployment would do without touching a network.
type DryRunClient struct {
	network string
}

func NewDryRunClient(network string) *DryRunClient {
	return &DryRunClient{network: network}
}

func (c *DryRunClient) DeployContract(_ context.Context, accountID string, wasm []byte) error {
	logger.L().Info("dry-run: deploy contract",
		zap.String("network", c.network),
		zap.String("account_id", accountID),
		zap.Int("wasm_bytes", len(wasm)),
	)
	return nil
}

func (c *DryRunClient) Call(_ context.Context, accountID, method string, args map[string]any) error {
	logger.L().Info("dry-run: function call",
		zap.String("network", c.network),
		zap.String("account_id", accountID),
		zap.String("method", method),
		zap.Any("args", args),
	)
	return nil
}

func (c *DryRunClient) View(_ context.Context, accountID, method string, _ map[string]any) ([]byte, error) {
	logger.L().Info("dry-run: view call",
		zap.String("network", c.network),
		zap.String("account_id", accountID),
		zap.String("method", method),
	)
	return []byte("{}"), nil
}
