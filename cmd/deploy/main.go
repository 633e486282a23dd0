package main

import (
	"context"
	"flag"
	"log"

	"storefront-be/internal/chain"
	"storefront-be/internal/config"
	"storefront-be/internal/logger"
)

func main() {
	nftWasm := flag.String("nft-wasm", "./contracts/nft.wasm", "path to the nft contract artifact")
	marketplaceWasm := flag.String("marketplace-wasm", "./contracts/marketplace.wasm", "path to the marketplace contract artifact")
	flag.Parse()

	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	client := chain.NewDryRunClient(cfg.ChainNetwork)
	deployer := chain.NewDeployer(client, cfg.ChainNetwork, cfg.AppConfigPath)

	artifacts := []chain.Artifact{
		{
			Name:       "nft",
			AccountID:  cfg.NFTContractID,
			PrivateKey: cfg.NFTPrivateKey,
			WasmPath:   *nftWasm,
			InitArgs: map[string]any{
				"owner_id": cfg.OwnerAccountID,
			},
		},
		{
			Name:       "marketplace",
			AccountID:  cfg.MarketplaceContractID,
			PrivateKey: cfg.MarketplacePrivateKey,
			WasmPath:   *marketplaceWasm,
			InitArgs: map[string]any{
				"owner_id":        cfg.OwnerAccountID,
				"nft_contract_id": cfg.NFTContractID,
			},
		},
	}

	result, err := deployer.Deploy(context.Background(), artifacts)
	if err != nil {
		log.Fatalf("deployment failed: %v", err)
	}

	for name, accountID := range result {
		log.Printf("✅ %s contract deployed to %s on %s", name, accountID, cfg.ChainNetwork)
	}
}
