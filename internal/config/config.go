package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv  string
	AppPort string

	// Snapshot storage backend: "file" or "postgres".
	StorageBackend string
	DataDir        string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	JWTSecret string

	ShippingProvider   string
	PaymentCheckoutURL string

	// Contract deployment
	ChainNetwork          string
	ChainRPCURL           string
	NFTContractID         string
	NFTPrivateKey         string
	MarketplaceContractID string
	MarketplacePrivateKey string
	OwnerAccountID        string
	AppConfigPath         string
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:  os.Getenv("APP_ENV"),
		AppPort: getEnv("APP_PORT", "8080"),

		StorageBackend: getEnv("STORAGE_BACKEND", "file"),
		DataDir:        getEnv("DATA_DIR", "./data"),

		DBHost:     os.Getenv("DB_HOST"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBPort:     os.Getenv("DB_PORT"),

		JWTSecret: os.Getenv("SECRET_KEY"),

		ShippingProvider:   os.Getenv("SHIPPING_PROVIDER"),
		PaymentCheckoutURL: os.Getenv("PAYMENT_CHECKOUT_URL"),

		ChainNetwork:          getEnv("CHAIN_NETWORK", "testnet"),
		ChainRPCURL:           os.Getenv("CHAIN_RPC_URL"),
		NFTContractID:         os.Getenv("NFT_CONTRACT_ID"),
		NFTPrivateKey:         os.Getenv("NFT_PRIVATE_KEY"),
		MarketplaceContractID: os.Getenv("MARKETPLACE_CONTRACT_ID"),
		MarketplacePrivateKey: os.Getenv("MARKETPLACE_PRIVATE_KEY"),
		OwnerAccountID:        os.Getenv("OWNER_ACCOUNT_ID"),
		AppConfigPath:         getEnv("APP_CONFIG_PATH", "./app.config.json"),
	}

	if cfg.StorageBackend == "postgres" && cfg.DBHost == "" {
		log.Fatal("STORAGE_BACKEND=postgres requires DB_* environment variables")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
