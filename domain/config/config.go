package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/ivanschuetz/capi-core-sub000/domain"
)

const (
	MainNetwork = "mainnet"
	TestNetwork = "testnet"
)

var (
	ErrorInvalidNetwork = fmt.Errorf("network must be equal to 'mainnet' or 'testnet' only")

	ErrorNoAlgodUrl   = fmt.Errorf("no algod url is defined")
	ErrorNoIndexerUrl = fmt.Errorf("no indexer url is defined")

	ErrorInvalidCapiFee            = fmt.Errorf("invalid capi fee percentage")
	ErrorInvalidPollInterval       = fmt.Errorf("invalid poll interval for the confirmation waiter")
	ErrorInvalidConfirmationBudget = fmt.Errorf("invalid confirmation timeout")
)

var (
	network string

	algodUrl     string
	algodToken   string
	indexerUrl   string
	indexerToken string
	apiUrl       string

	capiAppId    uint64
	capiAssetId  uint64
	fundsAssetId uint64

	capiFeePercentage domain.SharesPercentage

	mnemonic string

	pollInterval       time.Duration
	confirmationBudget time.Duration
)

func ReadConfig(filePath string) error {
	viper.SetConfigFile(filePath)

	viper.SetDefault("capi_fee_percentage", "0.01")
	viper.SetDefault("poll_interval", "250ms")
	viper.SetDefault("confirmation_timeout", "60s")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		slog.Warn("failed reading config file, relying on env and defaults", "err", err)
	}

	return initializeVariables()
}

// Processes the configuration parameters once and keeps the processed values
// in variables for later accesses.
func initializeVariables() error {
	var err error

	network = strings.TrimSpace(strings.ToLower(viper.GetString("network")))
	if network != MainNetwork && network != TestNetwork {
		return ErrorInvalidNetwork
	}

	algodUrl = strings.TrimSpace(viper.GetString("algod_url"))
	if algodUrl == "" {
		return ErrorNoAlgodUrl
	}
	algodToken = strings.TrimSpace(viper.GetString("algod_token"))

	indexerUrl = strings.TrimSpace(viper.GetString("indexer_url"))
	if indexerUrl == "" {
		return ErrorNoIndexerUrl
	}
	indexerToken = strings.TrimSpace(viper.GetString("indexer_token"))

	apiUrl = strings.TrimSpace(viper.GetString("api_url"))

	capiAppId = viper.GetUint64("capi_app_id")
	capiAssetId = viper.GetUint64("capi_asset_id")
	fundsAssetId = viper.GetUint64("funds_asset_id")

	// Only the debug commands sign, the library itself never holds keys.
	mnemonic = strings.TrimSpace(viper.GetString("mnemonic"))

	capiFeePercentage, err = domain.SharesPercentageFromString(viper.GetString("capi_fee_percentage"))
	if err != nil {
		return ErrorInvalidCapiFee
	}

	pollInterval, err = time.ParseDuration(viper.GetString("poll_interval"))
	if err != nil {
		return ErrorInvalidPollInterval
	}

	confirmationBudget, err = time.ParseDuration(viper.GetString("confirmation_timeout"))
	if err != nil {
		return ErrorInvalidConfirmationBudget
	}

	return nil
}

func GetNetwork() string {
	return network
}

func GetAlgodUrl() string {
	return algodUrl
}

func GetAlgodToken() string {
	return algodToken
}

func GetIndexerUrl() string {
	return indexerUrl
}

func GetIndexerToken() string {
	return indexerToken
}

func GetApiUrl() string {
	return apiUrl
}

func GetCapiAppId() uint64 {
	return capiAppId
}

func GetCapiAssetId() uint64 {
	return capiAssetId
}

func GetFundsAssetId() uint64 {
	return fundsAssetId
}

func GetMnemonic() string {
	return mnemonic
}

func GetCapiFeePercentage() domain.SharesPercentage {
	return capiFeePercentage
}

func GetPollInterval() time.Duration {
	return pollInterval
}

func GetConfirmationBudget() time.Duration {
	return confirmationBudget
}

func IsTestNet() bool {
	return network == TestNetwork
}
