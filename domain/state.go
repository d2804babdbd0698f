package domain

import (
	"encoding/base64"
	"fmt"

	"github.com/algorand/go-algorand-sdk/v2/client/v2/common/models"
	"github.com/algorand/go-algorand-sdk/v2/types"
)

// Global state keys of the central application (v1 contracts).
const (
	GlobalKeyReceivedTotal  = "ReceivedTotal"
	GlobalKeySharesAssetId  = "SharesAssetId"
	GlobalKeyFundsAssetId   = "FundsAssetId"
	GlobalKeyShareSupply    = "ShareSupply"
	GlobalKeyInvestorsPart  = "InvestorsPart"
	GlobalKeySharePrice     = "SharePrice"
	GlobalKeyCentralEscrow  = "CentralEscrow"
	GlobalKeyCustomerEscrow = "CustomerEscrow"
	GlobalKeyOwner          = "Owner"
	GlobalKeyName           = "Name"
)

// Local state keys of an investor's account.
const (
	LocalKeyShares       = "Shares"
	LocalKeyClaimedTotal = "ClaimedTotal"
	LocalKeyClaimedInit  = "ClaimedInit"
)

// CentralAppState is a snapshot of the central application's global state.
// Snapshots are ephemeral: fetched fresh before every computation and never
// cached, the on-chain state can change between reads.
type CentralAppState struct {
	ReceivedTotal  FundsAmount
	SharesAssetId  uint64
	FundsAssetId   uint64
	ShareSupply    ShareAmount
	InvestorsPart  ShareAmount
	SharePrice     FundsAmount
	CentralEscrow  types.Address
	CustomerEscrow types.Address
	Owner          types.Address
	Name           string
}

// InvestorState is a snapshot of an investor's local state in the central
// application.
type InvestorState struct {
	Shares       ShareAmount
	ClaimedTotal FundsAmount
	ClaimedInit  FundsAmount
}

func ParseCentralAppState(app models.Application) (*CentralAppState, error) {
	kvs := app.Params.GlobalState

	receivedTotal, err := stateUint(kvs, GlobalKeyReceivedTotal)
	if err != nil {
		return nil, err
	}
	sharesAssetId, err := stateUint(kvs, GlobalKeySharesAssetId)
	if err != nil {
		return nil, err
	}
	fundsAssetId, err := stateUint(kvs, GlobalKeyFundsAssetId)
	if err != nil {
		return nil, err
	}
	shareSupply, err := stateUint(kvs, GlobalKeyShareSupply)
	if err != nil {
		return nil, err
	}
	investorsPart, err := stateUint(kvs, GlobalKeyInvestorsPart)
	if err != nil {
		return nil, err
	}
	sharePrice, err := stateUint(kvs, GlobalKeySharePrice)
	if err != nil {
		return nil, err
	}
	centralEscrow, err := stateAddress(kvs, GlobalKeyCentralEscrow)
	if err != nil {
		return nil, err
	}
	customerEscrow, err := stateAddress(kvs, GlobalKeyCustomerEscrow)
	if err != nil {
		return nil, err
	}
	owner, err := stateAddress(kvs, GlobalKeyOwner)
	if err != nil {
		return nil, err
	}
	name, err := stateBytes(kvs, GlobalKeyName)
	if err != nil {
		return nil, err
	}

	return &CentralAppState{
		ReceivedTotal:  FundsAmount(receivedTotal),
		SharesAssetId:  sharesAssetId,
		FundsAssetId:   fundsAssetId,
		ShareSupply:    ShareAmount(shareSupply),
		InvestorsPart:  ShareAmount(investorsPart),
		SharePrice:     FundsAmount(sharePrice),
		CentralEscrow:  centralEscrow,
		CustomerEscrow: customerEscrow,
		Owner:          owner,
		Name:           string(name),
	}, nil
}

// ParseInvestorState reads an investor's local state out of an account
// application response. A missing local state means the account never opted
// in, which is reported as ErrorNotOptedIn so callers can show "not
// invested" rather than a generic failure.
func ParseInvestorState(info models.AccountApplicationResponse) (*InvestorState, error) {
	if info.AppLocalState.Id == 0 {
		return nil, ErrorNotOptedIn
	}
	kvs := info.AppLocalState.KeyValue

	shares, err := stateUint(kvs, LocalKeyShares)
	if err != nil {
		return nil, err
	}
	claimedTotal, err := stateUint(kvs, LocalKeyClaimedTotal)
	if err != nil {
		return nil, err
	}
	claimedInit, err := stateUint(kvs, LocalKeyClaimedInit)
	if err != nil {
		return nil, err
	}

	return &InvestorState{
		Shares:       ShareAmount(shares),
		ClaimedTotal: FundsAmount(claimedTotal),
		ClaimedInit:  FundsAmount(claimedInit),
	}, nil
}

func findStateValue(kvs []models.TealKeyValue, key string) (models.TealValue, bool) {
	encoded := base64.StdEncoding.EncodeToString([]byte(key))
	for _, kv := range kvs {
		if kv.Key == encoded {
			return kv.Value, true
		}
	}
	return models.TealValue{}, false
}

func stateUint(kvs []models.TealKeyValue, key string) (uint64, error) {
	value, ok := findStateValue(kvs, key)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrorStateKeyMissing, key)
	}
	if value.Type != 2 {
		return 0, fmt.Errorf("%w: %q holds bytes, expected uint", ErrorStateWrongType, key)
	}
	return value.Uint, nil
}

func stateBytes(kvs []models.TealKeyValue, key string) ([]byte, error) {
	value, ok := findStateValue(kvs, key)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrorStateKeyMissing, key)
	}
	if value.Type != 1 {
		return nil, fmt.Errorf("%w: %q holds uint, expected bytes", ErrorStateWrongType, key)
	}
	b, err := base64.StdEncoding.DecodeString(value.Bytes)
	if err != nil {
		return nil, fmt.Errorf("decoding state value %q: %w", key, err)
	}
	return b, nil
}

func stateAddress(kvs []models.TealKeyValue, key string) (types.Address, error) {
	b, err := stateBytes(kvs, key)
	if err != nil {
		return types.Address{}, err
	}
	var addr types.Address
	if len(b) != len(addr) {
		return types.Address{}, fmt.Errorf("%w: %q is not a 32 byte address", ErrorStateWrongType, key)
	}
	copy(addr[:], b)
	return addr, nil
}
