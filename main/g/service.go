package g

import (
	"time"

	"github.com/pkg/errors"
	"github.com/sat20-labs/emission/common"
	"github.com/sat20-labs/emission/config"
	"github.com/sat20-labs/emission/contract"
	"github.com/sat20-labs/emission/db"
	"github.com/sat20-labs/emission/ledger"
	"github.com/sat20-labs/emission/rpcserver"
	"lukechampine.com/uint128"
)

// GenesisParams converts the genesis section of the config into engine
// parameters and the storage registration minimum.
func GenesisParams(g *config.Genesis) (*contract.Params, uint128.Uint128, error) {
	raffle, err := common.ParseAmount(g.RafflePoolAmount)
	if err != nil {
		return nil, uint128.Zero, errors.Wrap(err, "raffle_pool_amount")
	}
	tapping, err := common.ParseAmount(g.TappingPoolAmount)
	if err != nil {
		return nil, uint128.Zero, errors.Wrap(err, "tapping_pool_amount")
	}
	minStorage, err := common.ParseAmount(g.MinStorageBalance)
	if err != nil {
		return nil, uint128.Zero, errors.Wrap(err, "min_storage_balance")
	}
	params := &contract.Params{
		InitialEmissions:  g.InitialEmissions,
		DecayFactor:       g.DecayFactor,
		MintScaling:       g.MintScaling,
		PeriodSeconds:     g.PeriodSeconds,
		RafflePoolAmount:  raffle,
		TappingPoolAmount: tapping,
	}
	if err := params.Validate(); err != nil {
		return nil, uint128.Zero, err
	}
	return params, minStorage, nil
}

// OpenContract opens the state database named by conf and binds the engine
// to it. The database is closed by config.ReleaseRes.
func OpenContract(conf *config.YamlConf) (*contract.Contract, common.KVDB, error) {
	params, minStorage, err := GenesisParams(&conf.Genesis)
	if err != nil {
		return nil, nil, err
	}

	kv, err := db.OpenKVDB(&db.Options{
		Type:     conf.DB.Type,
		Path:     conf.DB.Path,
		CacheMB:  conf.DB.CacheMB,
		Attempts: 3,
		Delay:    time.Second,
	})
	if err != nil {
		return nil, nil, err
	}
	config.RegistReleaseFunc(func() {
		if err := kv.Close(); err != nil {
			common.Log.Errorf("close db failed: %v", err)
		}
	})

	c, err := contract.NewContract(kv, ledger.NewFungibleToken(minStorage), *params)
	if err != nil {
		return nil, nil, err
	}
	return c, kv, nil
}

func InitRpcService(conf *config.YamlConf, c *contract.Contract) (*rpcserver.Rpc, error) {
	rpc := rpcserver.NewRpc(c, conf.ContractId, nil)
	if err := rpc.Start(&conf.RPCService); err != nil {
		return rpc, err
	}
	config.RegistReleaseFunc(rpc.Stop)
	common.Log.Infof("rpc started at %s%s", conf.RPCService.Addr, conf.RPCService.Proxy)
	return rpc, nil
}
