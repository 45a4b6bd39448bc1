package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

const ENV_PREFIX = "EMISSION_"

type YamlConf struct {
	ContractId string     `yaml:"contract_id" env:"CONTRACT_ID"`
	DB         DB         `yaml:"db" envPrefix:"DB_"`
	Log        Log        `yaml:"log" envPrefix:"LOG_"`
	RPCService RPCService `yaml:"rpc_service" envPrefix:"RPC_"`
	Genesis    Genesis    `yaml:"genesis" envPrefix:"GENESIS_"`
}

type DB struct {
	Type    string `yaml:"type" env:"TYPE"`
	Path    string `yaml:"path" env:"PATH"`
	CacheMB int    `yaml:"cache_mb" env:"CACHE_MB"`
}

type Log struct {
	Level string `yaml:"level" env:"LEVEL"`
	Path  string `yaml:"path" env:"PATH"`
}

// Genesis holds the economic constants used when the state is created.
// Amounts are decimal strings.
type Genesis struct {
	InitialEmissions  uint64  `yaml:"initial_emissions" env:"INITIAL_EMISSIONS"`
	DecayFactor       float64 `yaml:"decay_factor" env:"DECAY_FACTOR"`
	MintScaling       uint64  `yaml:"mint_scaling" env:"MINT_SCALING"`
	PeriodSeconds     uint64  `yaml:"period_seconds" env:"PERIOD_SECONDS"`
	RafflePoolAmount  string  `yaml:"raffle_pool_amount" env:"RAFFLE_POOL_AMOUNT"`
	TappingPoolAmount string  `yaml:"tapping_pool_amount" env:"TAPPING_POOL_AMOUNT"`
	MinStorageBalance string  `yaml:"min_storage_balance" env:"MIN_STORAGE_BALANCE"`
}

func GetBaseDir() string {
	execPath, err := os.Executable()
	if err != nil {
		return "./."
	}
	return filepath.Dir(execPath)
}

func InitConfig(configFile string) *YamlConf {
	if configFile == "" {
		for i, item := range os.Args {
			if item == "-env" && i+1 < len(os.Args) {
				configFile = os.Args[i+1]
				break
			}
		}
		if configFile == "" {
			configFile = "./.env"
		}
	}
	if !filepath.IsAbs(configFile) {
		configFile = filepath.Join(GetBaseDir(), configFile)
	}

	fmt.Printf("config file: %s\n", configFile)

	cfg, err := LoadYamlConf(configFile)
	if err != nil {
		fmt.Printf("%v\n", err)
		return nil
	}
	return cfg
}

func LoadYamlConf(cfgPath string) (*YamlConf, error) {
	confFile, err := os.Open(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open cfg: %s, error: %s", cfgPath, err)
	}
	defer confFile.Close()

	ret := &YamlConf{}
	decoder := yaml.NewDecoder(confFile)
	err = decoder.Decode(ret)
	if err != nil {
		return nil, fmt.Errorf("failed to decode cfg: %s, error: %s", cfgPath, err)
	}

	err = env.ParseWithOptions(ret, env.Options{Prefix: ENV_PREFIX})
	if err != nil {
		return nil, fmt.Errorf("failed to apply environment to cfg: %s, error: %s", cfgPath, err)
	}

	fillDefaults(ret)
	return ret, nil
}

func fillDefaults(ret *YamlConf) {
	if ret.ContractId == "" {
		ret.ContractId = "push.near"
	}

	_, err := logrus.ParseLevel(ret.Log.Level)
	if err != nil {
		ret.Log.Level = "info"
	}
	if ret.Log.Path == "" {
		ret.Log.Path = "log"
	}
	ret.Log.Path = filepath.FromSlash(ret.Log.Path)

	if ret.DB.Type == "" {
		ret.DB.Type = "pebble"
	}
	if ret.DB.Path == "" {
		ret.DB.Path = "db"
	}
	ret.DB.Path = filepath.FromSlash(ret.DB.Path)
	if ret.DB.CacheMB <= 0 {
		ret.DB.CacheMB = 64
	}

	rpcService := &ret.RPCService
	if rpcService.Addr == "" {
		rpcService.Addr = "0.0.0.0:8080"
	}
	if rpcService.Proxy == "" {
		rpcService.Proxy = "/"
	}
	if rpcService.Proxy[0] != '/' {
		rpcService.Proxy = "/" + rpcService.Proxy
	}
	rpcService.Proxy = strings.TrimSuffix(rpcService.Proxy, "/")
	if rpcService.LogPath == "" {
		rpcService.LogPath = "log"
	}
	if rpcService.API.APIKeyList == nil {
		rpcService.API.APIKeyList = make(map[string]*APIKey)
	}

	g := &ret.Genesis
	if g.InitialEmissions == 0 {
		g.InitialEmissions = 3_000_000_000
	}
	if g.DecayFactor == 0 {
		g.DecayFactor = 0.8705505633
	}
	if g.MintScaling == 0 {
		g.MintScaling = 100_000
	}
	if g.PeriodSeconds == 0 {
		g.PeriodSeconds = 30 * 24 * 60 * 60
	}
	if g.RafflePoolAmount == "" {
		g.RafflePoolAmount = "5000000000000"
	}
	if g.TappingPoolAmount == "" {
		g.TappingPoolAmount = "100000000000000"
	}
	if g.MinStorageBalance == "" {
		g.MinStorageBalance = "1250000000000000000000"
	}
}

// NewDefaultYamlConf returns the configuration written by `-init`.
func NewDefaultYamlConf() *YamlConf {
	ret := &YamlConf{
		DB:  DB{Type: "pebble", Path: "db"},
		Log: Log{Level: "info", Path: "log"},
		RPCService: RPCService{
			Addr:  "0.0.0.0:8080",
			Proxy: "/",
			API: API{
				APIKeyList:      make(map[string]*APIKey),
				NoLimitApiList:  []string{"/health"},
				NoLimitHostList: []string{},
			},
		},
	}
	fillDefaults(ret)
	return ret
}

func SaveYamlConf(conf *YamlConf, filePath string) error {
	data, err := yaml.Marshal(conf)
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, data, 0644)
}
