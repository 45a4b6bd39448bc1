package g

import (
	"path/filepath"
	"testing"

	"github.com/sat20-labs/emission/common"
	"github.com/sat20-labs/emission/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenesisParams(t *testing.T) {
	conf := config.NewDefaultYamlConf()
	params, minStorage, err := GenesisParams(&conf.Genesis)
	require.NoError(t, err)
	assert.Equal(t, common.DEFAULT_INITIAL_EMISSIONS, params.InitialEmissions)
	assert.Equal(t, common.DEFAULT_DECAY_FACTOR, params.DecayFactor)
	assert.Equal(t, common.DEFAULT_RAFFLE_POOL_AMOUNT, params.RafflePoolAmount)
	assert.Equal(t, common.DEFAULT_TAPPING_POOL_AMOUNT, params.TappingPoolAmount)
	assert.Equal(t, common.DEFAULT_MIN_STORAGE_BALANCE, minStorage)

	conf.Genesis.DecayFactor = 1.2
	_, _, err = GenesisParams(&conf.Genesis)
	assert.ErrorIs(t, err, common.ErrInvalidArgument)

	conf = config.NewDefaultYamlConf()
	conf.Genesis.RafflePoolAmount = "-5"
	_, _, err = GenesisParams(&conf.Genesis)
	assert.Error(t, err)
}

func TestOpenContractOnDisk(t *testing.T) {
	conf := config.NewDefaultYamlConf()
	conf.DB.Path = filepath.Join(t.TempDir(), "db")
	defer config.ReleaseRes()

	c, kv, err := OpenContract(conf)
	require.NoError(t, err)
	require.NotNil(t, kv)
	ok, err := c.IsInitialized()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, common.DEFAULT_RAFFLE_POOL_AMOUNT, c.Params().RafflePoolAmount)
}
