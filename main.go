package main

import (
	"os"

	"github.com/sat20-labs/emission/common"
	"github.com/sat20-labs/emission/config"
	"github.com/sat20-labs/emission/main/g"
)

func init() {
	config.InitSigInt()
}

func main() {
	yamlcfg := config.InitConfig("")
	if yamlcfg == nil {
		os.Exit(1)
	}
	if err := config.InitLog(yamlcfg); err != nil {
		common.Log.Error(err)
		os.Exit(1)
	}

	common.Log.Infof("Starting emission engine %s...", common.EMISSION_ENGINE_VERSION)
	defer func() {
		config.ReleaseRes()
		common.Log.Info("shut down")
	}()

	c, _, err := g.OpenContract(yamlcfg)
	if err != nil {
		common.Log.Error(err)
		return
	}
	ok, err := c.IsInitialized()
	if err != nil {
		common.Log.Error(err)
		return
	}
	if !ok {
		common.Log.Warn("contract state is not initialized, waiting for init call")
	}

	_, err = g.InitRpcService(yamlcfg, c)
	if err != nil {
		common.Log.Error(err)
		return
	}

	stopChan := make(chan bool)
	config.RegistSigIntFunc(func() {
		common.Log.Info("handle SIGINT for close emission engine")
		stopChan <- true
	})
	<-stopChan

	common.Log.Info("prepare to release resource...")
}
