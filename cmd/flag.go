package main

import (
	"os"
	"path/filepath"

	"github.com/sat20-labs/emission/common"
	"github.com/sat20-labs/emission/config"
	flag "github.com/spf13/pflag"
)

func ParseCmdParams() {
	init := flag.String("init", "", "generate a default config file at the given path")
	env := flag.String("env", "./.env", "config file")
	dump := flag.Bool("dump", false, "print the contract state")
	events := flag.Uint64("events", 0, "print the event journal from this sequence number")
	limit := flag.Int("limit", 100, "maximum events printed by -events")
	help := flag.Bool("help", false, "show help.")
	flag.Parse()

	if *help {
		common.Log.Info("emission admin help:")
		common.Log.Info("Usage: 'emission-admin --init default.yaml'")
		common.Log.Info("Usage: 'emission-admin --env default.yaml --dump'")
		common.Log.Info("Usage: 'emission-admin --env default.yaml --events 1 --limit 20'")
		flag.PrintDefaults()
		os.Exit(0)
	}

	if *init != "" {
		if err := generateDefaultCfg(*init); err != nil {
			common.Log.Fatal(err)
		}
		os.Exit(0)
	}

	if *dump || *events > 0 {
		cfgPath, err := filepath.Abs(*env)
		if err != nil {
			common.Log.Fatal(err)
		}
		conf, err := config.LoadYamlConf(cfgPath)
		if err != nil {
			common.Log.Fatal(err)
		}
		defer config.ReleaseRes()
		if err := dumpState(conf, os.Stdout, *dump, *events, *limit); err != nil {
			common.Log.Error(err)
			config.ReleaseRes()
			os.Exit(1)
		}
		return
	}

	flag.PrintDefaults()
}

func generateDefaultCfg(path string) error {
	if !filepath.IsAbs(path) {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		path = filepath.Join(wd, path)
	}
	return config.SaveYamlConf(config.NewDefaultYamlConf(), path)
}

func main() {
	ParseCmdParams()
}
