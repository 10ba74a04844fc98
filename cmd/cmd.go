package cmd

/**
 * cmd.go - command line runner
 */

import (
	"log"

	"github.com/vtsd/vtsd/config"
	"github.com/vtsd/vtsd/info"
	"github.com/vtsd/vtsd/utils"
	"github.com/vtsd/vtsd/utils/codec"
)

/**
 * App Start function to call after initialization
 */
var start func(*config.Config)

/**
 * Execute processing flags
 */
func Execute(f func(*config.Config)) {
	start = f
	if err := RootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

/**
 * Decodes raw configuration, substituting env vars when asked
 */
func decodeConfig(data []byte, format string, envVars bool) (*config.Config, error) {

	if envVars {
		data = []byte(utils.SubstituteEnvVars(string(data)))
	}

	var cfg config.Config
	if err := codec.Decode(data, &cfg, format); err != nil {
		return nil, err
	}

	return &cfg, nil
}

/**
 * Decodes configuration and hands it to start, recording its source
 */
func run(data []byte, source interface{}) {

	cfg, err := decodeConfig(data, format, isConfigEnvVars)
	if err != nil {
		log.Fatal(err)
	}

	info.Configuration = source

	start(cfg)
}
