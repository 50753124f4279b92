package lnd

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	LNDAddress            string `envconfig:"LND_ADDRESS" required:"true"`
	LNDMacaroonFile       string `envconfig:"LND_MACAROON_FILE"`
	LNDCertFile           string `envconfig:"LND_CERT_FILE"`
	LNDMacaroonHex        string `envconfig:"LND_MACAROON_HEX"`
	LNDCertHex            string `envconfig:"LND_CERT_HEX"`
	LNDRPCTimeout         int    `envconfig:"LND_RPC_TIMEOUT" default:"10"`          // in seconds, applies to every ledger call
	LNDConnectMaxElapsed  int    `envconfig:"LND_CONNECT_MAX_ELAPSED" default:"60"`  // in seconds, retry budget of the startup check
	LNDConnectMaxInterval int    `envconfig:"LND_CONNECT_MAX_INTERVAL" default:"10"` // in seconds
}

func LoadConfig() (c *Config, err error) {
	c = &Config{}
	err = envconfig.Process("", c)
	if err != nil {
		return nil, err
	}
	return c, nil
}
