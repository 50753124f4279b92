package lnd

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/lightningnetwork/lnd/lnrpc"
	"github.com/ziflex/lecho/v3"
)

// InitLNClient dials the node and checks it with GetInfo until it answers.
// The check is retried with an exponential backoff bounded by the config, the
// node is frequently still unlocking its wallet when the paywall boots.
func InitLNClient(c *Config, logger *lecho.Logger, ctx context.Context) (*LNDWrapper, error) {
	client, err := NewLNDclient(LNDoptions{
		Address:      c.LNDAddress,
		MacaroonFile: c.LNDMacaroonFile,
		MacaroonHex:  c.LNDMacaroonHex,
		CertFile:     c.LNDCertFile,
		CertHex:      c.LNDCertHex,
	})
	if err != nil {
		return nil, err
	}

	exponentialBackoff := backoff.NewExponentialBackOff()
	exponentialBackoff.MaxInterval = time.Duration(c.LNDConnectMaxInterval) * time.Second
	exponentialBackoff.MaxElapsedTime = time.Duration(c.LNDConnectMaxElapsed) * time.Second

	var getInfo *lnrpc.GetInfoResponse
	checkNode := func() error {
		getInfo, err = client.GetInfo(ctx, &lnrpc.GetInfoRequest{})
		if err != nil {
			logger.Warnf("LND not reachable yet at %s: %v", c.LNDAddress, err)
		}
		return err
	}
	if err := backoff.Retry(checkNode, backoff.WithContext(exponentialBackoff, ctx)); err != nil {
		client.Close()
		return nil, err
	}
	client.IdentityPubkey = getInfo.IdentityPubkey
	return client, nil
}
