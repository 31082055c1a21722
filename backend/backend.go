package backend

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/mintgate/sparkd/config"
	"github.com/mintgate/sparkd/database"
	"github.com/mintgate/sparkd/lightning"
	"github.com/mintgate/sparkd/payment"
	"github.com/mintgate/sparkd/wallet/sparkapi"
)

// New selects and constructs the configured backend variant. The set of
// variants is closed: a new wallet backend adds a case here, nothing else
// changes for callers.
func New(ctx context.Context, cfg config.Config, store database.QuoteRepository, network lightning.Network) (payment.Processor, error) {
	switch cfg.Backend {
	case "spark":
		return newSpark(ctx, cfg.Spark, store, network)
	default:
		return nil, fmt.Errorf("unsupported backend type: %q", cfg.Backend)
	}
}

func newSpark(ctx context.Context, cfg config.SparkConfig, store database.QuoteRepository, network lightning.Network) (payment.Processor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid spark configuration: %w", err)
	}

	client := sparkapi.NewClient(cfg.GatewayURL, cfg.APIKey)

	log.WithField("gateway", cfg.GatewayURL).Info("connecting to spark wallet gateway")
	err := client.Connect(ctx, sparkapi.ConnectRequest{
		Mnemonic:   cfg.Mnemonic,
		Passphrase: cfg.Passphrase,
		StorageDir: cfg.StorageDir,
		Network:    string(network),
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to spark wallet gateway: %w", err)
	}
	log.Info("connected to spark wallet gateway")

	return NewSparkBackend(ctx, client, store, network)
}
