package cache

import (
	"crypto/tls"
	"fmt"
	"net"

	"extlog/internal/config"

	"github.com/valkey-io/valkey-go"
)

// NewValkeyClient dials the Valkey server described by env. The client
// connects eagerly, so an unreachable server is reported here.
func NewValkeyClient(env config.EnvVariables) (valkey.Client, error) {
	options := valkey.ClientOption{
		InitAddress: []string{net.JoinHostPort(env.ValkeyHost, env.ValkeyPort)},
		Username:    env.ValkeyUsername,
		Password:    env.ValkeyPassword,
	}

	if env.ValkeyIsSsl {
		options.TLSConfig = &tls.Config{ServerName: env.ValkeyHost}
	}

	client, err := valkey.NewClient(options)
	if err != nil {
		return nil, fmt.Errorf("connect to valkey at %s: %w", options.InitAddress[0], err)
	}

	return client, nil
}
