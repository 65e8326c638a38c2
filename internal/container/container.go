// Package container wires the application services together.
package container

import (
	"ai-multi/internal/config"
	"ai-multi/internal/encode"
	"ai-multi/internal/runner"
	"ai-multi/internal/transport"
	"ai-multi/internal/utils"
	"ai-multi/internal/webui"

	"go.uber.org/dig"
)

// Build constructs the DI container for the client commands
func Build() (*dig.Container, error) {
	c := dig.New()

	providers := []any{
		config.Load,
		transport.NewClient,
		encode.NewEncoder,
		runner.NewRunner,
		webui.NewServer,
	}
	for _, provider := range providers {
		if err := c.Provide(provider); err != nil {
			return nil, err
		}
	}

	// logging is global state, configured as soon as config is available
	if err := c.Invoke(func(cfg *config.Config) {
		utils.SetupLogger(cfg.LogLevel, cfg.LogFormat)
	}); err != nil {
		return nil, err
	}
	return c, nil
}
