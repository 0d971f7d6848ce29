package main

import (
	"os"

	"github.com/awnumar/memguard"

	"github.com/splogin/splogin/cmd/splogin/commands"
	"github.com/splogin/splogin/internal/config"
	sperrors "github.com/splogin/splogin/internal/errors"
	"github.com/splogin/splogin/internal/logging"
)

func main() {
	defer memguard.Purge()
	os.Exit(run())
}

func run() int {
	cfg := &config.Config{}
	root := commands.NewRootCommand(cfg, &commands.Deps{})

	if err := root.Execute(); err != nil {
		// Domain errors were already reported by the command that hit
		// them. Anything else gets one line here instead of a panic.
		if !sperrors.IsDomain(err) {
			log := cfg.Logger
			if log == nil {
				log = logging.New(false, false)
			}
			log.Error("%v", err)
		}
		return 1
	}
	return 0
}
