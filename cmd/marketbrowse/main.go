// Command marketbrowse is the operator CLI for browse options, URLs and fetch windows
package main

import (
	"os"

	"marketbrowse/internal/platform/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logger.Get().Error().Err(err).Msg("marketbrowse failed")
		os.Exit(1)
	}
}
