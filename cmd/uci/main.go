// Command uci runs the engine as a UCI-speaking subprocess over stdin/stdout.
package main

import (
	"os"

	"chessengine/uci"

	"github.com/rs/zerolog"
)

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	driver := uci.New(os.Stdout, logger)
	driver.Run(os.Stdin)
}
