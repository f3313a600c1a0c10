// Command mumblelink reads the MumbleLink shared memory region that games
// publish positional audio data through.
package main

import (
	"os"

	"go.uber.org/zap"

	"github.com/srediag/mumblelink/internal/logs"
)

func main() {
	wrapper := NewCliWrapper(os.Stdout)
	if err := wrapper.Run(os.Args); err != nil {
		logs.Named("cli").Fatal("mumblelink failed", zap.Error(err))
	}
}
