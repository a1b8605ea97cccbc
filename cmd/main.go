package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/avolkov/claimdesk/cmd/claimdesk"
	"github.com/avolkov/claimdesk/logging"
	"gitlab.com/greyxor/slogor"
)

func main() {
	// The ContextHandler wrapper makes request ids attached to a
	// context show up on every record logged with that context.
	slog.SetDefault(slog.New(
		logging.ContextHandler{Handler: slogor.NewHandler(os.Stderr,
			&slogor.Options{
				Level:      slog.LevelDebug,
				TimeFormat: time.DateTime,
				ShowSource: true,
			})}),
	)

	claimdesk.Execute()
}
