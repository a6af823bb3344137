// Command todoist is a small command line client for the Todoist API.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// GitCommit is set at build time.
var GitCommit = "dev"

func init() {
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	err := newApp(os.Stdout, log).Run(ctx, os.Args)
	stop()
	if err != nil {
		log.WithError(err).Fatal("command failed")
	}
}
