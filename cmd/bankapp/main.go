package main

import (
	"os"

	"github.com/sirupsen/logrus"

	"github.com/milinsoft/bankapp/internal/commands"
)

func main() {
	log := logrus.New()
	if level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		log.SetLevel(level)
	} else {
		log.SetLevel(logrus.WarnLevel)
	}

	if err := commands.NewRootCommand(log).Execute(); err != nil {
		os.Exit(1)
	}
}
