package main

import (
	cmd "github.com/docebot/docebot/cmd/docebot"
	"github.com/docebot/docebot/internal"
)

var log = internal.GetLogger()

func main() {
	log.Info("Starting docebot")
	cmd.Execute()
}
