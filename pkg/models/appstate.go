package models

import (
	"github.com/docebot/docebot/config"
)

// AppState is a struct that holds the state of the application
// Use cmd.NewAppState to create a new instance
type AppState struct {
	LMSClient LMSClient
	Analyzer  IntentAnalyzer
	Config    *config.Config
}
