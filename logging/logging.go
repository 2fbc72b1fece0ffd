// Package logging builds the zap loggers used by the commands.
package logging

import (
	"github.com/jonstaryuk/gcloudzap"
	"go.uber.org/zap"
)

const DefaultLogID = "greeremote"

type Options struct {
	Development bool
	// GCloudProject sends logs to Cloud Logging in this project when set.
	GCloudProject string
	LogID         string
}

func New(opts Options) (*zap.Logger, error) {
	if opts.GCloudProject != "" {
		logID := opts.LogID
		if logID == "" {
			logID = DefaultLogID
		}
		if opts.Development {
			return gcloudzap.NewDevelopment(opts.GCloudProject, logID)
		}
		return gcloudzap.NewProduction(opts.GCloudProject, logID)
	}
	if opts.Development {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
