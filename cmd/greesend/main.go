package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/hatstand/greeremote"
	"github.com/hatstand/greeremote/control"
	"github.com/hatstand/greeremote/gree"
	"github.com/hatstand/greeremote/logging"
	"go.uber.org/zap"
)

var code = flag.String("code", "aaaaaaaa:aaaaaaaa:aaaaaaaa:aaaaaaaa", "Scan code to send, four hex words separated by colons")
var pin = flag.String("pin", "P9_14", "PWM pin driving the IR LED")
var dryRun = flag.Bool("n", false, "Print the encoded frame instead of transmitting")
var repeat = flag.Int("repeat", 0, "Extra times to repeat the frame")
var memBlock = flag.Int("mem-block", greeremote.DefaultMemBlockSymbols, "Symbols encoded per output write")
var timeout = flag.Duration("timeout", 10*time.Second, "Give up after this long")
var verbose = flag.Bool("v", false, "Development logging")

func main() {
	flag.Parse()

	logger, err := logging.New(logging.Options{Development: *verbose})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	status := run(logger)
	logger.Sync()
	os.Exit(status)
}

// run returns the process exit code once the transmitter is closed.
func run(logger *zap.Logger) int {
	scanCode, err := gree.ParseScanCode(*code)
	if err != nil {
		logger.Error("Bad scan code", zap.Error(err))
		return 2
	}

	config := greeremote.DefaultConfig()
	config.LoopCount = *repeat
	config.MemBlockSymbols = *memBlock

	var tx *greeremote.Transmitter
	var recording *greeremote.RecordingOutput
	if *dryRun {
		recording = &greeremote.RecordingOutput{}
		tx, err = greeremote.NewTransmitter(recording, config, logger)
	} else {
		tx, err = greeremote.NewPWMTransmitter(*pin, config, logger)
	}
	if err != nil {
		logger.Error("Failed to create transmitter", zap.Error(err))
		return 1
	}
	defer func() {
		if err := tx.Close(); err != nil {
			logger.Warn("Failed to close transmitter", zap.Error(err))
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()
	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, os.Interrupt)
	go func() {
		select {
		case <-signalCh:
			cancel()
		case <-ctx.Done():
		}
	}()

	controller := control.NewController(tx, nil, logger)
	if err := controller.Send(ctx, scanCode); err != nil {
		return 1
	}

	if recording != nil {
		for i, s := range recording.Symbols() {
			fmt.Printf("%3d %08x %v\n", i, s.Word(), s)
		}
	}
	return 0
}
