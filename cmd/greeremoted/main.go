package main

import (
	"context"
	"flag"
	"fmt"
	"html/template"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/coreos/go-systemd/daemon"
	"github.com/hatstand/greeremote"
	"github.com/hatstand/greeremote/control"
	"github.com/hatstand/greeremote/gree"
	"github.com/hatstand/greeremote/logging"
	"github.com/hatstand/greeremote/telemetry"
	"github.com/hatstand/greeremote/tracing"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

var code = flag.String("code", "aaaaaaaa:aaaaaaaa:aaaaaaaa:aaaaaaaa", "Scan code to send, four hex words separated by colons")
var pin = flag.String("pin", "P9_14", "PWM pin driving the IR LED")
var interval = flag.Duration("interval", time.Second, "Time between transmissions")
var dryRun = flag.Bool("n", false, "Disables IR output")
var addr = flag.String("addr", ":8080", "Address for the status and metrics server")
var mqttBroker = flag.String("mqtt", "", "MQTT broker host:port for status reports; empty disables them")
var mqttTopic = flag.String("mqtt-topic", "greeremote/status", "MQTT topic for status reports")
var mqttClientID = flag.String("mqtt-client-id", "greeremote", "MQTT client id")
var mqttTLS = flag.Bool("mqtt-tls", false, "Connect to the MQTT broker over TLS")
var gcloudProject = flag.String("gcloud-project", "", "Send logs to Cloud Logging and spans to Cloud Trace in this project")
var verbose = flag.Bool("v", false, "Development logging")

var statusHtml = template.Must(template.New("status").Parse(`<html>
<head><title>greeremote</title></head>
<body>
<p>Now: {{.Now.Format "2006-01-02 15:04:05"}}</p>
<p>Scan code: <code>{{.Code}}</code> every {{.Interval}}</p>
<p><a href="/metrics">metrics</a></p>
</body>
</html>
`))

func createSender(tp trace.TracerProvider, logger *zap.Logger) (control.Sender, func()) {
	if *dryRun {
		return &control.StubSender{Logger: logger}, func() {}
	}
	config := greeremote.DefaultConfig()
	config.TracerProvider = tp
	tx, err := greeremote.NewPWMTransmitter(*pin, config, logger)
	if err != nil {
		logger.Fatal("Failed to create transmitter", zap.Error(err))
	}
	return tx, func() {
		if err := tx.Close(); err != nil {
			logger.Warn("Failed to close transmitter", zap.Error(err))
		}
	}
}

func createPublisher(logger *zap.Logger) (control.StatusPublisher, func()) {
	if *mqttBroker == "" {
		return nil, func() {}
	}
	p, err := telemetry.NewPublisher(telemetry.Options{
		Broker:   *mqttBroker,
		ClientID: *mqttClientID,
		Topic:    *mqttTopic,
		TLS:      *mqttTLS,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to create status publisher", zap.Error(err))
	}
	return p, p.Close
}

func main() {
	flag.Parse()

	logger, err := logging.New(logging.Options{
		Development:   *verbose,
		GCloudProject: *gcloudProject,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	scanCode, err := gree.ParseScanCode(*code)
	if err != nil {
		logger.Fatal("Bad scan code", zap.Error(err))
	}

	tp, err := tracing.New(tracing.Options{GCloudProject: *gcloudProject})
	if err != nil {
		logger.Fatal("Failed to create tracer provider", zap.Error(err))
	}
	otel.SetTracerProvider(tp)
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			logger.Warn("Failed to flush spans", zap.Error(err))
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sender, closeSender := createSender(tp, logger)
	defer closeSender()
	publisher, closePublisher := createPublisher(logger)
	defer closePublisher()

	controller := control.NewController(sender, publisher, logger)
	done := make(chan struct{})
	go func() {
		defer close(done)
		controller.Repeat(ctx, scanCode, *interval)
	}()

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		data := struct {
			Now      time.Time
			Code     gree.ScanCode
			Interval time.Duration
		}{
			time.Now(),
			scanCode,
			*interval,
		}
		if err := statusHtml.Execute(w, data); err != nil {
			logger.Error("Failed to render status", zap.Error(err))
		}
	})

	srv := &http.Server{Addr: *addr, Handler: mux}
	go func() {
		logger.Info("Listening", zap.String("addr", *addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server failed", zap.Error(err))
		}
	}()

	if ok, err := daemon.SdNotify(false, "READY=1"); err != nil {
		logger.Warn("Failed to notify systemd", zap.Error(err))
	} else if ok {
		logger.Info("Notified systemd")
	}

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt)

	for {
		select {
		case <-ctx.Done():
			logger.Info("Shutting down...")
			<-done
			timeout, httpCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer httpCancel()
			srv.Shutdown(timeout)
			return
		case <-ch:
			cancel()
		}
	}
}
