package telemetry

import (
	"crypto/tls"
	"time"

	"github.com/golang/protobuf/proto"
	"github.com/pkg/errors"
	"github.com/yosssi/gmq/mqtt"
	"github.com/yosssi/gmq/mqtt/client"
	"go.uber.org/zap"
	"google.golang.org/protobuf/types/known/structpb"
)

type Options struct {
	// Broker is the host:port of the MQTT broker.
	Broker   string
	ClientID string
	Topic    string
	UserName string
	Password string
	TLS      bool
}

// Publisher reports transmitted commands over MQTT.
type Publisher struct {
	mq    *client.Client
	topic []byte
	now   func() time.Time
}

// NewMessage serialises one status report.
func NewMessage(code string, ok bool, at time.Time) ([]byte, error) {
	msg, err := structpb.NewStruct(map[string]interface{}{
		"scan_code": code,
		"ok":        ok,
		"timestamp": at.UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to build status message")
	}
	data, err := proto.Marshal(msg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to serialise status message")
	}
	return data, nil
}

func (p *Publisher) Publish(code string, ok bool) error {
	data, err := NewMessage(code, ok, p.now())
	if err != nil {
		return err
	}
	err = p.mq.Publish(&client.PublishOptions{
		QoS:       mqtt.QoS0,
		TopicName: p.topic,
		Message:   data,
	})
	if err != nil {
		return errors.Wrap(err, "failed to publish status message")
	}
	return nil
}

func (p *Publisher) Close() {
	p.mq.Disconnect()
	p.mq.Terminate()
}

func NewPublisher(opts Options, logger *zap.Logger) (*Publisher, error) {
	if opts.Topic == "" {
		return nil, errors.New("telemetry: no topic")
	}
	mq := client.New(&client.Options{
		ErrorHandler: func(err error) {
			logger.Error("MQTT error", zap.Error(err))
		},
	})

	connect := &client.ConnectOptions{
		Network:  "tcp",
		Address:  opts.Broker,
		ClientID: []byte(opts.ClientID),
	}
	if opts.TLS {
		connect.TLSConfig = &tls.Config{}
	}
	if opts.UserName != "" {
		connect.UserName = []byte(opts.UserName)
		connect.Password = []byte(opts.Password)
	}
	if err := mq.Connect(connect); err != nil {
		mq.Terminate()
		return nil, errors.Wrapf(err, "failed to connect to MQTT broker %s", opts.Broker)
	}
	logger.Info("Connected to MQTT broker", zap.String("broker", opts.Broker), zap.String("topic", opts.Topic))

	return &Publisher{
		mq:    mq,
		topic: []byte(opts.Topic),
		now:   time.Now,
	}, nil
}
