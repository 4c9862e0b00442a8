package sink

import (
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// MQTTConfig configures an MQTTPublisher sink.
type MQTTConfig struct {
	Broker   string
	ClientID string // random if empty
	Username string
	Password string
	Topic    string
	QoS      byte
	Retain   bool
	TLS      MQTTTLSConfig
}

// MQTTTLSConfig mirrors the broker TLS options a paho client needs.
type MQTTTLSConfig struct {
	Enabled    bool
	CACert     string
	ClientCert string
	ClientKey  string
}

// MQTTPublisher publishes each detection as a retained or transient
// JSON message to a configured MQTT topic.
type MQTTPublisher struct {
	client mqtt.Client
	config MQTTConfig
}

func generateClientID() string {
	b := make([]byte, 8)
	rand.Read(b)
	return "zveimonitor_" + hex.EncodeToString(b)
}

func loadTLSConfig(cfg MQTTTLSConfig) (*tls.Config, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	tlsCfg := &tls.Config{}
	if cfg.CACert != "" {
		caCert, err := os.ReadFile(cfg.CACert)
		if err != nil {
			return nil, fmt.Errorf("sink: read CA certificate: %w", err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(caCert) {
			return nil, fmt.Errorf("sink: parse CA certificate")
		}
		tlsCfg.RootCAs = pool
	}
	if cfg.ClientCert != "" && cfg.ClientKey != "" {
		cert, err := tls.LoadX509KeyPair(cfg.ClientCert, cfg.ClientKey)
		if err != nil {
			return nil, fmt.Errorf("sink: load client certificate: %w", err)
		}
		tlsCfg.Certificates = []tls.Certificate{cert}
	}
	return tlsCfg, nil
}

// NewMQTTPublisher connects to the configured broker and returns a ready
// publisher. The connection is established synchronously, and with
// connect retry enabled an unreachable broker is retried every 10s: the
// call does not return until the first connection succeeds, rather than
// reporting the broker as unreachable.
func NewMQTTPublisher(cfg MQTTConfig) (*MQTTPublisher, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(cfg.Broker)
	if cfg.ClientID != "" {
		opts.SetClientID(cfg.ClientID)
	} else {
		opts.SetClientID(generateClientID())
	}
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
	}
	if cfg.Password != "" {
		opts.SetPassword(cfg.Password)
	}
	opts.SetAutoReconnect(true)
	opts.SetConnectRetry(true)
	opts.SetConnectRetryInterval(10 * time.Second)
	opts.SetKeepAlive(60 * time.Second)
	opts.SetPingTimeout(10 * time.Second)

	if cfg.TLS.Enabled {
		tlsCfg, err := loadTLSConfig(cfg.TLS)
		if err != nil {
			return nil, err
		}
		opts.SetTLSConfig(tlsCfg)
	}

	opts.SetOnConnectHandler(func(mqtt.Client) {
		log.Println("sink: mqtt connected")
	})
	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		log.Printf("sink: mqtt connection lost: %v", err)
	})

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("sink: connect to mqtt broker: %w", token.Error())
	}

	return &MQTTPublisher{client: client, config: cfg}, nil
}

// Emit publishes d as JSON to the configured topic.
func (mp *MQTTPublisher) Emit(d Detection) error {
	payload, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("sink: marshal detection for mqtt: %w", err)
	}
	token := mp.client.Publish(mp.config.Topic, mp.config.QoS, mp.config.Retain, payload)
	if token.Wait() && token.Error() != nil {
		return fmt.Errorf("sink: publish to mqtt topic %s: %w", mp.config.Topic, token.Error())
	}
	return nil
}

// Close disconnects from the broker, waiting up to 250ms for in-flight
// publishes to drain.
func (mp *MQTTPublisher) Close() error {
	mp.client.Disconnect(250)
	return nil
}
