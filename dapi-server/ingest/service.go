// Package ingest submits signed updates published on an MQTT broker to the
// dAPI server.
package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/oraclelabs/dapi-server/api/server/structs"
	"github.com/oraclelabs/dapi-server/dapi-server/core/signed"
	"github.com/oraclelabs/dapi-server/dapi-server/dapi"
	"github.com/oraclelabs/dapi-server/io/logs"
	"github.com/oraclelabs/dapi-server/runtime"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	beaconTopicKind = "beacon"
	dapiTopicKind   = "dapi"
	connectTimeout  = 10 * time.Second
)

var _ runtime.Service = (*Service)(nil)

// Client is the part of the MQTT client the service depends on.
type Client interface {
	Connect() mqtt.Token
	Subscribe(topic string, qos byte, callback mqtt.MessageHandler) mqtt.Token
	IsConnectionOpen() bool
	Disconnect(quiesce uint)
}

// Submitter accepts signed updates.
type Submitter interface {
	UpdateBeaconWithSignedData(ctx context.Context, update *signed.Update) ([32]byte, error)
	UpdateDapiWithSignedData(
		ctx context.Context,
		airnodes [][]byte,
		templateIDs [][32]byte,
		timestamps []uint64,
		data [][]byte,
		signatures [][]byte,
	) ([32]byte, error)
}

// Config for the ingestion service.
type Config struct {
	Broker      string
	ClientID    string
	TopicPrefix string
	QoS         byte
	Submitter   Submitter
	// Client overrides the paho client built from Broker and ClientID.
	Client Client
}

// Service subscribes to the signed update topics of a broker.
type Service struct {
	ctx        context.Context
	cancel     context.CancelFunc
	cfg        *Config
	client     Client
	statusLock sync.RWMutex
	startError error
}

// NewService creates the ingestion service. It does not connect until Start.
func NewService(ctx context.Context, cfg *Config) (*Service, error) {
	if cfg == nil || cfg.Submitter == nil {
		return nil, errors.New("no submitter configured")
	}
	if cfg.QoS > 2 {
		return nil, errors.Errorf("invalid qos %d", cfg.QoS)
	}
	client := cfg.Client
	if client == nil {
		if cfg.Broker == "" {
			return nil, errors.New("no broker configured")
		}
		opts := mqtt.NewClientOptions().
			AddBroker(cfg.Broker).
			SetClientID(cfg.ClientID).
			SetOrderMatters(false).
			SetCleanSession(false).
			SetResumeSubs(true).
			SetAutoReconnect(true).
			SetConnectTimeout(connectTimeout).
			SetConnectionLostHandler(func(_ mqtt.Client, err error) {
				log.WithError(err).Warn("Lost connection to broker")
			})
		client = mqtt.NewClient(opts)
	}
	ctx, cancel := context.WithCancel(ctx)
	return &Service{
		ctx:    ctx,
		cancel: cancel,
		cfg:    cfg,
		client: client,
	}, nil
}

// BeaconTopic is the topic filter of single beacon updates. The wildcard level
// names the beacon.
func (s *Service) BeaconTopic() string {
	return s.topic("beacons/+/signed")
}

// DapiTopic is the topic of batched dAPI updates.
func (s *Service) DapiTopic() string {
	return s.topic("dapis/signed")
}

func (s *Service) topic(suffix string) string {
	if s.cfg.TopicPrefix == "" {
		return suffix
	}
	return strings.TrimSuffix(s.cfg.TopicPrefix, "/") + "/" + suffix
}

// Start connects to the broker and subscribes to the update topics.
func (s *Service) Start() {
	log.WithField("broker", logs.MaskCredentialsLogging(s.cfg.Broker)).Info("Connecting to MQTT broker")
	if err := wait(s.client.Connect()); err != nil {
		s.setStartError(errors.Wrap(err, "could not connect to broker"))
		return
	}
	subscriptions := map[string]mqtt.MessageHandler{
		s.BeaconTopic(): s.handleBeaconMessage,
		s.DapiTopic():   s.handleDapiMessage,
	}
	for topic, handler := range subscriptions {
		if err := wait(s.client.Subscribe(topic, s.cfg.QoS, handler)); err != nil {
			s.setStartError(errors.Wrapf(err, "could not subscribe to %s", topic))
			return
		}
		log.WithField("topic", topic).Info("Subscribed to signed updates")
	}
}

// Stop disconnects from the broker.
func (s *Service) Stop() error {
	s.cancel()
	s.client.Disconnect(250)
	return nil
}

func (s *Service) setStartError(err error) {
	s.statusLock.Lock()
	s.startError = err
	s.statusLock.Unlock()
	log.WithError(err).Error("Could not start ingestion")
}

// Status returns an error if the service could not start or lost its connection.
func (s *Service) Status() error {
	s.statusLock.RLock()
	startErr := s.startError
	s.statusLock.RUnlock()
	if startErr != nil {
		return startErr
	}
	if !s.client.IsConnectionOpen() {
		return errors.New("not connected to broker")
	}
	return nil
}

func (s *Service) handleBeaconMessage(_ mqtt.Client, msg mqtt.Message) {
	err := s.submitBeacon(msg)
	record(beaconTopicKind, msg.Topic(), err)
}

func (s *Service) handleDapiMessage(_ mqtt.Client, msg mqtt.Message) {
	err := s.submitDapi(msg)
	record(dapiTopicKind, msg.Topic(), err)
}

func (s *Service) submitBeacon(msg mqtt.Message) error {
	var req structs.SignedUpdate
	if err := json.Unmarshal(msg.Payload(), &req); err != nil {
		return newDecodeError(err)
	}
	update, err := req.ToConsensus()
	if err != nil {
		return newDecodeError(err)
	}
	beaconID, err := update.BeaconID()
	if err != nil {
		return err
	}
	if want := beaconIDFromTopic(msg.Topic()); want != "" && want != hexutil.Encode(beaconID[:]) {
		return newDecodeError(fmt.Errorf("update for beacon %#x published on %s", beaconID, msg.Topic()))
	}
	_, err = s.cfg.Submitter.UpdateBeaconWithSignedData(s.ctx, update)
	return err
}

func (s *Service) submitDapi(msg mqtt.Message) error {
	var req structs.UpdateDapiWithSignedDataRequest
	if err := json.Unmarshal(msg.Payload(), &req); err != nil {
		return newDecodeError(err)
	}
	airnodes, templateIDs, timestamps, data, signatures, err := req.ToConsensus()
	if err != nil {
		return newDecodeError(err)
	}
	_, err = s.cfg.Submitter.UpdateDapiWithSignedData(s.ctx, airnodes, templateIDs, timestamps, data, signatures)
	return err
}

// beaconIDFromTopic returns the wildcard level of a beacon topic when it is a
// hex beacon id, and an empty string otherwise.
func beaconIDFromTopic(topic string) string {
	levels := strings.Split(topic, "/")
	if len(levels) < 3 {
		return ""
	}
	id := strings.ToLower(levels[len(levels)-2])
	if !strings.HasPrefix(id, "0x") || len(id) != 66 {
		return ""
	}
	return id
}

type decodeError struct {
	err error
}

func newDecodeError(err error) error {
	return &decodeError{err: err}
}

func (e *decodeError) Error() string {
	return "could not decode message: " + e.err.Error()
}

func (e *decodeError) Unwrap() error {
	return e.err
}

// resultLabel is "ok", "decode" for malformed messages, or the kind of the
// error returned by the server.
func resultLabel(err error) string {
	if err == nil {
		return "ok"
	}
	var de *decodeError
	if errors.As(err, &de) {
		return "decode"
	}
	return dapi.KindOf(err).String()
}

func record(kind, topic string, err error) {
	result := resultLabel(err)
	messagesProcessed.WithLabelValues(kind, result).Inc()
	if err == nil {
		log.WithField("topic", topic).Debug("Submitted signed update")
		return
	}
	entry := log.WithError(err).WithFields(logrus.Fields{"topic": topic, "result": result})
	if result == dapi.KindInternal.String() {
		entry.Error("Could not submit signed update")
		return
	}
	entry.Debug("Rejected signed update")
}

func wait(token mqtt.Token) error {
	if !token.WaitTimeout(connectTimeout) {
		return errors.New("timed out")
	}
	return token.Error()
}
