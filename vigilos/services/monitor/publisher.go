package monitor

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
)

// Publisher forwards monitor events to an MQTT broker.
type Publisher struct {
	client mqtt.Client
	topic  string
}

// Connect dials the broker. Callers run without MQTT when it fails.
func Connect(broker, clientID, topic string) (*Publisher, error) {
	if clientID == "" {
		clientID = "vigil-" + uuid.New().String()
	}
	opts := mqtt.NewClientOptions().AddBroker(broker).SetClientID(clientID)
	opts.SetConnectTimeout(5 * time.Second)
	c := mqtt.NewClient(opts)
	if token := c.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("mqtt connect %s: %w", broker, token.Error())
	}
	return &Publisher{client: c, topic: topic}, nil
}

// Publish sends v as JSON at QoS 0. Delivery errors are logged, not
// returned; the pipeline never stalls on the broker.
func (p *Publisher) Publish(v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		log.Printf("monitor: marshal event: %v", err)
		return
	}
	token := p.client.Publish(p.topic, 0, false, payload)
	token.Wait()
	if token.Error() != nil {
		log.Printf("monitor: publish: %v", token.Error())
	}
}

// Close disconnects from the broker.
func (p *Publisher) Close() {
	p.client.Disconnect(250)
}
