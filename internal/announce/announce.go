// Winner announcements over MQTT, so clients showing the selection wheel
// learn the outcome without polling the API.
package announce

import (
	"encoding/json"
	"fmt"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"

	"github.com/movie-night/picker/internal/model"
)

type Publisher struct {
	client mqtt.Client
}

type winnerMessage struct {
	EventID int64  `json:"event_id"`
	Movie   string `json:"movie"`
	Author  string `json:"author"`
}

// MQTT connection handler
var connectHandler mqtt.OnConnectHandler = func(client mqtt.Client) {
	log.Info().Msg("connected to MQTT broker")
}

// MQTT connection lost handler
var connectLostHandler mqtt.ConnectionLostHandler = func(client mqtt.Client, err error) {
	log.Error().Err(err).Msg("MQTT connection lost")
}

// NewPublisher connects to the broker. An empty brokerURL returns a nil
// publisher, which disables announcements.
func NewPublisher(brokerURL string) (*Publisher, error) {
	if brokerURL == "" {
		return nil, nil
	}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(brokerURL)
	opts.SetClientID("movie-night-watcher")
	opts.OnConnect = connectHandler
	opts.OnConnectionLost = connectLostHandler

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker: %w", token.Error())
	}

	return &Publisher{client: client}, nil
}

// Announce publishes the winner to movienight/events/<id>/winner. Failures
// are logged and dropped; an announcement never blocks resolution.
func (p *Publisher) Announce(w model.Winner) {
	payload, err := json.Marshal(winnerMessage{EventID: w.EventID, Movie: w.Movie, Author: w.Author})
	if err != nil {
		log.Error().Err(err).Msg("could not encode winner announcement")
		return
	}

	topic := fmt.Sprintf("movienight/events/%d/winner", w.EventID)
	if token := p.client.Publish(topic, 0, false, payload); token.Wait() && token.Error() != nil {
		log.Error().Err(token.Error()).Str("topic", topic).Msg("could not publish winner announcement")
	}
}
