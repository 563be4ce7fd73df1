package notify

import (
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/zakariahaider14/ChurnSense-EmpowHer25/agent/internal/summary"
)

// Alert сообщение о превышении доли оттока
type Alert struct {
	Timestamp    int64           `json:"timestamp"`
	ModelVersion string          `json:"model_version"`
	Summary      summary.Summary `json:"summary"`
	Message      string          `json:"message"`
}

// AlertPublisher публикует алерты об оттоке в MQTT
type AlertPublisher struct {
	client mqtt.Client
	topic  string
	qos    byte
}

// NewAlertPublisher подключается к брокеру и возвращает публикатор
func NewAlertPublisher(broker, clientID, topic string, qos int) (*AlertPublisher, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(broker)
	opts.SetClientID(fmt.Sprintf("%s-%d", clientID, time.Now().Unix()))
	opts.SetAutoReconnect(true)
	opts.SetCleanSession(true)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("ошибка подключения к MQTT: %w", token.Error())
	}

	return &AlertPublisher{
		client: client,
		topic:  topic,
		qos:    byte(qos),
	}, nil
}

// PublishSummary публикует сводку батча как алерт
func (p *AlertPublisher) PublishSummary(s summary.Summary, modelVersion string) error {
	alert := Alert{
		Timestamp:    time.Now().Unix(),
		ModelVersion: modelVersion,
		Summary:      s,
		Message:      s.String(),
	}

	payload, err := json.Marshal(alert)
	if err != nil {
		return fmt.Errorf("ошибка сериализации алерта: %w", err)
	}

	token := p.client.Publish(p.topic, p.qos, false, payload)
	if !token.WaitTimeout(2 * time.Second) {
		return fmt.Errorf("таймаут отправки MQTT")
	}
	return token.Error()
}

// Close отключается от брокера
func (p *AlertPublisher) Close() {
	p.client.Disconnect(250)
}
