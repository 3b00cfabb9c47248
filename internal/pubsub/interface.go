package pubsub

// PubSubClient publishes store changes to the external subscription layer
// so live viewers can follow a tournament.
type PubSubClient interface {
	SendMessage(topic EventType, data any) error
	ProcessMessage(data []byte, returnValue any) error
}
