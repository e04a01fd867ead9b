package ports

// Sink notified of each fare applied to the dataset.
type FarePublisher interface {
	PublishFare(record FareRecord) error
}
