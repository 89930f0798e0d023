// Package messaging abstracts the message broker.
//
// Producers and consumers program against the Client, Publisher and
// Subscriber interfaces; the NSQ, NATS, Kafka and Pub/Sub drivers in this
// package are interchangeable behind them, selected by configuration.
package messaging
