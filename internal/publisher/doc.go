// Package publisher sends per-day state summaries to an MQTT broker.
package publisher
