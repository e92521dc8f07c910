// Package publish implements the publish command: it assembles the configured
// date range and publishes one retained summary per day to MQTT.
package publish
