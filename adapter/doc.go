// Package adapter provides adapters for mumblelink integration with external systems.
package adapter
