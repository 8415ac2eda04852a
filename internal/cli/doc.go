// Package cli holds the building blocks of the decisiontree command: wiring the
// skill from configuration and the console simulator behind "decisiontree ask".
package cli
