// Package services implements the driving ports on top of the driven
// ports. Services hold the pipeline logic; adapters hold the
// infrastructure.
package services
