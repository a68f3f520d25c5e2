// Package cli implements the xapctl command line with cobra.
//
// Commands reach the core through driving ports held in a Services value.
// The composition root installs a Bootstrap function that builds them
// from the resolved options on first use, so commands such as languages
// and version never open an engine.
package cli
