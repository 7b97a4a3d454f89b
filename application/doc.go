/*
Package application is a library for building ledger client
executables on top of the protocol package.

Config

This module implements the configuration layer shared by the
executables: a common config with logger settings, and a pluggable
loader, TOML by default.

Logger

This module implements a generic logging system that can be used by
any ledger client executable.

Client

The client subpackage ties the audit log to persistent storage: it
keeps every configured ledger's trusted checkpoint across restarts.
*/
package application
