// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// Every service receives its collaborators through its constructor;
// no service reads global configuration.
package services
