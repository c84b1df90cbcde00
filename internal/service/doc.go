// Package service contains the application services that orchestrate stores
// and realtime event delivery on top of the domain model.
package service
