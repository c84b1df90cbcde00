// Package mocks provides test doubles for the store and service interfaces.
package mocks
