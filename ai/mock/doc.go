// Package mock provides test doubles for the ai package interfaces.
//
// The mocks record call counts and allow behavior injection via function
// fields, so pipeline tests can run without a remote generative service.
package mock
