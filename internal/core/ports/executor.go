// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/modcache/internal/core/domain"
)

// Executor defines the interface for running external commands.
//
//go:generate go run go.uber.org/mock/mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Execute runs the command to completion and returns its captured output.
	//
	// A non-zero exit is reported as an error carrying the exit code and the tail of stderr.
	Execute(ctx context.Context, cmd domain.Command) (domain.CommandResult, error)
}
