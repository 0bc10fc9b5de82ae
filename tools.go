//go:build tools

package tools

// Mocks are generated with the mockery binary (not via go run), so no
// import is needed here. Run: mockery (from the module root) to regenerate
// pkg/log/mocks from .mockery.yaml.
