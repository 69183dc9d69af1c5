package testutil

import (
	"context"

	"github.com/arthur-debert/stmdeploy/pkg/probe"
	"github.com/arthur-debert/stmdeploy/pkg/runner"
	"github.com/arthur-debert/stmdeploy/pkg/types"
	"github.com/stretchr/testify/mock"
)

// MockRunner is a mock implementation of runner.Runner
type MockRunner struct {
	mock.Mock
}

// Run records the call and returns the configured output
func (m *MockRunner) Run(ctx context.Context, cmd types.Command, dir string) (runner.Output, error) {
	args := m.Called(ctx, cmd, dir)
	out, _ := args.Get(0).(runner.Output)
	return out, args.Error(1)
}

// OnRun is a shorthand for expecting a command by its arguments
func (m *MockRunner) OnRun(dir string, argv ...string) *mock.Call {
	return m.On("Run", mock.Anything, types.NewCommand(argv...), dir)
}

// Commands returns the command lines run so far, in order
func (m *MockRunner) Commands() []string {
	var lines []string
	for _, call := range m.Calls {
		if call.Method != "Run" {
			continue
		}
		lines = append(lines, call.Arguments.Get(1).(types.Command).String())
	}
	return lines
}

// MockDiscoverer is a mock implementation of probe.Discoverer
type MockDiscoverer struct {
	mock.Mock
}

// Discover returns the configured probes
func (m *MockDiscoverer) Discover(ctx context.Context) []probe.Probe {
	args := m.Called(ctx)
	probes, _ := args.Get(0).([]probe.Probe)
	return probes
}

// Probes returns a discoverer that always reports probes
func Probes(probes ...probe.Probe) *MockDiscoverer {
	d := &MockDiscoverer{}
	d.On("Discover", mock.Anything).Return(probes)
	return d
}
