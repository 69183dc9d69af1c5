// Package testutil provides shared test doubles for stmdeploy components.
//
// Key components:
//   - MockRunner: testify mock of runner.Runner recording every command
//   - MockDiscoverer: testify mock of probe.Discoverer
//   - FakeRenderer: session renderer writing params into destinations
//   - WriteTree / ReadFile: declarative afero tree setup for sync tests
//
// All test data should be defined inline, not in external files.
package testutil
