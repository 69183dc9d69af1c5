package deploy

import (
	"github.com/arthur-debert/stmdeploy/pkg/flash"
	"github.com/arthur-debert/stmdeploy/pkg/srctree"
	"github.com/arthur-debert/stmdeploy/pkg/types"
)

// Stage is a step of the deployment state machine
type Stage string

const (
	StageIdle         Stage = "idle"
	StageValidated    Stage = "validated"
	StageCleaned      Stage = "cleaned"
	StageSynchronized Stage = "synchronized"
	StageBuilt        Stage = "built"
	StageFlashed      Stage = "flashed"
	StageDone         Stage = "done"
)

// Pass is the record of one clean/update/build/flash pass over a build
// configuration.
type Pass struct {
	Config    string            `json:"config"`
	Builder   types.BuilderKind `json:"builder"`
	Stages    []Stage           `json:"stages"`
	Commands  []string          `json:"commands,omitempty"`
	Sync      *srctree.Result   `json:"sync,omitempty"`
	Flash     *flash.Result     `json:"flash,omitempty"`
	Workspace string            `json:"workspace,omitempty"`
	Linked    bool              `json:"linked,omitempty"`
}

// Report is the record of a deployment
type Report struct {
	Board       string            `json:"board,omitempty"`
	Config      string            `json:"config,omitempty"`
	ToolVersion types.ToolVersion `json:"tool_version,omitempty"`
	Stage       Stage             `json:"stage"`
	Skipped     bool              `json:"skipped,omitempty"`
	Reason      string            `json:"reason,omitempty"`
	Passes      []*Pass           `json:"passes,omitempty"`
}

func newReport() *Report {
	return &Report{Stage: StageIdle}
}

func (r *Report) advance(p *Pass, s Stage) {
	r.Stage = s
	if p != nil {
		p.Stages = append(p.Stages, s)
	}
}

// Flashed reports whether every pass that tried to flash succeeded
func (r *Report) Flashed() bool {
	flashed := false
	for _, p := range r.Passes {
		if p.Flash == nil || p.Flash.Outcome == flash.NotConfigured {
			continue
		}
		if p.Flash.Outcome != flash.Flashed {
			return false
		}
		flashed = true
	}
	return flashed
}
