package ui_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/arthur-debert/stmdeploy/pkg/deploy"
	"github.com/arthur-debert/stmdeploy/pkg/errors"
	"github.com/arthur-debert/stmdeploy/pkg/flash"
	"github.com/arthur-debert/stmdeploy/pkg/probe"
	"github.com/arthur-debert/stmdeploy/pkg/srctree"
	"github.com/arthur-debert/stmdeploy/pkg/types"
	"github.com/arthur-debert/stmdeploy/pkg/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() *deploy.Report {
	return &deploy.Report{
		Board:       "STM32H747I-DISCO",
		Config:      "cm7",
		ToolVersion: "8.1.0",
		Stage:       deploy.StageDone,
		Passes: []*deploy.Pass{
			{
				Config:  "cm7",
				Builder: types.BuilderCubeIDE,
				Stages:  []deploy.Stage{deploy.StageSynchronized, deploy.StageBuilt, deploy.StageFlashed},
				Sync:    &srctree.Result{Total: 3, Executed: 2, Unexecuted: []string{"network_data.c"}},
				Flash:   &flash.Result{Outcome: flash.Flashed, Serial: "003A"},
			},
			{
				Config:  "cm4",
				Builder: types.BuilderCubeIDE,
				Stages:  []deploy.Stage{deploy.StageBuilt},
				Linked:  true,
				Flash:   &flash.Result{Outcome: flash.Skipped, Reason: flash.ReasonAmbiguous},
			},
		},
	}
}

func render(t *testing.T, format ui.Format, result interface{}) string {
	t.Helper()
	var buf bytes.Buffer
	r, err := ui.NewRenderer(format, &buf)
	require.NoError(t, err)
	require.NoError(t, r.RenderResult(result))
	return buf.String()
}

func TestTextReport(t *testing.T) {
	out := render(t, ui.FormatText, sampleReport())
	assert.Equal(t, `board STM32H747I-DISCO, config cm7 (tool version 8.1.0)
  cm7 [stm32_cube_ide] synchronized > built > flashed
    sync  2/3 updated (not updated: network_data.c)
    flash flashed (sn=003A)
  cm4 [stm32_cube_ide, linked] built
    flash skipped: `+flash.ReasonAmbiguous+`
deployment done
`, out)
}

func TestTextSkippedReport(t *testing.T) {
	rep := &deploy.Report{Board: "B", Config: "c", Stage: deploy.StageValidated, Skipped: true, Reason: "tool versions are different"}
	out := render(t, ui.FormatText, rep)
	assert.Contains(t, out, "deployment skipped: tool versions are different")
	assert.Contains(t, out, "tool version unknown")
}

func TestTextProbes(t *testing.T) {
	assert.Equal(t, "board=NUCLEO-F401RE, sn=0667\n",
		render(t, ui.FormatText, []probe.Probe{{Board: "NUCLEO-F401RE", SerialNumber: "0667"}}))
	assert.Equal(t, "no ST-LINK probe connected\n", render(t, ui.FormatText, []probe.Probe{}))
}

func TestTerminalReport(t *testing.T) {
	out := render(t, ui.FormatTerminal, sampleReport())
	assert.Contains(t, out, "STM32H747I-DISCO")
	assert.Contains(t, out, "cm4 (linked)")
	assert.Contains(t, out, "2/3 updated")
	assert.Contains(t, out, "deployment done")
}

func TestTerminalProbes(t *testing.T) {
	out := render(t, ui.FormatTerminal, []probe.Probe{{Board: "NUCLEO-F401RE", SerialNumber: "0667"}})
	assert.Contains(t, out, "NUCLEO-F401RE")
	assert.Contains(t, out, "0667")
}

func TestJSONReport(t *testing.T) {
	out := render(t, ui.FormatJSON, sampleReport())

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "done", decoded["stage"])
	passes := decoded["passes"].([]interface{})
	require.Len(t, passes, 2)
	first := passes[0].(map[string]interface{})
	assert.Equal(t, "flashed", first["flash"].(map[string]interface{})["outcome"])
}

func TestJSONError(t *testing.T) {
	var buf bytes.Buffer
	r, err := ui.NewRenderer(ui.FormatJSON, &buf)
	require.NoError(t, err)
	require.NoError(t, r.RenderError(errors.New(errors.ErrOption, "no board").WithDetail("target", "x")))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "OPTION", decoded["code"])
	assert.Equal(t, "x", decoded["details"].(map[string]interface{})["target"])
}

func TestAutoFormatFallsBackToText(t *testing.T) {
	out := render(t, ui.FormatAuto, []probe.Probe{})
	assert.Equal(t, "no ST-LINK probe connected\n", out)
}
