package stmdeploy

import (
	"github.com/arthur-debert/stmdeploy/pkg/logging"
	"github.com/arthur-debert/stmdeploy/pkg/probe"
	"github.com/arthur-debert/stmdeploy/pkg/runner"
	"github.com/arthur-debert/stmdeploy/pkg/tools"
	"github.com/spf13/cobra"
)

func newProbesCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:     "probes",
		Short:   MsgProbesShort,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := g.renderer(cmd)
			if err != nil {
				return err
			}
			exe, err := tools.NewLocator().Find(tools.Programmer)
			if err != nil {
				return err
			}
			logger := logging.GetLogger("probe")
			d := probe.NewProgrammerDiscoverer(exe, runner.New(runner.WithLogger(logger)), logger)
			probes := d.Discover(cmd.Context())
			if probes == nil {
				probes = []probe.Probe{}
			}
			return r.RenderResult(probes)
		},
	}
}
