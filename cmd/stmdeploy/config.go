package stmdeploy

import (
	"encoding/json"
	"fmt"

	"github.com/arthur-debert/stmdeploy/pkg/config"
	"github.com/arthur-debert/stmdeploy/pkg/errors"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newConfigCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		GroupID: "core",
	}

	var output string
	show := &cobra.Command{
		Use:   "show <board>",
		Short: MsgConfigShowShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			board, err := config.NewLoader(g.fs).LoadRef(args[0])
			if err != nil {
				return fmt.Errorf(MsgErrLoadBoard, err)
			}
			data, err := marshalBoard(config.NewBoardFile(board), output)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	show.Flags().StringVarP(&output, "output", "o", "toml", MsgFlagOutput)

	defaults := &cobra.Command{
		Use:   "defaults",
		Short: MsgConfigDefaultsShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprint(cmd.OutOrStdout(), config.DefaultsContent())
			return err
		},
	}

	cmd.AddCommand(show, defaults)
	return cmd
}

func marshalBoard(bf *config.BoardFile, format string) ([]byte, error) {
	switch format {
	case "toml":
		return toml.Marshal(bf)
	case "yaml", "yml":
		return yaml.Marshal(bf)
	case "json":
		data, err := json.MarshalIndent(bf, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	}
	return nil, errors.Newf(errors.ErrInvalidInput, MsgErrOutputFormat, format)
}
