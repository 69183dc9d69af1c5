package types

import (
	"testing"

	"github.com/arthur-debert/stmdeploy/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBoard(t *testing.T) *Board {
	t.Helper()
	board, err := NewBoard("STM32H747I-DISCO", "8.1.0", "cm7",
		&BuildConfig{Name: "cm7", Builder: BuilderCubeIDE, LinkedConf: "cm4"},
		&BuildConfig{Name: "cm4", Builder: BuilderCubeIDE},
	)
	require.NoError(t, err)
	return board
}

func TestNewBoard(t *testing.T) {
	board := newTestBoard(t)

	assert.Equal(t, "cm7", board.ActiveName())
	assert.Equal(t, "cm7", board.Config().Name)
	assert.Equal(t, "STM32H747I-DISCO", board.Config().Board, "config inherits the board name")
	assert.Equal(t, []string{"cm4", "cm7"}, board.ConfigNames())
	assert.True(t, board.Config().HasLinkedConf())
}

func TestNewBoardDefaultsToFirstConfig(t *testing.T) {
	board, err := NewBoard("NUCLEO-F401RE", "", "", &BuildConfig{Name: "default", Builder: BuilderMakefile})
	require.NoError(t, err)
	assert.Equal(t, "default", board.ActiveName())
}

func TestBoardSetConfigUnknown(t *testing.T) {
	board := newTestBoard(t)

	_, err := board.SetConfig("wifi")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
	assert.Equal(t, "cm7", board.ActiveName(), "failed switch leaves the active config alone")
}

func TestBoardActivateRestores(t *testing.T) {
	board := newTestBoard(t)

	conf, restore, err := board.Activate("cm4")
	require.NoError(t, err)
	assert.Equal(t, "cm4", conf.Name)
	assert.Equal(t, "cm4", board.ActiveName())

	restore()
	assert.Equal(t, "cm7", board.ActiveName())
}

func TestBuildConfigHelpers(t *testing.T) {
	conf := &BuildConfig{Name: "cm7", LinkedConf: "cm7", Cwd: "/work/app"}
	assert.False(t, conf.HasLinkedConf(), "a config linked to itself has no companion")
	assert.Equal(t, "/work/app/Src/network.c", conf.ResolvePath("Src/network.c"))
	assert.Equal(t, "/abs/x.c", conf.ResolvePath("/abs/x.c"))
}

func TestToolVersion(t *testing.T) {
	assert.True(t, ToolVersion("8.1.0").Valid())
	assert.True(t, ToolVersion("7.3").Valid())
	assert.False(t, ToolVersion("").Valid())
	assert.False(t, ToolVersion("latest").Valid())

	assert.True(t, ToolVersion("7.3").Equal("7.3.0"))
	assert.False(t, ToolVersion("7.3.0").Equal("8.1.0"))
	assert.True(t, ToolVersion("dev").Equal("dev"))
	assert.Equal(t, "unknown", ToolVersion("").String())
}

func TestSessionRendererParams(t *testing.T) {
	s := NewSession("/tmp/generated", "8.1.0", nil)
	assert.Nil(t, s.RendererParams())
	assert.Nil(t, s.Board())

	board := newTestBoard(t)
	s.SetBoard(board)
	assert.Same(t, board, s.Board())
}
