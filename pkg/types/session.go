package types

// Renderer projects a template onto a destination file
type Renderer interface {
	// Params returns the parameters templates are rendered with
	Params() map[string]interface{}

	// Render renders src into dst
	Render(src, dst string) error
}

// Session holds the state of one deployment invocation
type Session struct {
	GeneratedDir string
	ToolVersion  ToolVersion
	Renderer     Renderer

	board *Board
}

// NewSession creates a session for the artifacts found in generatedDir
func NewSession(generatedDir string, version ToolVersion, renderer Renderer) *Session {
	return &Session{
		GeneratedDir: generatedDir,
		ToolVersion:  version,
		Renderer:     renderer,
	}
}

// Board returns the board the session is bound to, if any
func (s *Session) Board() *Board {
	return s.board
}

// SetBoard binds the session to a board
func (s *Session) SetBoard(b *Board) {
	s.board = b
}

// RendererParams returns the renderer parameters, or nil when the session
// has no renderer.
func (s *Session) RendererParams() map[string]interface{} {
	if s.Renderer == nil {
		return nil
	}
	return s.Renderer.Params()
}
