package srctree

import (
	"github.com/arthur-debert/stmdeploy/pkg/errors"
	"github.com/arthur-debert/stmdeploy/pkg/filesystem"
	"github.com/arthur-debert/stmdeploy/pkg/templates"
	"github.com/arthur-debert/stmdeploy/pkg/types"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Applied records one executed operation
type Applied struct {
	Key         string             `json:"key"`
	Mode        types.TemplateMode `json:"mode"`
	Origin      Origin             `json:"origin,omitempty"`
	Source      string             `json:"source"`
	Destination string             `json:"destination"`
}

// Result summarizes a synchronization pass
type Result struct {
	Skipped    bool      `json:"skipped,omitempty"`
	Total      int       `json:"total"`
	Executed   int       `json:"executed"`
	Applied    []Applied `json:"applied,omitempty"`
	Unexecuted []string  `json:"unexecuted,omitempty"`
}

// Complete reports whether every template was executed
func (r Result) Complete() bool {
	return r.Executed == r.Total
}

// Option configures a Synchronizer
type Option func(*Synchronizer)

// WithLogger sets the logger of the synchronizer
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Synchronizer) {
		s.logger = logger
	}
}

// WithStrict makes unexecuted operations an error
func WithStrict(strict bool) Option {
	return func(s *Synchronizer) {
		s.strict = strict
	}
}

// Synchronizer executes template operations against the merged universe
type Synchronizer struct {
	fs     afero.Fs
	logger zerolog.Logger
	strict bool
}

// New creates a synchronizer working on fsys
func New(fsys afero.Fs, opts ...Option) *Synchronizer {
	s := &Synchronizer{
		fs:     fsys,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Sync updates the source tree of conf with the session's generated files
// and the user supplied paths.
func (s *Synchronizer) Sync(session *types.Session, conf *types.BuildConfig, userFiles []string) (Result, error) {
	if len(conf.Templates) == 0 {
		if len(session.RendererParams()) > 0 || len(userFiles) > 0 {
			s.logger.Warn().
				Str("config", conf.Name).
				Msg(`"templates" property is empty, source tree is not updated`)
		}
		return Result{Skipped: true}, nil
	}

	ops := templates.Resolve(conf.Templates)

	universe, err := BuildUniverse(s.fs, session.GeneratedDir, userFiles)
	if err != nil {
		return Result{}, err
	}
	s.logger.Debug().
		Int("files", len(universe.Files)).
		Int("userFiles", universe.FilesBoundary).
		Int("dirs", len(universe.Dirs)).
		Int("userDirs", universe.DirsBoundary).
		Msg("Candidate universe scanned")

	result := Result{Total: len(conf.Templates)}
	for _, op := range ops.List() {
		applied, ok, err := s.apply(session, conf, universe, op)
		if err != nil {
			return result, err
		}
		if !ok {
			result.Unexecuted = append(result.Unexecuted, op.Key)
			continue
		}
		result.Executed++
		result.Applied = append(result.Applied, applied)
	}

	if result.Executed != result.Total {
		s.logger.Warn().
			Int("executed", result.Executed).
			Int("total", result.Total).
			Strs("unexecuted", result.Unexecuted).
			Msg("Not all the files have been updated")
	}
	if s.strict && len(result.Unexecuted) > 0 {
		return result, errors.Newf(errors.ErrPartialSync,
			"%d/%d template operations executed", result.Executed, result.Total).
			WithDetail("unexecuted", result.Unexecuted)
	}
	return result, nil
}

func (s *Synchronizer) apply(session *types.Session, conf *types.BuildConfig, u *Universe, op templates.Operation) (Applied, bool, error) {
	entry := op.Entry
	dest := conf.ResolvePath(entry.Destination)

	switch {
	case entry.Mode.IsFileCopy():
		src, origin, ok := u.MatchFile(op.Key)
		if !ok {
			return Applied{}, false, nil
		}
		s.logger.Info().Str("origin", string(origin)).Str("key", op.Key).Str("destination", dest).Msg("Copying file")
		s.logger.Debug().Str("source", src).Msg("Copy source")
		if err := filesystem.CopyFile(s.fs, src, dest); err != nil {
			return Applied{}, false, err
		}
		return Applied{Key: op.Key, Mode: entry.Mode, Origin: origin, Source: src, Destination: dest}, true, nil

	case entry.Mode == types.ModeRender:
		if len(session.RendererParams()) == 0 {
			return Applied{}, false, nil
		}
		s.logger.Info().Str("key", op.Key).Str("destination", dest).Msg("Rendering template")
		s.logger.Debug().Str("source", entry.Source).Msg("Render source")
		if err := session.Renderer.Render(entry.Source, dest); err != nil {
			return Applied{}, false, errors.Wrapf(err, errors.ErrRender, "cannot render %s", op.Key)
		}
		return Applied{Key: op.Key, Mode: entry.Mode, Source: entry.Source, Destination: dest}, true, nil

	case entry.Mode == types.ModeCopyDir:
		src, origin, ok := u.MatchDir(op.Key)
		if !ok {
			return Applied{}, false, nil
		}
		s.logger.Info().Str("origin", string(origin)).Str("key", op.Key).Str("destination", dest).Msg("Copying directory")
		s.logger.Debug().Str("source", src).Msg("Copy source")
		if err := filesystem.MergeTree(s.fs, src, dest); err != nil {
			return Applied{}, false, err
		}
		return Applied{Key: op.Key, Mode: entry.Mode, Origin: origin, Source: src, Destination: dest}, true, nil

	default:
		s.logger.Debug().Str("key", op.Key).Str("mode", string(entry.Mode)).Msg("Template mode not supported")
		return Applied{}, false, nil
	}
}
