// Package convert runs one archive through the whole pipeline: extraction,
// manifest parsing, resource selection, content resolution and quiz parsing.
// A run is fully synchronous; one archive per invocation, no shared state.
package convert

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/OPS-PIvers/Schoology-to-Forms/internal/archive"
	"github.com/OPS-PIvers/Schoology-to-Forms/internal/cartridge"
	"github.com/OPS-PIvers/Schoology-to-Forms/internal/qti"
	"github.com/OPS-PIvers/Schoology-to-Forms/internal/storage"
)

// ResourceOutcome records how one selected resource fared. Kind is empty
// when the resource converted cleanly.
type ResourceOutcome struct {
	ResourceID  string    `json:"resource_id"`
	Title       string    `json:"title"`
	Path        string    `json:"path,omitempty"` // resolved body file, if any
	Kind        ErrorKind `json:"error,omitempty"`
	Detail      string    `json:"detail,omitempty"`
	Placeholder bool      `json:"placeholder"`
	Questions   int       `json:"questions"`
}

// Result is one finished conversion: quizzes in manifest order, one outcome
// per selected resource.
type Result struct {
	Quizzes  []qti.Quiz        `json:"quizzes"`
	Outcomes []ResourceOutcome `json:"outcomes"`
}

type Service struct {
	ws  *storage.Workspace
	log *zap.Logger
}

func New(ws *storage.Workspace, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{ws: ws, log: log}
}

// Convert runs the pipeline over one archive blob. Extraction and manifest
// failures are fatal and return a classified *Error; everything scoped to a
// single resource degrades to a placeholder quiz so one bad quiz never
// blocks the rest of the archive. The scoped workspace is released on every
// exit path. Cancellation is checked up front and between resources; a
// canceled ctx returns its error unclassified.
func (s *Service) Convert(ctx context.Context, blob []byte) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if err := s.ws.Acquire(); err != nil {
		return Result{}, newError(KindExtraction, "acquire workspace", err)
	}
	defer func() {
		if err := s.ws.Release(); err != nil {
			s.log.Warn("workspace release failed", zap.Error(err))
		}
	}()

	tree, err := archive.Extract(blob, s.ws)
	if err != nil {
		return Result{}, newError(KindExtraction, "extract archive", err)
	}

	mfNode, err := cartridge.LocateManifest(tree)
	if err != nil {
		if errors.Is(err, cartridge.ErrManifestNotFound) {
			return Result{}, newError(KindManifestNotFound, "locate manifest", err)
		}
		return Result{}, newError(KindManifestParse, "locate manifest", err)
	}

	mf, err := cartridge.ParseManifest(mfNode.Data())
	if err != nil {
		return Result{}, newError(KindManifestParse, "parse manifest", err)
	}

	resources := cartridge.SelectQuizResources(mf)
	s.log.Info("manifest parsed",
		zap.Int("declared", len(mf.Resources)),
		zap.Int("selected", len(resources)))

	res := Result{}
	for _, r := range resources {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		quiz, outcome := s.convertResource(r, tree)
		res.Quizzes = append(res.Quizzes, quiz)
		res.Outcomes = append(res.Outcomes, outcome)
	}
	return res, nil
}

func (s *Service) convertResource(r cartridge.Resource, tree *archive.FileNode) (qti.Quiz, ResourceOutcome) {
	outcome := ResourceOutcome{ResourceID: r.Identifier, Title: r.Title}

	body, path, ok := cartridge.ResolveContent(r, tree)
	if !ok {
		s.log.Warn("quiz body not found", zap.String("resource", r.Identifier))
		outcome.Kind = KindContentNotFound
		outcome.Placeholder = true
		return qti.Placeholder(r.Identifier, r.Title), outcome
	}
	outcome.Path = path

	parsed, err := qti.Parse(body, r.Identifier, r.Title)
	if err != nil {
		s.log.Warn("quiz body unparsable",
			zap.String("resource", r.Identifier),
			zap.String("path", path),
			zap.Error(err))
		outcome.Kind = KindContentParse
		outcome.Detail = err.Error()
		outcome.Placeholder = true
		return qti.Placeholder(r.Identifier, r.Title), outcome
	}

	if parsed.Kind == qti.DocUnsupported {
		s.log.Warn("unsupported quiz body root",
			zap.String("resource", r.Identifier),
			zap.String("path", path))
		outcome.Kind = KindUnsupportedFormat
		outcome.Placeholder = true
		outcome.Questions = 0
		return parsed.Quiz, outcome
	}

	for _, o := range parsed.Outcomes {
		if !o.OK {
			s.log.Warn("item skipped",
				zap.String("resource", r.Identifier),
				zap.String("reason", o.Reason))
		}
	}
	outcome.Questions = len(parsed.Quiz.Questions)
	return parsed.Quiz, outcome
}
