package api

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/collagely/collagely/pkg/cache"
	"github.com/collagely/collagely/pkg/export"
	"github.com/collagely/collagely/pkg/pipeline"
	"github.com/collagely/collagely/pkg/xerrors"
)

// layoutResponse is the body returned by the layout endpoints.
type layoutResponse struct {
	Layout     pipeline.Layout `json:"layout"`
	LayoutHash string          `json:"layout_hash"`
	Cached     bool            `json:"cached"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// decodeOptions reads and decodes the request body. An explicit "gap": 0
// is preserved instead of falling back to the default gap.
func (s *Server) decodeOptions(w http.ResponseWriter, r *http.Request) (pipeline.Options, bool) {
	var opts pipeline.Options

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBody))
	if err != nil {
		s.writeError(w, r, xerrors.Wrap(err, xerrors.ErrCodeInvalidRequest, "reading request body"))
		return opts, false
	}
	if err := json.Unmarshal(body, &opts); err != nil {
		s.writeError(w, r, xerrors.Wrap(err, xerrors.ErrCodeInvalidRequest, "decoding request body"))
		return opts, false
	}

	var probe struct {
		Gap *int `json:"gap"`
	}
	if err := json.Unmarshal(body, &probe); err == nil && probe.Gap != nil && *probe.Gap == 0 {
		opts.SetZeroGap()
	}

	return opts, true
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	opts, ok := s.decodeOptions(w, r)
	if !ok {
		return
	}
	s.solveLayout(w, r, opts)
}

// handleRing forces ring mode; everything else matches handleLayout.
func (s *Server) handleRing(w http.ResponseWriter, r *http.Request) {
	opts, ok := s.decodeOptions(w, r)
	if !ok {
		return
	}
	opts.Mode = pipeline.ModeRing
	s.solveLayout(w, r, opts)
}

func (s *Server) solveLayout(w http.ResponseWriter, r *http.Request, opts pipeline.Options) {
	if opts.SlotCount() == 0 {
		s.writeError(w, r, xerrors.New(xerrors.ErrCodeInvalidRequest, "photos or photo_count is required"))
		return
	}

	l, cached, err := s.runner.SolveLayoutWithCacheInfo(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	hash := ""
	if data, err := pipeline.MarshalLayout(l); err == nil {
		hash = cache.Hash(data)
	}

	writeJSON(w, http.StatusOK, layoutResponse{
		Layout:     l,
		LayoutHash: hash,
		Cached:     cached,
	})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	opts, ok := s.decodeOptions(w, r)
	if !ok {
		return
	}
	if len(opts.Formats) > 1 {
		s.writeError(w, r, xerrors.New(xerrors.ErrCodeInvalidRequest,
			"render accepts a single format, got %d", len(opts.Formats)))
		return
	}

	format, err := export.ParseFormat(renderFormat(opts))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	data, ok := res.Artifacts[string(format)]
	if !ok {
		s.writeError(w, r, xerrors.New(xerrors.ErrCodeInternal, "no %s artifact produced", format))
		return
	}

	w.Header().Set("Content-Type", contentType(format))
	w.Header().Set("X-Layout-Hash", res.LayoutHash)
	if res.CacheInfo.RenderHit {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// renderFormat returns the single requested format, or the default.
func renderFormat(opts pipeline.Options) string {
	if len(opts.Formats) == 1 {
		return opts.Formats[0]
	}
	return pipeline.DefaultFormat
}

// contentType returns the MIME type for an output format.
func contentType(f export.Format) string {
	switch f {
	case export.FormatJPEG:
		return "image/jpeg"
	case export.FormatPDF:
		return "application/pdf"
	default:
		return "image/png"
	}
}
