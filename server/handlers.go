package server

import (
	"bytes"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/sonnes/tensorview/core"
)

// load reads the artifact and applies the slice.
func (s *Server) load() (*core.View, error) {
	a, err := s.Reader.ReadFile(s.File)
	if err != nil {
		return nil, err
	}
	return core.Build(a, s.Slice)
}

// fail logs err and answers with a plain-text 500.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, msg string, err error) {
	s.logger().Error(msg, "path", r.URL.Path, "request_id", middleware.GetReqID(r.Context()), "error", err)
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

func (s *Server) handleData(w http.ResponseWriter, r *http.Request) {
	v, err := s.load()
	if err != nil {
		s.fail(w, r, "load artifact", err)
		return
	}

	// Encode before writing so an unencodable payload (NaN) still gets a 500.
	var buf bytes.Buffer
	if err := s.Payload.Render(&buf, v); err != nil {
		s.fail(w, r, "encode payload", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(buf.Bytes())
}

// elementMeta describes one top-level artifact element.
type elementMeta struct {
	Index  int        `json:"index"`
	Tensor bool       `json:"tensor"`
	DType  core.DType `json:"dtype,omitempty"`
	Shape  []int      `json:"shape,omitempty"`
}

// metaResponse is the body of GET /meta.
type metaResponse struct {
	Path     string        `json:"path"`
	Format   string        `json:"format"`
	Elements []elementMeta `json:"elements"`
	Slice    core.Slice    `json:"slice"`
	Count    int           `json:"count"`
}

func (s *Server) handleMeta(w http.ResponseWriter, r *http.Request) {
	v, err := s.load()
	if err != nil {
		s.fail(w, r, "load artifact", err)
		return
	}

	resp := metaResponse{
		Path:     v.Artifact.Path,
		Format:   v.Artifact.Format,
		Elements: make([]elementMeta, len(v.Artifact.Elements)),
		Slice:    v.Slice,
		Count:    len(v.Payload.Data),
	}
	for i, e := range v.Artifact.Elements {
		resp.Elements[i] = elementMeta{Index: i, Tensor: e != nil}
		if e != nil {
			resp.Elements[i].DType = e.DType
			resp.Elements[i].Shape = e.Shape
		}
	}
	render.JSON(w, r, resp)
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	v, err := s.load()
	if err != nil {
		s.fail(w, r, "load artifact", err)
		return
	}

	var buf bytes.Buffer
	if err := s.Page.Render(&buf, v); err != nil {
		s.fail(w, r, "render page", err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}
