package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"minutes-pipeline/internal/export"
	"minutes-pipeline/internal/pipeline"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

// handleUpload validates the submission before any run exists: a rejected
// file never reaches the orchestrator.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "ファイルが選択されていません"})
		return
	}
	defer file.Close()

	if header.Filename == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "ファイルが選択されていません"})
		return
	}
	if !pipeline.AllowedFile(header.Filename) {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "許可されていないファイル形式です"})
		return
	}

	if err := os.MkdirAll(s.uploadDir, 0755); err != nil {
		s.logger.Error(r.Context(), "Failed to create upload dir: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "アップロードに失敗しました"})
		return
	}

	name := fmt.Sprintf("%s_%s", s.now().Format("20060102150405.000000"), sanitizeFilename(header.Filename))
	path := filepath.Join(s.uploadDir, name)

	dst, err := os.Create(path)
	if err != nil {
		s.logger.Error(r.Context(), "Failed to store upload: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "アップロードに失敗しました"})
		return
	}
	if _, err := io.Copy(dst, file); err != nil {
		dst.Close()
		os.Remove(path)
		s.logger.Error(r.Context(), "Failed to store upload: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "アップロードに失敗しました"})
		return
	}
	dst.Close()

	// The run executes in the background and must outlive this request:
	// net/http cancels r.Context() as soon as the response is written, while
	// the caller polls /status/{id} long after.
	id := s.orch.Submit(context.WithoutCancel(r.Context()), path)
	writeJSON(w, http.StatusOK, map[string]any{"session_id": id})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	run, ok := s.orch.Status(r.PathValue("id"))
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{"error": "セッションが見つかりません"})
		return
	}
	writeJSON(w, http.StatusOK, run)
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	run, ok := s.orch.Status(r.PathValue("id"))
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{"error": "セッションが見つかりません"})
		return
	}
	if run.Minutes == "" {
		writeJSON(w, http.StatusNotFound, map[string]any{"error": "議事録が生成されていません"})
		return
	}

	if r.URL.Query().Get("format") == "docx" {
		s.serveDocx(w, r, run)
		return
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="minutes.md"`)
	io.WriteString(w, run.Minutes)
}

func (s *Server) serveDocx(w http.ResponseWriter, r *http.Request, run pipeline.Run) {
	tmpDir, err := os.MkdirTemp("", "minutes-docx-*")
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "出力の生成に失敗しました"})
		return
	}
	defer os.RemoveAll(tmpDir)

	path := filepath.Join(tmpDir, "minutes.docx")
	title := run.DocumentTitle
	if title == "" {
		title = "minutes"
	}
	if err := export.WriteMinutes(title, run.Minutes, path); err != nil {
		s.logger.Error(r.Context(), "Failed to render docx: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "出力の生成に失敗しました"})
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.wordprocessingml.document")
	w.Header().Set("Content-Disposition", `attachment; filename="minutes.docx"`)
	http.ServeFile(w, r, path)
}

// sanitizeFilename keeps only the base name and drops path separator
// characters smuggled into the multipart filename.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "")
	name = strings.ReplaceAll(name, "\\", "")
	if name == "." || name == ".." {
		return "upload"
	}
	return name
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	data, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}
