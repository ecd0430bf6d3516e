package backend

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/abhisek/studybuddy/internal/progress"
	"github.com/abhisek/studybuddy/internal/quiz"
	"github.com/abhisek/studybuddy/internal/summary"
)

// UploadResult is the backend's reply to a file upload.
type UploadResult struct {
	Filename    string `json:"filename"`
	TextContent string `json:"text_content"`
}

// Upload sends the file at path for text extraction.
func (c *Client) Upload(ctx context.Context, path string) (*UploadResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &APIError{Op: OpUpload, Err: err}
	}
	defer f.Close()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return nil, &APIError{Op: OpUpload, Err: err}
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, &APIError{Op: OpUpload, Err: fmt.Errorf("read %s: %w", filepath.Base(path), err)}
	}
	if err := mw.Close(); err != nil {
		return nil, &APIError{Op: OpUpload, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/upload", &body)
	if err != nil {
		return nil, &APIError{Op: OpUpload, Err: err}
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var out UploadResult
	if err := c.do(OpUpload, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Summarize implements summary.Summarizer.
func (c *Client) Summarize(ctx context.Context, document string, style summary.Style) (string, error) {
	req := struct {
		Text        string `json:"text"`
		SummaryType string `json:"summary_type"`
	}{document, string(style)}

	var out struct {
		Summary string `json:"summary"`
	}
	if err := c.postJSON(ctx, OpSummarize, "/api/summarize", req, &out); err != nil {
		return "", err
	}
	return out.Summary, nil
}

// GenerateQuiz implements quiz.Generator.
func (c *Client) GenerateQuiz(ctx context.Context, r quiz.Request) ([]quiz.Question, error) {
	req := struct {
		Text         string `json:"text"`
		NumQuestions int    `json:"num_questions"`
		QuestionType string `json:"question_type"`
	}{r.Document, r.Count, string(r.Filter)}

	var out struct {
		Questions []quiz.Question `json:"questions"`
	}
	if err := c.postJSON(ctx, OpQuiz, "/api/generate-quiz", req, &out); err != nil {
		return nil, err
	}
	return out.Questions, nil
}

// Answer implements chat.Answerer.
func (c *Client) Answer(ctx context.Context, prompt, document string) (string, error) {
	req := struct {
		Question string `json:"question"`
		Context  string `json:"context"`
	}{prompt, document}

	var out struct {
		Answer string `json:"answer"`
	}
	if err := c.postJSON(ctx, OpChat, "/api/chat", req, &out); err != nil {
		return "", err
	}
	return out.Answer, nil
}

type progressResponse struct {
	TotalNotes    int     `json:"total_notes"`
	TotalQuizzes  int     `json:"total_quizzes"`
	TotalAttempts int     `json:"total_attempts"`
	AverageScore  float64 `json:"average_score"`
	LastActivity  *string `json:"last_activity"`
}

// Progress implements progress.Source.
func (c *Client) Progress(ctx context.Context, userID string) (progress.Snapshot, error) {
	var out progressResponse
	if err := c.get(ctx, OpProgress, "/api/progress/"+url.PathEscape(userID), &out); err != nil {
		return progress.Snapshot{}, err
	}

	snap := progress.Snapshot{
		TotalNotes:    max(out.TotalNotes, 0),
		TotalQuizzes:  max(out.TotalQuizzes, 0),
		TotalAttempts: max(out.TotalAttempts, 0),
		AverageScore:  min(max(out.AverageScore, 0), 100),
	}
	if out.LastActivity != nil {
		if t, ok := parseActivityTime(*out.LastActivity); ok {
			snap.LastActivity = &t
		}
	}
	return snap, nil
}

// The backend serialises datetimes with or without a zone.
var activityLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

func parseActivityTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range activityLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// HealthStatus is the backend's health reply.
type HealthStatus struct {
	Status string `json:"status"`
}

// Health checks that the backend is reachable.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	var out HealthStatus
	if err := c.get(ctx, OpHealth, "/health", &out); err != nil {
		return nil, err
	}
	if out.Status == "" {
		out.Status = "ok"
	}
	return &out, nil
}
