package api

import (
	"time"

	"github.com/asampath/GoRAG/internal/domain/commonModels"
)

type JobExternalStatus string

const (
	JobStatusError JobExternalStatus = "Error"
)

type JobResponse struct {
	Id        string            `json:"id" example:"job_cz109"`
	ChatId    string            `json:"chat_id" example:"chat_550"`
	Result    Result            `json:"result"`
	Error     *JobOutgoingError `json:"error,omitempty"`
	StartTime time.Time         `json:"start_time"`
	EndTime   time.Time         `json:"end_time,omitempty"`
}

type JobOutgoingError struct {
	Code    int    `json:"code" example:"400"`
	Message string `json:"message" example:"Job not found"`
	Retry   bool   `json:"can_retry" example:"false"`
}

// AnswerResponse is the output contract of a completed question job.
// Sources is empty when the unscoped-generation fallback produced the answer.
type AnswerResponse struct {
	Question       string                    `json:"question"`
	Answer         string                    `json:"answer"`
	Sources        []commonModels.Provenance `json:"sources"`
	DocumentsFound int                       `json:"documents_found"`
	WebSearchUsed  bool                      `json:"web_search_used"`
}

type Result struct {
	Status string          `json:"status"`
	Answer *AnswerResponse `json:"answer,omitempty"`
}

type InitJobResponse struct {
	Id        string `json:"id"`
	StatusURL string `json:"status_url"`
}

// requests---------------------

type AskRequest struct {
	Question string `json:"question" validate:"required"`
	ChatID   string `json:"chatID,omitempty"`
}

type SpeechRequest struct {
	Text    string `json:"text" validate:"required"`
	VoiceID string `json:"voice_id,omitempty"`
}

type JobStatusRequest struct {
	JobId string `json:"job_id" validate:"required"`
}

type IngestDocumentRequest struct {
	DocumentName string `json:"document_name" validate:"required"`
}
