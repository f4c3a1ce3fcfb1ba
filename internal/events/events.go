package events

import "time"

type SubmissionReceivedEvent struct {
	SubmissionID string    `json:"submission_id"`
	Segment      string    `json:"segment"`
	Respondent   string    `json:"respondent,omitempty"`
	Organization string    `json:"organization,omitempty"`
	ReceivedAt   time.Time `json:"received_at"`
}

type SubmissionScoredEvent struct {
	SubmissionID    string `json:"submission_id"`
	Segment         string `json:"segment"`
	Overall         int    `json:"overall"`
	Categories      []int  `json:"categories"`
	ResiliencyIndex int    `json:"resiliency_index"`
	Recommendations int    `json:"recommendations"`
}

type CatalogLoadedEvent struct {
	Version   string    `json:"version"`
	Questions int       `json:"questions"`
	Segments  int       `json:"segments"`
	LoadedAt  time.Time `json:"loaded_at"`
}
