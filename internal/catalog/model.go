package catalog

import (
	"fmt"
	"strings"
)

// Status is the workflow state of a catalog record.
type Status string

const (
	StatusPending    Status = "Pending"
	StatusInProgress Status = "In Progress"
	StatusCompleted  Status = "Completed"
	StatusRejected   Status = "Rejected"
)

// Statuses lists every valid status in display order.
var Statuses = []Status{StatusPending, StatusInProgress, StatusCompleted, StatusRejected}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// Next returns the status after s in display order, wrapping around.
func (s Status) Next() Status {
	for i, known := range Statuses {
		if s == known {
			return Statuses[(i+1)%len(Statuses)]
		}
	}
	return StatusPending
}

// ParseStatus converts user input to a Status. Matching is case-insensitive
// and ignores spaces, dashes and underscores, so "in-progress" and
// "InProgress" both resolve to StatusInProgress. Empty input is Pending.
func ParseStatus(s string) (Status, error) {
	norm := normalizeStatus(s)
	if norm == "" {
		return StatusPending, nil
	}
	for _, known := range Statuses {
		if normalizeStatus(string(known)) == norm {
			return known, nil
		}
	}
	return "", fmt.Errorf("unknown status %q (want one of: Pending, In Progress, Completed, Rejected)", s)
}

func normalizeStatus(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '_':
			return -1
		}
		return r
	}, strings.ToLower(strings.TrimSpace(s)))
}

// Book is one digitized asset's metadata and workflow status.
// Field names on the wire match the backend's books table.
type Book struct {
	ID string `json:"id" yaml:"id"`

	FileName      string `json:"fileName" yaml:"fileName"`
	TitleEnglish  string `json:"titleEnglish" yaml:"titleEnglish"`
	TitleSindhi   string `json:"titleSindhi" yaml:"titleSindhi"`
	AuthorEnglish string `json:"authorEnglish" yaml:"authorEnglish"`
	AuthorSindhi  string `json:"authorSindhi" yaml:"authorSindhi"`
	Year          string `json:"year" yaml:"year"`
	Publisher     string `json:"publisher" yaml:"publisher"`
	Category      string `json:"category" yaml:"category"`
	Language      string `json:"language" yaml:"language"`
	Link          string `json:"link" yaml:"link"`
	Thumbnail     string `json:"thumbnail" yaml:"thumbnail"`
	Source        string `json:"source" yaml:"source"`

	Status          Status `json:"status" yaml:"status"`
	Stage           string `json:"stage" yaml:"stage"`
	CurrentHolderID string `json:"currentHolderId" yaml:"currentHolderId"`
	ScannedBy       string `json:"scannedBy" yaml:"scannedBy"`
	AssignedTo      string `json:"assignedTo" yaml:"assignedTo"`

	CreatedTime    string `json:"createdTime" yaml:"createdTime"`
	CreatedBy      string `json:"createdBy" yaml:"createdBy"`
	LastEditedTime string `json:"lastEditedTime" yaml:"lastEditedTime"`
	LastEditedBy   string `json:"lastEditedBy" yaml:"lastEditedBy"`
}

// DisplayTitle returns the English title, falling back to the Sindhi one
// and then the file name.
func (b Book) DisplayTitle() string {
	switch {
	case b.TitleEnglish != "":
		return b.TitleEnglish
	case b.TitleSindhi != "":
		return b.TitleSindhi
	default:
		return b.FileName
	}
}
