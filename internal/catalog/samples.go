package catalog

import (
	"time"

	"github.com/google/uuid"
)

// NewID returns a fresh record identifier.
func NewID() string {
	return uuid.NewString()
}

// TimeLayout is the audit timestamp format: UTC with fixed millisecond
// precision, so timestamps sort lexically in time order.
const TimeLayout = "2006-01-02T15:04:05.000Z"

// Timestamp formats t the way audit fields are stored.
func Timestamp(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// Samples returns the demo records used to verify a fresh backend.
// Each call yields new IDs; createdBy and createdTime are stamped from
// the arguments.
func Samples(createdBy string, now time.Time) []Book {
	ts := Timestamp(now)
	return []Book{
		{
			ID:            NewID(),
			FileName:      "Shah_Jo_Risalo-Shah_Abdul_Latif-1744-SLA",
			TitleEnglish:  "Shah Jo Risalo",
			TitleSindhi:   "شاهه جو رسالو",
			AuthorEnglish: "Shah Abdul Latif Bhittai",
			AuthorSindhi:  "شاهه عبداللطيف ڀٽائي",
			Year:          "1744",
			Publisher:     "Sindh Literature Authority",
			Category:      "Poetry",
			Language:      "Sindhi",
			Source:        "Public Domain",
			Status:        StatusCompleted,
			Stage:         "Archived",
			CreatedBy:     createdBy,
			CreatedTime:   ts,
		},
		{
			ID:            NewID(),
			FileName:      "Sindh_Ji_Adabi_Tarikh-Lutfullah_Badwi-1950",
			TitleEnglish:  "History of Sindhi Literature",
			TitleSindhi:   "سنڌ جي ادبي تاريخ",
			AuthorEnglish: "Lutfullah Badwi",
			AuthorSindhi:  "لطف الله بدوي",
			Year:          "1950",
			Publisher:     "R.H. Ahmed & Sons",
			Category:      "History",
			Language:      "Sindhi",
			Source:        "Library Scan",
			Status:        StatusInProgress,
			Stage:         "Formatting",
			CreatedBy:     createdBy,
			CreatedTime:   ts,
		},
		{
			ID:            NewID(),
			FileName:      "Sachal_Sarmast_Jo_Kalam-Sachal-1800",
			TitleEnglish:  "The Poetry of Sachal Sarmast",
			TitleSindhi:   "سچل سرمست جو ڪلام",
			AuthorEnglish: "Sachal Sarmast",
			AuthorSindhi:  "سچل سرمست",
			Year:          "1820",
			Publisher:     "Sachal Chair",
			Category:      "Sufism",
			Language:      "Sindhi",
			Source:        "Manuscript",
			Status:        StatusPending,
			Stage:         "Initial Scan",
			CreatedBy:     createdBy,
			CreatedTime:   ts,
		},
	}
}
