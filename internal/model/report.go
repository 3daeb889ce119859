package model

import "time"

// Report maps a manager name to its contracts count.
type Report map[string]int

// NewReport folds managers into a report. Rows are applied in order, so with
// duplicate names the last one wins.
func NewReport(managers []Manager) Report {
	r := make(Report, len(managers))
	for _, m := range managers {
		r[m.Name] = m.ContractsCount
	}
	return r
}

// ReportFile describes a report snapshot kept in object storage.
type ReportFile struct {
	Name         string    `json:"name"`
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	ContentType  string    `json:"content_type"`
	LastModified time.Time `json:"last_modified"`
}
