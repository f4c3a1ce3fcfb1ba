package events

const (
	StreamName   = "ASSESS_EVENTS"
	StreamMaxAge = "720h" // 30 days
)

func SubjectSubmissionReceived(id string) string { return "assess.submission." + id + ".received" }
func SubjectSubmissionScored(id string) string   { return "assess.submission." + id + ".scored" }
func SubjectSubmissionExported(id string) string { return "assess.submission." + id + ".exported" }

func SubjectCatalogLoaded() string { return "assess.catalog.loaded" }
