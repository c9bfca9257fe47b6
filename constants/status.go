package constants

// DocStatus is the per-document processing state.
type DocStatus string

const (
	DocStatusExtracted DocStatus = "EXTRACTED" // classifier output flattened
	DocStatusProjected DocStatus = "PROJECTED" // header + items mapped
	DocStatusPersisted DocStatus = "PERSISTED" // rows committed
	DocStatusFailed    DocStatus = "FAILED"    // terminal failure
)

// Stage names the pipeline step a document failed in.
type Stage string

const (
	StageIngest   Stage = "ingest"
	StageClassify Stage = "classify"
	StageFlatten  Stage = "flatten"
	StageSnapshot Stage = "snapshot"
	StageProject  Stage = "project"
	StagePersist  Stage = "persist"
)
