package metrics

// Common metric attribute keys to keep telemetry consistent/searchable.
const (
	AttrMethod    = "method"
	AttrPath      = "path"
	AttrStatus    = "status"
	AttrProvider  = "provider"
	AttrOperation = "operation"
	AttrSource    = "source"
	AttrOutcome   = "outcome"
	AttrAvailable = "available"
)

// Load sources reported by RecordStoreLoad.
const (
	SourceRemote = "remote"
	SourceLocal  = "local"
)
