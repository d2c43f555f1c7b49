package metrics

// Common metric attribute keys to keep telemetry consistent/searchable.
const (
	AttrMethod   = "method"
	AttrPath     = "path"
	AttrStatus   = "status"
	AttrEndpoint = "endpoint"
	AttrOutcome  = "outcome"
	AttrKind     = "kind"
	AttrCache    = "cache"
	AttrResult   = "result"
)

// Fetch outcomes reported by the upstream gateway.
const (
	OutcomeOK      = "ok"
	OutcomeTimeout = "timeout"
	OutcomeHTTP    = "http_error"
	OutcomeParse   = "parse_error"
	OutcomeOther   = "error"
)
