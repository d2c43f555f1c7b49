package logging

import "log/slog"

// Common structured log field keys to keep logs searchable/consistent.
const (
	FieldService    = "service"
	FieldVersion    = "version"
	FieldEndpoint   = "endpoint"
	FieldURL        = "url"
	FieldRequestID  = "request_id"
	FieldPath       = "path"
	FieldMethod     = "method"
	FieldStatusCode = "status_code"
	FieldDate       = "date"
	FieldGamePk     = "game_pk"
	FieldTeamID     = "team_id"
	FieldSeason     = "season"
	FieldCount      = "count"
	FieldDurationMS = "duration_ms"
	FieldCacheKey   = "cache_key"
	FieldClientID   = "client_id"
)

// WithCommon appends service/version fields when provided.
func WithCommon(attrs []slog.Attr, service, version string) []slog.Attr {
	if service != "" {
		attrs = append(attrs, slog.String(FieldService, service))
	}
	if version != "" {
		attrs = append(attrs, slog.String(FieldVersion, version))
	}
	return attrs
}
