package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID       = "run_id"
	KeyCommand     = "command"
	KeyMode        = "mode"
	KeyEntry       = "entry"
	KeyPath        = "path"
	KeyOutputDir   = "output_dir"
	KeyFingerprint = "fingerprint"
	KeyPlugin      = "plugin"
	KeyPluginKind  = "plugin_kind"
	KeyDecision    = "decision"
	KeyOption      = "option"
	KeyDurationMS  = "duration_ms"
	KeyError       = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr         { return slog.String(KeyRunID, id) }
func Command(c string) slog.Attr        { return slog.String(KeyCommand, c) }
func Mode(m string) slog.Attr           { return slog.String(KeyMode, m) }
func Entry(e string) slog.Attr          { return slog.String(KeyEntry, e) }
func Path(p string) slog.Attr           { return slog.String(KeyPath, p) }
func OutputDir(p string) slog.Attr      { return slog.String(KeyOutputDir, p) }
func Fingerprint(fp string) slog.Attr   { return slog.String(KeyFingerprint, fp) }
func Plugin(id string) slog.Attr        { return slog.String(KeyPlugin, id) }
func PluginKind(k string) slog.Attr     { return slog.String(KeyPluginKind, k) }
func Decision(d string) slog.Attr       { return slog.String(KeyDecision, d) }
func Option(name string) slog.Attr      { return slog.String(KeyOption, name) }
func DurationMS(ms float64) slog.Attr   { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
