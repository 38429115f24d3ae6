// internal/app/system/limits/limits.go
package limits

// Request body size limits for console forms and uploads.
const (
	// MaxSettingsFormSize is the maximum size for settings form submissions.
	MaxSettingsFormSize = 1 << 20 // 1 MB

	// MaxRestoreSize caps an uploaded backup archive.
	MaxRestoreSize = 512 << 20 // 512 MB

	// MaxRestoreMemory is how much of a restore upload is held in memory
	// before spilling to a temp file.
	MaxRestoreMemory = 32 << 20 // 32 MB
)
