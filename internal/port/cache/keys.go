package cache

import "time"

// Preset is a canonical cache key paired with its TTL. Callers use presets
// instead of ad hoc keys so DeletePattern invalidation by namespace stays
// predictable.
type Preset struct {
	Key string
	TTL time.Duration
}

// Canonical presets for the content domains the API serves. Key namespaces
// ("projects", "experience", "messages") double as invalidation patterns.
var (
	ProjectsAll      = Preset{Key: "projects:all", TTL: 5 * time.Minute}
	ProjectsFeatured = Preset{Key: "projects:featured", TTL: 5 * time.Minute}
	ExperienceAll    = Preset{Key: "experience:all", TTL: 5 * time.Minute}
	MessagesAll      = Preset{Key: "messages:all", TTL: time.Minute}
	HealthDB         = Preset{Key: "health:db", TTL: 30 * time.Second}
)

// ProjectSlug returns the preset for a single project looked up by slug.
// The "projects" prefix keeps it inside the projects invalidation namespace.
func ProjectSlug(slug string) Preset {
	return Preset{Key: "projects:slug:" + slug, TTL: 5 * time.Minute}
}
