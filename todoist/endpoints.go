package todoist

import (
	"net/url"
	"strings"
)

const (
	// DefaultBaseURL is the domain of the public Todoist API.
	DefaultBaseURL = "https://api.todoist.com"

	apiRestVersion = "rest/v2"
	apiSyncVersion = "sync/v9"

	// taskURLPrefix builds the web link of tasks created through quick add.
	taskURLPrefix = "https://todoist.com/showTask?id="
)

const (
	endpointRestTasks                = "tasks"
	endpointRestTaskClose            = "close"
	endpointRestTaskReopen           = "reopen"
	endpointRestProjects             = "projects"
	endpointRestProjectCollaborators = "collaborators"
	endpointRestSections             = "sections"
	endpointRestLabels               = "labels"
	endpointRestLabelsShared         = endpointRestLabels + "/shared"
	endpointRestLabelsSharedRename   = endpointRestLabelsShared + "/rename"
	endpointRestLabelsSharedRemove   = endpointRestLabelsShared + "/remove"
	endpointRestComments             = "comments"

	endpointSync         = "sync"
	endpointSyncQuickAdd = "quick/add"
)

// RestBaseURI returns the REST API root for a domain.
func RestBaseURI(domain string) string {
	return strings.TrimRight(domain, "/") + "/" + apiRestVersion + "/"
}

// SyncBaseURI returns the Sync API root for a domain.
func SyncBaseURI(domain string) string {
	return strings.TrimRight(domain, "/") + "/" + apiSyncVersion + "/"
}

// generatePath escapes each segment and joins them with "/", so an id can
// never add path levels of its own.
func generatePath(segments ...string) string {
	escaped := make([]string, len(segments))
	for i, segment := range segments {
		escaped[i] = url.PathEscape(segment)
	}
	return strings.Join(escaped, "/")
}
