// =============================================================================
// Jira to Gantt Converter - Resource Registry
// =============================================================================
//
// The registry maintains the ordered, deduplicated list of resources
// (assignees) seen during one conversion run. Each distinct assignee title
// gets a stable zero-based index in first-seen order; the index doubles as
// the palette position when colored resources are enabled.
//
// The registry is owned by a single conversion run and is not safe for
// concurrent use.
//
// =============================================================================

package converter

import "github.com/ginjaninja78/jira-to-gantt/internal/types"

// UnassignedLabel replaces an empty assignee title in the final resource
// list.
const UnassignedLabel = "unassigned"

// =============================================================================
// REGISTRY STRUCTURE
// =============================================================================

// Registry assigns stable indexes to resource titles. Identity is the exact
// title string; the empty title is a valid resource until Finalize relabels
// it.
type Registry struct {
	resources []types.Resource
	index     map[string]int
	palette   []string
}

// NewRegistry creates an empty registry.
//
// PARAMETERS:
//   - palette: The color cycle for new resources. Pass nil for plain,
//     uncolored resources.
//
// RETURNS:
//   - A ready-to-use Registry.
func NewRegistry(palette []string) *Registry {
	return &Registry{
		resources: []types.Resource{},
		index:     make(map[string]int),
		palette:   palette,
	}
}

// Resolve returns the index for a resource title, registering the title on
// first sight.
//
// The isNew result drives the start-date convention: only the first item
// assigned to a resource carries an explicit start date, and the downstream
// renderer schedules the rest consecutively on the same lane.
func (r *Registry) Resolve(title string) (index int, isNew bool) {
	if i, ok := r.index[title]; ok {
		return i, false
	}

	index = len(r.resources)
	resource := types.Resource{Title: title}
	if len(r.palette) > 0 {
		color := r.palette[index%len(r.palette)]
		resource.Color = &color
	}

	r.resources = append(r.resources, resource)
	r.index[title] = index
	return index, true
}

// Len returns the number of registered resources.
func (r *Registry) Len() int {
	return len(r.resources)
}

// Finalize returns the resource list in registration order.
//
// When relabelEmpty is set, a resource registered under the empty title is
// renamed to "unassigned". Only the title changes; its index and color stay
// as assigned at registration time. After Finalize the registry should not
// be used further.
func (r *Registry) Finalize(relabelEmpty bool) []types.Resource {
	if relabelEmpty {
		if i, ok := r.index[""]; ok {
			r.resources[i].Title = UnassignedLabel
		}
	}
	return r.resources
}
