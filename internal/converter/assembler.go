// =============================================================================
// Jira to Gantt Converter - Chart Assembler
// =============================================================================
//
// The assembler collects built items into per-resource buckets and produces
// the final chart document. Item ordering in the document is resource-major:
// all items for resource 0, then all for resource 1, and so on, each bucket
// preserving the relative input order of its rows. This reordering relative
// to the input file is what groups each resource's lane together for the
// renderer.
//
// =============================================================================

package converter

import "github.com/ginjaninja78/jira-to-gantt/internal/types"

// Assembler buckets items by resource index and flattens them into a
// document.
type Assembler struct {
	buckets [][]types.Item
}

// NewAssembler creates an empty Assembler.
func NewAssembler() *Assembler {
	return &Assembler{}
}

// Add appends an item to its resource bucket, growing the bucket list as
// new resource indexes appear.
func (a *Assembler) Add(item types.Item) {
	for len(a.buckets) <= item.ResourceIndex {
		a.buckets = append(a.buckets, nil)
	}
	a.buckets[item.ResourceIndex] = append(a.buckets[item.ResourceIndex], item)
}

// ItemCount returns the number of items added so far.
func (a *Assembler) ItemCount() int {
	n := 0
	for _, bucket := range a.buckets {
		n += len(bucket)
	}
	return n
}

// Assemble produces the chart document.
//
// PARAMETERS:
//   - title: The chart title from the deployment profile.
//   - resources: The finalized resource list from the registry.
//
// RETURNS:
//   - The document with the flattened, resource-major item sequence. The
//     resource and item lists are never nil, so an empty conversion still
//     serializes as empty lists rather than nulls.
func (a *Assembler) Assemble(title string, resources []types.Resource) types.ChartDocument {
	items := make([]types.Item, 0, a.ItemCount())
	for _, bucket := range a.buckets {
		items = append(items, bucket...)
	}

	if resources == nil {
		resources = []types.Resource{}
	}

	return types.ChartDocument{
		Title:     title,
		Resources: resources,
		Items:     items,
	}
}
