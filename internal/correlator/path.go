// File: internal/correlator/path.go
package correlator

import (
	"fmt"
	"strings"

	"github.com/blackbirdforensics/croweye/internal/types"
)

const rootRecordNumber = 5

// pathResolver reconstructs full paths from a record_number -> primary-name
// row map, memoizing per call (spec.md §4.5 "Path reconstruction").
type pathResolver struct {
	byRecord map[uint64]types.FileNameAttr
	memo     map[uint64]string
}

func newPathResolver(byRecord map[uint64]types.FileNameAttr) *pathResolver {
	return &pathResolver{byRecord: byRecord, memo: make(map[uint64]string)}
}

// resolve walks parent pointers from recordNumber up to the root, stopping
// on a self/zero parent, a cycle, or a missing parent (spec.md §4.5).
func (p *pathResolver) resolve(recordNumber uint64) string {
	if cached, ok := p.memo[recordNumber]; ok {
		return cached
	}

	var segments []string
	visited := map[uint64]bool{}
	current := recordNumber

	for {
		if current == rootRecordNumber {
			break
		}
		if visited[current] {
			segments = append(segments, fmt.Sprintf("[Cycle Detected: %d]", current))
			break
		}
		visited[current] = true

		fn, ok := p.byRecord[current]
		if !ok {
			segments = append(segments, fmt.Sprintf("[Unknown Parent: %d]", current))
			break
		}
		segments = append(segments, fn.Name)

		parent := fn.ParentRef.RecordNumber
		if parent == 0 || parent == current {
			break
		}
		current = parent
	}

	reversePath := reverse(segments)
	path := "./"
	if len(reversePath) > 0 {
		path = strings.Join(reversePath, `\`)
	}
	p.memo[recordNumber] = path
	return path
}

func reverse(s []string) []string {
	out := make([]string, len(s))
	for i, v := range s {
		out[len(s)-1-i] = v
	}
	return out
}
