package jsontree

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// Edit replaces Length bytes at Offset of a text with Content.
type Edit struct {
	Offset  int
	Length  int
	Content string
}

// ApplyEdits applies a batch of edits, all expressed against the original
// text, in a single pass. Edits must not overlap.
func ApplyEdits(text string, edits []Edit) (string, error) {
	ee := make([]Edit, len(edits))
	copy(ee, edits)
	sort.SliceStable(ee, func(i, j int) bool { return ee[i].Offset < ee[j].Offset })
	b := strings.Builder{}
	b.Grow(len(text))
	pos := 0
	for _, e := range ee {
		if e.Offset < pos || e.Length < 0 || e.Offset+e.Length > len(text) {
			return "", errors.Errorf("edit at %d+%d overlaps or exceeds text of %d bytes",
				e.Offset, e.Length, len(text))
		}
		b.WriteString(text[pos:e.Offset])
		b.WriteString(e.Content)
		pos = e.Offset + e.Length
	}
	b.WriteString(text[pos:])
	return b.String(), nil
}

// DiffEdits computes a small set of edits turning from into to.
func DiffEdits(from, to string) []Edit {
	dmp := diffpatch.New()
	diffs := dmp.DiffMain(from, to, false)
	diffs = dmp.DiffCleanupEfficiency(diffs)
	var (
		edits []Edit
		cur   *Edit
		pos   int
	)
	flush := func() {
		if cur != nil {
			edits = append(edits, *cur)
			cur = nil
		}
	}
	for _, d := range diffs {
		switch d.Type {
		case diffpatch.DiffEqual:
			flush()
			pos += len(d.Text)
		case diffpatch.DiffDelete:
			if cur == nil {
				cur = &Edit{Offset: pos}
			}
			cur.Length += len(d.Text)
			pos += len(d.Text)
		case diffpatch.DiffInsert:
			if cur == nil {
				cur = &Edit{Offset: pos}
			}
			cur.Content += d.Text
		}
	}
	flush()
	return edits
}

// Format re-stringifies the whole tree with opts and returns the edits that
// turn the previous text into the new one. Pure is ignored.
func (t *Tree) Format(opts ...Option) []Edit {
	if t.Root() == nil {
		return nil
	}
	old := t.text
	opts = append(opts, func(o *options) { o.pure = false })
	return DiffEdits(old, t.Stringify(opts...))
}
