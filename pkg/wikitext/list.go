// list.go assembles contiguous runs of list items into nested lists.
package wikitext

import (
	"io"
	"strings"

	"github.com/dvorberg/tinywikitext/pkg/markup"
)

// ValidateSignatures checks that the signature next may follow prev
// within one contiguous list block. The nesting depth may grow by at
// most one per item, and the shared prefix of the two signatures must
// be identical: the marker type at a given depth cannot change
// mid-list. Prev is empty for the first item of a block.
func ValidateSignatures(prev, next string, loc markup.Location) error {
	if len(next) > len(prev)+1 {
		return markup.NewStructuralError(loc,
			"list nesting error: the nesting level may only increase by one per item")
	}
	l := min(len(prev), len(next))
	if prev[:l] != next[:l] {
		return markup.NewStructuralError(loc, "cannot change the list type mid-list")
	}
	return nil
}

// listNode is a node of the tree built for one list block: either a
// list carrying a marker type and children, or an item leaf holding
// its buffered content.
type listNode struct {
	item     bool
	marker   byte
	children []*listNode
	content  *strings.Builder
}

func (n *listNode) tag() string {
	if n.marker == '#' {
		return "ol"
	}
	return "ul"
}

// childList returns the sublist that holds items one level deeper,
// creating it when the last child is an item or the list is empty.
func (n *listNode) childList(marker byte, loc markup.Location) (*listNode, error) {
	if len(n.children) == 0 || n.children[len(n.children)-1].item {
		child := &listNode{marker: marker}
		n.children = append(n.children, child)
		return child, nil
	}
	child := n.children[len(n.children)-1]
	if child.marker != marker {
		return nil, markup.NewInternalError(loc,
			"list marker type changed from %q to %q", child.marker, marker)
	}
	return child, nil
}

func (n *listNode) render(w *markup.HTMLWriter) {
	w.OpenBlock(n.tag(), nil)
	for i, child := range n.children {
		if child.item {
			w.OpenBlock("li", nil)
			w.Raw(child.content.String())
		} else {
			child.render(w)
		}
		// A sublist renders inside the preceding item's li, so the li
		// only closes when the next child is an item again.
		if i+1 >= len(n.children) || n.children[i+1].item {
			w.CloseBlock("li")
		}
	}
	w.CloseBlock(n.tag())
}

// ListAssembler collects the items of one contiguous list block into a
// tree and renders it as nested lists when the block ends. While the
// block is open, the HTML writer is redirected into per-item buffers;
// Finalize restores it and writes the assembled lists.
type ListAssembler struct {
	writer  *markup.HTMLWriter
	restore io.Writer
	root    *listNode
}

// NewListAssembler creates an assembler capturing the writer's output
// until Finalize.
func NewListAssembler(w *markup.HTMLWriter) *ListAssembler {
	return &ListAssembler{writer: w, restore: w.SwapOutput(io.Discard)}
}

// BeginItem appends an item at the nesting path signature encodes,
// creating intermediate lists as needed. Marker types along the path
// must match the existing tree; the parser validates signatures before
// they get here, so a mismatch is a defect, not bad input.
func (a *ListAssembler) BeginItem(signature string, loc markup.Location) error {
	if signature == "" {
		return markup.NewInternalError(loc, "empty list item signature")
	}
	if a.root == nil {
		a.root = &listNode{marker: signature[0]}
	}
	list := a.root
	if list.marker != signature[0] {
		return markup.NewInternalError(loc,
			"list marker type changed from %q to %q", list.marker, signature[0])
	}
	for i := 1; i < len(signature); i++ {
		child, err := list.childList(signature[i], loc)
		if err != nil {
			return err
		}
		list = child
	}

	item := &listNode{item: true, content: &strings.Builder{}}
	list.children = append(list.children, item)
	a.writer.SwapOutput(item.content)
	return nil
}

// Finalize restores the writer's output and renders the collected tree.
func (a *ListAssembler) Finalize() error {
	a.writer.SwapOutput(a.restore)
	if a.root != nil {
		a.root.render(a.writer)
	}
	return a.writer.Err()
}
