package mutators

import (
	"github.com/microsoft/rusty-radamsa/internal/rng"
	"github.com/microsoft/rusty-radamsa/internal/shared"
)

// Bracket-delimited tree splitter, mirroring original_source/src/split.rs.
// Node ids are plain indexes into a flat node table rather than Rust's
// process-unique ids; back-edges (parent pointers) use the same index
// space, which is sufficient in a single-process, single-tree context.

var usualDelims = [6][2]byte{
	{'(', ')'}, {'[', ']'}, {'<', '>'}, {'{', '}'}, {'"', '"'}, {'\'', '\''},
}

const maxLevels = 256

type treeNode struct {
	level          int
	delim          [2]byte // {0,0} for a leaf
	start, end     int
	parent         int // -1 for root
	children       []int
	needsSeparator bool
}

type tree struct {
	nodes []treeNode
	root  int
}

func openDelim(b byte) ([2]byte, bool) {
	for _, d := range usualDelims {
		if d[0] == b {
			return d, true
		}
	}
	return [2]byte{}, false
}

func closeDelim(b byte) ([2]byte, bool) {
	for _, d := range usualDelims {
		if d[1] == b {
			return d, true
		}
	}
	return [2]byte{}, false
}

// buildBinaryTree parses data into a bracket-nesting tree in a single pass
// using an explicit stack, mirroring build_binary_tree.
func buildBinaryTree(data []byte) *tree {
	t := &tree{}
	root := treeNode{level: 0, parent: -1, start: 0, end: len(data)}
	t.nodes = append(t.nodes, root)
	t.root = 0

	type frame struct {
		id    int
		delim [2]byte
		start int
	}
	stack := []frame{{id: 0}}

	for i := 0; i < len(data); i++ {
		b := data[i]
		top := &stack[len(stack)-1]
		if d, ok := closeDelim(b); ok && d == top.delim && len(stack) > 1 {
			nodeID := top.id
			n := &t.nodes[nodeID]
			n.end = i + 1
			n.delim = d
			stack = stack[:len(stack)-1]
			parent := &stack[len(stack)-1]
			t.nodes[parent.id].children = append(t.nodes[parent.id].children, nodeID)
			continue
		}
		if d, ok := openDelim(b); ok {
			if len(stack) >= maxLevels {
				// Nesting too deep: silently drop this child rather than
				// recording it at all, per the MAX_LEVELS=256 bound.
				continue
			}
			id := len(t.nodes)
			t.nodes = append(t.nodes, treeNode{
				level: top_level(t, top.id) + 1, parent: top.id, start: i,
			})
			stack = append(stack, frame{id: id, delim: d, start: i})
			continue
		}
		leafID := len(t.nodes)
		t.nodes = append(t.nodes, treeNode{
			level: top_level(t, top.id) + 1, parent: top.id, start: i, end: i + 1,
		})
		t.nodes[top.id].children = append(t.nodes[top.id].children, leafID)
	}

	// Unmatched opens left on the stack run to the end of data and are
	// attached to their enclosing node, keeping only their opening byte.
	for len(stack) > 1 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := &t.nodes[f.id]
		n.end = len(data)
		n.delim = [2]byte{f.delim[0], 0}
		parent := &stack[len(stack)-1]
		t.nodes[parent.id].children = append(t.nodes[parent.id].children, f.id)
	}
	return t
}

func top_level(t *tree, id int) int {
	return t.nodes[id].level
}

// partialParse returns nil for binary-looking data, else the parsed tree.
func partialParse(data []byte) *tree {
	if shared.IsBinarish(data) {
		return nil
	}
	return buildBinaryTree(data)
}

// sublist returns every non-root, delimited node id, DFS pre-order,
// excluding zero-width (empty-pair) nodes and leaves (delim == {0,0}).
func (t *tree) sublist() []int {
	var out []int
	var visit func(id int)
	visit = func(id int) {
		n := &t.nodes[id]
		if id != t.root && n.end > n.start && n.delim != [2]byte{0, 0} {
			out = append(out, id)
		}
		for _, c := range n.children {
			visit(c)
		}
	}
	visit(t.root)
	return out
}

func (t *tree) pickSublist(s *rng.Source) (int, bool) {
	ids := t.sublist()
	if len(ids) == 0 {
		return 0, false
	}
	return ids[s.Elem(len(ids))], true
}

// checkSeparator reports whether the byte immediately preceding
// startIndex is a comma, used to decide if a duplicated/moved node needs
// a leading separator when serialized.
func checkSeparator(startIndex int, data []byte) bool {
	return startIndex > 0 && data[startIndex-1] == ','
}

func (t *tree) treeToVec(id int, data []byte) []byte {
	n := &t.nodes[id]
	if len(n.children) == 0 {
		return append([]byte(nil), data[n.start:n.end]...)
	}
	var out []byte
	if n.needsSeparator {
		out = append(out, ',')
	}
	if n.delim[0] != 0 {
		out = append(out, n.delim[0])
	}
	for _, c := range n.children {
		out = append(out, t.treeToVec(c, data)...)
	}
	if n.delim[1] != 0 {
		out = append(out, n.delim[1])
	}
	return out
}

// repeatPath nests n copies of parent's subtree at childIndex into itself,
// implementing TreeStutter's path repetition.
func (t *tree) repeatPath(parentID, childIndex, nRep int) {
	if nRep <= 0 {
		return
	}
	clone := t.cloneSubtree(parentID)
	t.repeatPath(clone, childIndex, nRep-1)
	n := &t.nodes[parentID]
	if childIndex < 0 || childIndex >= len(n.children) {
		return
	}
	n.children[childIndex] = clone
}

func (t *tree) cloneSubtree(id int) int {
	n := t.nodes[id]
	newID := len(t.nodes)
	clone := treeNode{level: n.level, delim: n.delim, start: n.start, end: n.end, parent: n.parent, needsSeparator: n.needsSeparator}
	t.nodes = append(t.nodes, clone)
	newChildren := make([]int, len(n.children))
	for i, c := range n.children {
		newChildren[i] = t.cloneSubtree(c)
	}
	t.nodes[newID].children = newChildren
	return newID
}

type treeMutateKind int

const (
	treeDup treeMutateKind = iota
	treeDel
	treeStutter
	treeSwapReplace
	treeSwapPair
)

// sedTreeOp parses data, applies the requested structural mutation, and
// re-serializes it. Returns nil if the data doesn't parse or the mutation's
// preconditions aren't met.
func sedTreeOp(s *rng.Source, data []byte, kind treeMutateKind) []byte {
	t := partialParse(data)
	if t == nil || len(t.nodes[t.root].children) == 0 && len(data) == 0 {
		return nil
	}

	switch kind {
	case treeDup:
		id, ok := t.pickSublist(s)
		if !ok {
			return nil
		}
		parent := t.nodes[id].parent
		if parent < 0 {
			return nil
		}
		clone := t.cloneSubtree(id)
		t.nodes[clone].needsSeparator = checkSeparator(t.nodes[id].start, data)
		pn := &t.nodes[parent]
		for i, c := range pn.children {
			if c == id {
				newChildren := append([]int(nil), pn.children[:i+1]...)
				newChildren = append(newChildren, clone)
				newChildren = append(newChildren, pn.children[i+1:]...)
				pn.children = newChildren
				break
			}
		}

	case treeDel:
		id, ok := t.pickSublist(s)
		if !ok {
			return nil
		}
		parent := t.nodes[id].parent
		if parent < 0 {
			return nil
		}
		pn := &t.nodes[parent]
		for i, c := range pn.children {
			if c == id {
				pn.children = append(pn.children[:i:i], pn.children[i+1:]...)
				break
			}
		}

	case treeStutter:
		id, ok := t.pickSublist(s)
		if !ok {
			return nil
		}
		parent := t.nodes[id].parent
		if parent < 0 {
			return nil
		}
		pn := &t.nodes[parent]
		idx := -1
		for i, c := range pn.children {
			if c == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil
		}
		nReps := int(s.RandLog(10))
		t.repeatPath(parent, idx, nReps)

	case treeSwapReplace:
		ids := t.sublist()
		if len(ids) < 2 {
			return nil
		}
		shuffleInts(s, ids)
		src, dst := ids[0], ids[1]
		dstParent := t.nodes[dst].parent
		if dstParent < 0 {
			return nil
		}
		clone := t.cloneSubtree(src)
		pn := &t.nodes[dstParent]
		for i, c := range pn.children {
			if c == dst {
				pn.children[i] = clone
				break
			}
		}

	case treeSwapPair:
		ids := t.sublist()
		if len(ids) < 2 {
			return nil
		}
		shuffleInts(s, ids)
		a, b := ids[0], ids[1]
		aParent, bParent := t.nodes[a].parent, t.nodes[b].parent
		if aParent < 0 || bParent < 0 {
			return nil
		}
		cloneA, cloneB := t.cloneSubtree(a), t.cloneSubtree(b)
		pa, pb := &t.nodes[aParent], &t.nodes[bParent]
		for i, c := range pa.children {
			if c == a {
				pa.children[i] = cloneB
				break
			}
		}
		for i, c := range pb.children {
			if c == b {
				pb.children[i] = cloneA
				break
			}
		}
	}

	return t.treeToVec(t.root, data)
}

func shuffleInts(s *rng.Source, ids []int) {
	for i := len(ids) - 1; i > 0; i-- {
		j := s.RangeInt(i + 1)
		ids[i], ids[j] = ids[j], ids[i]
	}
}

func mutateTreeDel(s *rng.Source, data []byte) ([]byte, int) {
	if out := sedTreeOp(s, data, treeDel); out != nil {
		return out, 1
	}
	return nil, -1
}

func mutateTreeDup(s *rng.Source, data []byte) ([]byte, int) {
	if out := sedTreeOp(s, data, treeDup); out != nil {
		return out, 1
	}
	return nil, -1
}

func mutateTreeStutter(s *rng.Source, data []byte) ([]byte, int) {
	if out := sedTreeOp(s, data, treeStutter); out != nil {
		return out, 1
	}
	return nil, -1
}

func mutateTreeSwap1(s *rng.Source, data []byte) ([]byte, int) {
	if out := sedTreeOp(s, data, treeSwapReplace); out != nil {
		return out, 1
	}
	return nil, -1
}

func mutateTreeSwap2(s *rng.Source, data []byte) ([]byte, int) {
	if out := sedTreeOp(s, data, treeSwapPair); out != nil {
		return out, 1
	}
	return nil, -1
}
