package typeconv

import (
	"sort"

	"github.com/wippyai/abigen/abi"
)

// Imports returns the sorted set of codec symbols that the wire rendering of
// t references. It walks the tree the same way the converter does, including
// the depth limit, so the result equals the converter's own symbol record.
func Imports(t *abi.TypeDef, maxDepth int) []string {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	set := make(map[string]struct{})
	collect(t, set, 0, maxDepth)
	return sortedKeys(set)
}

// CollectImports adds the codec symbols of t to set.
func CollectImports(t *abi.TypeDef, set map[string]struct{}, maxDepth int) {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	collect(t, set, 0, maxDepth)
}

func collect(t *abi.TypeDef, set map[string]struct{}, depth, maxDepth int) {
	if depth > maxDepth || t == nil {
		return
	}

	switch t.Kind {
	case abi.KindPath:
		name := t.Name()
		if name == "" {
			return
		}
		if s, ok := LookupScalar(name); ok {
			set[s.Codec()] = struct{}{}
			return
		}
		args := t.GenericArgs
		switch name {
		case NameVec, NameOption:
			set[name] = struct{}{}
			if len(args) > 0 {
				collect(args[0], set, depth+1, maxDepth)
			}
			return
		case NameResult:
			if len(args) != 2 || args[0] == nil || args[1] == nil {
				return
			}
			set[NameResult] = struct{}{}
			collect(args[0], set, depth+1, maxDepth)
			collect(args[1], set, depth+1, maxDepth)
			return
		}
		for _, a := range args {
			collect(a, set, depth+1, maxDepth)
		}

	case abi.KindTuple:
		if t.TupleArgs == nil {
			return
		}
		if len(t.TupleArgs) == 0 {
			set["Null"] = struct{}{}
			return
		}
		set["Tuple"] = struct{}{}
		for _, a := range t.TupleArgs {
			collect(a, set, depth+1, maxDepth)
		}

	case abi.KindArray:
		if t.Len != nil {
			set["VecFixed"] = struct{}{}
		} else {
			set["Vec"] = struct{}{}
		}
		collect(t.Elem, set, depth+1, maxDepth)

	case abi.KindTypeAlias:
		collect(t.Target, set, depth+1, maxDepth)
	}
}

func sortedKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
