package expr

import (
	"fmt"

	modeltree "github.com/modeltree/modeltree"
)

// FieldValidator returns a visitor that rejects field references outside the
// allow-list. The check is field-local, so it fails fast with the path of the
// offending node.
func FieldValidator(allowed []string) *modeltree.Visitor {
	set := make(map[string]struct{}, len(allowed))
	for _, f := range allowed {
		set[f] = struct{}{}
	}
	return &modeltree.Visitor{
		Record: func(r *modeltree.Record, t *modeltree.ModelType, path modeltree.Path) error {
			if t != Field {
				return nil
			}
			name := r.GetString("name")
			if _, ok := set[name]; !ok {
				return modeltree.NewValidation(modeltree.CodeUnknownField, path,
					fmt.Sprintf("unknown column %q", name))
			}
			return nil
		},
	}
}

// CollectFields gathers every referenced field name in traversal order,
// deduplicated.
func CollectFields(v modeltree.Value) ([]string, error) {
	var names []string
	seen := map[string]struct{}{}
	vis := &modeltree.Visitor{
		Record: func(r *modeltree.Record, t *modeltree.ModelType, _ modeltree.Path) error {
			if t != Field {
				return nil
			}
			name := r.GetString("name")
			if _, dup := seen[name]; !dup {
				seen[name] = struct{}{}
				names = append(names, name)
			}
			return nil
		},
	}
	if err := vis.Visit(v); err != nil {
		return nil, err
	}
	return names, nil
}
