package lang

// Project flattens a program into plain Go values keyed by scope name.
// When names repeat, at the top level or inside any set, the last one wins.
func Project(prog *Program) map[string]any {
	out := make(map[string]any, len(prog.Scopes))
	for _, s := range prog.Scopes {
		out[s.Name] = projectVariables(s.Variables)
	}

	return out
}

// ProjectValue flattens a value into plain Go values:
//
//	number            int64
//	string, hexcolor  string
//	boolean           bool
//	null              nil
//	Array             []any, never nil
//	Set               map[string]any
//	Variable          map[string]any with a single entry
//
// A [Scope] is accepted as well and projects like a Set.
func ProjectValue(v any) any {
	switch v := v.(type) {
	case Primitive:
		return v.Interface()

	case Array:
		out := make([]any, len(v.Values))
		for i, p := range v.Values {
			out[i] = p.Interface()
		}

		return out

	case Set:
		return projectVariables(v.Variables)

	case Scope:
		return projectVariables(v.Variables)

	case Variable:
		return map[string]any{v.Name: ProjectValue(v.Value)}

	case *Program:
		return Project(v)

	default:
		return nil
	}
}

func projectVariables(vars []Variable) map[string]any {
	out := make(map[string]any, len(vars))
	for _, v := range vars {
		out[v.Name] = ProjectValue(v.Value)
	}

	return out
}
