package hcl

import (
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
	"github.com/zclconf/go-cty/cty/gocty"
)

// functions are available in every taskfile expression.
var functions = map[string]function.Function{
	"concat":    stdlib.ConcatFunc,
	"format":    stdlib.FormatFunc,
	"join":      stdlib.JoinFunc,
	"lower":     stdlib.LowerFunc,
	"trimspace": stdlib.TrimSpaceFunc,
	"upper":     stdlib.UpperFunc,
}

// environ returns the process environment as a map.
func environ() map[string]string {
	env := make(map[string]string)
	for _, e := range os.Environ() {
		k, v, ok := strings.Cut(e, "=")
		if ok && k != "" {
			env[k] = v
		}
	}
	return env
}

// baseEvalContext exposes env.* and the functions, but no vars yet.
func baseEvalContext(env map[string]string) (*hcl.EvalContext, error) {
	envVal, err := gocty.ToCtyValue(env, cty.Map(cty.String))
	if err != nil {
		return nil, err
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": envVal,
		},
		Functions: functions,
	}, nil
}

// withVars returns a child context that adds var.* on top of base.
func withVars(base *hcl.EvalContext, vars map[string]cty.Value) *hcl.EvalContext {
	child := base.NewChild()
	child.Variables = map[string]cty.Value{
		"var": cty.ObjectVal(vars),
	}
	return child
}
