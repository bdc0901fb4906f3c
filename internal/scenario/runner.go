package scenario

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/specialistvlad/wiregrid/internal/ctxlog"
	"github.com/specialistvlad/wiregrid/internal/topology"
	"github.com/specialistvlad/wiregrid/internal/whatif"
)

// variableName is the HCL variable holding the answers of earlier queries.
const variableName = "query"

// Run answers the scenario's queries in declaration order. Each query runs in
// a fresh evaluation context.
func Run(ctx context.Context, s *Scenario, c *topology.Circuit) ([]whatif.Result, error) {
	logger := ctxlog.FromContext(ctx)
	answers := make(map[string]cty.Value, len(s.Queries))
	results := make([]whatif.Result, 0, len(s.Queries))

	for _, q := range s.Queries {
		wq := whatif.Query{Name: q.Name, Target: q.Wire}
		if q.Override != nil {
			v, err := evalSignal(q.Override.Value, answers)
			if err != nil {
				return nil, fmt.Errorf("query %q: override value: %w", q.Name, err)
			}
			wq.Override = &whatif.Assignment{Wire: q.Override.Wire, Value: v}
		}

		signal, err := whatif.Answer(ctxlog.With(ctx, "query", q.Name), c, wq)
		if err != nil {
			return nil, fmt.Errorf("query %q: %w", q.Name, err)
		}
		logger.Debug("Scenario query answered.", "query", q.Name, "wire", q.Wire, "signal", signal)

		answers[q.Name] = cty.NumberUIntVal(uint64(signal))
		results = append(results, whatif.Result{Query: wq, Signal: signal})
	}
	return results, nil
}

// evalSignal evaluates an override expression against the answers so far
// and converts the result to a 16-bit signal.
func evalSignal(expr hcl.Expression, answers map[string]cty.Value) (uint16, error) {
	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			variableName: cty.ObjectVal(answers),
		},
	}

	val, diags := expr.Value(evalCtx)
	if diags.HasErrors() {
		return 0, diags
	}
	if val.IsNull() || !val.IsWhollyKnown() {
		return 0, fmt.Errorf("value must be a known number")
	}

	var signal uint16
	if err := gocty.FromCtyValue(val, &signal); err != nil {
		return 0, err
	}
	return signal, nil
}
