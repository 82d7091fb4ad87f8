package hcl

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/shadergen/internal/builderr"
	"github.com/vk/shadergen/internal/config"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// decoder evaluates attribute expressions and collects every problem found
// in one file.
type decoder struct {
	path     string
	problems []string
}

func (d *decoder) problem(rng hcl.Range, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if rng.Filename != "" {
		msg = fmt.Sprintf("%s: %s", rng.String(), msg)
	}
	d.problems = append(d.problems, msg)
}

func (d *decoder) diags(diags hcl.Diagnostics) {
	for _, diag := range diags {
		if diag.Severity != hcl.DiagError {
			continue
		}
		d.problems = append(d.problems, diag.Error())
	}
}

func (d *decoder) err() error {
	if err := builderr.Config(d.problems); err != nil {
		return fmt.Errorf("%s: %w", d.path, err)
	}
	return nil
}

// isExprDefined checks if an expression was actually written in the file.
// The decoder fills omitted optional attributes with zero-width placeholder
// expressions, so a nil check is not enough.
func isExprDefined(expr hcl.Expression) bool {
	if expr == nil {
		return false
	}
	rng := expr.Range()
	return rng.End.Byte > rng.Start.Byte
}

// value evaluates a constant expression. The second result is false for
// omitted, null or invalid attributes.
func (d *decoder) value(expr hcl.Expression) (cty.Value, bool) {
	if !isExprDefined(expr) {
		return cty.NilVal, false
	}
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		d.diags(diags)
		return cty.NilVal, false
	}
	if val.IsNull() {
		return cty.NilVal, false
	}
	return val, true
}

// strList accepts a string or a list of strings.
func (d *decoder) strList(expr hcl.Expression, what string) []string {
	val, ok := d.value(expr)
	if !ok {
		return nil
	}

	ty := val.Type()
	switch {
	case ty.Equals(cty.String):
		return []string{val.AsString()}
	case ty.IsTupleType() || ty.IsListType() || ty.IsSetType():
		listVal, err := convert.Convert(val, cty.List(cty.String))
		if err != nil {
			d.problem(expr.Range(), "%s must be a string or list of strings: %v", what, err)
			return nil
		}
		var out []string
		if err := gocty.FromCtyValue(listVal, &out); err != nil {
			d.problem(expr.Range(), "%s must be a string or list of strings: %v", what, err)
			return nil
		}
		return out
	default:
		d.problem(expr.Range(), "%s must be a string or list of strings, got %s", what, ty.FriendlyName())
		return nil
	}
}

// flags is like strList but shell-splits every item.
func (d *decoder) flags(expr hcl.Expression, what string) []string {
	items := d.strList(expr, what)
	out, err := config.SplitFlagList(items)
	if err != nil {
		d.problem(expr.Range(), "%s: %v", what, err)
		return nil
	}
	return out
}

// shaderID accepts a whole number or a string in any Go integer base.
func (d *decoder) shaderID(expr hcl.Expression, what string) uint32 {
	val, ok := d.value(expr)
	if !ok {
		d.problem(expr.Range(), "%s missing 'id'", what)
		return 0
	}

	switch ty := val.Type(); {
	case ty.Equals(cty.Number):
		var id uint32
		if err := gocty.FromCtyValue(val, &id); err != nil {
			d.problem(expr.Range(), "%s id must be u32: %v", what, err)
			return 0
		}
		return id
	case ty.Equals(cty.String):
		s := strings.TrimSpace(val.AsString())
		v, err := strconv.ParseUint(s, 0, 64)
		if err != nil || v > math.MaxUint32 {
			d.problem(expr.Range(), "%s id must be u32, got %q", what, s)
			return 0
		}
		return uint32(v)
	default:
		d.problem(expr.Range(), "%s id must be an integer, got %s", what, ty.FriendlyName())
		return 0
	}
}
