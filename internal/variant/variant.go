// Package variant assigns every declared compile-time variant a unique bit
// and resolves variant-name combinations into a mask and a flag list.
package variant

import (
	"math/bits"

	"github.com/vk/shadergen/internal/builderr"
	"github.com/vk/shadergen/internal/config"
)

// Variant is a declared variant with its assigned bit.
type Variant struct {
	Name  string
	Bit   uint64
	Flags []string
}

// Table maps variant names to bits. Bit i belongs to the i-th declared
// variant. A Table is immutable once built and safe for concurrent use.
type Table struct {
	ordered []Variant
	byName  map[string]int
}

// New builds a table from declarations in declaration order.
func New(decls []config.VariantDecl) (*Table, error) {
	t := &Table{
		ordered: make([]Variant, 0, len(decls)),
		byName:  make(map[string]int, len(decls)),
	}

	var problems []string
	for _, d := range decls {
		switch {
		case d.Name == "":
			problems = append(problems, "variant name must not be empty")
			continue
		case t.has(d.Name):
			problems = append(problems, "duplicate variant "+quote(d.Name))
			continue
		case len(t.ordered) == config.MaxVariants:
			problems = append(problems, "too many variants: the variant mask holds 64")
			continue
		}
		t.byName[d.Name] = len(t.ordered)
		t.ordered = append(t.ordered, Variant{
			Name:  d.Name,
			Bit:   1 << uint(len(t.ordered)),
			Flags: append([]string(nil), d.Flags...),
		})
	}

	if err := builderr.Config(problems); err != nil {
		return nil, err
	}
	return t, nil
}

func quote(s string) string {
	return `"` + s + `"`
}

func (t *Table) has(name string) bool {
	_, ok := t.byName[name]
	return ok
}

// Len returns the number of variants.
func (t *Table) Len() int {
	return len(t.ordered)
}

// Names returns the variant names in bit order.
func (t *Table) Names() []string {
	names := make([]string, len(t.ordered))
	for i, v := range t.ordered {
		names[i] = v.Name
	}
	return names
}

// Lookup returns the named variant.
func (t *Table) Lookup(name string) (Variant, bool) {
	i, ok := t.byName[name]
	if !ok {
		return Variant{}, false
	}
	return t.ordered[i], true
}

// Resolve ORs the bits of the named variants and concatenates their flags in
// the order given, keeping only the first occurrence of each flag. An
// undeclared name is an UnknownVariantError.
func (t *Table) Resolve(names []string) (uint64, []string, error) {
	var mask uint64
	var flags []string
	for _, name := range names {
		v, ok := t.Lookup(name)
		if !ok {
			return 0, nil, builderr.New(builderr.KindUnknownVariant, name,
				"unknown variant %q%s", name, builderr.Hint(name, t.Names()))
		}
		mask |= v.Bit
		flags = append(flags, v.Flags...)
	}
	return mask, config.Dedupe(flags), nil
}

// Decode returns the names of the variants whose bits are set in mask, in
// bit order. Bits with no declared variant are ignored.
func (t *Table) Decode(mask uint64) []string {
	var names []string
	for mask != 0 {
		i := bits.TrailingZeros64(mask)
		if i < len(t.ordered) {
			names = append(names, t.ordered[i].Name)
		}
		mask &^= 1 << uint(i)
	}
	return names
}
