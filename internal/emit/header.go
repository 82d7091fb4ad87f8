package emit

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/vk/shadergen/internal/builderr"
	"github.com/vk/shadergen/internal/model"
)

var unsafeRun = regexp.MustCompile(`[^0-9A-Za-z]+`)

// SanitizeToken upper-cases s and collapses every run of characters outside
// [0-9A-Za-z] into one underscore, trimming underscores at either end. An
// empty result becomes "UNNAMED".
func SanitizeToken(s string) string {
	out := strings.Trim(unsafeRun.ReplaceAllString(strings.ToUpper(s), "_"), "_")
	if out == "" {
		return "UNNAMED"
	}
	return out
}

// Symbol returns the header constant name for a job in namespace:
// AS_<NS>_<SHADER>_<STAGE>, plus _<LABEL> for a declared stage variant.
func Symbol(namespace string, job model.Job) string {
	var b strings.Builder
	b.WriteString(SymbolPrefix)
	b.WriteString(SanitizeToken(namespace))
	b.WriteByte('_')
	b.WriteString(SanitizeToken(job.Shader))
	b.WriteByte('_')
	b.WriteString(SanitizeToken(job.Stage.String()))
	if job.Variant.Label != "" {
		b.WriteByte('_')
		b.WriteString(SanitizeToken(job.Variant.Label))
	}
	return b.String()
}

// Header renders shaders.h for a namespace, one #define per job in job
// order. Two jobs whose symbols coincide are a SymbolCollisionError unless
// they also carry the same identifier, in which case the constant is written
// once.
func Header(namespace string, jobs []model.Job) ([]byte, error) {
	lines := []string{
		"#pragma once",
		"",
		"// Generated by shadergen",
		"",
	}

	type origin struct {
		id     uint64
		shader string
		stage  model.StageKind
		label  string
	}
	seen := make(map[string]origin, len(jobs))

	for _, job := range jobs {
		sym := Symbol(namespace, job)
		if prev, ok := seen[sym]; ok {
			if prev.id == job.PackedID {
				continue
			}
			return nil, builderr.New(builderr.KindSymbolCollision, sym,
				"header symbol %s is produced by both shader %q stage %s%s and shader %q stage %s%s",
				sym, prev.shader, prev.stage, labelNote(prev.label), job.Shader, job.Stage, labelNote(job.Variant.Label))
		}
		seen[sym] = origin{id: job.PackedID, shader: job.Shader, stage: job.Stage, label: job.Variant.Label}
		lines = append(lines, fmt.Sprintf("#define %s 0x%016XULL", sym, job.PackedID))
	}

	lines = append(lines, "")
	return []byte(strings.Join(lines, "\n")), nil
}

func labelNote(label string) string {
	if label == "" {
		return ""
	}
	return fmt.Sprintf(" variant %q", label)
}
