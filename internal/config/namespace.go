package config

import (
	"github.com/vk/shadergen/internal/builderr"
	"github.com/vk/shadergen/internal/model"
)

// Namespaces lists every namespace across manifests in first-seen order.
func Namespaces(manifests []*Manifest) []string {
	var names []string
	seen := make(map[string]struct{})
	for _, m := range manifests {
		for _, ns := range m.Namespaces {
			if _, ok := seen[ns.Name]; ok {
				continue
			}
			seen[ns.Name] = struct{}{}
			names = append(names, ns.Name)
		}
	}
	return names
}

// Shaders collects the shaders of one namespace across all manifests, in
// manifest order and then declaration order. A namespace that appears in no
// manifest is an UnknownNamespaceError.
func Shaders(manifests []*Manifest, namespace string) ([]model.ShaderDesc, error) {
	var shaders []model.ShaderDesc
	found := false

	for _, m := range manifests {
		for _, ns := range m.Namespaces {
			if ns.Name != namespace {
				continue
			}
			found = true
			for _, decl := range ns.Shaders {
				sh, err := shaderDesc(m.Path, decl)
				if err != nil {
					return nil, err
				}
				shaders = append(shaders, sh)
			}
		}
	}

	if !found {
		return nil, builderr.New(builderr.KindUnknownNamespace, namespace,
			"namespace %q not found in provided manifest(s)%s", namespace, builderr.Hint(namespace, Namespaces(manifests)))
	}
	return shaders, nil
}

func shaderDesc(manifestPath string, decl ShaderDecl) (model.ShaderDesc, error) {
	sh := model.ShaderDesc{
		Name:     decl.Name,
		ShaderID: decl.ID,
		Stages:   make([]model.StageDesc, 0, len(decl.Stages)),
		FSInfo:   model.NewFSInfo(manifestPath),
	}
	for _, st := range decl.Stages {
		kind, err := model.ParseStageKind(st.Stage)
		if err != nil {
			return model.ShaderDesc{}, builderr.Configf("%s: shader %q: %v", manifestPath, decl.Name, err)
		}
		stage := model.StageDesc{
			Kind:       kind,
			SourcePath: st.Src,
			ExtraFlags: st.CompilerFlags,
		}
		for _, sv := range st.Variants {
			stage.Variants = append(stage.Variants, model.StageVariant{
				Label:        sv.Label,
				VariantNames: sv.Variants,
			})
		}
		sh.Stages = append(sh.Stages, stage)
	}
	return sh, nil
}
