package main

import (
	"fmt"
	"go/parser"
	"go/token"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const modulePath = "ballotbox"

// valuePackages are third-party packages whose types are part of the ledger
// vocabulary (wallet addresses), so every layer may import them.
var valuePackages = []string{
	"github.com/ethereum/go-ethereum/common",
}

// layerRule lists, relative to the owning service, which of its own layers a
// layer may import. thirdParty allows any non-module import on top of that.
type layerRule struct {
	ownLayers  []string
	contracts  bool
	thirdParty bool
}

var layerRules = map[string]layerRule{
	"domain":      {ownLayers: []string{"domain"}},
	"ports":       {ownLayers: []string{"domain"}, contracts: true},
	"application": {ownLayers: []string{"application", "domain", "ports"}, contracts: true},
	"transport":   {},
	"adapters":    {ownLayers: []string{"adapters", "application", "domain", "ports", "transport"}, contracts: true, thirdParty: true},
}

type violation struct {
	File   string
	Line   int
	Import string
	Rule   string
}

func main() {
	violations := collectViolations("contexts")
	if len(violations) == 0 {
		fmt.Println("boundary checks passed")
		return
	}

	sort.Slice(violations, func(i, j int) bool {
		if violations[i].File != violations[j].File {
			return violations[i].File < violations[j].File
		}
		return violations[i].Line < violations[j].Line
	})

	fmt.Println("boundary violations found:")
	for _, v := range violations {
		fmt.Printf("- %s:%d imports %q (%s)\n", v.File, v.Line, v.Import, v.Rule)
	}
	os.Exit(1)
}

func collectViolations(root string) []violation {
	var violations []violation

	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}

		parts := strings.Split(filepath.ToSlash(path), "/")
		if len(parts) < 4 || parts[0] != "contexts" {
			return nil
		}
		servicePrefix := fmt.Sprintf("%s/contexts/%s/%s", modulePath, parts[1], parts[2])
		violations = append(violations, checkFile(path, parts[3], servicePrefix)...)
		return nil
	})

	return violations
}

func checkFile(path string, layer string, servicePrefix string) []violation {
	file := filepath.ToSlash(path)
	fset := token.NewFileSet()
	parsed, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
	if err != nil {
		return []violation{{File: file, Line: 1, Rule: "file must parse"}}
	}

	rule, layered := layerRules[layer]
	var violations []violation
	for _, imp := range parsed.Imports {
		importPath := strings.Trim(imp.Path.Value, "\"")
		report := func(reason string) {
			violations = append(violations, violation{
				File:   file,
				Line:   fset.Position(imp.Pos()).Line,
				Import: importPath,
				Rule:   reason,
			})
		}

		if hasPrefix(importPath, modulePath+"/contexts") && !hasPrefix(importPath, servicePrefix) {
			report("cross-module imports are forbidden")
			continue
		}
		if !layered || isStdlib(importPath) || isAllowed(importPath, valuePackages) {
			continue
		}
		if hasPrefix(importPath, modulePath+"/internal") {
			report(layer + " must not import runtime infrastructure")
			continue
		}
		if hasPrefix(importPath, modulePath+"/contracts") {
			if !rule.contracts {
				report(layer + " must not import event contracts")
			}
			continue
		}
		if hasPrefix(importPath, servicePrefix) {
			allowed := make([]string, 0, len(rule.ownLayers))
			for _, own := range rule.ownLayers {
				allowed = append(allowed, servicePrefix+"/"+own)
			}
			if !isAllowed(importPath, allowed) {
				report(layer + " import is outside explicit allowlist")
			}
			continue
		}
		if !rule.thirdParty {
			report(layer + " must not import third-party packages")
		}
	}
	return violations
}

func hasPrefix(path string, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

func isAllowed(importPath string, allowedPrefixes []string) bool {
	for _, p := range allowedPrefixes {
		if hasPrefix(importPath, p) {
			return true
		}
	}
	return false
}

func isStdlib(importPath string) bool {
	if hasPrefix(importPath, modulePath) {
		return false
	}
	first := importPath
	if idx := strings.Index(first, "/"); idx != -1 {
		first = first[:idx]
	}
	return !strings.Contains(first, ".")
}
