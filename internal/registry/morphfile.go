// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 lambdamorph Contributors

package registry

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/samber/oops"

	"github.com/lambdamorph/lambdamorph/internal/term"
)

// EngineVersion is the engine's own semantic version. A morphfile may
// carry an optional "engine-version:" constraint line, checked against
// it before the file is loaded — an extension beyond the documented
// format's fixed fields. Unlike an unrecognized header line, it is not
// kept on the Morphism, so RenderMorphFile does not write it back out.
var EngineVersion = semver.MustParse("1.0.0")

// ParseMorphFile reads the on-disk morphism format of §6:
//
//	name: <string>
//	category: source|transform|sink|compose
//	purity: <float in [0,1]>
//	definition:
//	  <canonical pretty-printed λ-term, one or more indented lines>
//	references:
//	  <optional citation lines>
//
// Field order is fixed up through "definition:". Recognized headers
// populate the matching Morphism field; an unrecognized header line is
// ignored for loading purposes but captured on UnknownHeaders, and the
// optional trailing "references:" section is captured on References, so
// RenderMorphFile can write both back out unchanged (§6: "Unknown fields
// are ignored by the loader but preserved by the writer"). The file's
// name on disk is expected to be its content hash (`<hash>.morph`);
// ParseMorphFile itself only parses the contents.
func ParseMorphFile(r io.Reader) (Morphism, error) {
	scanner := bufio.NewScanner(r)

	var name, category string
	var purity float64
	var engineConstraint string
	var sawDefinition bool
	var unknownHeaders []HeaderField

	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if trimmed == "definition:" {
			sawDefinition = true
			break
		}

		key, value, ok := strings.Cut(line, ":")
		if !ok {
			return Morphism{}, oops.With("line", line).Errorf("morphfile: malformed header line")
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		switch key {
		case "name":
			name = value
		case "category":
			category = value
		case "purity":
			p, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return Morphism{}, oops.With("purity", value).Wrapf(err, "morphfile: parse purity")
			}
			if p < 0 || p > 1 {
				return Morphism{}, oops.With("purity", p).Errorf("morphfile: purity must be in [0,1]")
			}
			purity = p
		case "engine-version":
			engineConstraint = value
		default:
			// Unknown fields are ignored by the loader, per §6, but
			// preserved so RenderMorphFile can write them back out.
			unknownHeaders = append(unknownHeaders, HeaderField{Key: key, Value: value})
		}
	}
	if err := scanner.Err(); err != nil {
		return Morphism{}, oops.Wrapf(err, "morphfile: read")
	}
	if !sawDefinition {
		return Morphism{}, oops.Errorf("morphfile: missing required 'definition:' section")
	}
	if name == "" {
		return Morphism{}, oops.Errorf("morphfile: missing required 'name' header")
	}
	if !term.IsRegistryIdentifier(name) {
		return Morphism{}, oops.With("name", name).Errorf("morphfile: name must be a registry identifier (leading capital letter)")
	}
	if engineConstraint != "" {
		if err := checkEngineVersion(engineConstraint); err != nil {
			return Morphism{}, err
		}
	}

	var bodyLines []string
	var referenceLines []string
	inReferences := false
	for scanner.Scan() {
		line := scanner.Text()
		if !inReferences && strings.TrimSpace(line) == "references:" {
			inReferences = true
			continue
		}
		if inReferences {
			if strings.TrimSpace(line) == "" {
				continue
			}
			referenceLines = append(referenceLines, strings.TrimSpace(line))
			continue
		}
		bodyLines = append(bodyLines, strings.TrimSpace(line))
	}

	text := strings.TrimSpace(strings.Join(bodyLines, "\n"))
	if text == "" {
		return Morphism{}, oops.With("name", name).Errorf("morphfile: empty definition body")
	}

	definition, err := term.Parse(text)
	if err != nil {
		return Morphism{}, oops.With("name", name).Wrapf(err, "morphfile: parse definition")
	}

	return Morphism{
		Name:           name,
		Definition:     definition,
		DefinitionText: text,
		Category:       category,
		Purity:         purity,
		References:     referenceLines,
		UnknownHeaders: unknownHeaders,
	}, nil
}

func checkEngineVersion(constraintText string) error {
	constraint, err := semver.NewConstraint(constraintText)
	if err != nil {
		return oops.With("constraint", constraintText).Wrapf(err, "morphfile: invalid engine-version constraint")
	}
	if !constraint.Check(EngineVersion) {
		return oops.With("constraint", constraintText, "engineVersion", EngineVersion.String()).
			Errorf("morphfile: engine-version constraint not satisfied by this engine")
	}
	return nil
}

// RenderMorphFile writes m in the on-disk format above. The caller is
// responsible for naming the destination file by m.Hash. Any
// UnknownHeaders and References captured by a prior ParseMorphFile are
// re-emitted verbatim, so a parse/render round trip loses nothing.
func RenderMorphFile(m Morphism) string {
	var b strings.Builder
	b.WriteString("name: " + m.Name + "\n")
	if m.Category != "" {
		b.WriteString("category: " + m.Category + "\n")
	}
	b.WriteString("purity: " + strconv.FormatFloat(m.Purity, 'g', -1, 64) + "\n")
	for _, h := range m.UnknownHeaders {
		b.WriteString(h.Key + ": " + h.Value + "\n")
	}
	b.WriteString("definition:\n")
	for _, line := range strings.Split(m.DefinitionText, "\n") {
		b.WriteString("  " + line + "\n")
	}
	if len(m.References) > 0 {
		b.WriteString("references:\n")
		for _, line := range m.References {
			b.WriteString("  " + line + "\n")
		}
	}
	return b.String()
}
