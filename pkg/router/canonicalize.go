package router

import (
	"github.com/callmeskyy111/wayfind/pkg/routepath"
)

// ResolveCanonical canonicalizes raw, resolves the canonical path and
// percent-decodes the captured parameters. The routepath.Result reports
// whether the input was modified, so callers can repair the address they
// hold before presenting it.
//
// Canonicalization and decode failures are returned as errors; an
// unmatched path is still not an error.
func ResolveCanonical(root *RouteNode, raw string) (MatchResult, routepath.Result, error) {
	res, err := routepath.Canonicalize(raw)
	if err != nil {
		return MatchResult{}, routepath.Result{}, err
	}

	m := Resolve(root, res.Path)
	if !m.Matched {
		return m, res, nil
	}

	wildcardName := wildcardCapture(m.Leaf())
	for name, val := range m.Params {
		decoded, err := routepath.DecodeSegment(val, name == wildcardName)
		if err != nil {
			return MatchResult{}, res, err
		}
		m.Params[name] = decoded
	}

	if m.Rest != "" {
		decoded, err := routepath.DecodeSegment(m.Rest, true)
		if err != nil {
			return MatchResult{}, res, err
		}
		m.Rest = decoded
	}

	return m, res, nil
}

// wildcardCapture returns the wildcard capture name of the leaf's
// pattern, "" when the leaf has none.
func wildcardCapture(leaf *RouteNode) string {
	if leaf == nil {
		return ""
	}
	pat := leaf.Pattern()
	if !pat.HasWildcard() {
		return ""
	}
	return pat.Segments[len(pat.Segments)-1].Param
}
