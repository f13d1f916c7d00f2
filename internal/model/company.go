// Package model defines the core data types for the company lookup.
// The remote API returns a loosely shaped JSON object, so the record is kept as a
// map and only a handful of fields get typed accessors.
package model

import (
	"fmt"
	"strconv"
)

// ParamKind names the query parameter the Amplemarket API expects.
// The value is the literal wire name, so it can be passed straight to url.Values.
type ParamKind string

const (
	ParamDomain      ParamKind = "domain"
	ParamLinkedInURL ParamKind = "linkedin_url"
)

// QueryParams is the single query parameter derived from the user's input.
// Exactly one of domain or linkedin_url is ever sent.
type QueryParams struct {
	Kind  ParamKind
	Value string
}

// CompanyRecord is the JSON object returned by the API.
// Only name, website and technologies are inspected; everything else passes through untouched.
type CompanyRecord map[string]any

// Name returns the company name, if present and non-null.
func (r CompanyRecord) Name() (string, bool) {
	return r.stringField("name")
}

// Website returns the company website, if present and non-null.
func (r CompanyRecord) Website() (string, bool) {
	return r.stringField("website")
}

// Technologies returns the technologies list in API order.
// A missing, null or non-list value yields nil. Null entries inside the list
// are skipped rather than printed.
func (r CompanyRecord) Technologies() []string {
	raw, ok := r["technologies"].([]any)
	if !ok {
		return nil
	}

	techs := make([]string, 0, len(raw))
	for _, t := range raw {
		if t == nil {
			continue
		}
		techs = append(techs, scalarString(t))
	}
	return techs
}

// Empty reports whether the API returned an object with no fields at all.
func (r CompanyRecord) Empty() bool {
	return len(r) == 0
}

func (r CompanyRecord) stringField(key string) (string, bool) {
	v, ok := r[key]
	if !ok || v == nil {
		return "", false
	}
	return scalarString(v), true
}

// scalarString renders a decoded JSON value for display.
// Numbers decode as float64; 'f' with -1 precision prints 42 rather than 4.2e+01.
func scalarString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprint(val)
	}
}
