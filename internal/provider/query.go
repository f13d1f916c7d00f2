package provider

import (
	"strings"

	"github.com/fleveque/company-lookup/internal/model"
)

const linkedInCompanyMarker = "linkedin.com/company/"

// ClassifyInput decides which query parameter the API expects for the input.
//
// Anything containing "linkedin.com/company/" is sent as-is (after trimming) as
// linkedin_url. Everything else is treated as a domain: a leading http:// and then
// a leading https:// are stripped, and the result is cut at the first "/".
// No www., port or hostname handling is applied.
func ClassifyInput(raw string) model.QueryParams {
	trimmed := strings.TrimSpace(raw)

	if strings.Contains(trimmed, linkedInCompanyMarker) {
		return model.QueryParams{Kind: model.ParamLinkedInURL, Value: trimmed}
	}

	domain := strings.TrimPrefix(trimmed, "http://")
	domain = strings.TrimPrefix(domain, "https://")
	if i := strings.IndexByte(domain, '/'); i >= 0 {
		domain = domain[:i]
	}

	return model.QueryParams{Kind: model.ParamDomain, Value: domain}
}
