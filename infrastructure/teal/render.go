package teal

import (
	"embed"
	"fmt"
	"sort"
	"strings"
)

//go:embed templates/v1/*.teal
var templates embed.FS

// TemplateVersion selects a contract template generation. Versions are
// checked exhaustively, an unknown version is rejected instead of falling
// through to a best-effort render.
type TemplateVersion uint16

const TemplateVersionV1 TemplateVersion = 1

// Template names within a version.
const (
	TemplateAppApproval    = "app_approval"
	TemplateAppClear       = "app_clear"
	TemplateInvestEscrow   = "invest_escrow"
	TemplateLockingEscrow  = "locking_escrow"
	TemplateCentralEscrow  = "central_escrow"
	TemplateCustomerEscrow = "customer_escrow"
)

// Placeholder keys recognized per template, per version. The renderer
// requires bindings for exactly this set: a missing binding, an unknown
// binding, or a placeholder left in the output is an error.
var placeholdersV1 = map[string][]string{
	TemplateAppApproval: {
		"TMPL_SHARE_SUPPLY",
		"TMPL_SHARES_ASSET_ID",
		"TMPL_FUNDS_ASSET_ID",
		"TMPL_INVESTORS_PART",
		"TMPL_SHARE_PRICE",
	},
	TemplateAppClear:       {},
	TemplateInvestEscrow:   {"TMPL_CENTRAL_APP_ID", "TMPL_SHARES_ASSET_ID"},
	TemplateLockingEscrow:  {"TMPL_CENTRAL_APP_ID", "TMPL_SHARES_ASSET_ID"},
	TemplateCentralEscrow:  {"TMPL_CENTRAL_APP_ID", "TMPL_DAO_CREATOR"},
	TemplateCustomerEscrow: {"TMPL_CENTRAL_APP_ID"},
}

var (
	ErrorUnknownTemplateVersion = fmt.Errorf("unknown template version")
	ErrorUnknownTemplate        = fmt.Errorf("unknown template")
	ErrorMissingBinding         = fmt.Errorf("missing template binding")
	ErrorUnknownBinding         = fmt.Errorf("unknown template binding")
	ErrorUnrenderedPlaceholder  = fmt.Errorf("unrendered placeholder left in template")
)

// Render substitutes bindings into a versioned template and returns the
// resulting TEAL source. Pure: same inputs, same bytes.
func Render(version TemplateVersion, name string, bindings map[string]string) ([]byte, error) {
	if version != TemplateVersionV1 {
		return nil, fmt.Errorf("%w: %v", ErrorUnknownTemplateVersion, version)
	}

	placeholders, ok := placeholdersV1[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrorUnknownTemplate, name)
	}

	source, err := templates.ReadFile(fmt.Sprintf("templates/v%d/%s.teal", version, name))
	if err != nil {
		return nil, fmt.Errorf("reading template %q: %w", name, err)
	}

	recognized := make(map[string]bool, len(placeholders))
	for _, p := range placeholders {
		recognized[p] = true
	}
	for key := range bindings {
		if !recognized[key] {
			return nil, fmt.Errorf("%w: %q for template %q", ErrorUnknownBinding, key, name)
		}
	}

	rendered := string(source)

	// Longest placeholder first so a placeholder that prefixes another one
	// cannot clobber it.
	sorted := append([]string(nil), placeholders...)
	sort.Slice(sorted, func(i, j int) bool { return len(sorted[i]) > len(sorted[j]) })

	for _, key := range sorted {
		value, ok := bindings[key]
		if !ok {
			return nil, fmt.Errorf("%w: %q for template %q", ErrorMissingBinding, key, name)
		}
		rendered = strings.ReplaceAll(rendered, key, value)
	}

	if i := strings.Index(rendered, "TMPL_"); i >= 0 {
		return nil, fmt.Errorf("%w: template %q at offset %d", ErrorUnrenderedPlaceholder, name, i)
	}

	return []byte(rendered), nil
}
