package pandoc

import (
	"fmt"
	"strings"
)

// DefaultPlatformLabel is the footer label used with the platform flag
// when the config does not override it.
const DefaultPlatformLabel = "Platform Services"

// BrandingFlags carries the footer branding switches.
type BrandingFlags struct {
	Org          bool
	Confidential bool
	Platform     bool
}

// FooterCenter derives the footer-center branding string. Empty unless
// the org flag is set; the confidentiality notice overrides the
// corporate notice and the platform label overrides both.
func FooterCenter(year int, orgName, platformLabel string, flags BrandingFlags) string {
	if !flags.Org {
		return ""
	}
	footer := fmt.Sprintf("%d %s", year, orgName)
	if flags.Confidential {
		footer = fmt.Sprintf("© %d %s Confidential", year, orgName)
	}
	if flags.Platform {
		if platformLabel == "" {
			platformLabel = DefaultPlatformLabel
		}
		footer = platformLabel
	}
	return strings.TrimSpace(footer)
}
