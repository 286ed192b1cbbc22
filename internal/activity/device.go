package activity

import (
	"strings"

	"github.com/mssola/useragent"
)

// DeviceLabel extracts a human-readable device name from a User-Agent string,
// in the form "Browser on OS" (e.g. "Chrome on Linux"). Unknown or empty
// agents yield "Unknown Device".
func DeviceLabel(userAgentString string) string {
	if userAgentString == "" {
		return "Unknown Device"
	}

	ua := useragent.New(userAgentString)
	browser, _ := ua.Browser()
	browser = strings.TrimSpace(browser)
	os := strings.TrimSpace(ua.OSInfo().Name)

	switch {
	case browser == "" && os == "":
		return "Unknown Device"
	case browser == "":
		return os
	case os == "":
		return browser
	default:
		return browser + " on " + os
	}
}
