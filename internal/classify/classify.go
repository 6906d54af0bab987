package classify

import (
	"strings"

	"netradar/internal/model"
)

// ouiPrefixes maps vendor prefixes of the MAC address (hex digits, no
// separators) to an OS class. Not exhaustive; unrecognized vendors fall
// through to the hostname heuristics.
var ouiPrefixes = []struct {
	prefix string
	guess  model.OSGuess
}{
	// Apple
	{"5C1F", model.OSApple},
	{"F01898", model.OSApple},
	{"A483E7", model.OSApple},
	{"ACBC32", model.OSApple},
	{"28CFE9", model.OSApple},
	{"F0D1A9", model.OSApple},
	// Microsoft (including Hyper-V and Surface)
	{"FCFB", model.OSWindows},
	{"00155D", model.OSWindows},
	{"0050F2", model.OSWindows},
	{"281878", model.OSWindows},
	{"985FD3", model.OSWindows},
	// Common Android handset vendors
	{"A1B2", model.OSAndroid},
	{"8CF5A3", model.OSAndroid},
	{"3C5AB4", model.OSAndroid},
	{"64B473", model.OSAndroid},
	{"F8A9D0", model.OSAndroid},
}

// hostnameHints maps lowercase hostname substrings to an OS class,
// checked in order after the vendor table misses.
var hostnameHints = []struct {
	substr string
	guess  model.OSGuess
}{
	{"iphone", model.OSApple},
	{"ipad", model.OSApple},
	{"macbook", model.OSApple},
	{"imac", model.OSApple},
	{"apple", model.OSApple},
	{"android", model.OSAndroid},
	{"galaxy", model.OSAndroid},
	{"pixel", model.OSAndroid},
	{"oneplus", model.OSAndroid},
	{"redmi", model.OSAndroid},
	{"windows", model.OSWindows},
	{"desktop-", model.OSWindows},
	{"laptop-", model.OSWindows},
	{"surface", model.OSWindows},
}

// Classify guesses the OS class of a device from its MAC vendor prefix,
// falling back to hostname substrings. Pure and deterministic; returns
// OSUnknown rather than failing. The result is a display hint only.
func Classify(mac, hostname string) model.OSGuess {
	vendor := vendorPrefix(mac)
	for _, entry := range ouiPrefixes {
		if strings.HasPrefix(vendor, entry.prefix) {
			return entry.guess
		}
	}

	host := strings.ToLower(hostname)
	if host != "" {
		for _, hint := range hostnameHints {
			if strings.Contains(host, hint.substr) {
				return hint.guess
			}
		}
	}

	return model.OSUnknown
}

// vendorPrefix reduces a MAC address to its leading six hex digits, the
// organizationally unique identifier.
func vendorPrefix(mac string) string {
	cleaned := strings.ToUpper(mac)
	for _, sep := range []string{":", "-", "."} {
		cleaned = strings.ReplaceAll(cleaned, sep, "")
	}
	if len(cleaned) > 6 {
		cleaned = cleaned[:6]
	}
	return cleaned
}
