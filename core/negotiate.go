// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

// DiagnosticsExtension is the instance extension that carries debug callbacks.
const DiagnosticsExtension = "VK_EXT_debug_report"

// RequiredExtensions returns the instance extensions to request. The
// windowing extensions are kept in order and, with diagnostics enabled,
// DiagnosticsExtension is appended once. The input slice is never modified.
func RequiredExtensions(windowExtensions []string, diagnostics bool) []string {
	extensions := make([]string, len(windowExtensions), len(windowExtensions)+1)
	copy(extensions, windowExtensions)
	if diagnostics && !contains(extensions, DiagnosticsExtension) {
		extensions = append(extensions, DiagnosticsExtension)
	}
	return extensions
}

// LayerSupportCheck reports whether every requested layer is available.
func LayerSupportCheck(requested, available []string) bool {
	return len(missing(requested, available)) == 0
}

// ExtensionSupportCheck returns the requested extensions that are not available.
func ExtensionSupportCheck(requested, available []string) []string {
	return missing(requested, available)
}

func missing(requested, available []string) []string {
	set := make(map[string]struct{}, len(available))
	for _, a := range available {
		set[a] = struct{}{}
	}
	var out []string
	for _, r := range requested {
		if _, ok := set[r]; !ok {
			out = append(out, r)
		}
	}
	return out
}

func contains(list []string, s string) bool {
	for _, l := range list {
		if l == s {
			return true
		}
	}
	return false
}
