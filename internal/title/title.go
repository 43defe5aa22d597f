// Package title derives human-readable tab titles from navigation targets.
package title

import (
	"encoding/json"
	"net/url"
	"strings"
)

const (
	// AppName is the fallback title for routes with no better label.
	AppName = "Spacedrive"
	// ExplorerLabel is the fallback for browse routes whose path cannot be read.
	ExplorerLabel = "Explorer"
	// DeviceLabel is the title of the device-root browse view.
	DeviceLabel = "This Device"

	browseRoute = "/explorer"
	tagPrefix   = "/tag/"
	tagIDLength = 8
)

var namedRoutes = map[string]string{
	"/":           "Overview",
	"/favorites":  "Favorites",
	"/recents":    "Recents",
	"/file-kinds": "File Kinds",
	"/search":     "Search",
	"/jobs":       "Jobs",
	"/daemon":     "Daemon",
	"/settings":   "Settings",
}

// Derive maps a pathname and query string to a tab title.
func Derive(pathname, search string) string {
	if name, ok := namedRoutes[pathname]; ok {
		return name
	}
	if strings.HasPrefix(pathname, tagPrefix) {
		if tagID := strings.Trim(strings.TrimPrefix(pathname, tagPrefix), "/"); tagID != "" && !strings.Contains(tagID, "/") {
			return "Tag: " + truncate(tagID, tagIDLength) + "..."
		}
	}
	if pathname == browseRoute && strings.TrimPrefix(search, "?") != "" {
		return browseTitle(search)
	}
	return AppName
}

// FromPath derives a title from a saved path of the form route?query.
func FromPath(savedPath string) string {
	pathname, search := Split(savedPath)
	return Derive(pathname, search)
}

// Split separates a saved path into pathname and search (including "?").
func Split(savedPath string) (string, string) {
	if idx := strings.IndexByte(savedPath, '?'); idx >= 0 {
		return savedPath[:idx], savedPath[idx:]
	}
	return savedPath, ""
}

type sdPath struct {
	Physical *struct {
		Path string `json:"path"`
	} `json:"Physical"`
}

func browseTitle(search string) string {
	params := parseQuery(strings.TrimPrefix(search, "?"))
	if params.Get("view") == "device" {
		return DeviceLabel
	}
	raw := params.Get("path")
	if raw == "" {
		return ExplorerLabel
	}
	target, ok := decodePhysical(raw)
	if !ok {
		// Some callers encode the path parameter twice.
		decoded, err := url.PathUnescape(raw)
		if err != nil {
			return ExplorerLabel
		}
		if target, ok = decodePhysical(decoded); !ok {
			return ExplorerLabel
		}
	}
	if name := lastSegment(target); name != "" {
		return name
	}
	return ExplorerLabel
}

// parseQuery accepts "&" and ";" as separators and keeps the first value of
// each key. Pairs that fail to unescape are skipped.
func parseQuery(query string) url.Values {
	values := url.Values{}
	for _, pair := range strings.FieldsFunc(query, func(r rune) bool { return r == '&' || r == ';' }) {
		key, value, _ := strings.Cut(pair, "=")
		key, err := url.QueryUnescape(key)
		if err != nil {
			continue
		}
		value, err = url.QueryUnescape(value)
		if err != nil {
			continue
		}
		if _, seen := values[key]; !seen {
			values.Set(key, value)
		}
	}
	return values
}

func decodePhysical(raw string) (string, bool) {
	var target sdPath
	if err := json.Unmarshal([]byte(raw), &target); err != nil || target.Physical == nil {
		return "", false
	}
	return target.Physical.Path, true
}

func lastSegment(path string) string {
	parts := strings.FieldsFunc(path, func(r rune) bool { return r == '/' || r == '\\' })
	if len(parts) == 0 {
		return ""
	}
	return parts[len(parts)-1]
}

func truncate(value string, max int) string {
	runes := []rune(value)
	if len(runes) <= max {
		return value
	}
	return string(runes[:max])
}
