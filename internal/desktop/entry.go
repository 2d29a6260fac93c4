// Package desktop reads freedesktop .desktop application descriptors.
//
// Only the [Desktop Entry] section is consulted, and locale-qualified keys
// are resolved against a single fallback locale. Anything the launcher does
// not need (actions, MIME bindings, categories) is ignored.
package desktop

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// FallbackLocale is the single locale used when resolving localized keys.
// Runtime locale negotiation is out of scope.
const FallbackLocale = "en"

// Entry holds the raw fields of one parsed descriptor. Values are exactly
// as written in the file; no field-code processing has happened yet.
type Entry struct {
	Name        string
	GenericName string
	Comment     string
	Icon        string
	Exec        string
	Keywords    []string
	Terminal    bool
	NoDisplay   bool
	Hidden      bool
}

const mainSection = "[Desktop Entry]"

// ParseFile reads and parses the descriptor at path.
func ParseFile(path string) (*Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open descriptor: %w", err)
	}
	defer f.Close()

	entry, err := parse(bufio.NewScanner(f))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return entry, nil
}

// Parse parses descriptor content from a string. Used by tests and by
// callers that already hold the file in memory.
func Parse(content string) (*Entry, error) {
	return parse(bufio.NewScanner(strings.NewReader(content)))
}

func parse(scanner *bufio.Scanner) (*Entry, error) {
	entry := &Entry{}
	seen := make(map[string]bool)
	inMain := false
	sawMain := false

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			inMain = line == mainSection
			if inMain {
				sawMain = true
			}
			continue
		}
		if !inMain {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		// A locale-qualified key wins over the plain key; the plain key
		// fills in only when no localized value was seen. First occurrence
		// of a given form wins, matching how desktop files are merged.
		base, locale := splitLocale(key)
		if locale != "" && locale != FallbackLocale {
			continue
		}
		localized := locale == FallbackLocale

		switch base {
		case "Name":
			setLocalized(&entry.Name, value, localized, seen, "Name")
		case "GenericName":
			setLocalized(&entry.GenericName, value, localized, seen, "GenericName")
		case "Comment":
			setLocalized(&entry.Comment, value, localized, seen, "Comment")
		case "Icon":
			if entry.Icon == "" {
				entry.Icon = value
			}
		case "Exec":
			if entry.Exec == "" {
				entry.Exec = value
			}
		case "Keywords":
			if len(entry.Keywords) == 0 || (localized && !seen["Keywords.localized"]) {
				entry.Keywords = splitList(value)
				if localized {
					seen["Keywords.localized"] = true
				}
			}
		case "Terminal":
			entry.Terminal = parseBool(value)
		case "NoDisplay":
			entry.NoDisplay = parseBool(value)
		case "Hidden":
			entry.Hidden = parseBool(value)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if !sawMain {
		return nil, fmt.Errorf("no %s section", mainSection)
	}
	return entry, nil
}

// setLocalized assigns value to dst with localized-beats-plain precedence.
func setLocalized(dst *string, value string, localized bool, seen map[string]bool, key string) {
	if localized {
		if !seen[key+".localized"] {
			*dst = value
			seen[key+".localized"] = true
		}
		return
	}
	if *dst == "" {
		*dst = value
	}
}

// splitLocale splits "Name[en]" into ("Name", "en"). Modifier and country
// suffixes ("en_US", "en@latin") are reduced to the bare language code so
// they still match the fallback locale.
func splitLocale(key string) (base, locale string) {
	open := strings.IndexByte(key, '[')
	if open < 0 || !strings.HasSuffix(key, "]") {
		return key, ""
	}
	locale = key[open+1 : len(key)-1]
	if i := strings.IndexAny(locale, "_@."); i >= 0 {
		locale = locale[:i]
	}
	return key[:open], locale
}

// splitList splits a semicolon-separated list value, ignoring the trailing
// empty element that a terminating semicolon produces.
func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ";") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}

func parseBool(value string) bool {
	return strings.EqualFold(value, "true")
}
