// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package speeduc

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// RegistryEntry binds a normalized road name fragment to its legal
// speed limit (km/h). A road matches an entry if its normalized name
// contains the Name fragment.
type RegistryEntry struct {
	Name  string
	Limit int
}

// DefaultRegistry lists the well-known roads with fixed speed limits.
// Entries are tested in order and the first match wins, so the more
// specific fragments must come before their generic prefixes.
var DefaultRegistry = []RegistryEntry{
	// expressways
	{"cao toc ha noi hai phong", 120},
	{"cao toc phap van cau gie", 100},
	{"cao toc cau gie ninh binh", 120},
	{"cao toc ha noi lao cai", 100},
	{"cao toc long thanh dau giay", 120},
	{"cao toc dau giay phan thiet", 120},
	{"cao toc trung luong my thuan", 90},
	{"ct01", 120},
	{"ct.01", 120},
	{"ct05", 100},

	// Ho Chi Minh City
	{"pham van dong", 80},
	{"vo van kiet", 60},
	{"mai chi tho", 80},
	{"xa lo ha noi", 80},
	{"vo nguyen giap", 80},
	{"nguyen van linh", 80},
	{"quoc lo 1a", 60},
	{"quoc lo 13", 60},
	{"quoc lo 22", 60},
	{"nguyen huu tho", 60},
	{"huynh tan phat", 60},
	{"dien bien phu", 60},

	// Hanoi
	{"vo chi cong", 80},
	{"thang long", 90},
	{"vanh dai 3", 80},
	{"phap van", 100},
	{"pham hung", 60},
	{"khuat duy tien", 60},
	{"giai phong", 60},
}

// NormalizeName lowercases s, strips its diacritics, and trims it, so
// Vietnamese road names may be compared with the registry entries.
// The đ letter has no decomposition and is mapped to d explicitly.
func NormalizeName(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	r, _, err := transform.String(t, strings.ToLower(s))
	if err != nil {
		r = strings.ToLower(s)
	}
	r = strings.ReplaceAll(r, "đ", "d")
	return strings.TrimSpace(r)
}

// lookup returns the limit of the first registry entry which is
// contained in the normalized name.
func lookup(registry []RegistryEntry, name string) (int, bool) {
	n := NormalizeName(name)
	if n == "" {
		return 0, false
	}
	for _, e := range registry {
		if strings.Contains(n, e.Name) {
			return e.Limit, true
		}
	}
	return 0, false
}
