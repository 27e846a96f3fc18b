package state

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

const lastDrinkLayout = time.RFC3339

// DefaultMeta is the metadata for a profile that has never been saved.
func DefaultMeta() ProfileMeta {
	return ProfileMeta{
		XP:        0,
		Level:     1,
		Cosmetics: map[string]bool{},
		QuickAdds: [3]int{100, 250, 500},
	}
}

// encodeMeta flattens profile metadata to key=value pairs. Cosmetic ownership
// is stored one `has_<id>` key per cosmetic so both backends and the on-disk
// profile file share a single field layout.
func encodeMeta(meta ProfileMeta) map[string]string {
	out := map[string]string{
		"xp":     strconv.Itoa(meta.XP),
		"level":  strconv.Itoa(meta.Level),
		"quick1": strconv.Itoa(meta.QuickAdds[0]),
		"quick2": strconv.Itoa(meta.QuickAdds[1]),
		"quick3": strconv.Itoa(meta.QuickAdds[2]),
	}
	for id, owned := range meta.Cosmetics {
		out["has_"+id] = encodeBool(owned)
	}
	last := ""
	if !meta.LastDrink.IsZero() {
		last = meta.LastDrink.Format(lastDrinkLayout)
	}
	out["last_drink_iso"] = last
	out["dark_mode"] = encodeBool(meta.DarkMode)
	return out
}

// decodeMeta is lenient: unknown keys are ignored and unparseable values keep
// the default for that field, so a partially corrupted profile file still
// loads.
func decodeMeta(values map[string]string) ProfileMeta {
	meta := DefaultMeta()
	for key, value := range values {
		value = strings.TrimSpace(value)
		switch key {
		case "xp":
			if v, err := strconv.Atoi(value); err == nil && v >= 0 {
				meta.XP = v
			}
		case "level":
			if v, err := strconv.Atoi(value); err == nil && v >= 1 {
				meta.Level = v
			}
		case "quick1", "quick2", "quick3":
			idx := int(key[len(key)-1] - '1')
			if v, err := strconv.Atoi(value); err == nil && v > 0 {
				meta.QuickAdds[idx] = v
			}
		case "last_drink_iso":
			if value == "" {
				continue
			}
			if t, err := time.Parse(lastDrinkLayout, value); err == nil {
				meta.LastDrink = t
			}
		case "dark_mode":
			meta.DarkMode = decodeBool(value)
		default:
			if id, ok := strings.CutPrefix(key, "has_"); ok && id != "" {
				meta.Cosmetics[id] = decodeBool(value)
			}
		}
	}
	return meta
}

// metaKeys returns the encoded keys in stable write order: scalar fields
// first, then cosmetics sorted by id.
func metaKeys(values map[string]string) []string {
	fixed := []string{"xp", "level", "last_drink_iso", "quick1", "quick2", "quick3", "dark_mode"}
	cosmetics := make([]string, 0, len(values))
	for key := range values {
		if strings.HasPrefix(key, "has_") {
			cosmetics = append(cosmetics, key)
		}
	}
	sort.Strings(cosmetics)
	return append(fixed, cosmetics...)
}

func encodeBool(v bool) string {
	if v {
		return "True"
	}
	return "False"
}

func decodeBool(v string) bool {
	return strings.EqualFold(v, "true") || v == "1"
}

func formatMetaLine(key, value string) string {
	return fmt.Sprintf("%s=%s\n", key, value)
}
