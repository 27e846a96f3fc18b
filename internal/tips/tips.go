// Package tips serves the hydration tip shown on demand. Tips ship embedded
// and can be replaced by a user-supplied YAML pack.
package tips

import (
	_ "embed"
	"errors"
	"math/rand"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed tips.yaml
var defaultPack []byte

var errEmptyPack = errors.New("tip pack has no tips")

type Pack struct {
	Tips []string `yaml:"tips"`
}

// Default returns the embedded tip pack.
func Default() *Pack {
	pack, err := parse(defaultPack)
	if err != nil {
		// The embedded pack is validated by tests; an empty fallback keeps
		// Random total.
		return &Pack{}
	}
	return pack
}

// Load reads a YAML tip pack from disk. A missing path falls back to the
// embedded pack.
func Load(path string) (*Pack, error) {
	if path == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}
	return parse(b)
}

func parse(b []byte) (*Pack, error) {
	var pack Pack
	if err := yaml.Unmarshal(b, &pack); err != nil {
		return nil, err
	}
	tips := make([]string, 0, len(pack.Tips))
	for _, tip := range pack.Tips {
		if t := strings.TrimSpace(tip); t != "" {
			tips = append(tips, t)
		}
	}
	if len(tips) == 0 {
		return nil, errEmptyPack
	}
	return &Pack{Tips: tips}, nil
}

// Random picks one tip. A nil rng falls back to the package-level source.
func (p *Pack) Random(rng *rand.Rand) string {
	if p == nil || len(p.Tips) == 0 {
		return ""
	}
	if rng == nil {
		return p.Tips[rand.Intn(len(p.Tips))]
	}
	return p.Tips[rng.Intn(len(p.Tips))]
}
