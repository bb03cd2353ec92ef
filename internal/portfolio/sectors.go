package portfolio

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v2"
)

// SectorMisc is the fallback bucket for names no rule matches.
const SectorMisc = "기타"

// SectorRule maps stock-name substrings to a sector bucket. Rules are
// evaluated in order and the first match wins, so keyword priority is the
// rule order.
type SectorRule struct {
	Sector   string   `yaml:"sector"`
	Keywords []string `yaml:"keywords"`
}

type sectorsConfig struct {
	Sectors []SectorRule `yaml:"sectors"`
}

// DefaultSectorRules returns the built-in classification rules. The buckets,
// keywords and their order are fixture contract values; tests pin them.
func DefaultSectorRules() []SectorRule {
	return []SectorRule{
		{Sector: "바이오/제약", Keywords: []string{"바이오", "약품"}},
		{Sector: "에너지", Keywords: []string{"전력", "에너지"}},
		{Sector: "자동차", Keywords: []string{"차", "모빌리티"}},
		{Sector: "해운/물류", Keywords: []string{"HMM", "해운"}},
	}
}

// LoadSectorRules reads a sector registry from a yaml file, for operators
// who want different buckets than the built-in defaults.
func LoadSectorRules(sectorsFile string) ([]SectorRule, error) {
	var sectorsPath string
	if filepath.IsAbs(sectorsFile) {
		sectorsPath = sectorsFile
	} else {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		sectorsPath = filepath.Join(wd, sectorsFile)
	}

	data, err := os.ReadFile(sectorsPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read %s: %w", sectorsFile, err)
	}

	var config sectorsConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("unable to parse %s: %w", sectorsFile, err)
	}

	for i, rule := range config.Sectors {
		if rule.Sector == "" {
			return nil, fmt.Errorf("sector rule at index %d missing sector", i)
		}
		if len(rule.Keywords) == 0 {
			return nil, fmt.Errorf("sector rule at index %d missing keywords", i)
		}
	}

	return config.Sectors, nil
}

// classifySector buckets a stock name by the first matching rule.
func classifySector(rules []SectorRule, stockName string) string {
	for _, rule := range rules {
		for _, keyword := range rule.Keywords {
			if keyword != "" && strings.Contains(stockName, keyword) {
				return rule.Sector
			}
		}
	}
	return SectorMisc
}

// sectorOrder returns the bucket declaration order, misc last. Tie-breaking
// in preferredSectors depends on this order being stable.
func sectorOrder(rules []SectorRule) []string {
	order := make([]string, 0, len(rules)+1)
	for _, rule := range rules {
		order = append(order, rule.Sector)
	}
	return append(order, SectorMisc)
}
