package pipeline

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"shopdir/internal"
	"shopdir/internal/util"
)

type CategoryRule struct {
	Category internal.Category `yaml:"category"`
	Keywords []string          `yaml:"keywords"`
}

// CategoryRules maps free text to a category. Rules are checked in order and
// the first keyword hit wins.
type CategoryRules struct {
	Default internal.Category `yaml:"default"`
	Rules   []CategoryRule    `yaml:"rules"`
}

func DefaultCategoryRules() CategoryRules {
	return CategoryRules{
		Default: internal.CategoryFashion,
		Rules: []CategoryRule{
			{Category: internal.CategoryBeans, Keywords: []string{"ပဲ", "bean"}},
			{Category: internal.CategoryFruits, Keywords: []string{"သစ်သီး", "fruit"}},
			{Category: internal.CategoryGroceries, Keywords: []string{"ကုန်စိမ်း", "vegetable"}},
			{Category: internal.CategoryRestaurant, Keywords: []string{"rest", "food"}},
			{Category: internal.CategoryMobile, Keywords: []string{"mobile", "phone"}},
			{Category: internal.CategoryElectronics, Keywords: []string{"elect"}},
			{Category: internal.CategoryCosmetics, Keywords: []string{"cosmet", "beauty"}},
			{Category: internal.CategoryBaby, Keywords: []string{"baby", "kid"}},
			{Category: internal.CategoryFurniture, Keywords: []string{"furniture"}},
			{Category: internal.CategoryFashion, Keywords: []string{"cloth", "fashion"}},
			{Category: internal.CategoryEssentials, Keywords: []string{"rice", "oil", "grocer"}},
		},
	}
}

// LoadCategoryRules reads a YAML rule file. Unknown categories are rejected so
// inference can never produce a value outside the enumeration.
func LoadCategoryRules(path string) (CategoryRules, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return CategoryRules{}, err
	}
	var rules CategoryRules
	if err := yaml.Unmarshal(blob, &rules); err != nil {
		return CategoryRules{}, fmt.Errorf("parse category rules %s: %w", path, err)
	}
	if rules.Default == "" {
		rules.Default = internal.CategoryFashion
	}
	if !rules.Default.Valid() {
		return CategoryRules{}, fmt.Errorf("unknown default category %q", rules.Default)
	}
	for i, rule := range rules.Rules {
		if !rule.Category.Valid() {
			return CategoryRules{}, fmt.Errorf("rule %d: unknown category %q", i+1, rule.Category)
		}
		for j, kw := range rule.Keywords {
			rules.Rules[i].Keywords[j] = strings.ToLower(util.StripSpaces(kw))
		}
	}
	return rules, nil
}

func (c CategoryRules) Infer(raw string) internal.Category {
	fallback := c.Default
	if !fallback.Valid() {
		fallback = internal.CategoryFashion
	}

	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return fallback
	}
	for _, member := range internal.Categories() {
		if strings.EqualFold(trimmed, string(member)) {
			return member
		}
	}

	needle := strings.ToLower(util.StripSpaces(trimmed))
	for _, rule := range c.Rules {
		for _, kw := range rule.Keywords {
			if kw != "" && strings.Contains(needle, kw) {
				return rule.Category
			}
		}
	}
	return fallback
}
