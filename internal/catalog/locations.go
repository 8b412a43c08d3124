package catalog

import (
	"sort"

	"github.com/langchou/rentgazer/internal/models"
)

// DistinctLocations 返回全部车辆的去重地点（区分大小写，字典序升序）
func DistinctLocations(vehicles []models.Vehicle) []string {
	seen := make(map[string]struct{}, len(vehicles))
	locations := make([]string, 0, len(vehicles))
	for _, v := range vehicles {
		if _, ok := seen[v.Location]; ok {
			continue
		}
		seen[v.Location] = struct{}{}
		locations = append(locations, v.Location)
	}
	sort.Strings(locations)
	return locations
}

func distinctTypes(vehicles []models.Vehicle) []string {
	seen := make(map[string]struct{})
	var types []string
	for _, v := range vehicles {
		if _, ok := seen[v.Type]; ok || v.Type == "" {
			continue
		}
		seen[v.Type] = struct{}{}
		types = append(types, v.Type)
	}
	sort.Strings(types)
	return types
}
