package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/langchou/rentgazer/internal/models"
)

func sampleVehicles() []models.Vehicle {
	return []models.Vehicle{
		{ID: "1", Type: "car", Location: "Pune", PricePerKm: 8, Rating: 4.2},
		{ID: "2", Type: "bike", Location: "Delhi", PricePerKm: 3, Rating: 3.9},
	}
}

func ids(vehicles []models.Vehicle) []string {
	out := make([]string, 0, len(vehicles))
	for _, v := range vehicles {
		out = append(out, v.ID)
	}
	return out
}

func TestComputeVisible_CarScenario(t *testing.T) {
	f := FilterState{Type: "car", Location: "", PriceRange: "5-10", Rating: "4"}

	visible := ComputeVisible(sampleVehicles(), f)

	assert.Equal(t, []string{"1"}, ids(visible))
}

func TestComputeVisible_LocationIsCaseInsensitiveSubstring(t *testing.T) {
	f := FilterState{Type: TypeAll, Location: "del"}

	visible := ComputeVisible(sampleVehicles(), f)

	assert.Equal(t, []string{"2"}, ids(visible))

	f.Location = "UN"
	assert.Equal(t, []string{"1"}, ids(ComputeVisible(sampleVehicles(), f)))
}

func TestComputeVisible_DefaultsReturnEverything(t *testing.T) {
	vehicles := sampleVehicles()

	visible := ComputeVisible(vehicles, DefaultFilterState())

	assert.Equal(t, vehicles, visible)
}

func TestComputeVisible_EmptyInput(t *testing.T) {
	visible := ComputeVisible(nil, FilterState{Type: "car"})

	require.NotNil(t, visible)
	assert.Empty(t, visible)
}

func TestComputeVisible_DoesNotMutateOrAlias(t *testing.T) {
	vehicles := sampleVehicles()
	before := sampleVehicles()

	first := ComputeVisible(vehicles, DefaultFilterState())
	second := ComputeVisible(vehicles, DefaultFilterState())

	assert.Equal(t, first, second)
	assert.Equal(t, before, vehicles)

	first[0].Location = "changed"
	assert.Equal(t, "Pune", vehicles[0].Location)
}

func TestComputeVisible_PreservesOrder(t *testing.T) {
	vehicles := []models.Vehicle{
		{ID: "a", Type: "car", PricePerKm: 12},
		{ID: "b", Type: "bike", PricePerKm: 2},
		{ID: "c", Type: "car", PricePerKm: 15},
		{ID: "d", Type: "suv", PricePerKm: 25},
		{ID: "e", Type: "car", PricePerKm: 11},
	}

	visible := ComputeVisible(vehicles, FilterState{Type: "car", PriceRange: "10-20"})

	assert.Equal(t, []string{"a", "c", "e"}, ids(visible))
}

func TestComputeVisible_TypeIsCaseSensitive(t *testing.T) {
	visible := ComputeVisible(sampleVehicles(), FilterState{Type: "Car"})

	assert.Empty(t, visible)
}

func TestMatches_SingleVehicleAgreesWithComputeVisible(t *testing.T) {
	v := models.Vehicle{ID: "x", Type: "suv", Location: "Mumbai", PricePerKm: 10, Rating: 4.5}
	filters := []FilterState{
		DefaultFilterState(),
		{Type: "suv"},
		{Type: "car"},
		{Type: TypeAll, Location: "mum"},
		{Type: TypeAll, Location: "pune"},
		{Type: TypeAll, PriceRange: "5-10"},
		{Type: TypeAll, PriceRange: "10-20"},
		{Type: TypeAll, PriceRange: "0-5"},
		{Type: TypeAll, Rating: "4.5"},
		{Type: TypeAll, Rating: "4.6"},
	}

	for _, f := range filters {
		visible := ComputeVisible([]models.Vehicle{v}, f)
		if Matches(v, f) {
			assert.Equal(t, []models.Vehicle{v}, visible, "filters %+v", f)
		} else {
			assert.Empty(t, visible, "filters %+v", f)
		}
	}
}

func TestPriceBucket_BoundariesBelongToBothSides(t *testing.T) {
	tests := []struct {
		price float64
		want  map[PriceBucket]bool
	}{
		{0, map[PriceBucket]bool{PriceBucket0To5: true, PriceBucket5To10: false, PriceBucket10To20: false, PriceBucket20Plus: false}},
		{5, map[PriceBucket]bool{PriceBucket0To5: true, PriceBucket5To10: true, PriceBucket10To20: false, PriceBucket20Plus: false}},
		{7.5, map[PriceBucket]bool{PriceBucket0To5: false, PriceBucket5To10: true, PriceBucket10To20: false, PriceBucket20Plus: false}},
		{10, map[PriceBucket]bool{PriceBucket0To5: false, PriceBucket5To10: true, PriceBucket10To20: true, PriceBucket20Plus: false}},
		{20, map[PriceBucket]bool{PriceBucket0To5: false, PriceBucket5To10: false, PriceBucket10To20: true, PriceBucket20Plus: true}},
		{250, map[PriceBucket]bool{PriceBucket0To5: false, PriceBucket5To10: false, PriceBucket10To20: false, PriceBucket20Plus: true}},
	}

	for _, tt := range tests {
		for bucket, want := range tt.want {
			v := models.Vehicle{ID: "v", Type: "car", PricePerKm: tt.price}
			got := len(ComputeVisible([]models.Vehicle{v}, FilterState{Type: TypeAll, PriceRange: string(bucket)})) == 1
			assert.Equal(t, want, got, "price %v bucket %s", tt.price, bucket)
		}
	}
}

func TestPriceBucket_UnknownLabelIsUnconstrained(t *testing.T) {
	_, ok := ParsePriceBucket("30-40")
	assert.False(t, ok)

	visible := ComputeVisible(sampleVehicles(), FilterState{Type: TypeAll, PriceRange: "30-40"})
	assert.Len(t, visible, 2)
}

func TestParseRating(t *testing.T) {
	tests := []struct {
		in    string
		want  float64
		valid bool
	}{
		{"", 0, false},
		{"4", 4, true},
		{"3.5", 3.5, true},
		{" 4 ", 4, true},
		{"four", 0, false},
		{"4stars", 0, false},
		{"NaN", 0, false},
		{"+Inf", 0, false},
	}

	for _, tt := range tests {
		got, ok := ParseRating(tt.in)
		assert.Equal(t, tt.valid, ok, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}

func TestComputeVisible_InvalidRatingIsUnconstrained(t *testing.T) {
	visible := ComputeVisible(sampleVehicles(), FilterState{Type: TypeAll, Rating: "excellent"})

	assert.Equal(t, []string{"1", "2"}, ids(visible))
}

func TestComputeVisible_RatingThresholdIsInclusive(t *testing.T) {
	visible := ComputeVisible(sampleVehicles(), FilterState{Type: TypeAll, Rating: "3.9"})

	assert.Equal(t, []string{"1", "2"}, ids(visible))
}
