package postgresql

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/srivastan1999/elfsod-2-sub000/internal/domain"
)

func TestDecodeJSONColumn_NativeStructure(t *testing.T) {
	var images []string
	decodeJSONColumn([]byte(`["a.jpg","b.jpg"]`), &images)
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, images)
}

func TestDecodeJSONColumn_DoubleEncodedString(t *testing.T) {
	// Some write paths store the JSON as an encoded string.
	var dims domain.Dimensions
	decodeJSONColumn([]byte(`"{\"width\": 12, \"height\": 4}"`), &dims)
	assert.Equal(t, 12.0, dims.Width)
	assert.Equal(t, 4.0, dims.Height)
}

func TestDecodeJSONColumn_GarbageLeavesZeroValue(t *testing.T) {
	var images []string
	decodeJSONColumn([]byte(`"not json at all`), &images)
	assert.Nil(t, images)
}

func TestDecodeJSONColumn_Empty(t *testing.T) {
	var route *domain.RouteInfo
	decodeJSONColumn(nil, &route)
	assert.Nil(t, route)
}

func TestEncodeJSONColumn(t *testing.T) {
	val, err := encodeJSONColumn([]string{"a.jpg"})
	assert.NoError(t, err)
	assert.Equal(t, []byte(`["a.jpg"]`), val)
}

func TestEncodeJSONColumn_NilPointerBecomesSQLNull(t *testing.T) {
	var route *domain.RouteInfo
	val, err := encodeJSONColumn(route)
	assert.NoError(t, err)
	assert.Nil(t, val)
}
