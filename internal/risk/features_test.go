package risk

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/disease-risk-backend-go/internal/models"
)

func TestBuildFeaturesColumns(t *testing.T) {
	records := []models.OccurrenceRecord{
		record("malaria", 42, 12.0, 77.0, date(2024, time.March, 1)),
		record("dengue", 7, 12.2, 77.2, date(2023, time.December, 31)),
		record("malaria", 65, 12.1, 77.1, date(2024, time.February, 29)),
	}

	idx := &CategoryIndex{}
	rows, err := BuildFeatures(records, idx)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"malaria", "dengue"}, idx.Names)

	for _, row := range rows {
		assert.Len(t, row, NumFeatures)
	}

	assert.Equal(t, 12.0, rows[0][0])
	assert.Equal(t, 77.0, rows[0][1])
	assert.Equal(t, 42.0, rows[0][2])
	assert.Equal(t, 0.0, rows[0][3])
	assert.Equal(t, 3.0, rows[0][4])
	assert.Equal(t, 61.0, rows[0][5]) // 2024 is a leap year

	assert.Equal(t, 1.0, rows[1][3])
	assert.Equal(t, 12.0, rows[1][4])
	assert.Equal(t, 365.0, rows[1][5])

	assert.Equal(t, 0.0, rows[2][3])
	assert.Equal(t, 60.0, rows[2][5])

	// the middle record sits on the centroid
	assert.InDelta(t, 1.0, rows[2][6], 1e-3)
	assert.Less(t, rows[0][6], rows[2][6])
	assert.InDelta(t, rows[0][6], rows[1][6], 1e-3)
}

func TestBuildFeaturesSingleRecordProxyIsOne(t *testing.T) {
	idx := &CategoryIndex{Names: []string{"dengue"}}
	rows, err := BuildFeatures([]models.OccurrenceRecord{
		record("dengue", 35, 48.85, 2.35, date(2024, time.July, 14)),
	}, idx)
	require.NoError(t, err)
	assert.Equal(t, 1.0, rows[0][6])
}

func TestBuildFeaturesUnknownCategory(t *testing.T) {
	idx := NewCategoryIndex([]models.OccurrenceRecord{record("dengue", 35, 0, 0, date(2024, time.July, 14))})

	_, err := BuildFeatures([]models.OccurrenceRecord{
		record("typhoid", 35, 0, 0, date(2024, time.July, 14)),
	}, idx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownCategory))

	// a fitted index does not grow
	assert.Equal(t, []string{"dengue"}, idx.Names)
}

func TestBuildFeaturesEmpty(t *testing.T) {
	_, err := BuildFeatures(nil, &CategoryIndex{})
	assert.ErrorIs(t, err, ErrNoRecords)
}

func TestCategoryIndexEncodeAfterDecode(t *testing.T) {
	idx := CategoryIndex{Names: []string{"covid19", "dengue"}}

	code, err := idx.Encode("dengue")
	require.NoError(t, err)
	assert.Equal(t, 1, code)

	_, err = idx.Encode("malaria")
	assert.ErrorIs(t, err, ErrUnknownCategory)
}
