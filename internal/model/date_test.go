package model_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/Astemirdum/library-rental/internal/model"
	"github.com/stretchr/testify/require"
)

func mustDate(t *testing.T, s string) model.Date {
	t.Helper()
	tt, err := time.Parse(time.DateOnly, s)
	require.NoError(t, err)
	return model.NewDate(tt)
}

func TestDate_DaysUntil(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		from string
		to   string
		days int
	}{
		{"same day", "2024-03-01", "2024-03-01", 0},
		{"two days later", "2024-03-01", "2024-03-03", 2},
		{"across a month", "2024-02-28", "2024-03-02", 3},
		{"across a leap day", "2024-02-28", "2024-03-01", 2},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.days, mustDate(t, tt.from).DaysUntil(mustDate(t, tt.to)))
		})
	}
}

func TestDate_JSON(t *testing.T) {
	t.Parallel()
	d := mustDate(t, "2024-03-01")
	b, err := json.Marshal(d)
	require.NoError(t, err)
	require.Equal(t, `"2024-03-01"`, string(b))

	var back model.Date
	require.NoError(t, json.Unmarshal(b, &back))
	require.Equal(t, d, back)

	require.Error(t, json.Unmarshal([]byte(`"01.03.2024"`), &back))
}

func TestNullDate_JSON(t *testing.T) {
	t.Parallel()
	var nd model.NullDate
	b, err := json.Marshal(nd)
	require.NoError(t, err)
	require.Equal(t, `null`, string(b))

	nd = model.NullDate{Date: mustDate(t, "2024-03-03"), Valid: true}
	b, err = json.Marshal(nd)
	require.NoError(t, err)
	require.Equal(t, `"2024-03-03"`, string(b))

	var back model.NullDate
	require.NoError(t, json.Unmarshal([]byte(`null`), &back))
	require.False(t, back.Valid)
	require.NoError(t, json.Unmarshal([]byte(`"2024-03-03"`), &back))
	require.True(t, back.Valid)
}

func TestNullDate_Scan(t *testing.T) {
	t.Parallel()
	var nd model.NullDate
	require.NoError(t, nd.Scan(nil))
	require.False(t, nd.Valid)

	require.NoError(t, nd.Scan(time.Date(2024, 3, 3, 15, 4, 5, 0, time.UTC)))
	require.True(t, nd.Valid)
	require.Equal(t, mustDate(t, "2024-03-03"), nd.Date)
}
