package qrpayload_test

import (
	"strings"
	"testing"

	"github.com/Asjdnnc/hackzilla/pkg/qrpayload"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	p := qrpayload.Payload{
		TeamID:   "2501",
		TeamName: "null pointers",
		Leader:   "asha",
		Members: []qrpayload.Member{
			{Name: "asha", CollegeName: "IIIT Sri City", IsFromIIITS: true},
			{Name: "ravi", CollegeName: "SRM"},
		},
		Status:     "invalid",
		FoodStatus: qrpayload.FoodStatus{Lunch: "invalid", Dinner: "invalid", Snacks: "invalid"},
		Allotment:  "invalid",
		CreatedAt:  "2025-01-04T09:30:00Z",
	}

	raw, err := qrpayload.Encode(p)
	require.NoError(t, err)

	got, err := qrpayload.Decode(raw)
	require.NoError(t, err)
	require.Equal(t, &p, got)
}

func TestDecode_Invalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "garbage", raw: "not-json"},
		{name: "empty", raw: ""},
		{name: "wrong shape", raw: `[1,2,3]`},
		{name: "missing teamId", raw: `{"teamName":"null pointers"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := qrpayload.Decode(tt.raw)
			require.ErrorIs(t, err, qrpayload.ErrInvalidPayload)
		})
	}
}

func TestImageDataURL(t *testing.T) {
	url, err := qrpayload.ImageDataURL(`{"teamId":"2501"}`)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(url, "data:image/png;base64,"))
	require.Greater(t, len(url), len("data:image/png;base64,"))
}
