package usernotes

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackUnpackRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		users map[string]*userJSON
	}{
		{
			name:  "empty map",
			users: map[string]*userJSON{},
		},
		{
			name: "single user single note",
			users: map[string]*userJSON{
				"someone": {Notes: []noteJSON{
					{Note: "spammer", Time: 1466108316, Moderator: 0, Link: "l,92dd8", Warning: 1},
				}},
			},
		},
		{
			name: "multiple users multiple notes",
			users: map[string]*userJSON{
				"someone": {Notes: []noteJSON{
					{Note: "second", Time: 1466108400, Moderator: 1, Link: "", Warning: 0},
					{Note: "first", Time: 1466108316, Moderator: 0, Link: "m,000fff", Warning: 4},
				}},
				"other": {Notes: []noteJSON{
					{Note: "helpful", Time: 1466108500, Moderator: 0, Link: "l,92dd8,c0b6xx0", Warning: 7},
				}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blob, err := pack(tt.users)
			require.NoError(t, err)
			assert.NotEmpty(t, blob)

			got, err := unpack(blob)
			require.NoError(t, err)
			assert.Equal(t, tt.users, got)
		})
	}
}

func TestPackNilMap(t *testing.T) {
	blob, err := pack(nil)
	require.NoError(t, err)

	got, err := unpack(blob)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestUnpackInvalidBase64(t *testing.T) {
	_, err := unpack("not base64!!!")
	assert.Error(t, err)
}

func TestUnpackNotZlib(t *testing.T) {
	blob := base64.StdEncoding.EncodeToString([]byte("plain text, not a zlib stream"))
	_, err := unpack(blob)
	assert.Error(t, err)
}
