package nodeid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name         string
		rawID        string
		expectErr    bool
		expectedAddr *Address
	}{
		{name: "component", rawID: "greeting", expectedAddr: Named("greeting", "")},
		{name: "component and prop", rawID: "greeting.value", expectedAddr: Named("greeting", "value")},
		{name: "index", rawID: "#3", expectedAddr: Indexed(3, "")},
		{name: "index and prop", rawID: "#0.hidden", expectedAddr: Indexed(0, "hidden")},
		{name: "error - empty string", rawID: "", expectErr: true},
		{name: "error - empty prop", rawID: "a.", expectErr: true},
		{name: "error - nested prop", rawID: "a.b.c", expectErr: true},
		{name: "error - leading digit", rawID: "1abc", expectErr: true},
		{name: "error - bad index", rawID: "#x", expectErr: true},
		{name: "error - just hyphen", rawID: "-", expectErr: true},
		{name: "error - just dot", rawID: ".", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			addr, err := Parse(tc.rawID)

			if tc.expectErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, addr)
			assert.True(t, tc.expectedAddr.Equal(addr), "Parsed address does not match expected address")
		})
	}
}

func TestValidName(t *testing.T) {
	assert.True(t, ValidName("greeting"))
	assert.True(t, ValidName("_private-1"))
	assert.False(t, ValidName(""))
	assert.False(t, ValidName("9lives"))
	assert.False(t, ValidName("a.b"))
}
