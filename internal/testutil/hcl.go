package testutil

import (
	"testing"

	"github.com/specialistvlad/propgraph/internal/nodeid"
	"github.com/specialistvlad/propgraph/internal/registry"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

// RunHCLTest loads a single main.hcl and fails the test on any error
// diagnostic.
func RunHCLTest(t *testing.T, src string, modules ...registry.Module) *HarnessResult {
	t.Helper()
	res := RunDocumentTest(t, map[string]string{"main.hcl": src}, modules...)
	require.False(t, res.Diags.HasErrors(), res.Diags.Error())
	require.NotNil(t, res.Engine)
	return res
}

// Value reads the prop at address, e.g. "greeting.value" or "#3".
func (r *HarnessResult) Value(t *testing.T, address string) cty.Value {
	t.Helper()
	addr, err := nodeid.Parse(address)
	require.NoError(t, err)
	p, err := r.Engine.PropByAddress(addr)
	require.NoError(t, err)
	v, err := r.Engine.Value(r.Ctx, p)
	require.NoError(t, err)
	return v
}

// Set requests value for the public prop at address and fails the test if any
// branch of the update was dropped.
func (r *HarnessResult) Set(t *testing.T, address string, value cty.Value) {
	t.Helper()
	addr, err := nodeid.Parse(address)
	require.NoError(t, err)
	p, err := r.Engine.PropByAddress(addr)
	require.NoError(t, err)
	report, err := r.Engine.RequestUpdate(r.Ctx, p, value)
	require.NoError(t, err)
	require.Empty(t, report.Dropped, "update of %s was dropped", address)
}
