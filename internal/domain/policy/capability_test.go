package policy_test

import (
	"testing"

	"github.com/jhoicas/repuestos-api/internal/domain/policy"
	"github.com/stretchr/testify/assert"
)

func TestCan_AdminTieneTodasLasCapacidades(t *testing.T) {
	for _, c := range policy.All() {
		assert.True(t, policy.Can(policy.RoleAdmin, nil, c), "admin debe poder %s", c)
	}
}

func TestCan_UserSoloLasOtorgadas(t *testing.T) {
	granted := []policy.Capability{policy.CapQuotes}
	assert.True(t, policy.Can(policy.RoleUser, granted, policy.CapQuotes))
	assert.False(t, policy.Can(policy.RoleUser, granted, policy.CapUsers))
}

func TestDefaultFor(t *testing.T) {
	assert.Len(t, policy.DefaultFor(policy.RoleAdmin), 7)
	assert.Equal(t, []policy.Capability{
		policy.CapInventory, policy.CapQuotes, policy.CapDeliveries, policy.CapReports,
	}, policy.DefaultFor(policy.RoleUser))
}

func TestParseList(t *testing.T) {
	caps, ok := policy.ParseList([]string{"Quotes", "quotes", " reports "})
	assert.True(t, ok)
	assert.Equal(t, []policy.Capability{policy.CapQuotes, policy.CapReports}, caps)

	_, ok = policy.ParseList([]string{"quotes", "facturas"})
	assert.False(t, ok, "una sección desconocida debe rechazarse")
}
