package roles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "github.com/ustudiopd/EventLive-sub001/pkg/domain-errors"
)

func TestRank(t *testing.T) {
	t.Run("agency scope ordering", func(t *testing.T) {
		assert.Equal(t, 2, Rank(ScopeAgency, RoleOwner))
		assert.Equal(t, 1, Rank(ScopeAgency, RoleAdmin))
	})

	t.Run("client scope ordering", func(t *testing.T) {
		assert.Equal(t, 5, Rank(ScopeClient, RoleOwner))
		assert.Equal(t, 4, Rank(ScopeClient, RoleAdmin))
		assert.Equal(t, 3, Rank(ScopeClient, RoleOperator))
		assert.Equal(t, 2, Rank(ScopeClient, RoleAnalyst))
		assert.Equal(t, 1, Rank(ScopeClient, RoleViewer))
	})

	t.Run("roles outside their scope rank zero", func(t *testing.T) {
		assert.Equal(t, 0, Rank(ScopeAgency, RoleOperator))
		assert.Equal(t, 0, Rank(ScopeAgency, RoleViewer))
		assert.Equal(t, 0, Rank(ScopeClient, Role("moderator")))
	})
}

func TestValid(t *testing.T) {
	assert.True(t, Valid(ScopeAgency, RoleOwner))
	assert.True(t, Valid(ScopeClient, RoleAnalyst))
	assert.False(t, Valid(ScopeAgency, RoleAnalyst))
	assert.False(t, Valid(Scope("webinar"), RoleOwner))
}

// TestSatisfies_ExplicitSetSemantics pins down that role checks are set
// membership, including non-contiguous sets a rank threshold could not
// express.
func TestSatisfies_ExplicitSetSemantics(t *testing.T) {
	t.Run("member of allowed set", func(t *testing.T) {
		assert.True(t, Satisfies(ScopeClient, RoleOperator, []Role{RoleOwner, RoleAdmin, RoleOperator}))
	})

	t.Run("not in allowed set despite higher rank than some member", func(t *testing.T) {
		// Non-contiguous set: analyst is excluded even though operator
		// (lower precedence call sites also accept) is present.
		allowed := []Role{RoleOwner, RoleViewer}
		assert.False(t, Satisfies(ScopeClient, RoleAdmin, allowed))
		assert.False(t, Satisfies(ScopeClient, RoleAnalyst, allowed))
		assert.True(t, Satisfies(ScopeClient, RoleViewer, allowed))
	})

	t.Run("empty allowed set denies everyone", func(t *testing.T) {
		assert.False(t, Satisfies(ScopeClient, RoleOwner, nil))
	})

	t.Run("role invalid for scope is never satisfied", func(t *testing.T) {
		assert.False(t, Satisfies(ScopeAgency, RoleViewer, []Role{RoleViewer}))
	})

	t.Run("exhaustive client roles against console set", func(t *testing.T) {
		consoleRoles := []Role{RoleOwner, RoleAdmin, RoleOperator}
		expect := map[Role]bool{
			RoleOwner:    true,
			RoleAdmin:    true,
			RoleOperator: true,
			RoleAnalyst:  false,
			RoleViewer:   false,
		}
		for role, want := range expect {
			assert.Equal(t, want, Satisfies(ScopeClient, role, consoleRoles), "role %s", role)
		}
	})
}

func TestParse(t *testing.T) {
	t.Run("accepts valid role for scope", func(t *testing.T) {
		r, err := Parse(ScopeClient, "viewer")
		require.NoError(t, err)
		assert.Equal(t, RoleViewer, r)
	})

	t.Run("rejects role from the other scope", func(t *testing.T) {
		_, err := Parse(ScopeAgency, "viewer")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects empty", func(t *testing.T) {
		_, err := Parse(ScopeClient, "")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})
}
