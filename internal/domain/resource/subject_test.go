package resource

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/manoria-go/internal/domain/shared"
)

func TestParseSubjectType(t *testing.T) {
	for _, valid := range []string{"player", "settlement", "building", "terrain"} {
		st, err := ParseSubjectType(valid)
		require.NoError(t, err)
		assert.Equal(t, valid, st.String())
	}

	_, err := ParseSubjectType("ship")
	var validation *shared.ValidationError
	assert.ErrorAs(t, err, &validation)
}

func TestNewSubject(t *testing.T) {
	s, err := NewSubject(SubjectSettlement, "4")
	require.NoError(t, err)
	assert.True(t, s.Equals(SettlementSubject(4)))
	assert.Equal(t, "settlement:4", s.String())

	_, err = NewSubject(SubjectSettlement, "")
	assert.Error(t, err)

	assert.True(t, Subject{}.IsZero())
	assert.False(t, PlayerSubject(1).Equals(SettlementSubject(1)))
}
