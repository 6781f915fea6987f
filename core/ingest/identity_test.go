package ingest

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveID_Idempotent(t *testing.T) {
	inputs := []string{"", "a", "b", "+15551234567", "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", "x-coredata://note/p42"}

	for _, in := range inputs {
		first := DeriveID(in)
		second := DeriveID(in)
		assert.Equal(t, first, second, "input %q", in)

		parsed, err := uuid.Parse(first)
		require.NoError(t, err)
		assert.Equal(t, uuid.Version(5), parsed.Version())
	}
}

func TestDeriveID_DistinctInputs(t *testing.T) {
	assert.NotEqual(t, DeriveID("a"), DeriveID("b"))
	assert.NotEqual(t, DeriveID("a"), DeriveID("A"))
}

func TestDeriveID_MatchesNameBasedUUID(t *testing.T) {
	want := uuid.NewSHA1(uuid.NameSpaceDNS, []byte("hello")).String()
	assert.Equal(t, want, DeriveID("hello"))
}
