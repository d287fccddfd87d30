package secrets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

func TestGet_KeyringThenEnv(t *testing.T) {
	keyring.MockInit()
	s := Secret{Account: "jobinsight:test", EnvVar: "JOBINSIGHT_TEST_SECRET"}

	_, err := Get(s)
	assert.ErrorIs(t, err, ErrNotFound)

	t.Setenv("JOBINSIGHT_TEST_SECRET", "from-env")
	v, err := Get(s)
	require.NoError(t, err)
	assert.Equal(t, "from-env", v)

	require.NoError(t, Set(s, "from-keyring"))
	v, err = Get(s)
	require.NoError(t, err)
	assert.Equal(t, "from-keyring", v)

	require.NoError(t, Delete(s))
	v, _ = Get(s)
	assert.Equal(t, "from-env", v)
}

func TestSet_Validation(t *testing.T) {
	keyring.MockInit()
	assert.Error(t, Set(Secret{}, "x"))
	assert.Error(t, Set(DatasetToken, "  "))
	assert.Error(t, Delete(Secret{}))
}

func TestByName(t *testing.T) {
	s, ok := ByName("Dataset")
	assert.True(t, ok)
	assert.Equal(t, DatasetToken, s)

	s, ok = ByName("google_api_key")
	assert.True(t, ok)
	assert.Equal(t, GoogleAPIKey, s)

	_, ok = ByName("aws")
	assert.False(t, ok)
}
