package keyfetcher

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromFile_FetchPublicKey(t *testing.T) {
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	pubKeyBytes, err := x509.MarshalPKIXPublicKey(&privateKey.PublicKey)
	require.NoError(t, err)

	dir := t.TempDir()
	validPath := filepath.Join(dir, "public.pem")
	require.NoError(t, os.WriteFile(validPath, pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubKeyBytes}), 0o600))

	invalidPath := filepath.Join(dir, "invalid.pem")
	require.NoError(t, os.WriteFile(invalidPath, []byte("not a key"), 0o600))

	cases := map[string]struct {
		path       string
		expectedPk *rsa.PublicKey
		expectedEr string
	}{
		"success": {
			path:       validPath,
			expectedPk: &privateKey.PublicKey,
		},
		"missing file": {
			path:       filepath.Join(dir, "missing.pem"),
			expectedEr: "failed to read key",
		},
		"not a pem": {
			path:       invalidPath,
			expectedEr: "invalid key",
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			pk, err := FromFile(tc.path).FetchPublicKey()

			if tc.expectedEr != "" {
				assert.ErrorContains(t, err, tc.expectedEr)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tc.expectedPk, pk)
		})
	}
}
