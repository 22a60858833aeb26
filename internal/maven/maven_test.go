package maven

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/avetrov/CredScout/internal/models"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestExtract_EndToEnd(t *testing.T) {
	home := t.TempDir()
	m2 := filepath.Join(home, ".m2")
	require.NoError(t, os.MkdirAll(m2, 0755))

	require.NoError(t, os.WriteFile(filepath.Join(m2, "settings-security.xml"),
		[]byte(`<settingsSecurity><master>{master=}</master></settingsSecurity>`), 0644))

	keyPath := filepath.Join(home, "ci.key")
	require.NoError(t, os.WriteFile(keyPath, []byte("-----BEGIN KEY-----\nabc\n-----END KEY-----\n"), 0600))

	require.NoError(t, os.WriteFile(filepath.Join(m2, "settings.xml"), []byte(`<settings xmlns="http://maven.apache.org/SETTINGS/1.0.0">
  <servers>
    <server><id>plain</id><username>u1</username><password>pw</password></server>
    <server><id>enc</id><username>u2</username><password>{cipher=}</password></server>
    <server><id>key</id><username>u3</username><privateKey>${user.home}/ci.key</privateKey><passphrase>pp</passphrase></server>
    <server><id>broken</id><privateKey>/does/not/exist</privateKey></server>
  </servers>
</settings>`), 0644))

	ext := New(home, zap.NewNop())
	require.Equal(t, "maven", ext.Name())

	res, err := ext.Extract(context.Background())
	require.NoError(t, err)

	require.Len(t, res.Credentials, 3)
	require.Len(t, res.Skipped, 1)

	require.Equal(t, models.Credential{
		ID: "plain", Username: "u1", Shape: models.ShapePassword,
		Password: "pw", Source: "maven",
	}, res.Credentials[0])

	require.Equal(t, models.Credential{
		ID: "enc", Username: "u2", Shape: models.ShapeEncrypted,
		PasswordEncrypted: "{cipher=}", SymmetricEncryptionKey: "{master=}",
		Source: "maven",
	}, res.Credentials[1])

	require.Equal(t, models.Credential{
		ID: "key", Username: "u3", Shape: models.ShapePrivateKey,
		PrivateKey: "-----BEGIN KEY-----abc-----END KEY-----", Passphrase: "pp",
		Source: "maven",
	}, res.Credentials[2])

	require.Equal(t, "broken", res.Skipped[0].ID)
	require.ErrorIs(t, res.Skipped[0].Err, ErrMissingUsername)
}

func TestExtract_EmptyHome(t *testing.T) {
	res, err := New(t.TempDir(), zap.NewNop()).Extract(context.Background())
	require.NoError(t, err)
	require.Empty(t, res.Credentials)
	require.Empty(t, res.Skipped)
}

func TestExtract_CancelledContext(t *testing.T) {
	home := writeSettings(t, settingsHeader+`
  <servers>
    <server><id>r</id><username>u</username><password>p</password></server>
  </servers>
</settings>`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(home, zap.NewNop()).Extract(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
