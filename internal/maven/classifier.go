package maven

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/avetrov/CredScout/internal/models"
)

// Per-record classification failures. One malformed server entry never
// aborts the batch; callers decide whether to skip or stop.
var (
	// ErrMissingID marks a server entry without an id field.
	ErrMissingID = errors.New("server entry has no id")
	// ErrMissingUsername marks a server entry without a username field.
	ErrMissingUsername = errors.New("server entry has no username")
	// ErrMissingPassword marks a non-key entry without a password field.
	ErrMissingPassword = errors.New("server entry has no password")
)

// userHomePlaceholder is the literal Maven substitutes with the home
// directory inside privateKey paths.
const userHomePlaceholder = "${user.home}"

// newlineStripper removes newline characters from private key contents.
var newlineStripper = strings.NewReplacer("\r", "", "\n", "")

// Classify turns one raw server entry into a normalized credential.
//
// An entry uses key authentication when its privateKey path (after
// ${user.home} substitution against homeDir) names an existing regular
// file; the check probes existence only and never validates key contents.
// Otherwise the entry must carry a password: values wrapped in a single
// pair of braces are treated as ciphertext and packaged together with the
// master password for external decryption, anything else is plain text.
// master may be empty when no master password is configured.
func Classify(raw RawCredential, master, homeDir string) (models.Credential, error) {
	if !raw.ID.OK {
		return models.Credential{}, ErrMissingID
	}
	if !raw.Username.OK {
		return models.Credential{}, ErrMissingUsername
	}
	cred := models.Credential{
		ID:       raw.ID.Value,
		Username: raw.Username.Value,
		Source:   Name,
	}

	if path, ok := keyAuthPath(raw, homeDir); ok {
		data, err := os.ReadFile(path)
		if err != nil {
			// Existence probe passed but the read failed; a hard
			// failure for this record only.
			return models.Credential{}, fmt.Errorf("read private key %s: %w", path, err)
		}
		cred.Shape = models.ShapePrivateKey
		cred.PrivateKey = strings.TrimSpace(newlineStripper.Replace(string(data)))
		if raw.Passphrase.OK {
			cred.Passphrase = raw.Passphrase.Value
		}
		return cred, nil
	}

	if !raw.Password.OK {
		return models.Credential{}, ErrMissingPassword
	}
	pwd := strings.TrimSpace(raw.Password.Value)
	if strings.HasPrefix(pwd, "{") && strings.HasSuffix(pwd, "}") {
		cred.Shape = models.ShapeEncrypted
		cred.PasswordEncrypted = pwd
		cred.SymmetricEncryptionKey = master
		return cred, nil
	}
	cred.Shape = models.ShapePassword
	cred.Password = pwd
	return cred, nil
}

// keyAuthPath resolves the privateKey path and reports whether the entry
// qualifies for key authentication.
func keyAuthPath(raw RawCredential, homeDir string) (string, bool) {
	if !raw.PrivateKey.OK {
		return "", false
	}
	path := strings.ReplaceAll(raw.PrivateKey.Value, userHomePlaceholder, homeDir)
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return "", false
	}
	return path, true
}
