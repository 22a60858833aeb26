// Package models defines the core data structures for extracted credentials,
// redacted findings, and audit reports.
package models

import "time"

// AuthShape identifies which authentication payload a credential carries.
type AuthShape string

const (
	// ShapePassword represents a plain-text repository password.
	ShapePassword AuthShape = "password"
	// ShapeEncrypted represents a password encrypted with the local master password.
	ShapeEncrypted AuthShape = "encrypted_password"
	// ShapePrivateKey represents private-key-file authentication.
	ShapePrivateKey AuthShape = "private_key"
)

// Credential is one normalized repository credential extracted from a local
// build-tool configuration. Exactly one authentication payload is populated,
// according to Shape.
type Credential struct {
	// ID is the repository identifier the credential belongs to.
	ID string `json:"id"`
	// Username is the login name configured for the repository.
	Username string `json:"username"`
	// Shape tells which of the payload fields below is populated.
	Shape AuthShape `json:"shape"`
	// Password is the plain-text password (ShapePassword only).
	Password string `json:"password,omitempty"`
	// PasswordEncrypted is the full delimited ciphertext string,
	// unmodified (ShapeEncrypted only).
	PasswordEncrypted string `json:"password_encrypted,omitempty"`
	// SymmetricEncryptionKey is the master password needed to decrypt
	// PasswordEncrypted. Empty when no master password is configured;
	// decryption itself is out of scope.
	SymmetricEncryptionKey string `json:"symmetric_encryption_key,omitempty"`
	// PrivateKey holds the key file contents with newlines stripped
	// (ShapePrivateKey only).
	PrivateKey string `json:"private_key,omitempty"`
	// Passphrase is the optional passphrase protecting the private key.
	Passphrase string `json:"passphrase,omitempty"`
	// Source names the extractor that produced the credential.
	Source string `json:"source"`
}

// Finding is the redacted view of a Credential that agents submit to the
// collector. It carries hygiene metadata only, never secret material.
type Finding struct {
	// CredentialID is the repository identifier of the credential.
	CredentialID string `json:"credential_id"`
	// Username is the configured login name.
	Username string `json:"username"`
	// Shape is the authentication shape of the credential.
	Shape AuthShape `json:"shape"`
	// MasterKeyPresent reports whether a master password was available
	// for an encrypted credential.
	MasterKeyPresent bool `json:"master_key_present"`
	// PassphrasePresent reports whether a key credential has a passphrase.
	PassphrasePresent bool `json:"passphrase_present"`
	// Source names the extractor that produced the credential.
	Source string `json:"source"`
}

// Finding redacts the credential down to its hygiene metadata.
func (c Credential) Finding() Finding {
	return Finding{
		CredentialID:      c.ID,
		Username:          c.Username,
		Shape:             c.Shape,
		MasterKeyPresent:  c.SymmetricEncryptionKey != "",
		PassphrasePresent: c.Passphrase != "",
		Source:            c.Source,
	}
}

// Report is one audit run submitted by an agent host.
type Report struct {
	// ID is the unique identifier of the report.
	ID string `json:"id"`
	// Host is the enrolled host name the report came from.
	Host string `json:"host"`
	// CreatedAt is the time the agent assembled the report.
	CreatedAt time.Time `json:"created_at"`
	// Findings are the redacted credentials found on the host.
	Findings []Finding `json:"findings"`
}
