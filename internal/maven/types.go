// Package maven extracts stored repository credentials from the local Maven
// configuration (~/.m2/settings.xml and ~/.m2/settings-security.xml).
package maven

// settingsNamespace qualifies elements of the Maven settings document.
const settingsNamespace = "http://maven.apache.org/SETTINGS/1.0.0"

// Field is an optional string field of a server entry. OK reports whether
// the field was present in the document.
type Field struct {
	Value string
	OK    bool
}

// RawCredential is the recognized subset of one <server> entry from
// settings.xml. Values are whitespace-trimmed; entries with none of the
// five fields set never leave the scanner.
type RawCredential struct {
	ID         Field
	Username   Field
	Password   Field
	PrivateKey Field
	Passphrase Field
}

// set stores a recognized field by its bare element name. When the same
// field appears twice in one server entry, the last occurrence wins.
// Unrecognized names are ignored.
func (r *RawCredential) set(name, value string) {
	switch name {
	case "id":
		r.ID = Field{Value: value, OK: true}
	case "username":
		r.Username = Field{Value: value, OK: true}
	case "password":
		r.Password = Field{Value: value, OK: true}
	case "privateKey":
		r.PrivateKey = Field{Value: value, OK: true}
	case "passphrase":
		r.Passphrase = Field{Value: value, OK: true}
	}
}

// empty reports whether no recognized field is set.
func (r RawCredential) empty() bool {
	return !r.ID.OK && !r.Username.OK && !r.Password.OK && !r.PrivateKey.OK && !r.Passphrase.OK
}
