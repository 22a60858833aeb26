// Package report renders extraction results for the local user. The full
// credential values are printed here only; everything leaving the machine
// goes through models.Finding instead.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/avetrov/CredScout/internal/extractor"
	"github.com/avetrov/CredScout/internal/models"
)

// WriteTable prints a titled, human-readable listing of every extracted
// credential, one block per credential in extraction order.
func WriteTable(w io.Writer, results []extractor.Result) {
	for _, res := range results {
		fmt.Fprintf(w, "========== %s ==========\n", res.Extractor)
		if len(res.Credentials) == 0 {
			fmt.Fprintln(w, "no credentials found")
		}
		for _, c := range res.Credentials {
			fmt.Fprintf(w, "Id: %s\n", c.ID)
			fmt.Fprintf(w, "Username: %s\n", c.Username)
			switch c.Shape {
			case models.ShapePrivateKey:
				fmt.Fprintf(w, "PrivateKey: %s\n", c.PrivateKey)
				if c.Passphrase != "" {
					fmt.Fprintf(w, "Passphrase: %s\n", c.Passphrase)
				}
			case models.ShapeEncrypted:
				fmt.Fprintf(w, "PasswordEncrypted: %s\n", c.PasswordEncrypted)
				if c.SymmetricEncryptionKey != "" {
					fmt.Fprintf(w, "SymmetricEncryptionKey: %s\n", c.SymmetricEncryptionKey)
				}
			default:
				fmt.Fprintf(w, "Password: %s\n", c.Password)
			}
			fmt.Fprintln(w, "---")
		}
		for _, sk := range res.Skipped {
			fmt.Fprintf(w, "skipped entry %q: %s\n", sk.ID, sk.Reason)
		}
	}
}

// WriteJSON writes the results as indented JSON.
func WriteJSON(w io.Writer, results []extractor.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}
