package maven

import (
	"encoding/xml"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// Locator finds the Maven master password in settings-security.xml.
//
// See https://maven.apache.org/guides/mini/guide-encryption.html
type Locator struct {
	homeDir string
	log     *zap.Logger
}

// NewLocator returns a Locator reading below the given home directory.
func NewLocator(homeDir string, log *zap.Logger) *Locator {
	return &Locator{homeDir: homeDir, log: log}
}

// Locate returns the configured master password and true when one exists.
// A missing file, malformed XML, or an absent/empty <master> element all
// yield absence; none of them abort the run. The password text is returned
// verbatim, without trimming.
func (l *Locator) Locate() (string, bool) {
	path := filepath.Join(l.homeDir, ".m2", "settings-security.xml")
	f, err := os.Open(path)
	if err != nil {
		if !os.IsNotExist(err) {
			l.log.Debug("cannot open security settings", zap.String("path", path), zap.Error(err))
		}
		return "", false
	}
	defer f.Close()

	master, err := findMaster(f)
	if err != nil {
		l.log.Debug("cannot retrieve master password", zap.String("path", path), zap.Error(err))
		return "", false
	}
	if master == "" {
		return "", false
	}
	return master, true
}

// findMaster returns the text of the first <master> element at any depth,
// or "" when the document has none. The whole document is consumed, so a
// malformed tail still surfaces as a parse error.
func findMaster(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)
	var master string
	found := false
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return master, nil
		}
		if err != nil {
			return "", err
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "master" || found {
			continue
		}

		// Collect the element's own character data, stopping at the
		// first nested element or the closing tag.
		var text strings.Builder
	collect:
		for {
			tok, err := dec.Token()
			if err != nil {
				return "", err
			}
			switch t := tok.(type) {
			case xml.CharData:
				text.Write(t)
			case xml.StartElement, xml.EndElement:
				master = text.String()
				found = true
				break collect
			}
		}
	}
}
