package maven

import (
	"encoding/xml"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// Scanner reads server credential entries from settings.xml.
//
// See https://maven.apache.org/settings.html#Servers
type Scanner struct {
	homeDir string
	log     *zap.Logger
}

// NewScanner returns a Scanner reading below the given home directory.
func NewScanner(homeDir string, log *zap.Logger) *Scanner {
	return &Scanner{homeDir: homeDir, log: log}
}

// Scan returns one RawCredential per <server> entry that carries at least
// one recognized field, in document order. A missing settings file or a
// parse failure yields an empty result; parse failures are logged.
func (s *Scanner) Scan() []RawCredential {
	path := filepath.Join(s.homeDir, ".m2", "settings.xml")
	f, err := os.Open(path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Debug("cannot open settings", zap.String("path", path), zap.Error(err))
		}
		return nil
	}
	defer f.Close()

	creds, err := parseServers(f)
	if err != nil {
		s.log.Debug("cannot retrieve repository credentials", zap.String("path", path), zap.Error(err))
		return nil
	}
	return creds
}

// parseServers walks the settings document and collects every
// namespace-qualified <server> element.
func parseServers(r io.Reader) ([]RawCredential, error) {
	dec := xml.NewDecoder(r)
	var creds []RawCredential
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return creds, nil
		}
		if err != nil {
			return nil, err
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "server" || se.Name.Space != settingsNamespace {
			continue
		}
		raw, err := parseServer(dec)
		if err != nil {
			return nil, err
		}
		if !raw.empty() {
			creds = append(creds, raw)
		}
	}
}

// parseServer consumes one <server> element, reading its direct children
// into a RawCredential. The decoder must be positioned just past the
// server start tag.
func parseServer(dec *xml.Decoder) (RawCredential, error) {
	var raw RawCredential
	for {
		tok, err := dec.Token()
		if err != nil {
			return RawCredential{}, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			text, present, err := elementText(dec)
			if err != nil {
				return RawCredential{}, err
			}
			if present {
				raw.set(t.Name.Local, strings.TrimSpace(text))
			}
		case xml.EndElement:
			return raw, nil
		}
	}
}

// elementText consumes the current element and returns its own character
// data. present is false for elements with no text at all (e.g. <id/>),
// distinguishing them from whitespace-only text.
func elementText(dec *xml.Decoder) (text string, present bool, err error) {
	var b strings.Builder
	depth := 0
	for {
		tok, err := dec.Token()
		if err != nil {
			return "", false, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			depth++
		case xml.EndElement:
			if depth == 0 {
				return b.String(), present, nil
			}
			depth--
		case xml.CharData:
			if depth == 0 {
				b.Write(t)
				present = true
			}
		}
	}
}
