package pool

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/amirouche/ouverture/internal/canon"
)

// SchemaVersion is the only object.json schema this build reads or writes.
const SchemaVersion = 1

// Metadata is the non-identifying envelope stored alongside canonical code.
// It never participates in the function hash.
type Metadata struct {
	Created string `json:"created"`
	Author  string `json:"author"`
}

// PoolFunction is one algorithmic identity: the canonical code whose UTF-8
// bytes hash to FunctionHash, plus its storage metadata.
type PoolFunction struct {
	FunctionHash  string
	CanonicalCode string
	Metadata      Metadata
}

// LanguageOverlay is one contributor's presentation of a function in one
// natural language. OverlayHash is a pure function of the four content
// fields.
type LanguageOverlay struct {
	OverlayHash  string
	Docstring    string
	NameMapping  map[string]string
	AliasMapping map[string]string
	Comment      string
}

// OverlaySummary is the listing shape: hash reconstructed from the directory
// path plus the stored comment.
type OverlaySummary struct {
	OverlayHash string `json:"overlay_hash"`
	Comment     string `json:"comment"`
}

// objectDocument is the on-disk shape of object.json.
type objectDocument struct {
	SchemaVersion  int      `json:"schema_version"`
	Hash           string   `json:"hash"`
	NormalizedCode string   `json:"normalized_code"`
	Metadata       Metadata `json:"metadata"`
}

// mappingDocument is the on-disk shape of mapping.json. All four fields
// participate in the overlay hash.
type mappingDocument struct {
	Docstring    string            `json:"docstring"`
	NameMapping  map[string]string `json:"name_mapping"`
	AliasMapping map[string]string `json:"alias_mapping"`
	Comment      string            `json:"comment"`
}

// canonicalJSON returns the exact overlay-hash preimage: the four-field
// object in RFC 8785-flavored canonical form.
func (d mappingDocument) canonicalJSON() ([]byte, error) {
	return canon.Marshal(canon.Object{
		"docstring":     canon.String(d.Docstring),
		"name_mapping":  canon.ObjectOf(d.NameMapping),
		"alias_mapping": canon.ObjectOf(d.AliasMapping),
		"comment":       canon.String(d.Comment),
	})
}

// normalized returns a copy with nil maps replaced by empty ones, so the
// pretty-printed on-disk file serializes them as {} rather than null.
func (d mappingDocument) normalized() mappingDocument {
	if d.NameMapping == nil {
		d.NameMapping = map[string]string{}
	}
	if d.AliasMapping == nil {
		d.AliasMapping = map[string]string{}
	}
	return d
}

// objectDocumentFields and mappingDocumentFields are the required key sets
// used to reject files with missing fields, which json.Unmarshal alone would
// silently default.
var (
	objectDocumentFields  = []string{"schema_version", "hash", "normalized_code", "metadata"}
	mappingDocumentFields = []string{"docstring", "name_mapping", "alias_mapping", "comment"}
)

func decodeObjectDocument(data []byte) (objectDocument, error) {
	if err := requireFields(data, objectDocumentFields); err != nil {
		return objectDocument{}, err
	}
	var doc objectDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return objectDocument{}, fmt.Errorf("parse object.json: %w", err)
	}
	return doc, nil
}

func decodeMappingDocument(data []byte) (mappingDocument, error) {
	if err := requireFields(data, mappingDocumentFields); err != nil {
		return mappingDocument{}, err
	}
	var doc mappingDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return mappingDocument{}, fmt.Errorf("parse mapping.json: %w", err)
	}
	return doc.normalized(), nil
}

func requireFields(data []byte, fields []string) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parse JSON object: %w", err)
	}
	for _, field := range fields {
		if _, ok := raw[field]; !ok {
			return fmt.Errorf("missing required field %q", field)
		}
	}
	return nil
}

// marshalPretty renders a document for on-disk readability. The hash is
// always computed against the canonical form of the logical content, never
// against these bytes.
func marshalPretty(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
