package pool

import (
	"errors"
	"fmt"
	"os"

	"github.com/amirouche/ouverture/internal/canon"
	"github.com/amirouche/ouverture/internal/objectstore"
)

// Validation error codes (E300-E399)
const (
	ErrObjectMissing       = "E301" // object.json absent
	ErrObjectParse         = "E302" // object.json unparseable or missing a field
	ErrObjectSchemaVersion = "E303" // unsupported schema_version
	ErrObjectHashField     = "E304" // hash field disagrees with directory path
	ErrObjectHashMismatch  = "E305" // normalized_code re-hash disagrees with path
	ErrOverlayParse        = "E306" // mapping.json unparseable or missing a field
	ErrOverlayHashMismatch = "E307" // overlay re-hash disagrees with path
)

// ValidationError pins one integrity or schema fault to the path that
// carries it.
type ValidationError struct {
	Path    string `json:"path"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Path, e.Message)
}

// Validate re-derives every hash stored under a function's directory and
// reports all faults found (does not fail-fast). A nil result means the
// function and all of its overlays are intact.
func (p *Pool) Validate(functionHash string) ([]ValidationError, error) {
	if err := ValidateHash(functionHash); err != nil {
		return nil, err
	}

	var faults []ValidationError
	objectPath := objectstore.ObjectPath(p.root, functionHash)

	data, err := objectstore.ReadObject(p.root, functionHash)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []ValidationError{{
				Path:    objectPath,
				Code:    ErrObjectMissing,
				Message: "object.json does not exist",
			}}, nil
		}
		return nil, wrapIoError("read object.json", err)
	}

	doc, err := decodeObjectDocument(data)
	if err != nil {
		faults = append(faults, ValidationError{
			Path:    objectPath,
			Code:    ErrObjectParse,
			Message: err.Error(),
		})
	} else {
		if doc.SchemaVersion != SchemaVersion {
			faults = append(faults, ValidationError{
				Path:    objectPath,
				Code:    ErrObjectSchemaVersion,
				Message: fmt.Sprintf("schema_version %d is not supported, want %d", doc.SchemaVersion, SchemaVersion),
			})
		}
		if doc.Hash != functionHash {
			faults = append(faults, ValidationError{
				Path:    objectPath,
				Code:    ErrObjectHashField,
				Message: fmt.Sprintf("hash field %s disagrees with directory hash %s", doc.Hash, functionHash),
			})
		}
		if rehash := canon.FunctionHash([]byte(doc.NormalizedCode)); rehash != functionHash {
			faults = append(faults, ValidationError{
				Path:    objectPath,
				Code:    ErrObjectHashMismatch,
				Message: fmt.Sprintf("normalized_code re-hashes to %s, want %s", rehash, functionHash),
			})
		}
	}

	languages, err := objectstore.ListLanguages(p.root, functionHash)
	if err != nil {
		return nil, wrapIoError("list languages", err)
	}
	for _, language := range languages {
		overlayFaults, err := p.validateLanguage(functionHash, language)
		if err != nil {
			return nil, err
		}
		faults = append(faults, overlayFaults...)
	}
	return faults, nil
}

func (p *Pool) validateLanguage(functionHash, language string) ([]ValidationError, error) {
	hashes, err := objectstore.ListOverlayHashes(p.root, functionHash, language)
	if err != nil {
		return nil, wrapIoError("list overlays", err)
	}

	var faults []ValidationError
	for _, overlayHash := range hashes {
		mappingPath := objectstore.MappingPath(p.root, functionHash, language, overlayHash)
		data, err := objectstore.ReadMapping(p.root, functionHash, language, overlayHash)
		if err != nil {
			return nil, wrapIoError("read mapping.json", err)
		}
		doc, err := decodeMappingDocument(data)
		if err != nil {
			faults = append(faults, ValidationError{
				Path:    mappingPath,
				Code:    ErrOverlayParse,
				Message: err.Error(),
			})
			continue
		}
		canonicalJSON, err := doc.canonicalJSON()
		if err != nil {
			faults = append(faults, ValidationError{
				Path:    mappingPath,
				Code:    ErrOverlayParse,
				Message: err.Error(),
			})
			continue
		}
		if rehash := canon.OverlayHash(canonicalJSON); rehash != overlayHash {
			faults = append(faults, ValidationError{
				Path:    mappingPath,
				Code:    ErrOverlayHashMismatch,
				Message: fmt.Sprintf("overlay content re-hashes to %s, want %s", rehash, overlayHash),
			})
		}
	}
	return faults, nil
}
