package pool

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/amirouche/ouverture/internal/canon"
	"github.com/amirouche/ouverture/internal/index"
	"github.com/amirouche/ouverture/internal/lang"
	"github.com/amirouche/ouverture/internal/normalize"
	"github.com/amirouche/ouverture/internal/objectstore"
)

// IndexFileName is the side-index database, stored next to the pool
// directory under the storage root.
const IndexFileName = "index.db"

// Pool is a content-addressed pool of single-function source units rooted at
// one filesystem directory.
type Pool struct {
	root   string
	author string
	now    func() time.Time
	idx    *index.Index
}

// Option configures a Pool at Open time.
type Option func(*Pool)

// WithAuthor sets the author string recorded in the metadata of newly stored
// functions. The empty string is valid.
func WithAuthor(author string) Option {
	return func(p *Pool) { p.author = author }
}

// WithNow overrides the clock used for metadata timestamps. Tests use this
// to pin object.json bytes.
func WithNow(now func() time.Time) Option {
	return func(p *Pool) { p.now = now }
}

// Open opens (creating if necessary) the pool rooted at root, and rebuilds
// the side index from a walk of the directory layout, so an index dropped or
// left stale by external tooling never loses data.
func Open(root string, opts ...Option) (*Pool, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, wrapIoError("create storage root", err)
	}

	p := &Pool{root: root, now: time.Now}
	for _, opt := range opts {
		opt(p)
	}

	idx, err := index.Open(filepath.Join(root, IndexFileName))
	if err != nil {
		return nil, wrapIoError("open side index", err)
	}
	p.idx = idx

	if err := p.reindex(); err != nil {
		idx.Close()
		return nil, err
	}
	return p, nil
}

// Close releases the side index. The directory layout needs no teardown.
func (p *Pool) Close() error {
	return p.idx.Close()
}

// Root returns the storage root directory.
func (p *Pool) Root() string {
	return p.root
}

// Store ingests one source unit: parse, normalize, hash, and persist the
// object plus its overlay for languageTag. It returns the function hash and
// the overlay hash. Storing the same input twice is a no-op beyond the first
// call.
func (p *Pool) Store(source []byte, languageTag, comment string) (functionHash, overlayHash string, err error) {
	if err := ValidateLanguageTag(languageTag); err != nil {
		return "", "", err
	}

	result, err := normalize.Normalize(source, normalize.Namespace, normalize.PoolModulePath)
	if err != nil {
		return "", "", mapLangError(err)
	}

	functionHash = canon.FunctionHash([]byte(result.CanonicalCode))

	doc := objectDocument{
		SchemaVersion:  SchemaVersion,
		Hash:           functionHash,
		NormalizedCode: result.CanonicalCode,
		Metadata: Metadata{
			Created: p.now().UTC().Format(time.RFC3339),
			Author:  p.author,
		},
	}
	data, err := marshalPretty(doc)
	if err != nil {
		return "", "", newErrorf(KindIoError, "encode object.json: %v", err)
	}
	if err := objectstore.WriteFileAtomic(objectstore.ObjectPath(p.root, functionHash), data); err != nil {
		return "", "", wrapIoError("write object.json", err)
	}
	if err := p.idx.UpsertFunction(context.Background(), functionHash); err != nil {
		return "", "", wrapIoError("index function", err)
	}

	overlayHash, err = p.writeOverlay(functionHash, languageTag, mappingDocument{
		Docstring:    result.Mapping.Docstring,
		NameMapping:  result.Mapping.NameMapping,
		AliasMapping: result.Mapping.AliasMapping,
		Comment:      comment,
	})
	if err != nil {
		return "", "", err
	}
	return functionHash, overlayHash, nil
}

// AddOverlay attaches a presentation overlay to an existing function. It
// fails with NotFound when the function is absent.
func (p *Pool) AddOverlay(functionHash, languageTag, docstring string, nameMapping, aliasMapping map[string]string, comment string) (string, error) {
	if err := ValidateHash(functionHash); err != nil {
		return "", err
	}
	if err := ValidateLanguageTag(languageTag); err != nil {
		return "", err
	}
	exists, err := objectstore.FunctionExists(p.root, functionHash)
	if err != nil {
		return "", wrapIoError("check function", err)
	}
	if !exists {
		return "", newErrorf(KindNotFound, "function %s is not in the pool", functionHash)
	}
	return p.writeOverlay(functionHash, languageTag, mappingDocument{
		Docstring:    docstring,
		NameMapping:  nameMapping,
		AliasMapping: aliasMapping,
		Comment:      comment,
	})
}

func (p *Pool) writeOverlay(functionHash, languageTag string, doc mappingDocument) (string, error) {
	doc = doc.normalized()
	canonicalJSON, err := doc.canonicalJSON()
	if err != nil {
		return "", newErrorf(KindIoError, "encode canonical mapping: %v", err)
	}
	overlayHash := canon.OverlayHash(canonicalJSON)

	data, err := marshalPretty(doc)
	if err != nil {
		return "", newErrorf(KindIoError, "encode mapping.json: %v", err)
	}
	path := objectstore.MappingPath(p.root, functionHash, languageTag, overlayHash)
	if err := objectstore.WriteFileAtomic(path, data); err != nil {
		return "", wrapIoError("write mapping.json", err)
	}
	if err := p.idx.UpsertOverlay(context.Background(), functionHash, languageTag, overlayHash, doc.Comment); err != nil {
		return "", wrapIoError("index overlay", err)
	}
	return overlayHash, nil
}

// HasFunction reports whether a function exists in the pool. It answers from
// the side index, which mirrors object.json existence.
func (p *Pool) HasFunction(functionHash string) (bool, error) {
	if err := ValidateHash(functionHash); err != nil {
		return false, err
	}
	has, err := p.idx.HasFunction(context.Background(), functionHash)
	if err != nil {
		return false, wrapIoError("query side index", err)
	}
	return has, nil
}

// LoadObject reads and decodes a function's object.json.
func (p *Pool) LoadObject(functionHash string) (*PoolFunction, error) {
	if err := ValidateHash(functionHash); err != nil {
		return nil, err
	}
	data, err := objectstore.ReadObject(p.root, functionHash)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, newErrorf(KindNotFound, "function %s is not in the pool", functionHash)
		}
		return nil, wrapIoError("read object.json", err)
	}
	doc, err := decodeObjectDocument(data)
	if err != nil {
		return nil, newErrorf(KindSchemaMismatch, "object.json for %s: %v", functionHash, err)
	}
	if doc.SchemaVersion != SchemaVersion {
		return nil, newErrorf(KindSchemaMismatch, "object.json for %s has schema_version %d, want %d", functionHash, doc.SchemaVersion, SchemaVersion)
	}
	return &PoolFunction{
		FunctionHash:  functionHash,
		CanonicalCode: doc.NormalizedCode,
		Metadata:      doc.Metadata,
	}, nil
}

// ListLanguages returns the set of language tags carrying at least one
// overlay of the function. It answers from the side index.
func (p *Pool) ListLanguages(functionHash string) ([]string, error) {
	if err := ValidateHash(functionHash); err != nil {
		return nil, err
	}
	exists, err := objectstore.FunctionExists(p.root, functionHash)
	if err != nil {
		return nil, wrapIoError("check function", err)
	}
	if !exists {
		return nil, newErrorf(KindNotFound, "function %s is not in the pool", functionHash)
	}
	languages, err := p.idx.Languages(context.Background(), functionHash)
	if err != nil {
		return nil, wrapIoError("query side index", err)
	}
	return languages, nil
}

// ListOverlays returns (overlay_hash, comment) pairs for one language of one
// function, ordered by overlay hash. The result is empty when the language
// is absent.
func (p *Pool) ListOverlays(functionHash, languageTag string) ([]OverlaySummary, error) {
	if err := ValidateHash(functionHash); err != nil {
		return nil, err
	}
	if err := ValidateLanguageTag(languageTag); err != nil {
		return nil, err
	}
	exists, err := objectstore.FunctionExists(p.root, functionHash)
	if err != nil {
		return nil, wrapIoError("check function", err)
	}
	if !exists {
		return nil, newErrorf(KindNotFound, "function %s is not in the pool", functionHash)
	}
	rows, err := p.idx.Overlays(context.Background(), functionHash, languageTag)
	if err != nil {
		return nil, wrapIoError("query side index", err)
	}
	summaries := make([]OverlaySummary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, OverlaySummary{OverlayHash: row.OverlayHash, Comment: row.Comment})
	}
	return summaries, nil
}

// LoadOverlay reads one overlay. When overlayHash is empty: a single stored
// overlay is returned implicitly, several fail with AmbiguousOverlay
// carrying the enumerable list, and none fail with NotFound.
func (p *Pool) LoadOverlay(functionHash, languageTag, overlayHash string) (*LanguageOverlay, error) {
	if err := ValidateHash(functionHash); err != nil {
		return nil, err
	}
	if err := ValidateLanguageTag(languageTag); err != nil {
		return nil, err
	}

	if overlayHash == "" {
		resolved, err := p.resolveSoleOverlay(functionHash, languageTag)
		if err != nil {
			return nil, err
		}
		overlayHash = resolved
	} else if err := ValidateHash(overlayHash); err != nil {
		return nil, err
	}

	data, err := objectstore.ReadMapping(p.root, functionHash, languageTag, overlayHash)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, newErrorf(KindNotFound, "overlay %s@%s@%s is not in the pool", functionHash, languageTag, overlayHash)
		}
		return nil, wrapIoError("read mapping.json", err)
	}
	doc, err := decodeMappingDocument(data)
	if err != nil {
		return nil, newErrorf(KindSchemaMismatch, "mapping.json for %s@%s@%s: %v", functionHash, languageTag, overlayHash, err)
	}
	return &LanguageOverlay{
		OverlayHash:  overlayHash,
		Docstring:    doc.Docstring,
		NameMapping:  doc.NameMapping,
		AliasMapping: doc.AliasMapping,
		Comment:      doc.Comment,
	}, nil
}

// resolveSoleOverlay enumerates the language's overlays on the filesystem
// and returns the only hash, or the appropriate NotFound/AmbiguousOverlay
// failure.
func (p *Pool) resolveSoleOverlay(functionHash, languageTag string) (string, error) {
	hashes, err := objectstore.ListOverlayHashes(p.root, functionHash, languageTag)
	if err != nil {
		return "", wrapIoError("list overlays", err)
	}
	switch len(hashes) {
	case 0:
		return "", newErrorf(KindNotFound, "no %s overlay for function %s", languageTag, functionHash)
	case 1:
		return hashes[0], nil
	}

	summaries := make([]OverlaySummary, 0, len(hashes))
	for _, h := range hashes {
		comment := ""
		if data, err := objectstore.ReadMapping(p.root, functionHash, languageTag, h); err == nil {
			if doc, err := decodeMappingDocument(data); err == nil {
				comment = doc.Comment
			}
		}
		summaries = append(summaries, OverlaySummary{OverlayHash: h, Comment: comment})
	}
	ambiguous := newErrorf(KindAmbiguousOverlay, "%d %s overlays for function %s, none requested", len(hashes), languageTag, functionHash)
	ambiguous.Detail = summaries
	return "", ambiguous
}

// Denormalize reconstructs human-readable source text from a stored function
// and one of its overlays.
func (p *Pool) Denormalize(functionHash, languageTag, overlayHash string) (string, error) {
	object, err := p.LoadObject(functionHash)
	if err != nil {
		return "", err
	}
	overlay, err := p.LoadOverlay(functionHash, languageTag, overlayHash)
	if err != nil {
		return "", err
	}
	text, err := normalize.Denormalize([]byte(object.CanonicalCode), normalize.Mapping{
		Docstring:    overlay.Docstring,
		NameMapping:  overlay.NameMapping,
		AliasMapping: overlay.AliasMapping,
	}, normalize.Namespace, normalize.PoolModulePath)
	if err != nil {
		return "", mapLangError(err)
	}
	return text, nil
}

// mapLangError converts internal/lang parse failures into the pool's error
// kinds; anything else passes through unchanged.
func mapLangError(err error) error {
	var langErr *lang.Error
	if !errors.As(err, &langErr) {
		return err
	}
	switch langErr.Kind {
	case lang.ErrInvalidSource:
		return &Error{Kind: KindInvalidSource, Message: langErr.Message, Err: langErr}
	case lang.ErrUnsupportedUnit:
		return &Error{Kind: KindUnsupportedUnit, Message: langErr.Message, Err: langErr}
	}
	return err
}

// reindex rebuilds the side index from a walk of the directory layout.
func (p *Pool) reindex() error {
	ctx := context.Background()
	if err := p.idx.Reset(ctx); err != nil {
		return wrapIoError("reset side index", err)
	}

	functions, err := objectstore.ListFunctions(p.root)
	if err != nil {
		return wrapIoError("walk pool directory", err)
	}
	for _, functionHash := range functions {
		if err := p.idx.UpsertFunction(ctx, functionHash); err != nil {
			return wrapIoError("index function", err)
		}
		languages, err := objectstore.ListLanguages(p.root, functionHash)
		if err != nil {
			return wrapIoError("list languages", err)
		}
		for _, language := range languages {
			hashes, err := objectstore.ListOverlayHashes(p.root, functionHash, language)
			if err != nil {
				return wrapIoError("list overlays", err)
			}
			for _, overlayHash := range hashes {
				comment := ""
				if data, err := objectstore.ReadMapping(p.root, functionHash, language, overlayHash); err == nil {
					if doc, err := decodeMappingDocument(data); err == nil {
						comment = doc.Comment
					}
				}
				if err := p.idx.UpsertOverlay(ctx, functionHash, language, overlayHash, comment); err != nil {
					return wrapIoError("index overlay", err)
				}
			}
		}
	}
	return nil
}
